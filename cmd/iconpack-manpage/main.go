package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/iconpack/cmd/iconpack"
	"github.com/arthur-debert/iconpack/internal/version"
)

func main() {
	rootCmd := iconpack.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ICONPACK",
		Section: "1",
		Source:  "iconpack " + version.Version,
		Manual:  "iconpack manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
