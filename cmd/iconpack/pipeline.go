package iconpack

import (
	"fmt"
	"io"

	"github.com/arthur-debert/iconpack/pkg/compiler"
	"github.com/arthur-debert/iconpack/pkg/config"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/patch"
	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/report"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/spf13/cobra"
)

// axisFlags are the --styles and --sizes flags shared by build and extract
type axisFlags struct {
	styles []string
	sizes  []int
}

func (f *axisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.styles, "styles", nil, MsgFlagStyles)
	cmd.Flags().IntSliceVar(&f.sizes, "sizes", nil, MsgFlagSizes)
}

// overrides maps the flags the user set onto the section's axis keys
func (f *axisFlags) overrides(cmd *cobra.Command, section string, into map[string]interface{}) {
	if cmd.Flags().Changed("styles") {
		into[section+".styles"] = f.styles
	}
	if cmd.Flags().Changed("sizes") {
		into[section+".sizes"] = f.sizes
	}
}

// newCompiler wires the configured backend and artifact adapter
func newCompiler(cfg *config.Config) (*compiler.Compiler, error) {
	patcher, err := patch.New(cfg.Compiler.Adapter)
	if err != nil {
		return nil, err
	}

	var backend compiler.Backend
	switch cfg.Compiler.Backend {
	case compiler.BackendNative:
		compression, err := cfg.Compression()
		if err != nil {
			return nil, err
		}
		backend = compiler.NewNativeBackend(rcc.Options{Compression: compression})
	default:
		backend = compiler.NewExternalBackend(cfg.Compiler.Command, cfg.Compiler.Args, cfg.Compiler.Timeout.Std())
	}
	return compiler.New(backend, patcher), nil
}

// finish renders the summary, writes the optional report and turns axis
// failures into the command's error
func finish(cmd *cobra.Command, opts *globalOptions, summary *types.Summary, reportPath string) error {
	out := cmd.OutOrStdout()
	if err := report.NewRenderer(out, opts.noColor).Render(summary); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to render summary")
	}

	if reportPath != "" {
		if err := report.WriteYAMLFile(reportPath, summary); err != nil {
			return err
		}
		writeMsg(out, MsgReportWritten, reportPath)
	}

	failed := len(summary.Failed())
	if failed == 0 {
		return nil
	}
	return errors.Wrapf(summary.Err(), errors.ErrAxesFailed, MsgErrAxesFailed, failed, len(summary.Results))
}

func writeMsg(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
