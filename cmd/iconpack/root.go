package iconpack

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/iconpack/internal/version"
	"github.com/arthur-debert/iconpack/pkg/cobrax/topics"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var helpTopics embed.FS

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
	noColor    bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "iconpack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			if opts.noColor {
				pterm.DisableStyling()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicsFS, err := fs.Sub(helpTopics, "topics")
	if err == nil {
		noColor := os.Getenv("NO_COLOR") != "" || !stdoutIsTerminal()
		topicOpts := topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(noColor),
		}
		if err := topics.InitializeWithOptions(rootCmd, topicsFS, topicOpts); err == nil {
			rootCmd.SetHelpCommandGroupID("misc")
		}
	}

	return rootCmd
}
