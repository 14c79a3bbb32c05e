package iconpack

import (
	"github.com/arthur-debert/iconpack/pkg/build"
	"github.com/arthur-debert/iconpack/pkg/config"
	"github.com/arthur-debert/iconpack/pkg/fetch"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *globalOptions) *cobra.Command {
	var (
		axes        axisFlags
		backend     string
		concurrency int
		sourceRoot  string
		packageRoot string
		noFetch     bool
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			axes.overrides(cmd, "build", overrides)
			if cmd.Flags().Changed("backend") {
				overrides["compiler.backend"] = backend
			}
			if cmd.Flags().Changed("concurrency") {
				overrides["build.concurrency"] = concurrency
			}
			if cmd.Flags().Changed("source-root") {
				overrides["source.root"] = sourceRoot
			}
			if cmd.Flags().Changed("package-root") {
				overrides["package.root"] = packageRoot
			}
			if noFetch {
				overrides["source.fetch"] = false
			}

			cfg, err := config.Load(opts.configFile, overrides)
			if err != nil {
				return err
			}
			targets, err := cfg.Axes()
			if err != nil {
				return err
			}
			c, err := newCompiler(cfg)
			if err != nil {
				return err
			}

			buildOpts := build.Options{
				SourceRoot:  cfg.Source.Root,
				PackageRoot: cfg.Package.Root,
				Concurrency: cfg.Build.Concurrency,
			}
			if cfg.Source.Fetch {
				buildOpts.Fetcher = fetch.New(fetch.Options{
					Repository: cfg.Source.Repository,
					SparsePath: cfg.Source.SparsePath,
					Ref:        cfg.Source.Ref,
				})
			}

			summary := build.New(c, buildOpts).BuildAll(cmd.Context(), targets)
			return finish(cmd, opts, &summary, reportPath)
		},
	}

	axes.register(cmd)
	cmd.Flags().StringVar(&backend, "backend", "", MsgFlagBackend)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, MsgFlagConcurrency)
	cmd.Flags().StringVar(&sourceRoot, "source-root", "", MsgFlagSourceRoot)
	cmd.Flags().StringVar(&packageRoot, "package-root", "", MsgFlagPackageRoot)
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, MsgFlagNoFetch)
	cmd.Flags().StringVar(&reportPath, "report", "", MsgFlagReport)

	return cmd
}
