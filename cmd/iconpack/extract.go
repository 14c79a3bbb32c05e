package iconpack

import (
	"github.com/arthur-debert/iconpack/pkg/bundle"
	"github.com/arthur-debert/iconpack/pkg/config"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/extract"
	"github.com/arthur-debert/iconpack/pkg/relocate"
	"github.com/spf13/cobra"
)

func newExtractCmd(opts *globalOptions) *cobra.Command {
	var (
		axes        axisFlags
		names       []string
		output      string
		backend     string
		packageRoot string
		reportPath  string
	)

	cmd := &cobra.Command{
		Use:     "extract",
		Short:   MsgExtractShort,
		Long:    MsgExtractLong,
		Example: MsgExtractExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoNames)
			}
			if output == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrOutputMissing)
			}

			overrides := map[string]interface{}{}
			axes.overrides(cmd, "extract", overrides)
			if cmd.Flags().Changed("backend") {
				overrides["compiler.backend"] = backend
			}
			if cmd.Flags().Changed("package-root") {
				overrides["package.root"] = packageRoot
			}

			cfg, err := config.Load(opts.configFile, overrides)
			if err != nil {
				return err
			}
			styles, sizes, err := cfg.ExtractAxes()
			if err != nil {
				return err
			}
			selectors := extract.Selectors(names, styles, sizes)
			if err := extract.Validate(selectors); err != nil {
				return err
			}
			c, err := newCompiler(cfg)
			if err != nil {
				return err
			}

			bundles := bundle.NewRegistry(bundle.PackageLocator(cfg.Package.Root))
			extractor := extract.New(bundles, c, extract.Options{
				PackageName: cfg.Package.Name,
				Concurrency: cfg.Build.Concurrency,
			})

			relocated, err := relocate.New(relocate.Options{
				SourceRoot:  cfg.Package.Root,
				PackageName: cfg.Package.Name,
				Files:       cfg.Package.FacadeFiles,
			}).Relocate(output)
			if err != nil {
				return err
			}

			summary, err := extractor.Extract(cmd.Context(), selectors, output)
			if err != nil {
				return err
			}
			for _, w := range relocated.Warnings {
				summary.Warnings = append(summary.Warnings, w.Error())
			}

			return finish(cmd, opts, &summary, reportPath)
		},
	}

	axes.register(cmd)
	cmd.Flags().StringSliceVar(&names, "names", nil, MsgFlagNames)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&backend, "backend", "", MsgFlagBackend)
	cmd.Flags().StringVar(&packageRoot, "package-root", "", MsgFlagPackageRoot)
	cmd.Flags().StringVar(&reportPath, "report", "", MsgFlagReport)

	return cmd
}
