package iconpack

import (
	"os"

	"github.com/arthur-debert/iconpack/pkg/config"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var (
		defaults bool
		write    bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: MsgConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			if defaults {
				content = []byte(config.GenerateConfigContent())
			} else {
				cfg, err := config.Load(opts.configFile, nil)
				if err != nil {
					return err
				}
				if content, err = config.Marshal(cfg); err != nil {
					return err
				}
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			f, err := os.OpenFile(config.FileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
			if err != nil {
				if os.IsExist(err) {
					return errors.New(errors.ErrAlreadyExists, MsgErrConfigExists).
						WithDetail("path", config.FileName)
				}
				return errors.Wrap(err, errors.ErrFileWrite, "failed to create configuration file").
					WithDetail("path", config.FileName)
			}
			defer func() { _ = f.Close() }()

			if _, err := f.Write(content); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to write configuration file").
					WithDetail("path", config.FileName)
			}
			writeMsg(cmd.OutOrStdout(), MsgConfigWritten, config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}
