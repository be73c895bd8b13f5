package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/rolesmanifest/internal/commands"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file, ROLES_MANIFEST_*
environment variables and flags, as YAML usable for .rolesmanifest.yaml.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(cmd)
			if err != nil {
				return err
			}
			defer run.close()

			return commands.ShowConfig(commands.ShowConfigOpts{
				Config: run.cfg,
				File:   run.file,
				Paths:  run.paths,
			}, cmd.OutOrStdout())
		},
	}

	return cmd
}
