package cobra

import (
	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/rolesmanifest/internal/commands"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the manifest matches the role cards",
		Long: `Render the manifest in memory and compare it with the file on disk.
Nothing is written. Exits 3 (E_MANIFEST_STALE) when the manifest is missing
or out of date, so it can guard CI.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(cmd)
			if err != nil {
				return err
			}
			defer run.close()

			opts := commands.CheckOpts{Roles: run.rolesOptions()}
			return commands.Check(cmd.Context(), run.fsys, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
