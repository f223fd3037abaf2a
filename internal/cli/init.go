package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabrielfornes/flowsheet/internal/config"
)

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default reference data and config to the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.workspace()
			if err != nil {
				return err
			}

			wrote, err := store.WriteDefaults(force)
			if err != nil {
				return err
			}
			report(cmd, store.ReferencePath(), wrote)

			wrote, err = store.WriteConfig(config.DefaultYAML, force)
			if err != nil {
				return err
			}
			report(cmd, store.ConfigPath(), wrote)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func report(cmd *cobra.Command, path string, wrote bool) {
	if wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "kept %s (use --force to overwrite)\n", path)
}
