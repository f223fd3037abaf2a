package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newExportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "List exported home exercise plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.workspace()
			if err != nil {
				return err
			}
			exports, err := store.ListExports()
			if err != nil {
				return err
			}
			if len(exports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exports yet. Press p in the editor to preview and export a plan.")
				return nil
			}
			for _, e := range exports {
				fmt.Fprintln(cmd.OutOrStdout(), e.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(newExportsShowCmd(app))

	return cmd
}

func newExportsShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print an exported home exercise plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := app.workspace()
			if err != nil {
				return err
			}
			name := args[0]
			if !store.ExportExists(name) {
				return fmt.Errorf("no export named %q (run `flowsheet exports` to list them)", name)
			}
			content, err := store.ReadExport(name)
			if err != nil {
				return err
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			out, err := glamour.Render(content, "dark")
			if err != nil {
				return fmt.Errorf("could not render export: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")

	return cmd
}
