package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gabrielfornes/flowsheet/internal/flowsheet"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "List exercise library entries matching query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := app.reference()
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			entries := flowsheet.FilterCatalog(ref.Catalog, query)
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exercises match %q.\n", query)
				return nil
			}
			t := newTable("Ref", "Name", "Region")
			for _, e := range entries {
				t.Row(e.Ref, e.Name, e.Region)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newCodesCmd(app *App) *cobra.Command {
	var eval bool

	cmd := &cobra.Command{
		Use:   "codes [query]",
		Short: "List billing code options matching query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := app.reference()
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}

			options := ref.Codes
			if eval {
				options = ref.EvalCodes
			}
			options = flowsheet.FilterCodes(options, query)
			if len(options) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No codes match %q.\n", query)
				return nil
			}
			t := newTable("Code", "Description")
			for _, o := range options {
				t.Row(o.Code, o.Label)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&eval, "eval", false, "List evaluation codes instead of treatment codes")

	return cmd
}

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units <quantity>...",
		Short: "Convert billed quantities to minutes and units",
		Long: strings.TrimSpace(`
Each quantity is read the way the billing editor reads it: the digits in the
value are the minutes ("38", "38 min" and "38m" are all 38 minutes). Units are
computed per quantity and rounded down before they are summed.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newTable("Quantity", "Minutes", "Units")
			for _, q := range args {
				m := flowsheet.ParseMinutes(q)
				t.Row(q, fmt.Sprint(m), fmt.Sprint(flowsheet.Units(m)))
			}
			total := flowsheet.TotalsFor(args)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "Total: %d min, %d units\n", total.Minutes, total.Units)
			return nil
		},
	}
}
