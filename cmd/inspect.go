package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"ttdialect/internal/dialect"
	"ttdialect/internal/schema"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the current user's tables and sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		db, err := connect(cmd.Context())
		if err != nil {
			return err
		}

		catalog, err := schema.Inspect(cmd.Context(), db, d)
		if err != nil {
			return err
		}

		fmt.Printf("🔍 %d tables (dependency order):\n", len(catalog.Tables))
		var rows [][]string
		for _, t := range catalog.Tables {
			for _, c := range t.Columns {
				rows = append(rows, []string{t.Name, c.Name, c.DataType, describeType(d, c), strconv.FormatBool(c.Nullable), strconv.FormatBool(c.PrimaryKey)})
			}
			if len(t.Dependencies) > 0 {
				rows = append(rows, []string{t.Name, "→ " + strings.Join(t.Dependencies, ", "), "", "", "", ""})
			}
		}
		if err := renderTable(os.Stdout, []string{"Table", "Column", "Catalog Type", "Dialect Type", "Nullable", "PK"}, rows); err != nil {
			return err
		}

		fmt.Printf("\n%d sequences:\n", len(catalog.Sequences))
		for _, s := range catalog.Sequences {
			fmt.Println("  " + s)
		}
		return nil
	},
}

// describeType re-renders a catalog column through the dialect's type
// registry so mismatches stand out.
func describeType(d dialect.Dialect, c *schema.Column) string {
	if c.Type == dialect.Inferred {
		return "?"
	}
	name, err := d.TypeName(c.Type, c.Size())
	if err != nil {
		return err.Error()
	}
	return name
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
