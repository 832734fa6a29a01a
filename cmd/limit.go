package cmd

import (
	"fmt"

	"ttdialect/internal/dialect"

	"github.com/spf13/cobra"
)

var (
	firstRow int
	maxRows  int
)

var limitCmd = &cobra.Command{
	Use:   "limit <query>",
	Short: "Apply the dialect's row-limiting clause to a select",
	Example: `  ttdialect limit "select a, b from t" --max 10
  ttdialect limit "select a, b from t" --first 20 --max 10 --dialect tt1122`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		out, err := d.LimitHandler().ApplyLimit(args[0], dialect.Limit{FirstRow: firstRow, MaxRows: maxRows})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var nullCmd = &cobra.Command{
	Use:   "null <type>",
	Short: "Print the typed null literal used in select lists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		code, err := dialect.ParseTypeCode(args[0])
		if err != nil {
			return err
		}
		fmt.Println(d.SelectClauseNullString(code))
		return nil
	},
}

var temptableCmd = &cobra.Command{
	Use:   "temptable <base-table>",
	Short: "Show the temporary table name and clauses generated for a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		if !d.SupportsTemporaryTables() {
			return fmt.Errorf("dialect %s does not support temporary tables", d.Name())
		}
		fmt.Printf("Name:    %s\n", d.GenerateTemporaryTableName(args[0]))
		fmt.Printf("Create:  %s\n", d.CreateTemporaryTableString())
		fmt.Printf("Postfix: %s\n", d.CreateTemporaryTablePostfix())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(limitCmd)
	RootCmd.AddCommand(nullCmd)
	RootCmd.AddCommand(temptableCmd)

	limitCmd.Flags().IntVar(&firstRow, "first", 0, "zero-based first row")
	limitCmd.Flags().IntVar(&maxRows, "max", 0, "maximum rows (0 = unbounded)")
}
