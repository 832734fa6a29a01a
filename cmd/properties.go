package cmd

import (
	"fmt"
	"os"
	"strconv"

	"ttdialect/internal/dialect"

	"github.com/spf13/cobra"
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Show dialect properties and capability answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}

		defaults := d.DefaultProperties()
		props := dialectProperties(d)
		var rows [][]string
		for _, k := range props.Keys() {
			source := "default"
			if v, ok := defaults[k]; !ok || v != props[k] {
				source = "config"
			}
			rows = append(rows, []string{k, props[k], source})
		}
		fmt.Printf("Properties for %s:\n", d.Name())
		if err := renderTable(os.Stdout, []string{"Property", "Value", "Source"}, rows); err != nil {
			return err
		}

		fmt.Println("\nCapabilities:")
		return renderTable(os.Stdout, []string{"Answer", "Value"}, capabilityRows(d))
	},
}

func capabilityRows(d dialect.Dialect) [][]string {
	b := strconv.FormatBool
	seq := d.SequenceSupport()
	lh := d.LimitHandler()
	return [][]string{
		{"add column", d.AddColumnString()},
		{"qualify index name", b(d.QualifyIndexName())},
		{"drop constraints", b(d.DropConstraints())},
		{"unique", b(d.SupportsUnique())},
		{"unique in create/alter table", b(d.SupportsUniqueConstraintInCreateAlterTable())},
		{"column check", b(d.SupportsColumnCheck())},
		{"table check", b(d.SupportsTableCheck())},
		{"circular cascade delete", b(d.SupportsCircularCascadeDeleteConstraints())},
		{"max identifier length", strconv.Itoa(d.MaxIdentifierLength())},
		{"sequences", b(seq.SupportsSequences())},
		{"pooled sequences", b(seq.SupportsPooledSequences())},
		{"query sequences", d.QuerySequencesString()},
		{"for update", d.ForUpdateString()},
		{"for update nowait", d.ForUpdateNowaitString()},
		{"cross join", d.CrossJoinSeparator()},
		{"limit", b(lh.SupportsLimit())},
		{"limit offset", b(lh.SupportsLimitOffset())},
		{"variable limit", b(lh.SupportsVariableLimit())},
		{"current timestamp select", d.CurrentTimestampSelectString()},
		{"current timestamp callable", b(d.IsCurrentTimestampSelectStringCallable())},
		{"temporary tables", b(d.SupportsTemporaryTables())},
		{"union all", b(d.SupportsUnionAll())},
		{"empty in list", b(d.SupportsEmptyInList())},
	}
}

func init() {
	RootCmd.AddCommand(propertiesCmd)
}
