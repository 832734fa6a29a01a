package cmd

import (
	"fmt"
	"os"
	"strconv"

	"ttdialect/internal/dialect"

	"github.com/spf13/cobra"
)

var typeSize dialect.Size

var typesCmd = &cobra.Command{
	Use:   "types [type]",
	Short: "List the dialect's column types, or render one",
	Long: `Without arguments, lists every registered type code with its template.
With a type name or JDBC code, renders the column type for --length,
--precision and --scale.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			code, err := dialect.ParseTypeCode(args[0])
			if err != nil {
				return err
			}
			name, err := d.TypeName(code, typeSize)
			if err != nil {
				return err
			}
			fmt.Println(name)
			return nil
		}

		tn := d.TypeNames()
		var rows [][]string
		for _, code := range tn.Codes() {
			tmpl, capacity, _ := tn.Template(code)
			maxLen := "-"
			if capacity > 0 {
				maxLen = strconv.Itoa(capacity)
			}
			rendered, err := d.TypeName(code, dialect.DefaultSize)
			if err != nil {
				rendered = err.Error()
			}
			rows = append(rows, []string{code.String(), strconv.Itoa(int(code)), tmpl, maxLen, rendered})
		}
		fmt.Printf("Column types for %s:\n", d.Name())
		return renderTable(os.Stdout, []string{"Type", "Code", "Template", "Max Length", "Default Rendering"}, rows)
	},
}

func init() {
	RootCmd.AddCommand(typesCmd)

	typesCmd.Flags().IntVar(&typeSize.Length, "length", dialect.DefaultSize.Length, "column length ($l)")
	typesCmd.Flags().IntVar(&typeSize.Precision, "precision", dialect.DefaultSize.Precision, "numeric precision ($p)")
	typesCmd.Flags().IntVar(&typeSize.Scale, "scale", dialect.DefaultSize.Scale, "numeric scale ($s)")
}
