package cmd

import (
	"fmt"
	"os"
	"strings"

	"ttdialect/internal/dialect"

	"github.com/spf13/cobra"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the dialect's SQL functions",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}

		r := d.Functions()
		var rows [][]string
		for _, name := range r.Names() {
			fn, _ := r.Lookup(name)
			returns := "(argument)"
			if fn.ReturnType() != dialect.Inferred {
				returns = fn.ReturnType().String()
			}
			rows = append(rows, []string{name, describeFunction(fn), returns})
		}
		fmt.Printf("%d functions registered for %s:\n", r.Len(), d.Name())
		return renderTable(os.Stdout, []string{"Name", "Renders As", "Returns"}, rows)
	},
}

var renderFnCmd = &cobra.Command{
	Use:   "render-fn <name> [args...]",
	Short: "Render a function call with the given argument expressions",
	Example: `  ttdialect render-fn locate "'x'" name
  ttdialect render-fn coalesce a b c --dialect tt1122`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}
		out, err := d.Functions().Render(args[0], args[1:]...)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// describeFunction shows how a function renders with placeholder arguments.
func describeFunction(fn dialect.Function) string {
	switch f := fn.(type) {
	case dialect.StandardFunction:
		return f.Name + "(...)"
	case dialect.NoArgFunction:
		out, _ := f.Render(nil)
		return out
	case dialect.TemplateFunction:
		var patterns []string
		for arity := 1; arity <= 3; arity++ {
			if p, ok := f.Pattern(arity); ok {
				patterns = append(patterns, p)
			}
		}
		return strings.Join(patterns, " | ")
	case dialect.VarArgsFunction:
		return f.Begin + "?1" + f.Sep + "?2" + f.Sep + "..." + f.End
	case dialect.NvlFunction:
		return "nvl(?1, nvl(?2, ...))"
	default:
		return fmt.Sprintf("%T", fn)
	}
}

func init() {
	RootCmd.AddCommand(functionsCmd)
	RootCmd.AddCommand(renderFnCmd)
}
