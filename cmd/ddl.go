package cmd

import (
	"fmt"
	"log"

	"ttdialect/internal/schema"

	"github.com/spf13/cobra"
)

var (
	ddlDrop      bool
	ddlTemporary bool
	ddlApply     bool
)

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print (or apply) the TPTBM table DDL",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := currentDialect()
		if err != nil {
			return err
		}

		tables := []*schema.Table{schema.TPTBM()}
		var stmts []string
		switch {
		case ddlDrop:
			stmts = schema.DropSchemaSQL(tables)
		case ddlTemporary:
			stmt, err := schema.CreateTemporaryTableSQL(d, tables[0])
			if err != nil {
				return err
			}
			stmts = []string{stmt}
		default:
			if stmts, err = schema.CreateSchemaSQL(d, tables); err != nil {
				return err
			}
		}

		if !ddlApply {
			for _, s := range stmts {
				fmt.Println(s + ";")
			}
			return nil
		}

		db, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range stmts {
			if _, err := db.ExecContext(cmd.Context(), s); err != nil {
				return fmt.Errorf("failed to execute %q: %w", s, err)
			}
			log.Printf("Executed: %s", s)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(ddlCmd)

	ddlCmd.Flags().BoolVar(&ddlDrop, "drop", false, "emit drop statements instead of create")
	ddlCmd.Flags().BoolVar(&ddlTemporary, "temporary", false, "emit the global temporary table variant")
	ddlCmd.Flags().BoolVar(&ddlApply, "apply", false, "execute the statements against the active database")
}
