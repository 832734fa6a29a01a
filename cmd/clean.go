package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ttdialect/internal/dialect"
	"ttdialect/internal/schema"

	"github.com/spf13/cobra"
)

var (
	cleanTruncate bool
	cleanDrop     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean all data from the current user's tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 0. Get Dialect
		d, err := currentDialect()
		if err != nil {
			return err
		}
		log.Printf("Using Dialect: %s\n", d.Name())

		db, err := connect(ctx)
		if err != nil {
			return err
		}

		// 1. Inspect
		log.Println("Inspecting schema...")
		catalog, err := schema.Inspect(ctx, db, d)
		if err != nil {
			return err
		}

		if cleanDrop {
			return dropTables(ctx, db, catalog.Tables)
		}
		return cleanDatabase(ctx, db, catalog.Tables, d)
	},
}

func init() {
	RootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVar(&cleanTruncate, "truncate", false, "use truncate table instead of delete (commits implicitly)")
	cleanCmd.Flags().BoolVar(&cleanDrop, "drop", false, "drop the tables instead of emptying them")
}

// cleanDatabase empties tables in reverse dependency order.
func cleanDatabase(ctx context.Context, db *sql.DB, tables []*schema.Table, d dialect.Dialect) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	count := 0
	total := len(tables)

	for i := len(tables) - 1; i >= 0; i-- {
		table := tables[i]
		count++
		query := d.DeleteAllQuery(table.Name)
		if cleanTruncate {
			query = d.TruncateQuery(table.Name)
		}
		if _, err := tx.ExecContext(ctx, query); err != nil {
			log.Printf("Warning: Failed to clean %s: %v (continuing...)\n", table.Name, err)
		}

		if count%5 == 0 || count == total {
			log.Printf("Cleaned %d/%d tables...", count, total)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cleaning transaction: %w", err)
	}
	tx = nil

	log.Println("Database Cleaned Successfully!")
	return nil
}

func dropTables(ctx context.Context, db *sql.DB, tables []*schema.Table) error {
	for _, stmt := range schema.DropSchemaSQL(tables) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
		log.Printf("Executed: %s", stmt)
	}
	return nil
}
