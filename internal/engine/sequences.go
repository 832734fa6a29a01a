package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"ttdialect/internal/dialect"
	"ttdialect/internal/schema"
)

// SequenceManager runs the dialect's sequence statements against a database.
type SequenceManager struct {
	db  *sql.DB
	d   dialect.Dialect
	seq dialect.SequenceSupport
}

func NewSequenceManager(db *sql.DB, d dialect.Dialect) *SequenceManager {
	return &SequenceManager{db: db, d: d, seq: d.SequenceSupport()}
}

// Create creates a sequence. A zero increment selects the database default
// start and step (plain "create sequence S").
func (m *SequenceManager) Create(ctx context.Context, name string, start, increment int) error {
	stmts := []string{m.seq.CreateSequenceString(name)}
	if increment != 0 {
		var err error
		if stmts, err = m.seq.CreateSequenceStrings(name, start, increment); err != nil {
			return err
		}
	}
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create sequence %s: %w", name, err)
		}
	}
	log.Printf("Created sequence %s", name)
	return nil
}

func (m *SequenceManager) Drop(ctx context.Context, name string) error {
	for _, stmt := range m.seq.DropSequenceStrings(name) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop sequence %s: %w", name, err)
		}
	}
	log.Printf("Dropped sequence %s", name)
	return nil
}

// Next returns the sequence's next value.
func (m *SequenceManager) Next(ctx context.Context, name string) (int64, error) {
	var v int64
	if err := m.db.QueryRowContext(ctx, m.seq.SequenceNextValString(name)).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read next value of %s: %w", name, err)
	}
	return v, nil
}

func (m *SequenceManager) List(ctx context.Context) ([]string, error) {
	return schema.ListSequences(ctx, m.db, m.d)
}

// Exists reports whether name is among the listed sequences, ignoring case.
func (m *SequenceManager) Exists(ctx context.Context, name string) (bool, error) {
	names, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	want := dialect.NormalizeIdentifier(name)
	for _, n := range names {
		if dialect.NormalizeIdentifier(n) == want {
			return true, nil
		}
	}
	return false, nil
}
