package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"ttdialect/internal/dialect"
	"ttdialect/internal/schema"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// Config drives the TPTBM benchmark.
type Config struct {
	KeyCount       int
	NumXacts       int
	NumThreads     int
	PercentReads   int
	PercentInserts int
	Seed           int64
}

func DefaultConfig() Config {
	return Config{
		KeyCount:       100,
		NumXacts:       1000,
		NumThreads:     4,
		PercentReads:   20,
		PercentInserts: 40,
	}
}

func (c Config) Validate() error {
	switch {
	case c.KeyCount <= 0:
		return fmt.Errorf("%w: key count must be greater than 0, got %d", ErrInvalidConfig, c.KeyCount)
	case c.NumXacts < 0:
		return fmt.Errorf("%w: transactions per thread must not be negative, got %d", ErrInvalidConfig, c.NumXacts)
	case c.NumThreads < 0:
		return fmt.Errorf("%w: thread count must not be negative, got %d", ErrInvalidConfig, c.NumThreads)
	case c.PercentReads < 0 || c.PercentInserts < 0:
		return fmt.Errorf("%w: read and insert percentages must not be negative", ErrInvalidConfig)
	case c.PercentReads+c.PercentInserts > 100:
		return fmt.Errorf("%w: reads (%d%%) plus inserts (%d%%) exceed 100%%", ErrInvalidConfig, c.PercentReads, c.PercentInserts)
	}
	return nil
}

func (c Config) PercentUpdates() int { return 100 - c.PercentReads - c.PercentInserts }

// TotalXacts is the number of transactions Run will attempt.
func (c Config) TotalXacts() int { return c.NumThreads * c.NumXacts }

// Result summarises one Run.
type Result struct {
	Threads  int
	Xacts    int
	Reads    int64
	Inserts  int64
	Updates  int64
	NotFound int64
	Elapsed  time.Duration
	// Seed is the base seed the workers derived theirs from.
	Seed int64
}

// TPS is threads * xacts-per-thread over elapsed wall time.
func (r *Result) TPS() float64 {
	ms := float64(r.Elapsed.Milliseconds())
	if ms <= 0 {
		return 0
	}
	return float64(r.Threads) * (float64(r.Xacts) / ms) * 1000
}

func (r *Result) TPM() float64 { return r.TPS() * 60 }

// Workload runs TPTBM against a database using only SQL produced by the
// dialect.
type Workload struct {
	db        *sql.DB
	d         dialect.Dialect
	cfg       Config
	batchSize int
	table     *schema.Table

	insertSQL    string
	readSQL      string
	lockSQL      string
	updateSQL    string
	deleteAllSQL string
	nextNBSQL    string
}

// NewWorkload validates cfg and prepares the statement texts. props are
// merged over the dialect defaults by the caller.
func NewWorkload(db *sql.DB, d dialect.Dialect, cfg Config, props dialect.Properties) (*Workload, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	batch := props.Int(dialect.PropStatementBatchSize, dialect.DefaultBatchSize)
	if batch <= 0 {
		batch = dialect.DefaultBatchSize
	}

	t := schema.TPTBM()
	nextNB, err := d.Functions().Render("nvl", "max("+schema.ColVpnNB+")+1", "0")
	if err != nil {
		return nil, err
	}
	keyWhere := fmt.Sprintf(" from %s where %s = %s and %s = %s",
		t.Name, schema.ColVpnID, d.Placeholder(0), schema.ColVpnNB, d.Placeholder(1))

	w := &Workload{
		db:        db,
		d:         d,
		cfg:       cfg,
		batchSize: batch,
		table:     t,

		insertSQL: d.InsertQuery(t.Name, t.ColumnNames()),
		readSQL: "select " + strings.Join([]string{schema.ColDirectoryNB, schema.ColLastCallingParty, schema.ColDescr}, ", ") +
			keyWhere,
		lockSQL: "select " + schema.ColLastCallingParty + keyWhere + d.ForUpdate(dialect.LockUpgrade),
		updateSQL: d.UpdateQuery(t.Name,
			[]string{schema.ColLastCallingParty},
			[]string{schema.ColVpnID, schema.ColVpnNB}),
		deleteAllSQL: d.DeleteAllQuery(t.Name),
		nextNBSQL: fmt.Sprintf("select %s from %s where %s = %s",
			nextNB, t.Name, schema.ColVpnID, d.Placeholder(0)),
	}
	return w, nil
}

func (w *Workload) Config() Config { return w.cfg }
func (w *Workload) BatchSize() int { return w.batchSize }

// CreateTable creates TPTBM.
func (w *Workload) CreateTable(ctx context.Context) error {
	stmt, err := schema.CreateTableSQL(w.d, w.table)
	if err != nil {
		return err
	}
	if _, err := w.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create %s: %w", w.table.Name, err)
	}
	return nil
}

func (w *Workload) DropTable(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, schema.DropTableSQL(w.table)); err != nil {
		return fmt.Errorf("failed to drop %s: %w", w.table.Name, err)
	}
	return nil
}

// DeleteAll removes every TPTBM row and reports how many went.
func (w *Workload) DeleteAll(ctx context.Context) (int64, error) {
	res, err := w.db.ExecContext(ctx, w.deleteAllSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s rows: %w", w.table.Name, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Populate inserts keyCount x keyCount rows, committing every batchSize
// rows.
func (w *Workload) Populate(ctx context.Context, onProgress func()) (int, error) {
	start := time.Now()
	inserted := 0

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin populate transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	for id := 1; id <= w.cfg.KeyCount; id++ {
		for nb := 1; nb <= w.cfg.KeyCount; nb++ {
			row := populatedRow(Key{VpnID: id, VpnNB: nb})
			if _, err := tx.ExecContext(ctx, w.insertSQL, row.values()...); err != nil {
				return inserted, fmt.Errorf("failed to insert %s: %w", row.Key, err)
			}
			inserted++
			if onProgress != nil {
				onProgress()
			}

			if inserted%w.batchSize == 0 {
				if err := tx.Commit(); err != nil {
					return inserted, fmt.Errorf("failed to commit populate batch: %w", err)
				}
				if tx, err = w.db.BeginTx(ctx, nil); err != nil {
					return inserted, fmt.Errorf("failed to begin populate transaction: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit populate batch: %w", err)
	}
	tx = nil

	log.Printf("%s table populated with %d rows in %s", w.table.Name, inserted, time.Since(start))
	return inserted, nil
}

// Setup empties TPTBM and repopulates it.
func (w *Workload) Setup(ctx context.Context, onProgress func()) error {
	deleted, err := w.DeleteAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("%d rows in %s table deleted", deleted, w.table.Name)
	_, err = w.Populate(ctx, onProgress)
	return err
}

// Run starts NumThreads workers, each executing NumXacts single-operation
// transactions. The first worker error cancels the rest; the partial
// Result is returned with it.
func (w *Workload) Run(ctx context.Context, onProgress func(Op)) (*Result, error) {
	var reads, inserts, updates, notFound atomic.Int64

	seed := w.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()

	for i := 1; i <= w.cfg.NumThreads; i++ {
		threadID := i
		g.Go(func() error {
			src := NewKeySource(w.cfg, seed+int64(threadID))
			// keys above keyCount never collide with populated rows
			insertID := w.cfg.KeyCount + threadID
			insertCount := 0
			if w.cfg.PercentInserts > 0 {
				n, err := w.nextInsertNB(gctx, insertID)
				if err != nil {
					return fmt.Errorf("thread %d failed to resume insert keys: %w", threadID, err)
				}
				insertCount = n
			}

			for x := 0; x < w.cfg.NumXacts; x++ {
				if err := gctx.Err(); err != nil {
					return err
				}

				op := src.NextOp()
				var err error
				switch op {
				case OpRead:
					var found bool
					found, err = w.read(gctx, src.RandomKey())
					if err == nil {
						reads.Add(1)
						if !found {
							notFound.Add(1)
						}
					}
				case OpInsert:
					err = w.insert(gctx, Key{VpnID: insertID, VpnNB: insertCount})
					if err == nil {
						insertCount++
						inserts.Add(1)
					}
				default:
					err = w.update(gctx, src.RandomKey())
					if err == nil {
						updates.Add(1)
					}
				}
				if err != nil {
					return fmt.Errorf("thread %d failed on %s: %w", threadID, op, err)
				}
				if onProgress != nil {
					onProgress(op)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return &Result{
		Threads:  w.cfg.NumThreads,
		Xacts:    w.cfg.NumXacts,
		Reads:    reads.Load(),
		Inserts:  inserts.Load(),
		Updates:  updates.Load(),
		NotFound: notFound.Load(),
		Elapsed:  time.Since(start),
		Seed:     seed,
	}, err
}

// nextInsertNB returns the first free VPN_NB under vpnID, so runs that skip
// Setup continue after rows inserted by earlier runs.
func (w *Workload) nextInsertNB(ctx context.Context, vpnID int) (int, error) {
	var n int
	if err := w.db.QueryRowContext(ctx, w.nextNBSQL, vpnID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (w *Workload) read(ctx context.Context, k Key) (bool, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var row Row
	err = tx.QueryRowContext(ctx, w.readSQL, k.VpnID, k.VpnNB).Scan(&row.DirectoryNB, &row.LastCallingParty, &row.Descr)
	if errors.Is(err, sql.ErrNoRows) {
		return false, tx.Commit()
	}
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (w *Workload) insert(ctx context.Context, k Key) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, w.insertSQL, insertedRow(k).values()...); err != nil {
		return err
	}
	return tx.Commit()
}

// update locks the row, then rewrites its calling party.
func (w *Workload) update(ctx context.Context, k Key) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current string
	if err := tx.QueryRowContext(ctx, w.lockSQL, k.VpnID, k.VpnNB).Scan(&current); err != nil {
		return fmt.Errorf("failed to lock %s: %w", k, err)
	}
	if _, err := tx.ExecContext(ctx, w.updateSQL, callingParty(k), k.VpnID, k.VpnNB); err != nil {
		return err
	}
	return tx.Commit()
}

// Sample returns a window of TPTBM rows in key order, paginated with the
// dialect's limit handler.
func (w *Workload) Sample(ctx context.Context, limit dialect.Limit) ([]Row, error) {
	query := fmt.Sprintf("select %s from %s order by %s, %s",
		strings.Join(w.table.ColumnNames(), ", "), w.table.Name, schema.ColVpnID, schema.ColVpnNB)
	query, err := w.d.LimitHandler().ApplyLimit(query, limit)
	if err != nil {
		return nil, err
	}

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", w.table.Name, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.VpnID, &r.VpnNB, &r.DirectoryNB, &r.LastCallingParty, &r.Descr); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", w.table.Name, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
