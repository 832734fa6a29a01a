package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttdialect/internal/dialect"
)

func newMock(t *testing.T) (*Workload, sqlmock.Sqlmock, Config) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := DefaultConfig()
	cfg.KeyCount = 2
	cfg.NumThreads = 1
	cfg.NumXacts = 3
	cfg.Seed = 7

	d := dialect.NewTimesTen1122()
	props := d.DefaultProperties().Merge(map[string]string{dialect.PropStatementBatchSize: "3"})
	w, err := NewWorkload(db, d, cfg, props)
	require.NoError(t, err)
	return w, mock, cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero keys", func(c *Config) { c.KeyCount = 0 }, false},
		{"negative xacts", func(c *Config) { c.NumXacts = -1 }, false},
		{"zero xacts", func(c *Config) { c.NumXacts = 0 }, true},
		{"negative threads", func(c *Config) { c.NumThreads = -2 }, false},
		{"over 100 percent", func(c *Config) { c.PercentReads, c.PercentInserts = 70, 40 }, false},
		{"exactly 100 percent", func(c *Config) { c.PercentReads, c.PercentInserts = 60, 40 }, true},
		{"negative reads", func(c *Config) { c.PercentReads = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
	assert.Equal(t, 40, DefaultConfig().PercentUpdates())
}

func TestResult_TPS(t *testing.T) {
	r := &Result{Threads: 4, Xacts: 1000, Elapsed: 2 * time.Second}
	assert.InDelta(t, 2000.0, r.TPS(), 0.001)
	assert.InDelta(t, 120000.0, r.TPM(), 0.001)
	assert.Zero(t, (&Result{Threads: 1, Xacts: 1}).TPS())
}

func TestWorkload_Statements(t *testing.T) {
	w, _, _ := newMock(t)
	assert.Equal(t, "insert into TPTBM (VPN_ID, VPN_NB, DIRECTORY_NB, LAST_CALLING_PARTY, DESCR) values (:1, :2, :3, :4, :5)", w.insertSQL)
	assert.Equal(t, "select DIRECTORY_NB, LAST_CALLING_PARTY, DESCR from TPTBM where VPN_ID = :1 and VPN_NB = :2", w.readSQL)
	assert.Equal(t, "select LAST_CALLING_PARTY from TPTBM where VPN_ID = :1 and VPN_NB = :2 for update", w.lockSQL)
	assert.Equal(t, "update TPTBM set LAST_CALLING_PARTY = :1 where VPN_ID = :2 and VPN_NB = :3", w.updateSQL)
	assert.Equal(t, "select nvl(max(VPN_NB)+1, 0) from TPTBM where VPN_ID = :1", w.nextNBSQL)
	assert.Equal(t, 3, w.BatchSize())
}

func TestWorkload_Populate(t *testing.T) {
	w, mock, _ := newMock(t)

	// 4 rows, committed after the 3rd and at the end
	mock.ExpectBegin()
	mock.ExpectExec(w.insertSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "5511", "0000000000", "<place holder for description of VPN 1 extension 1>").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(w.insertSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(w.insertSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(w.insertSQL).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "5522", "0000000000", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	progress := 0
	n, err := w.Populate(context.Background(), func() { progress++ })
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, progress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_PopulateRollsBackOnError(t *testing.T) {
	w, mock, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(w.insertSQL).WillReturnError(errors.New("unique constraint violated"))
	mock.ExpectRollback()

	n, err := w.Populate(context.Background(), nil)
	require.Error(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_Setup(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.KeyCount = 1
	w.cfg = cfg

	mock.ExpectExec("delete from TPTBM").WillReturnResult(sqlmock.NewResult(0, 10))
	mock.ExpectBegin()
	mock.ExpectExec(w.insertSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, w.Setup(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunReadOnly(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 100, 0
	w.cfg = cfg

	for i := 0; i < cfg.NumXacts; i++ {
		mock.ExpectBegin()
		rows := sqlmock.NewRows([]string{"DIRECTORY_NB", "LAST_CALLING_PARTY", "DESCR"})
		if i == 0 {
			rows.AddRow("5511", "0000000000", "descr")
		}
		mock.ExpectQuery(w.readSQL).WillReturnRows(rows)
		mock.ExpectCommit()
	}

	var ops []Op
	res, err := w.Run(context.Background(), func(op Op) { ops = append(ops, op) })
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Reads)
	assert.EqualValues(t, 2, res.NotFound)
	assert.Zero(t, res.Inserts+res.Updates)
	assert.Equal(t, []Op{OpRead, OpRead, OpRead}, ops)
	assert.EqualValues(t, 7, res.Seed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunUpdates(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 0, 0
	w.cfg = cfg

	for i := 0; i < cfg.NumXacts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(w.lockSQL).
			WillReturnRows(sqlmock.NewRows([]string{"LAST_CALLING_PARTY"}).AddRow("0000000000"))
		mock.ExpectExec(w.updateSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	res, err := w.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Updates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunInsertKeys(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 0, 100
	w.cfg = cfg

	// thread 1 inserts above the populated square: VPN_ID = keyCount + 1
	vpnID := int64(cfg.KeyCount + 1)
	mock.ExpectQuery(w.nextNBSQL).WithArgs(vpnID).
		WillReturnRows(sqlmock.NewRows([]string{"NEXT_NB"}).AddRow(0))
	for i := 0; i < cfg.NumXacts; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(w.insertSQL).
			WithArgs(vpnID, int64(i), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	res, err := w.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Inserts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunTwiceContinuesInsertKeys(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 0, 100
	w.cfg = cfg
	vpnID := int64(cfg.KeyCount + 1)

	// second run without Setup: VPN_NB 0..2 already exist
	for run, next := range []int{0, cfg.NumXacts} {
		mock.ExpectQuery(w.nextNBSQL).WithArgs(vpnID).
			WillReturnRows(sqlmock.NewRows([]string{"NEXT_NB"}).AddRow(next))
		for i := 0; i < cfg.NumXacts; i++ {
			mock.ExpectBegin()
			mock.ExpectExec(w.insertSQL).
				WithArgs(vpnID, int64(next+i), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()
		}

		res, err := w.Run(context.Background(), nil)
		require.NoError(t, err, "run %d", run+1)
		assert.EqualValues(t, 3, res.Inserts)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunResumeQueryFails(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 0, 100
	w.cfg = cfg

	mock.ExpectQuery(w.nextNBSQL).WillReturnError(errors.New("table TPTBM not found"))

	res, err := w.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resume insert keys")
	assert.Zero(t, res.Inserts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_RunReportsRandomSeed(t *testing.T) {
	w, _, cfg := newMock(t)
	cfg.Seed = 0
	cfg.NumThreads = 0
	w.cfg = cfg

	res, err := w.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotZero(t, res.Seed)
}

func TestWorkload_RunStopsOnError(t *testing.T) {
	w, mock, cfg := newMock(t)
	cfg.PercentReads, cfg.PercentInserts = 0, 100
	w.cfg = cfg

	mock.ExpectQuery(w.nextNBSQL).WillReturnRows(sqlmock.NewRows([]string{"NEXT_NB"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(w.insertSQL).WillReturnError(errors.New("table TPTBM not found"))
	mock.ExpectRollback()

	res, err := w.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thread 1 failed on insert")
	assert.Zero(t, res.Inserts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkload_Sample(t *testing.T) {
	w, mock, _ := newMock(t)

	mock.ExpectQuery("select rows 3 to 4 VPN_ID, VPN_NB, DIRECTORY_NB, LAST_CALLING_PARTY, DESCR from TPTBM order by VPN_ID, VPN_NB").
		WillReturnRows(sqlmock.NewRows([]string{"VPN_ID", "VPN_NB", "DIRECTORY_NB", "LAST_CALLING_PARTY", "DESCR"}).
			AddRow(2, 1, "5521", "0000000000", "d").
			AddRow(2, 2, "5522", "2x2", "d"))

	rows, err := w.Sample(context.Background(), dialect.Limit{FirstRow: 2, MaxRows: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Key{VpnID: 2, VpnNB: 2}, rows[1].Key)
	assert.Equal(t, "2x2", rows[1].LastCallingParty)
	require.NoError(t, mock.ExpectationsWereMet())
}
