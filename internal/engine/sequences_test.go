package engine

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttdialect/internal/dialect"
)

func TestSequenceManager(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	m := NewSequenceManager(db, dialect.NewTimesTen1122())
	ctx := context.Background()

	mock.ExpectExec("create sequence ORDER_SEQ").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("create sequence ITEM_SEQ start with 100 increment by 10").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select ORDER_SEQ.nextval from sys.dual").
		WillReturnRows(sqlmock.NewRows([]string{"NEXTVAL"}).AddRow(42))
	mock.ExpectQuery("select name from sys.sequences").
		WillReturnRows(sqlmock.NewRows([]string{"NAME"}).AddRow("ORDER_SEQ").AddRow("ITEM_SEQ"))
	mock.ExpectExec("drop sequence ORDER_SEQ").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, m.Create(ctx, "ORDER_SEQ", 0, 0))
	require.NoError(t, m.Create(ctx, "ITEM_SEQ", 100, 10))

	v, err := m.Next(ctx, "ORDER_SEQ")
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	ok, err := m.Exists(ctx, "item_seq")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Drop(ctx, "ORDER_SEQ"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceManager_NegativeIncrementAllowed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	m := NewSequenceManager(db, dialect.NewTimesTen1122())
	mock.ExpectExec("create sequence DOWN_SEQ start with 1000 increment by -1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, m.Create(context.Background(), "DOWN_SEQ", 1000, -1))
	require.NoError(t, mock.ExpectationsWereMet())
}
