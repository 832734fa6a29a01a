package schema_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttdialect/internal/dialect"
	"ttdialect/internal/schema"
)

func TestInspect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := dialect.NewTimesTen1122()

	mock.ExpectQuery(regexp.QuoteMeta(d.TablesQuery())).
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("ORDERS").AddRow("CUSTOMERS"))
	mock.ExpectQuery("SELECT.+FROM USER_TAB_COLUMNS.+").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "DATA_LENGTH", "DATA_PRECISION", "DATA_SCALE", "NULLABLE", "KEY"}).
			AddRow("CUSTOMERS", "ID", "TT_BIGINT", 8, nil, nil, "N", "PRI").
			AddRow("CUSTOMERS", "NAME", "VARCHAR2", 40, nil, nil, "Y", "").
			AddRow("ORDERS", "ID", "TT_BIGINT", 8, nil, nil, "N", "PRI").
			AddRow("ORDERS", "CUSTOMER_ID", "TT_BIGINT", 8, nil, nil, "N", "").
			AddRow("ORDERS", "TOTAL", "NUMBER", 22, 12, 2, "Y", ""))
	mock.ExpectQuery("SELECT.+FROM USER_CONSTRAINTS c.+").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "CONSTRAINT_NAME", "COLUMN_NAME", "REF_TABLE", "REF_COLUMN"}).
			AddRow("ORDERS", "FK_ORDERS_CUSTOMER", "CUSTOMER_ID", "CUSTOMERS", "ID"))
	mock.ExpectQuery(regexp.QuoteMeta("select name from sys.sequences")).
		WillReturnRows(sqlmock.NewRows([]string{"NAME"}).AddRow("ORDER_SEQ"))

	catalog, err := schema.Inspect(context.Background(), db, d)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, catalog.Tables, 2)
	assert.Equal(t, "CUSTOMERS", catalog.Tables[0].Name)
	assert.Equal(t, "ORDERS", catalog.Tables[1].Name)
	assert.Equal(t, []string{"ORDER_SEQ"}, catalog.Sequences)

	orders := catalog.Tables[1]
	assert.Equal(t, []string{"CUSTOMERS"}, orders.Dependencies)
	require.Len(t, orders.ForeignKeys, 1)
	assert.Equal(t, "CUSTOMER_ID", orders.ForeignKeys[0].Column)

	total := orders.Column("TOTAL")
	require.NotNil(t, total)
	assert.Equal(t, dialect.Numeric, total.Type)
	assert.Equal(t, 12, total.Precision)
	assert.True(t, total.Nullable)
	assert.Equal(t, []string{"ID"}, orders.PrimaryKey())
}

func TestInspect_TableQueryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d := dialect.NewTimesTen1122()
	mock.ExpectQuery(regexp.QuoteMeta(d.TablesQuery())).WillReturnError(assert.AnError)

	_, err = schema.Inspect(context.Background(), db, d)
	require.ErrorIs(t, err, assert.AnError)
}
