package dialect

import "strings"

// Catalog queries read the current user's objects from TimesTen's
// Oracle-compatible system views.

func (b *timesTenBase) TablesQuery() string {
	return `SELECT TABLE_NAME FROM USER_TABLES ORDER BY TABLE_NAME`
}

func (b *timesTenBase) ColumnsQuery() string {
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    t.DATA_TYPE,
    t.DATA_LENGTH,
    t.DATA_PRECISION,
    t.DATA_SCALE,
    t.NULLABLE,
    CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRI' ELSE '' END
FROM USER_TAB_COLUMNS t
LEFT JOIN (
    SELECT cc.TABLE_NAME, cc.COLUMN_NAME, cc.CONSTRAINT_NAME
    FROM USER_CONS_COLUMNS cc
    JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
    WHERE uc.CONSTRAINT_TYPE = 'P'
) p ON t.TABLE_NAME = p.TABLE_NAME AND t.COLUMN_NAME = p.COLUMN_NAME
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (b *timesTenBase) ForeignKeysQuery() string {
	return `
SELECT
    c.TABLE_NAME,
    c.CONSTRAINT_NAME,
    cc.COLUMN_NAME,
    r.TABLE_NAME AS REF_TABLE,
    rcc.COLUMN_NAME AS REF_COLUMN
FROM USER_CONSTRAINTS c
JOIN USER_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
JOIN USER_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
JOIN USER_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'`
}

// ReverseType maps a catalog DATA_TYPE back to a type code. Parameterized
// names such as TIMESTAMP(6) are matched on their base name; anything not
// recognised comes back as Inferred.
func (b *timesTenBase) ReverseType(dataType string) TypeCode {
	s := strings.ToUpper(strings.TrimSpace(dataType))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "TT_TINYINT":
		return TinyInt
	case "TT_SMALLINT":
		return SmallInt
	case "TT_INTEGER", "INTEGER":
		return Integer
	case "TT_BIGINT":
		return BigInt
	case "CHAR", "NCHAR":
		return Char
	case "VARCHAR2", "VARCHAR", "NVARCHAR2", "TT_VARCHAR", "TT_NVARCHAR":
		return VarChar
	case "BINARY":
		return Binary
	case "VARBINARY":
		return VarBinary
	case "NUMBER", "DECIMAL", "NUMERIC":
		return Numeric
	case "BINARY_FLOAT", "REAL", "TT_REAL":
		return Float
	case "BINARY_DOUBLE", "FLOAT", "DOUBLE", "TT_DOUBLE":
		return Double
	case "TT_DATE", "DATE":
		return Date
	case "TT_TIME", "TIME":
		return Time
	case "TIMESTAMP", "TT_TIMESTAMP":
		return Timestamp
	case "BLOB":
		return Blob
	case "CLOB":
		return Clob
	case "NCLOB":
		return NClob
	case "JSON":
		return JSON
	}
	return Inferred
}
