package schema

import (
	"errors"
	"fmt"
	"strings"

	"ttdialect/internal/dialect"
)

// ErrCheckUnsupported is returned when a column or table check constraint
// is requested from a dialect that cannot emit one.
var ErrCheckUnsupported = errors.New("check constraints are not supported by this dialect")

func columnDefinition(d dialect.Dialect, c *Column) (string, error) {
	if c.Check != "" && !d.SupportsColumnCheck() {
		return "", fmt.Errorf("column %s: %w", c.Name, ErrCheckUnsupported)
	}
	typ := c.Definition
	if typ == "" {
		var err error
		if typ, err = d.TypeName(c.Type, c.Size()); err != nil {
			return "", fmt.Errorf("column %s: %w", c.Name, err)
		}
	}
	def := c.Name + " " + typ
	if !c.Nullable {
		def += " not null"
	}
	if c.Unique && d.SupportsUniqueConstraintInCreateAlterTable() {
		def += " unique"
	}
	if c.Check != "" {
		def += " check (" + c.Check + ")"
	}
	return def, nil
}

func columnList(d dialect.Dialect, t *Table) ([]string, error) {
	var parts []string
	for _, c := range t.Columns {
		def, err := columnDefinition(d, c)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		parts = append(parts, def)
	}
	if pk := t.PrimaryKey(); len(pk) > 0 {
		parts = append(parts, "primary key ("+strings.Join(pk, ", ")+")")
	}
	return parts, nil
}

// CreateTableSQL renders a create table statement including primary and
// foreign keys. Unique columns are not included when the dialect cannot
// declare them inline; see UniqueIndexSQL.
func CreateTableSQL(d dialect.Dialect, t *Table) (string, error) {
	parts, err := columnList(d, t)
	if err != nil {
		return "", err
	}
	for _, fk := range t.ForeignKeys {
		parts = append(parts, fmt.Sprintf("foreign key (%s) references %s (%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("create table %s (%s)", t.Name, strings.Join(parts, ", ")), nil
}

// CreateTemporaryTableSQL renders the global temporary counterpart of t
// under the dialect's generated name.
func CreateTemporaryTableSQL(d dialect.Dialect, t *Table) (string, error) {
	if !d.SupportsTemporaryTables() {
		return "", fmt.Errorf("dialect %s does not support temporary tables", d.Name())
	}
	parts, err := columnList(d, t)
	if err != nil {
		return "", err
	}
	stmt := fmt.Sprintf("%s %s (%s)", d.CreateTemporaryTableString(), d.GenerateTemporaryTableName(t.Name), strings.Join(parts, ", "))
	if post := d.CreateTemporaryTablePostfix(); post != "" {
		stmt += " " + post
	}
	return stmt, nil
}

func DropTableSQL(t *Table) string {
	return "drop table " + t.Name
}

// AddColumnSQL renders "alter table T add C type" plus any unique index the
// column needs.
func AddColumnSQL(d dialect.Dialect, table string, c *Column) ([]string, error) {
	def, err := columnDefinition(d, c)
	if err != nil {
		return nil, err
	}
	stmts := []string{fmt.Sprintf("alter table %s %s %s", table, d.AddColumnString(), def)}
	if c.Unique && !d.SupportsUniqueConstraintInCreateAlterTable() {
		stmts = append(stmts, CreateIndexSQL(d, table, IndexName(d, "UK", table, c.Name), []string{c.Name}, true))
	}
	return stmts, nil
}

// CreateIndexSQL renders a create index statement. The index name is
// qualified with the table only when the dialect asks for it.
func CreateIndexSQL(d dialect.Dialect, table, name string, columns []string, unique bool) string {
	if d.QualifyIndexName() {
		name = table + "." + name
	}
	kind := "index"
	if unique {
		kind = "unique index"
	}
	return fmt.Sprintf("create %s %s on %s (%s)", kind, name, table, strings.Join(columns, ", "))
}

// IndexName builds PREFIX_TABLE_COLUMN, cut to the dialect's identifier
// limit.
func IndexName(d dialect.Dialect, prefix, table, column string) string {
	name := strings.ToUpper(prefix + "_" + table + "_" + column)
	if limit := d.MaxIdentifierLength(); limit > 0 && len(name) > limit {
		name = name[:limit]
	}
	return name
}

// UniqueIndexSQL returns one create unique index per unique column that
// could not be declared inline.
func UniqueIndexSQL(d dialect.Dialect, t *Table) []string {
	if !d.SupportsUnique() || d.SupportsUniqueConstraintInCreateAlterTable() {
		return nil
	}
	var stmts []string
	for _, c := range t.Columns {
		if c.Unique && !c.PrimaryKey {
			stmts = append(stmts, CreateIndexSQL(d, t.Name, IndexName(d, "UK", t.Name, c.Name), []string{c.Name}, true))
		}
	}
	return stmts
}

// CreateSchemaSQL renders every table in foreign-key dependency order,
// each followed by its unique indexes.
func CreateSchemaSQL(d dialect.Dialect, tables []*Table) ([]string, error) {
	var stmts []string
	for _, t := range SortTablesByFKCount(tables) {
		stmt, err := CreateTableSQL(d, t)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		stmts = append(stmts, UniqueIndexSQL(d, t)...)
	}
	return stmts, nil
}

// DropSchemaSQL drops tables in reverse dependency order.
func DropSchemaSQL(tables []*Table) []string {
	sorted := SortTablesByFKCount(tables)
	stmts := make([]string, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		stmts = append(stmts, DropTableSQL(sorted[i]))
	}
	return stmts
}
