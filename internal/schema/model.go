package schema

import "ttdialect/internal/dialect"

type Table struct {
	Name         string
	Columns      []*Column
	ForeignKeys  []*ForeignKey
	Dependencies []string // 의존성 분석용
}

type Column struct {
	Name       string
	Type       dialect.TypeCode
	Length     int
	Precision  int
	Scale      int
	Nullable   bool
	PrimaryKey bool
	Unique     bool
	Check      string
	// Definition, when set, is used verbatim instead of the dialect's type
	// mapping (e.g. CHAR(10), which the CHAR mapping cannot express).
	Definition string
	// DataType is the catalog type name as reported by Inspect.
	DataType string
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Catalog is what Inspect finds in the connected schema.
type Catalog struct {
	Tables    []*Table
	Sequences []string
}

// Size returns the column's size, with DefaultSize filling unset parts.
func (c *Column) Size() dialect.Size {
	s := dialect.Size{Length: c.Length, Precision: c.Precision, Scale: c.Scale}
	if s.Length == 0 {
		s.Length = dialect.DefaultSize.Length
	}
	if s.Precision == 0 {
		s.Precision = dialect.DefaultSize.Precision
		if c.Scale == 0 {
			s.Scale = dialect.DefaultSize.Scale
		}
	}
	return s
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}
