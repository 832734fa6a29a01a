package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TypeCode identifies an abstract SQL column type. Values follow JDBC type
// numbering so codes read from other tooling map 1:1.
type TypeCode int

const (
	Inferred      TypeCode = 0
	Bit           TypeCode = -7
	TinyInt       TypeCode = -6
	SmallInt      TypeCode = 5
	Integer       TypeCode = 4
	BigInt        TypeCode = -5
	Float         TypeCode = 6
	Real          TypeCode = 7
	Double        TypeCode = 8
	Numeric       TypeCode = 2
	Decimal       TypeCode = 3
	Char          TypeCode = 1
	VarChar       TypeCode = 12
	LongVarChar   TypeCode = -1
	Date          TypeCode = 91
	Time          TypeCode = 92
	Timestamp     TypeCode = 93
	Binary        TypeCode = -2
	VarBinary     TypeCode = -3
	LongVarBinary TypeCode = -4
	Boolean       TypeCode = 16
	Blob          TypeCode = 2004
	Clob          TypeCode = 2005
	NClob         TypeCode = 2011
	JSON          TypeCode = 3001
)

var typeCodeNames = map[TypeCode]string{
	Inferred:      "INFERRED",
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	SmallInt:      "SMALLINT",
	Integer:       "INTEGER",
	BigInt:        "BIGINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Char:          "CHAR",
	VarChar:       "VARCHAR",
	LongVarChar:   "LONGVARCHAR",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Binary:        "BINARY",
	VarBinary:     "VARBINARY",
	LongVarBinary: "LONGVARBINARY",
	Boolean:       "BOOLEAN",
	Blob:          "BLOB",
	Clob:          "CLOB",
	NClob:         "NCLOB",
	JSON:          "JSON",
}

func (c TypeCode) String() string {
	if n, ok := typeCodeNames[c]; ok {
		return n
	}
	return "TYPE(" + strconv.Itoa(int(c)) + ")"
}

// ParseTypeCode accepts a type name (case-insensitive) or its numeric code.
func ParseTypeCode(s string) (TypeCode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := typeCodeNames[TypeCode(n)]; ok {
			return TypeCode(n), nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownType, n)
	}
	upper := strings.ToUpper(s)
	for code, name := range typeCodeNames {
		if name == upper && code != Inferred {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// ErrUnknownType is returned when no column type is registered for a code,
// or when a requested length exceeds every registered capacity.
var ErrUnknownType = errors.New("no column type mapping")

// Size carries the length, precision and scale substituted into a type
// template ($l, $p, $s).
type Size struct {
	Length    int
	Precision int
	Scale     int
}

// DefaultSize matches the column defaults applied when a mapping does not
// state its own size.
var DefaultSize = Size{Length: 255, Precision: 19, Scale: 2}

type sizedType struct {
	capacity int
	template string
}

// TypeNames maps type codes to column type templates. A code can have one
// unsized default and any number of capacity-bounded templates; the
// smallest capacity that fits the requested length wins.
type TypeNames struct {
	defaults map[TypeCode]string
	sized    map[TypeCode][]sizedType
}

func NewTypeNames() *TypeNames {
	return &TypeNames{
		defaults: make(map[TypeCode]string),
		sized:    make(map[TypeCode][]sizedType),
	}
}

// Put registers the default template for code.
func (t *TypeNames) Put(code TypeCode, template string) {
	t.defaults[code] = template
}

// PutSized registers a template valid for lengths up to capacity.
func (t *TypeNames) PutSized(code TypeCode, capacity int, template string) {
	entries := t.sized[code]
	for i, e := range entries {
		if e.capacity == capacity {
			entries[i].template = template
			return
		}
	}
	entries = append(entries, sizedType{capacity: capacity, template: template})
	sort.Slice(entries, func(i, j int) bool { return entries[i].capacity < entries[j].capacity })
	t.sized[code] = entries
}

// Get returns the rendered type for code at the given size.
func (t *TypeNames) Get(code TypeCode, size Size) (string, error) {
	for _, e := range t.sized[code] {
		if size.Length <= e.capacity {
			return renderTypeTemplate(e.template, size), nil
		}
	}
	if tmpl, ok := t.defaults[code]; ok {
		return renderTypeTemplate(tmpl, size), nil
	}
	if len(t.sized[code]) > 0 {
		return "", fmt.Errorf("%w: %s length %d exceeds maximum", ErrUnknownType, code, size.Length)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownType, code)
}

// Codes returns every registered code in ascending order.
func (t *TypeNames) Codes() []TypeCode {
	seen := make(map[TypeCode]bool)
	var codes []TypeCode
	for c := range t.defaults {
		seen[c] = true
		codes = append(codes, c)
	}
	for c := range t.sized {
		if !seen[c] {
			codes = append(codes, c)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Template returns the raw template registered for code, preferring the
// largest sized entry, along with its capacity (0 when unsized).
func (t *TypeNames) Template(code TypeCode) (string, int, bool) {
	if entries := t.sized[code]; len(entries) > 0 {
		last := entries[len(entries)-1]
		return last.template, last.capacity, true
	}
	tmpl, ok := t.defaults[code]
	return tmpl, 0, ok
}

func renderTypeTemplate(tmpl string, size Size) string {
	r := strings.NewReplacer(
		"$l", strconv.Itoa(size.Length),
		"$p", strconv.Itoa(size.Precision),
		"$s", strconv.Itoa(size.Scale),
	)
	return r.Replace(tmpl)
}
