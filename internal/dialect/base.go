package dialect

import (
	"fmt"
	"strings"
)

// timesTenBase carries the answers both TimesTen dialects share. Concrete
// dialects embed it and fill in the registries at construction.
type timesTenBase struct {
	types      *TypeNames
	functions  *FunctionRegistry
	properties Properties
}

func (b *timesTenBase) TypeName(code TypeCode, size Size) (string, error) {
	return b.types.Get(code, size)
}

func (b *timesTenBase) TypeNames() *TypeNames         { return b.types }
func (b *timesTenBase) Functions() *FunctionRegistry  { return b.functions }
func (b *timesTenBase) DefaultProperties() Properties { return b.properties.Merge(nil) }

func (b *timesTenBase) AddColumnString() string                          { return "add" }
func (b *timesTenBase) QualifyIndexName() bool                           { return false }
func (b *timesTenBase) DropConstraints() bool                            { return true }
func (b *timesTenBase) SupportsUnique() bool                             { return true }
func (b *timesTenBase) SupportsUniqueConstraintInCreateAlterTable() bool { return false }
func (b *timesTenBase) SupportsColumnCheck() bool                        { return false }
func (b *timesTenBase) SupportsTableCheck() bool                         { return false }
func (b *timesTenBase) SupportsCircularCascadeDeleteConstraints() bool   { return false }
func (b *timesTenBase) MaxIdentifierLength() int                         { return 30 }

func (b *timesTenBase) QuerySequencesString() string {
	return "select name from sys.sequences"
}

func (b *timesTenBase) ForUpdateString() string       { return " for update" }
func (b *timesTenBase) SupportsNoWait() bool          { return true }
func (b *timesTenBase) ForUpdateNowaitString() string { return " for update nowait" }

func (b *timesTenBase) ForUpdate(mode LockMode) string {
	switch mode {
	case LockUpgrade:
		return b.ForUpdateString()
	case LockUpgradeNoWait:
		return b.ForUpdateNowaitString()
	default:
		// read locks are taken implicitly by TimesTen's isolation level
		return ""
	}
}

func (b *timesTenBase) NewJoinFragment() *JoinFragment { return NewJoinFragment() }
func (b *timesTenBase) CrossJoinSeparator() string     { return crossJoinSeparator }

// SelectClauseNullString returns a typed null: TimesTen does not accept a
// bare NULL in every select-list position (e.g. union branches).
func (b *timesTenBase) SelectClauseNullString(code TypeCode) string {
	switch code {
	case VarChar, Char:
		return "to_char(null)"
	case Date, Timestamp, Time:
		return "to_date(null)"
	default:
		return "to_number(null)"
	}
}

func (b *timesTenBase) SupportsCurrentTimestampSelection() bool { return true }

func (b *timesTenBase) CurrentTimestampSelectString() string {
	return "select sysdate from sys.dual"
}

func (b *timesTenBase) IsCurrentTimestampSelectStringCallable() bool { return false }

func (b *timesTenBase) SupportsTemporaryTables() bool { return true }

// temporaryTablePrefix is prepended to generated temporary table names.
const temporaryTablePrefix = "HT_"

// GenerateTemporaryTableName returns HT_<base>. Names over 30 characters
// drop the first character and keep the next 29.
func (b *timesTenBase) GenerateTemporaryTableName(baseTableName string) string {
	name := temporaryTablePrefix + baseTableName
	if len(name) > 30 {
		return name[1:30]
	}
	return name
}

func (b *timesTenBase) CreateTemporaryTableString() string  { return "create global temporary table" }
func (b *timesTenBase) CreateTemporaryTablePostfix() string { return "on commit delete rows" }

func (b *timesTenBase) SupportsUnionAll() bool    { return true }
func (b *timesTenBase) SupportsEmptyInList() bool { return true }

func (b *timesTenBase) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (b *timesTenBase) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), b.Placeholder)
	return fmt.Sprintf("insert into %s (%s) values (%s)", table, strings.Join(cols, ", "), vals)
}

// UpdateQuery binds setCols first, then whereCols.
func (b *timesTenBase) UpdateQuery(table string, setCols, whereCols []string) string {
	sets := make([]string, len(setCols))
	for i, c := range setCols {
		sets[i] = c + " = " + b.Placeholder(i)
	}
	conds := make([]string, len(whereCols))
	for i, c := range whereCols {
		conds[i] = c + " = " + b.Placeholder(len(setCols)+i)
	}
	q := fmt.Sprintf("update %s set %s", table, strings.Join(sets, ", "))
	if len(conds) > 0 {
		q += " where " + strings.Join(conds, " and ")
	}
	return q
}

func (b *timesTenBase) TruncateQuery(table string) string {
	return fmt.Sprintf("truncate table %s", table)
}

func (b *timesTenBase) DeleteAllQuery(table string) string {
	return fmt.Sprintf("delete from %s", table)
}

// registerCoreTypes registers the column types common to 11.2.2 and 22.1
// in Oracle type mode.
func registerCoreTypes(t *TypeNames) {
	t.Put(Bit, "TT_TINYINT")
	t.Put(TinyInt, "TT_TINYINT")
	t.Put(SmallInt, "TT_SMALLINT")
	t.Put(Integer, "TT_INTEGER")
	t.Put(BigInt, "TT_BIGINT")

	t.Put(Char, "CHAR(1)")
	t.PutSized(VarChar, MaxVarcharLength, "VARCHAR2($l)")
	t.PutSized(LongVarChar, MaxVarcharLength, "VARCHAR2($l)")

	t.PutSized(Binary, MaxBinaryLength, "BINARY($l)")
	t.PutSized(VarBinary, MaxVarbinaryLength, "VARBINARY($l)")
	t.PutSized(LongVarBinary, MaxVarbinaryLength, "VARBINARY($l)")

	t.Put(Numeric, "NUMBER($p,$s)")
	t.Put(Decimal, "NUMBER($p,$s)")
	t.Put(Float, "BINARY_FLOAT")
	t.Put(Double, "BINARY_DOUBLE")

	t.Put(Date, "TT_DATE")
	t.Put(Time, "TT_TIME")
	t.Put(Timestamp, "TIMESTAMP")

	t.Put(Blob, "BLOB")
	t.Put(Clob, "CLOB")
	t.Put(NClob, "NCLOB")
}

// Column size limits, in bytes.
const (
	MaxVarcharLength   = 4194304
	MaxVarbinaryLength = 4194304
	MaxBinaryLength    = 8300
)

// registerCoreFunctions registers the functions both dialects share.
// Dialect-specific entries (concat, coalesce, current_*, locate) are added
// by the caller.
func registerCoreFunctions(r *FunctionRegistry) {
	// string functions
	r.mustRegister("lower", Standard("lower"))
	r.mustRegister("upper", Standard("upper"))
	r.mustRegister("rtrim", Standard("rtrim"))
	r.mustRegister("ltrim", Standard("ltrim"))
	r.mustRegister("length", StandardTyped("length", BigInt))
	r.mustRegister("to_char", StandardTyped("to_char", VarChar))
	r.mustRegister("chr", StandardTyped("chr", Char))
	r.mustRegister("instr", StandardTyped("instr", Integer))
	r.mustRegister("instrb", StandardTyped("instrb", Integer))
	r.mustRegister("lpad", StandardTyped("lpad", VarChar))
	r.mustRegister("rpad", StandardTyped("rpad", VarChar))
	r.mustRegister("substr", StandardTyped("substr", VarChar))
	r.mustRegister("substrb", StandardTyped("substrb", VarChar))
	r.mustRegister("substring", StandardTyped("substr", VarChar))
	r.mustRegister("str", StandardTyped("to_char", VarChar))
	r.mustRegister("soundex", Standard("soundex"))
	r.mustRegister("replace", StandardTyped("replace", VarChar))

	// date/time functions
	r.mustRegister("to_date", StandardTyped("to_date", Timestamp))
	r.mustRegister("sysdate", NoArg("sysdate", Timestamp))
	r.mustRegister("add_months", StandardTyped("add_months", Date))
	r.mustRegister("months_between", StandardTyped("months_between", Float))

	// math functions
	r.mustRegister("abs", Standard("abs"))
	r.mustRegister("sign", StandardTyped("sign", Integer))
	r.mustRegister("mod", Standard("mod"))
	r.mustRegister("round", Standard("round"))
	r.mustRegister("trunc", Standard("trunc"))
	r.mustRegister("ceil", Standard("ceil"))
	r.mustRegister("floor", Standard("floor"))
	r.mustRegister("power", StandardTyped("power", Float))

	// misc
	r.mustRegister("nvl", Standard("nvl"))
	r.mustRegister("user", NoArg("user", VarChar))
	r.mustRegister("rownum", NoArg("rownum", BigInt))
}
