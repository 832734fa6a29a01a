package dialect

// LockMode selects the row-locking clause appended to a select.
type LockMode int

const (
	LockNone LockMode = iota
	LockRead
	LockUpgrade
	LockUpgradeNoWait
)

// Dialect abstracts database-specific SQL generation.
type Dialect interface {
	Name() string

	// Type & function registries
	TypeName(code TypeCode, size Size) (string, error)
	TypeNames() *TypeNames
	Functions() *FunctionRegistry
	DefaultProperties() Properties

	// DDL capabilities
	AddColumnString() string
	QualifyIndexName() bool
	DropConstraints() bool
	SupportsUnique() bool
	SupportsUniqueConstraintInCreateAlterTable() bool
	SupportsColumnCheck() bool
	SupportsTableCheck() bool
	SupportsCircularCascadeDeleteConstraints() bool
	MaxIdentifierLength() int

	// Sequences
	SequenceSupport() SequenceSupport
	QuerySequencesString() string

	// Locking
	ForUpdateString() string
	SupportsNoWait() bool
	ForUpdateNowaitString() string
	ForUpdate(mode LockMode) string

	// Joins & pagination
	NewJoinFragment() *JoinFragment
	CrossJoinSeparator() string
	LimitHandler() LimitHandler

	// Null literals and current timestamp
	SelectClauseNullString(code TypeCode) string
	SupportsCurrentTimestampSelection() bool
	CurrentTimestampSelectString() string
	IsCurrentTimestampSelectStringCallable() bool

	// Temporary tables
	SupportsTemporaryTables() bool
	GenerateTemporaryTableName(baseTableName string) string
	CreateTemporaryTableString() string
	CreateTemporaryTablePostfix() string

	// Catalog
	TablesQuery() string
	ColumnsQuery() string
	ForeignKeysQuery() string
	ReverseType(dataType string) TypeCode

	// Query shapes
	SupportsUnionAll() bool
	SupportsEmptyInList() bool
	Placeholder(index int) string // 0-based index, rendered :1, :2, ...
	InsertQuery(table string, cols []string) string
	UpdateQuery(table string, setCols, whereCols []string) string
	TruncateQuery(table string) string
	DeleteAllQuery(table string) string
}
