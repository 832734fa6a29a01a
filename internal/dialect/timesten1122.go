package dialect

// TimesTen1122Dialect targets TimesTen 11.2.2 in Oracle type mode. Sequence,
// pagination and locking answers live directly on the dialect.
type TimesTen1122Dialect struct {
	timesTenBase
}

// NewTimesTen1122 builds the legacy dialect with its fixed registries.
func NewTimesTen1122() *TimesTen1122Dialect {
	d := &TimesTen1122Dialect{}
	d.types = NewTypeNames()
	registerCoreTypes(d.types)

	r := NewFunctionRegistry()
	registerCoreFunctions(r)
	r.mustRegister("concat", VarArgsFunction{Begin: "(", Sep: "||", End: ")", Returns: VarChar})
	r.mustRegister("locate", Template(Integer, "instr(?2,?1)"))
	r.mustRegister("getdate", NoArg("getdate", Timestamp))
	r.mustRegister("current_date", NoArg("sysdate", Date))
	r.mustRegister("current_time", NoArg("sysdate", Time))
	r.mustRegister("current_timestamp", NoArg("sysdate", Timestamp))
	r.mustRegister("coalesce", NvlFunction{})
	r.mustRegister("rowid", NoArg("rowid", BigInt))
	d.functions = r

	d.properties = Properties{
		PropUseStreamsForBinary: "true",
		PropStatementBatchSize:  "15",
	}
	return d
}

func (d *TimesTen1122Dialect) Name() string { return "timesten1122" }

func (d *TimesTen1122Dialect) SequenceSupport() SequenceSupport { return TimesTenSequences }

func (d *TimesTen1122Dialect) LimitHandler() LimitHandler { return legacyLimitHandler{} }

// SupportsLimitOffset and friends mirror the legacy pagination flags.
func (d *TimesTen1122Dialect) SupportsLimit() bool         { return true }
func (d *TimesTen1122Dialect) SupportsLimitOffset() bool   { return true }
func (d *TimesTen1122Dialect) SupportsVariableLimit() bool { return false }
func (d *TimesTen1122Dialect) UseMaxForLimit() bool        { return true }

// LimitString inserts " rows offset+1 to limit" after the leading select.
// offset is zero-based and limit is the inclusive last row.
//
//	LimitString("select a,b from t", 0, 10) == "select rows 1 to 10 a,b from t"
func (d *TimesTen1122Dialect) LimitString(query string, offset, limit int) (string, error) {
	return legacyLimitString(query, offset, limit)
}

// The 11.2.2 dialect exposes the sequence strings directly as well.

func (d *TimesTen1122Dialect) SupportsSequences() bool       { return true }
func (d *TimesTen1122Dialect) SupportsPooledSequences() bool { return true }

func (d *TimesTen1122Dialect) SelectSequenceNextValString(sequenceName string) string {
	return TimesTenSequences.SelectSequenceNextValString(sequenceName)
}

func (d *TimesTen1122Dialect) SequenceNextValString(sequenceName string) string {
	return TimesTenSequences.SequenceNextValString(sequenceName)
}

func (d *TimesTen1122Dialect) CreateSequenceString(sequenceName string) string {
	return TimesTenSequences.CreateSequenceString(sequenceName)
}

func (d *TimesTen1122Dialect) DropSequenceString(sequenceName string) string {
	return TimesTenSequences.DropSequenceString(sequenceName)
}
