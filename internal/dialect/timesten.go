package dialect

import "fmt"

// TimesTenDialect targets TimesTen 22.1 and later in Oracle type mode.
// Sequences and pagination are delegated to TimesTenSequences and
// TimesTenLimitHandler.
type TimesTenDialect struct {
	timesTenBase
	version Version
}

// NewTimesTen builds the dialect for the given release. Releases before
// 22.1 are rejected; use NewTimesTen1122 for those.
func NewTimesTen(version Version) (*TimesTenDialect, error) {
	if !version.IsSameOrAfter(MinimumVersion) {
		return nil, fmt.Errorf("%w: %s (minimum %s)", ErrUnsupportedVersion, version, MinimumVersion)
	}
	d := &TimesTenDialect{version: version}
	d.types = NewTypeNames()
	registerCoreTypes(d.types)
	if version.Major >= 25 {
		d.types.Put(JSON, "json")
	}

	r := NewFunctionRegistry()
	registerCoreFunctions(r)
	r.mustRegister("concat", VarArgsFunction{Begin: "(", Sep: "||", End: ")", Returns: VarChar})
	r.mustRegister("locate", Template(Integer, "instr(?2,?1)", "instr(?2,?1,?3)"))
	r.mustRegister("getdate", StandardTyped("getdate", Timestamp))
	r.mustRegister("current_date", NoArg("sysdate", Date))
	r.mustRegister("current_time", NoArg("sysdate", Time))
	r.mustRegister("current_timestamp", NoArg("sysdate", Timestamp))
	r.mustRegister("to_timestamp", StandardTyped("to_timestamp", Timestamp))
	for _, name := range []string{"acos", "asin", "atan", "atan2", "cos", "cosh", "exp", "ln", "log", "sin", "sinh", "tan", "tanh"} {
		r.mustRegister(name, Standard(name))
	}
	r.mustRegister("bitand", Standard("bitand"))
	r.mustRegister("bitnot", Standard("bitnot"))
	r.mustRegister("bitor", Template(Inferred, "(?1+?2-bitand(?1,?2))"))
	r.mustRegister("bitxor", Template(Inferred, "(?1+?2-2*bitand(?1,?2))"))
	r.mustRegister("coalesce", Standard("coalesce"))
	r.mustRegister("rowid", NoArg("rowid", VarChar))
	r.mustRegister("uid", NoArg("uid", Integer))
	r.mustRegister("vsize", Standard("vsize"))
	r.mustRegister("session_user", NoArg("SESSION_USER", VarChar))
	r.mustRegister("system_user", NoArg("SYSTEM_USER", VarChar))
	r.mustRegister("current_user", NoArg("CURRENT_USER", VarChar))
	d.functions = r

	d.properties = Properties{}
	return d, nil
}

func (d *TimesTenDialect) Name() string     { return "timesten" }
func (d *TimesTenDialect) Version() Version { return d.version }

func (d *TimesTenDialect) SequenceSupport() SequenceSupport { return TimesTenSequences }
func (d *TimesTenDialect) LimitHandler() LimitHandler       { return TimesTenLimitHandler }

func (d *TimesTenDialect) NativeIdentifierGeneratorStrategy() string { return "sequence" }

func (d *TimesTenDialect) CurrentDate() string { return "sysdate" }
func (d *TimesTenDialect) CurrentTime() string { return "sysdate" }

func (d *TimesTenDialect) MaxVarcharLength() int   { return MaxVarcharLength }
func (d *TimesTenDialect) MaxVarbinaryLength() int { return MaxVarbinaryLength }

// MaxAliasLength leaves room for the 10-character suffix generated aliases
// carry within the 30-character identifier limit.
func (d *TimesTenDialect) MaxAliasLength() int { return 20 }

func (d *TimesTenDialect) SupportsBitType() bool             { return false }
func (d *TimesTenDialect) IsEmptyStringTreatedAsNull() bool  { return true }
func (d *TimesTenDialect) CanCreateSchema() bool             { return false }
func (d *TimesTenDialect) SupportsTupleDistinctCounts() bool { return false }

func (d *TimesTenDialect) Dual() string                  { return "dual" }
func (d *TimesTenDialect) FromDualForSelectOnly() string { return " from dual" }
