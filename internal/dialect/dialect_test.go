package dialect_test

import (
	"errors"
	"testing"

	"ttdialect/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	v := dialect.MinimumVersion
	for _, name := range []string{"timesten", "TimesTen22", "tt"} {
		d, err := dialect.GetDialect(name, v)
		if err != nil {
			t.Fatalf("GetDialect(%s): %v", name, err)
		}
		if d.Name() != "timesten" {
			t.Errorf("GetDialect(%s).Name() = %s", name, d.Name())
		}
	}
	for _, name := range []string{"timesten1122", "tt1122"} {
		d, err := dialect.GetDialect(name, dialect.Version{})
		if err != nil {
			t.Fatalf("GetDialect(%s): %v", name, err)
		}
		if d.Name() != "timesten1122" {
			t.Errorf("GetDialect(%s).Name() = %s", name, d.Name())
		}
	}
	if _, err := dialect.GetDialect("oracle", v); !errors.Is(err, dialect.ErrUnknownDialect) {
		t.Errorf("expected ErrUnknownDialect, got %v", err)
	}
}

func TestNewTimesTen_Version(t *testing.T) {
	if _, err := dialect.NewTimesTen(dialect.Version{Major: 18, Minor: 1}); !errors.Is(err, dialect.ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion for 18.1, got %v", err)
	}

	d22, err := dialect.NewTimesTen(dialect.Version{Major: 22, Minor: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d22.TypeName(dialect.JSON, dialect.DefaultSize); !errors.Is(err, dialect.ErrUnknownType) {
		t.Errorf("22.1 must not map JSON, got %v", err)
	}

	v, err := dialect.ParseVersion("25.1.0.1")
	if err != nil {
		t.Fatal(err)
	}
	d25, err := dialect.NewTimesTen(v)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := d25.TypeName(dialect.JSON, dialect.DefaultSize); got != "json" {
		t.Errorf("25.1 JSON = %q, want json", got)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    dialect.Version
		wantErr bool
	}{
		{"22.1", dialect.Version{Major: 22, Minor: 1}, false},
		{"25", dialect.Version{Major: 25}, false},
		{"22.1.1.27", dialect.Version{Major: 22, Minor: 1}, false},
		{"x.1", dialect.Version{}, true},
		{"22.y", dialect.Version{}, true},
	}
	for _, tt := range tests {
		got, err := dialect.ParseVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSelectClauseNullString(t *testing.T) {
	d := dialect.NewTimesTen1122()
	tests := map[dialect.TypeCode]string{
		dialect.VarChar:   "to_char(null)",
		dialect.Char:      "to_char(null)",
		dialect.Date:      "to_date(null)",
		dialect.Time:      "to_date(null)",
		dialect.Timestamp: "to_date(null)",
		dialect.Integer:   "to_number(null)",
		dialect.Clob:      "to_number(null)",
	}
	for code, want := range tests {
		if got := d.SelectClauseNullString(code); got != want {
			t.Errorf("SelectClauseNullString(%s) = %q, want %q", code, got, want)
		}
	}
}

func TestSequenceSupport(t *testing.T) {
	s := dialect.TimesTenSequences
	if got := s.SelectSequenceNextValString("SEQ"); got != "SEQ.nextval" {
		t.Errorf("SelectSequenceNextValString = %q", got)
	}
	if got := s.SequenceNextValString("SEQ"); got != "select SEQ.nextval from sys.dual" {
		t.Errorf("SequenceNextValString = %q", got)
	}
	if got := s.CreateSequenceString("SEQ"); got != "create sequence SEQ" {
		t.Errorf("CreateSequenceString = %q", got)
	}
	if got := s.DropSequenceString("SEQ"); got != "drop sequence SEQ" {
		t.Errorf("DropSequenceString = %q", got)
	}
	stmts, err := s.CreateSequenceStrings("SEQ", 1, 50)
	if err != nil || len(stmts) != 1 || stmts[0] != "create sequence SEQ start with 1 increment by 50" {
		t.Errorf("CreateSequenceStrings = %v, %v", stmts, err)
	}
	if _, err := s.CreateSequenceStrings("SEQ", 1, 0); !errors.Is(err, dialect.ErrZeroIncrement) {
		t.Errorf("expected ErrZeroIncrement, got %v", err)
	}

	legacy := dialect.NewTimesTen1122()
	if got := legacy.QuerySequencesString(); got != "select name from sys.sequences" {
		t.Errorf("QuerySequencesString = %q", got)
	}
	if got := legacy.SequenceNextValString("S"); got != "select S.nextval from sys.dual" {
		t.Errorf("legacy SequenceNextValString = %q", got)
	}
}

func TestTemporaryTableName(t *testing.T) {
	d := dialect.NewTimesTen1122()
	if got := d.GenerateTemporaryTableName("ORDERS"); got != "HT_ORDERS" {
		t.Errorf("short name = %q", got)
	}
	// 34 chars once prefixed; truncation drops the leading H.
	long := "ABCDEFGHIJKLMNOPQRSTUVWXYZ01234"
	got := d.GenerateTemporaryTableName(long)
	if got != ("HT_" + long)[1:30] {
		t.Errorf("long name = %q", got)
	}
	if len(got) != 29 {
		t.Errorf("long name length = %d, want 29", len(got))
	}
	if d.CreateTemporaryTableString() != "create global temporary table" || d.CreateTemporaryTablePostfix() != "on commit delete rows" {
		t.Error("unexpected temporary table strings")
	}
}

func TestLockingAndJoins(t *testing.T) {
	d := dialect.NewTimesTen1122()
	if d.ForUpdate(dialect.LockUpgrade) != " for update" {
		t.Errorf("ForUpdate(upgrade) = %q", d.ForUpdate(dialect.LockUpgrade))
	}
	if d.ForUpdate(dialect.LockUpgradeNoWait) != " for update nowait" {
		t.Errorf("ForUpdate(nowait) = %q", d.ForUpdate(dialect.LockUpgradeNoWait))
	}
	if d.ForUpdate(dialect.LockNone) != "" {
		t.Errorf("ForUpdate(none) = %q", d.ForUpdate(dialect.LockNone))
	}

	j := d.NewJoinFragment()
	j.AddJoin("B", "b", []string{"a.id"}, []string{"a_id"}, dialect.LeftOuterJoin)
	j.AddCrossJoin("C", "c")
	j.AddCondition("b.x > 1")
	if got := j.FromFragment(); got != " left outer join B b on a.id=b.a_id cross join C c" {
		t.Errorf("FromFragment = %q", got)
	}
	if got := j.WhereFragment(); got != " and b.x > 1" {
		t.Errorf("WhereFragment = %q", got)
	}
}

func TestStatementShapes(t *testing.T) {
	d := dialect.NewTimesTen1122()
	if got := d.InsertQuery("T", []string{"A", "B"}); got != "insert into T (A, B) values (:1, :2)" {
		t.Errorf("InsertQuery = %q", got)
	}
	if got := d.UpdateQuery("T", []string{"C"}, []string{"A", "B"}); got != "update T set C = :1 where A = :2 and B = :3" {
		t.Errorf("UpdateQuery = %q", got)
	}
	if got := d.DeleteAllQuery("T"); got != "delete from T" {
		t.Errorf("DeleteAllQuery = %q", got)
	}
}

func TestDefaultProperties(t *testing.T) {
	p := dialect.NewTimesTen1122().DefaultProperties()
	if !p.Bool(dialect.PropUseStreamsForBinary, false) {
		t.Error("use_streams_for_binary should default to true")
	}
	if got := p.Int(dialect.PropStatementBatchSize, 0); got != 15 {
		t.Errorf("statement_batch_size = %d, want 15", got)
	}

	merged := p.Merge(map[string]string{dialect.PropStatementBatchSize: "100"})
	if got := merged.Int(dialect.PropStatementBatchSize, 0); got != 100 {
		t.Errorf("merged batch size = %d", got)
	}
	// Merge must not mutate the dialect's defaults.
	if got := dialect.NewTimesTen1122().DefaultProperties().Int(dialect.PropStatementBatchSize, 0); got != 15 {
		t.Errorf("defaults mutated: %d", got)
	}
	if got := merged.Int("missing", 7); got != 7 {
		t.Errorf("fallback = %d", got)
	}
}

func TestReverseType(t *testing.T) {
	d := dialect.NewTimesTen1122()
	tests := map[string]dialect.TypeCode{
		"TT_INTEGER":   dialect.Integer,
		"varchar2":     dialect.VarChar,
		"TIMESTAMP(6)": dialect.Timestamp,
		"NUMBER":       dialect.Numeric,
		"BINARY_FLOAT": dialect.Float,
		"GEOMETRY":     dialect.Inferred,
	}
	for in, want := range tests {
		if got := d.ReverseType(in); got != want {
			t.Errorf("ReverseType(%q) = %s, want %s", in, got, want)
		}
	}
}
