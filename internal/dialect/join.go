package dialect

import "strings"

// JoinType selects the keyword used by a join fragment.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullJoin
)

func (j JoinType) keyword() string {
	switch j {
	case LeftOuterJoin:
		return " left outer join "
	case RightOuterJoin:
		return " right outer join "
	case FullJoin:
		return " full outer join "
	default:
		return " inner join "
	}
}

// JoinFragment accumulates ANSI join clauses ("from a x inner join b y on
// x.c=y.c"). TimesTen dialects use this form rather than Oracle (+) joins.
type JoinFragment struct {
	from       strings.Builder
	conditions strings.Builder
}

func NewJoinFragment() *JoinFragment { return &JoinFragment{} }

// AddJoin appends a join to table alias on pairwise equality of lhs and rhs
// columns; rhs columns are qualified with alias.
func (j *JoinFragment) AddJoin(table, alias string, lhsColumns, rhsColumns []string, typ JoinType) {
	j.from.WriteString(typ.keyword())
	j.from.WriteString(table)
	j.from.WriteString(" ")
	j.from.WriteString(alias)
	j.from.WriteString(" on ")
	for i, lhs := range lhsColumns {
		if i > 0 {
			j.from.WriteString(" and ")
		}
		j.from.WriteString(lhs)
		j.from.WriteString("=")
		j.from.WriteString(alias)
		j.from.WriteString(".")
		j.from.WriteString(rhsColumns[i])
	}
}

// AddCrossJoin appends an unconditioned join.
func (j *JoinFragment) AddCrossJoin(table, alias string) {
	j.from.WriteString(crossJoinSeparator)
	j.from.WriteString(table)
	j.from.WriteString(" ")
	j.from.WriteString(alias)
}

// AddCondition appends a where-clause restriction.
func (j *JoinFragment) AddCondition(cond string) {
	if cond == "" {
		return
	}
	j.conditions.WriteString(" and ")
	j.conditions.WriteString(cond)
}

func (j *JoinFragment) FromFragment() string  { return j.from.String() }
func (j *JoinFragment) WhereFragment() string { return j.conditions.String() }

const crossJoinSeparator = " cross join "
