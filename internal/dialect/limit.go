package dialect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotSelect is returned when a limit is applied to a statement that
	// does not start with SELECT.
	ErrNotSelect = errors.New("limit clause requires a query starting with select")
	// ErrOffsetWithoutLimit is returned for a first row without a row count;
	// "rows m to n" always needs both ends.
	ErrOffsetWithoutLimit = errors.New("first row without max rows is not supported by rows m to n")
	ErrInvalidLimit       = errors.New("invalid limit bounds")
)

// Limit selects a window of rows. FirstRow is zero-based; MaxRows 0 means
// unbounded.
type Limit struct {
	FirstRow int
	MaxRows  int
}

// LimitHandler rewrites queries to return a window of rows.
type LimitHandler interface {
	SupportsLimit() bool
	SupportsOffset() bool
	SupportsLimitOffset() bool
	SupportsVariableLimit() bool
	UseMaxForLimit() bool
	BindLimitParametersFirst() bool
	// ConvertToFirstRowValue maps a zero-based first row to the database's
	// numbering.
	ConvertToFirstRowValue(zeroBasedFirstResult int) int
	ApplyLimit(query string, limit Limit) (string, error)
}

// selectKeywordLen is where TimesTen row-limiting clauses are spliced in.
const selectKeywordLen = len("select")

func insertAfterSelect(query, clause string) (string, error) {
	if len(query) < selectKeywordLen || !strings.EqualFold(query[:selectKeywordLen], "select") {
		return "", ErrNotSelect
	}
	var b strings.Builder
	b.Grow(len(query) + len(clause))
	b.WriteString(query[:selectKeywordLen])
	b.WriteString(clause)
	b.WriteString(query[selectKeywordLen:])
	return b.String(), nil
}

// rowsClause renders " rows m to n" from a zero-based offset and an
// inclusive one-based last row.
func rowsClause(offset, lastRow int) (string, error) {
	if offset < 0 || lastRow < offset+1 {
		return "", fmt.Errorf("%w: offset %d, last row %d", ErrInvalidLimit, offset, lastRow)
	}
	return fmt.Sprintf(" rows %d to %d", offset+1, lastRow), nil
}

// legacyLimitHandler exposes the 11.2.2 dialect's literal "rows m to n"
// rewriting through the LimitHandler contract.
type legacyLimitHandler struct{}

func (legacyLimitHandler) SupportsLimit() bool                  { return true }
func (legacyLimitHandler) SupportsOffset() bool                 { return true }
func (legacyLimitHandler) SupportsLimitOffset() bool            { return true }
func (legacyLimitHandler) SupportsVariableLimit() bool          { return false }
func (legacyLimitHandler) UseMaxForLimit() bool                 { return true }
func (legacyLimitHandler) BindLimitParametersFirst() bool       { return true }
func (legacyLimitHandler) ConvertToFirstRowValue(zero int) int { return zero + 1 }

func (legacyLimitHandler) ApplyLimit(query string, limit Limit) (string, error) {
	if limit.MaxRows < 0 || limit.FirstRow < 0 {
		return "", fmt.Errorf("%w: first row %d, max rows %d", ErrInvalidLimit, limit.FirstRow, limit.MaxRows)
	}
	if limit.MaxRows == 0 {
		if limit.FirstRow > 0 {
			return "", ErrOffsetWithoutLimit
		}
		return query, nil
	}
	return legacyLimitString(query, limit.FirstRow, limit.FirstRow+limit.MaxRows)
}

func legacyLimitString(query string, offset, limit int) (string, error) {
	clause, err := rowsClause(offset, limit)
	if err != nil {
		return "", err
	}
	return insertAfterSelect(query, clause)
}

// TimesTenLimitHandler is the 22.1 pagination plug-in: "select first n"
// when only a row count is given, "select rows m to n" otherwise.
var TimesTenLimitHandler LimitHandler = timesTenLimitHandler{}

type timesTenLimitHandler struct{}

func (timesTenLimitHandler) SupportsLimit() bool       { return true }
func (timesTenLimitHandler) SupportsOffset() bool      { return false }
func (timesTenLimitHandler) SupportsLimitOffset() bool { return true }

// SupportsVariableLimit is false: translating zero-based offsets to
// one-based rows needs literal arithmetic.
func (timesTenLimitHandler) SupportsVariableLimit() bool          { return false }
func (timesTenLimitHandler) UseMaxForLimit() bool                 { return true }
func (timesTenLimitHandler) BindLimitParametersFirst() bool       { return true }
func (timesTenLimitHandler) ConvertToFirstRowValue(zero int) int { return zero + 1 }

func (timesTenLimitHandler) ApplyLimit(query string, limit Limit) (string, error) {
	switch {
	case limit.MaxRows < 0 || limit.FirstRow < 0:
		return "", fmt.Errorf("%w: first row %d, max rows %d", ErrInvalidLimit, limit.FirstRow, limit.MaxRows)
	case limit.MaxRows == 0 && limit.FirstRow == 0:
		return query, nil
	case limit.MaxRows == 0:
		return "", ErrOffsetWithoutLimit
	case limit.FirstRow == 0:
		return insertAfterSelect(query, fmt.Sprintf(" first %d", limit.MaxRows))
	}
	clause, err := rowsClause(limit.FirstRow, limit.FirstRow+limit.MaxRows)
	if err != nil {
		return "", err
	}
	return insertAfterSelect(query, clause)
}
