package dialect

import (
	"errors"
	"fmt"
)

// ErrZeroIncrement is returned when a sequence is asked to step by 0.
var ErrZeroIncrement = errors.New("sequence increment size must not be 0")

// SequenceSupport answers how sequences are created, dropped and read.
type SequenceSupport interface {
	SupportsSequences() bool
	SupportsPooledSequences() bool
	// SelectSequenceNextValString is the expression embedded in a select list.
	SelectSequenceNextValString(sequenceName string) string
	// SequenceNextValString is a full statement returning the next value.
	SequenceNextValString(sequenceName string) string
	FromDual() string
	CreateSequenceString(sequenceName string) string
	CreateSequenceStrings(sequenceName string, initialValue, incrementSize int) ([]string, error)
	DropSequenceString(sequenceName string) string
	DropSequenceStrings(sequenceName string) []string
}

// TimesTenSequences is the sequence support shared by both TimesTen dialects.
var TimesTenSequences SequenceSupport = timesTenSequences{}

type timesTenSequences struct{}

func (timesTenSequences) SupportsSequences() bool       { return true }
func (timesTenSequences) SupportsPooledSequences() bool { return true }

func (timesTenSequences) SelectSequenceNextValString(sequenceName string) string {
	return sequenceName + ".nextval"
}

func (s timesTenSequences) SequenceNextValString(sequenceName string) string {
	return "select " + s.SelectSequenceNextValString(sequenceName) + s.FromDual()
}

func (timesTenSequences) FromDual() string {
	return " from sys.dual"
}

func (timesTenSequences) CreateSequenceString(sequenceName string) string {
	return "create sequence " + sequenceName
}

func (s timesTenSequences) CreateSequenceStrings(sequenceName string, initialValue, incrementSize int) ([]string, error) {
	if incrementSize == 0 {
		return nil, fmt.Errorf("unable to create sequence %s: %w", sequenceName, ErrZeroIncrement)
	}
	stmt := fmt.Sprintf("%s start with %d increment by %d", s.CreateSequenceString(sequenceName), initialValue, incrementSize)
	return []string{stmt}, nil
}

func (timesTenSequences) DropSequenceString(sequenceName string) string {
	return "drop sequence " + sequenceName
}

func (s timesTenSequences) DropSequenceStrings(sequenceName string) []string {
	return []string{s.DropSequenceString(sequenceName)}
}
