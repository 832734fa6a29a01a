package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDialect is returned by GetDialect for names it does not serve.
var ErrUnknownDialect = errors.New("unknown dialect")

// GetDialect returns the Dialect registered under name. The 22.1 dialect is
// built for version; it is ignored by the legacy dialect.
func GetDialect(name string, version Version) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "timesten", "timesten22", "tt", "":
		d, err := NewTimesTen(version)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "timesten1122", "tt1122":
		return NewTimesTen1122(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, name)
	}
}

// Names lists the accepted dialect names.
func Names() []string {
	return []string{"timesten", "timesten22", "tt", "timesten1122", "tt1122"}
}

// Ensure interface implementation
var _ Dialect = (*TimesTenDialect)(nil)
var _ Dialect = (*TimesTen1122Dialect)(nil)
