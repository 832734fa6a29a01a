package dialect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedVersion is returned for TimesTen releases older than the
// dialect's minimum.
var ErrUnsupportedVersion = errors.New("unsupported TimesTen version")

// Version is a TimesTen release, e.g. 22.1 or 25.1.
type Version struct {
	Major int
	Minor int
}

// MinimumVersion is the oldest release the 22.1 dialect accepts.
var MinimumVersion = Version{Major: 22, Minor: 1}

// ParseVersion reads "major[.minor[.anything]]"; trailing components such
// as the patch level are ignored.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	v := Version{Major: major}
	if len(parts) > 1 {
		if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}
	return v, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v Version) IsSameOrAfter(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}
