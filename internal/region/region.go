// Package region normalizes Chinese administrative names for matching
// against the heterogeneous keying schemes used by the price sources.
package region

import (
	"strings"
)

// Level is the administrative level a name belongs to.
type Level int

const (
	// Province covers province-level names, including province-level
	// municipalities such as 北京市.
	Province Level = iota
	// City covers city-, district-, and county-level names.
	City
)

// Longer suffixes are checked first so 特别行政区 is never split.
var provinceSuffixes = []string{"特别行政区", "自治区", "省", "市"}

var citySuffixes = []string{"市", "区", "县"}

// Normalize strips one administrative suffix from the trailing position of
// name. The strip is suffix-exact and applied at most once: a suffix
// character appearing mid-string is left alone, and a name consisting only
// of a suffix is returned unchanged. Absence of a suffix is not an error.
func Normalize(name string, level Level) string {
	suffixes := provinceSuffixes
	if level == City {
		suffixes = citySuffixes
	}
	for _, s := range suffixes {
		if len(name) > len(s) && strings.HasSuffix(name, s) {
			return strings.TrimSuffix(name, s)
		}
	}
	return name
}
