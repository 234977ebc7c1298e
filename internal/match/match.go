// Package match selects the best native record for a normalized query
// location using a tiered fallback policy.
package match

import (
	"strings"

	"github.com/oilprice-cn/oilquery/internal/models"
)

// Match scans records in source order and returns the first match.
//
// Tier 1: a record's region label contains the normalized city (when one
// was supplied) or the normalized province. The first record satisfying
// either condition wins; ties go to whichever the upstream lists first,
// not to the semantically better match.
//
// Tier 2: when a city was supplied and tier 1 produced nothing, the scan
// retries on province containment alone. City-level data may be absent
// upstream while a province-level row is still a usable degraded result.
//
// The boolean is false when both tiers come up empty.
func Match(records []models.NativeRecord, province, city string) (models.NativeRecord, bool) {
	for _, r := range records {
		if contains(r.Region, city) || contains(r.Region, province) {
			return r, true
		}
	}

	if city != "" {
		for _, r := range records {
			if contains(r.Region, province) {
				return r, true
			}
		}
	}

	return models.NativeRecord{}, false
}

// contains is substring containment with an empty needle never matching.
func contains(region, needle string) bool {
	return needle != "" && strings.Contains(region, needle)
}
