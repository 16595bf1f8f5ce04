// Package splice joins the community third-dose series onto the agency
// coverage table and owns the per-jurisdiction policy deciding which
// third-dose series survives.
package splice

import (
	"time"

	"vax-coverage/internal/domain"
	"vax-coverage/internal/refdata"
)

// Jurisdictions whose third doses are not taken from the community series:
// Yukon because its agency-published third-dose series is already reliable,
// Northwest Territories because its counts through the community dataset
// are inconsistent. Kept as one lookup so the policy stays auditable.
var keepPrimary = map[string]bool{
	refdata.Yukon:                true,
	refdata.NorthwestTerritories: true,
}

// ReplaceThirdDose reports whether a jurisdiction's third-dose column is
// rebuilt from the community series.
func ReplaceThirdDose(jurisdiction string) bool {
	return !keepPrimary[jurisdiction]
}

type joinKey struct {
	date         time.Time
	jurisdiction string
}

// Apply left-joins the aligned community samples onto the weekly coverage
// table. For jurisdictions under replacement the community value is taken
// unconditionally, so weeks without a sample (including everything before
// the splice start) come out null rather than falling back to the agency
// value. The two kept-primary jurisdictions pass through untouched.
func Apply(primary []domain.CoverageRecord, aligned []domain.DoseCount) []domain.CoverageRecord {
	byKey := make(map[joinKey]float64, len(aligned))
	for _, s := range aligned {
		byKey[joinKey{s.Date, s.Jurisdiction}] = s.Coverage
	}

	out := make([]domain.CoverageRecord, len(primary))
	for i, rec := range primary {
		if ReplaceThirdDose(rec.Jurisdiction) {
			if v, ok := byKey[joinKey{rec.Date, rec.Jurisdiction}]; ok {
				rec.Dose3 = domain.PercentOf(v)
			} else {
				rec.Dose3 = domain.Percent{}
			}
		}
		out[i] = rec
	}
	return out
}
