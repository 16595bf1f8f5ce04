package domain

import (
	"math"
	"time"
)

// Percent is a nullable coverage percentage. The zero value means "no value
// reported": a week/jurisdiction the source has nothing for. It must stay
// distinguishable from an actual 0.00 all the way into the output files.
type Percent struct {
	Value float64
	Valid bool
}

func PercentOf(v float64) Percent {
	return Percent{Value: v, Valid: true}
}

// Count is a nullable raw dose count from the agency file. Early weeks have
// no third-dose column values at all.
type Count struct {
	Value int
	Valid bool
}

func CountOf(v int) Count {
	return Count{Value: v, Valid: true}
}

// CoverageRecord is one row of the analysis-ready wide table: per-dose
// coverage percentages for one jurisdiction on one reporting date.
type CoverageRecord struct {
	Date         time.Time
	Jurisdiction string
	Dose1        Percent
	Dose2        Percent
	Dose3        Percent
}

// DoseCount is one normalized row of the community third-dose series:
// a cumulative count on an arbitrary calendar date, plus the coverage
// percentage derived from it against the corrected denominator.
type DoseCount struct {
	Date         time.Time
	Jurisdiction string
	Cumulative   int
	Coverage     float64
}

// Round2 rounds half away from zero to 2 decimal places, the convention the
// agency's published percentages follow.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
