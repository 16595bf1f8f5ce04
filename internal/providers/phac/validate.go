package phac

import (
	"fmt"
	"math"
	"time"

	"vax-coverage/internal/domain"
	"vax-coverage/internal/refdata"
)

// The published percentages for the two northern territories were found to
// be computed against a different denominator than the census figure, so
// their denominators are back-calculated from one reference week's count
// and percentage instead.
var correctedTerritories = []string{
	refdata.NorthwestTerritories,
	refdata.Nunavut,
}

var (
	// reconcileFrom bounds the consistency check to the weeks where counts
	// and percentages are both published.
	reconcileFrom = time.Date(2021, time.June, 5, 0, 0, 0, 0, time.UTC)

	// referenceDate is the week used to back-calculate the corrected
	// territory denominators from the dose-1 figures.
	referenceDate = time.Date(2021, time.December, 4, 0, 0, 0, 0, time.UTC)
)

// Anomaly is a published percentage that disagrees with the one recomputed
// from the raw count, in a jurisdiction where no disagreement is expected.
// Anomalies are surfaced for manual review, never fatal.
type Anomaly struct {
	Date         time.Time
	Jurisdiction string
	Dose         string
	Published    float64
	Computed     float64
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s %s %s: published %.2f, computed %.2f",
		a.Date.Format(dateLayout), a.Jurisdiction, a.Dose, a.Published, a.Computed)
}

// Reconcile recomputes every published percentage from its raw count and the
// census denominator, collects unexpected disagreements, and installs the
// back-calculated denominator overrides for the two known-divergent
// territories. It must run before the secondary series derives any coverage
// values from the populations.
func Reconcile(records []Record, pops *refdata.Populations) ([]Anomaly, error) {
	var anomalies []Anomaly

	corrected := map[string]bool{}
	for _, terr := range correctedTerritories {
		corrected[terr] = true
	}

	for _, rec := range records {
		if rec.Date.Before(reconcileFrom) {
			continue
		}
		if corrected[rec.Jurisdiction] {
			// Disagreement here is the known denominator divergence.
			continue
		}
		pop, err := pops.Population(rec.Jurisdiction)
		if err != nil {
			return nil, fmt.Errorf("phac: %w", err)
		}
		anomalies = append(anomalies, checkRecord(rec, pop)...)
	}

	for _, terr := range correctedTerritories {
		implied, err := impliedPopulation(records, terr)
		if err != nil {
			return nil, err
		}
		if err := pops.Override(terr, implied); err != nil {
			return nil, fmt.Errorf("phac: %w", err)
		}
	}

	return anomalies, nil
}

func checkRecord(rec Record, pop int) []Anomaly {
	var out []Anomaly

	doses := []struct {
		label   string
		count   domain.Count
		percent domain.Percent
	}{
		{"dose_1", rec.Count1, rec.Percent1},
		{"dose_2", rec.Count2, rec.Percent2},
		{"dose_3", rec.Count3, rec.Percent3},
	}
	for _, d := range doses {
		if !d.count.Valid || !d.percent.Valid {
			continue
		}
		computed := domain.Round2(float64(d.count.Value) / float64(pop) * 100)
		if math.Abs(computed-d.percent.Value) >= 0.005 {
			out = append(out, Anomaly{
				Date:         rec.Date,
				Jurisdiction: rec.Jurisdiction,
				Dose:         d.label,
				Published:    d.percent.Value,
				Computed:     computed,
			})
		}
	}
	return out
}

// impliedPopulation back-calculates the denominator the agency actually used
// for a territory: count / percent * 100 at the reference week, dose 1.
func impliedPopulation(records []Record, jurisdiction string) (int, error) {
	for _, rec := range records {
		if rec.Jurisdiction != jurisdiction || !rec.Date.Equal(referenceDate) {
			continue
		}
		if !rec.Count1.Valid || !rec.Percent1.Valid || rec.Percent1.Value == 0 {
			return 0, fmt.Errorf("phac: %s: reference week %s has no usable dose-1 figures",
				jurisdiction, referenceDate.Format(dateLayout))
		}
		return int(math.Round(float64(rec.Count1.Value) / rec.Percent1.Value * 100)), nil
	}
	return 0, fmt.Errorf("phac: %s: no record for reference week %s",
		jurisdiction, referenceDate.Format(dateLayout))
}
