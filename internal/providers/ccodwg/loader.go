// Package ccodwg loads the community-maintained cumulative additional-dose
// series and derives coverage percentages from the corrected population
// denominators.
package ccodwg

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"vax-coverage/internal/domain"
	"vax-coverage/internal/providers"
	"vax-coverage/internal/refdata"
	"vax-coverage/internal/splice"
)

// The community file dates are day-month-year.
const dateLayout = "02-01-2006"

var columns = []string{
	"date_vaccine_additionaldose",
	"province",
	"cumulative_additionaldose",
}

// The community file abbreviates exactly four jurisdictions; every other
// province value is already the canonical full name. Anything that maps
// outside the vocabulary fails the load.
var renames = map[string]string{
	"BC":  refdata.BritishColumbia,
	"NL":  refdata.NewfoundlandAndLabrador,
	"NWT": refdata.NorthwestTerritories,
	"PEI": refdata.PrinceEdwardIsland,
}

// Load reads the community snapshot and normalizes it into the primary
// series' vocabulary. Zero cumulative counts (pre-reporting placeholders)
// and the jurisdictions whose third doses are not taken from this source
// are dropped. Coverage is derived against pops, which must already carry
// the denominator corrections from the agency reconciliation.
func Load(path string, pops *refdata.Populations) ([]domain.DoseCount, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ccodwg: open snapshot: %w", err)
	}
	defer f.Close()

	records, err := parse(f, pops)
	if err != nil {
		return nil, fmt.Errorf("ccodwg: %s: %w", path, err)
	}
	return records, nil
}

func parse(r io.Reader, pops *refdata.Populations) ([]domain.DoseCount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := providers.NewHeader(head)
	if err := h.Require(columns...); err != nil {
		return nil, err
	}

	var records []domain.DoseCount
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, keep, err := parseRow(h, row, pops)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if keep {
			records = append(records, rec)
		}
	}
	return records, nil
}

func parseRow(h providers.Header, row []string, pops *refdata.Populations) (domain.DoseCount, bool, error) {
	var rec domain.DoseCount

	raw, err := h.Field(row, "date_vaccine_additionaldose")
	if err != nil {
		return rec, false, err
	}
	rec.Date, err = time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return rec, false, fmt.Errorf("column date_vaccine_additionaldose: %w", err)
	}

	code, err := h.Field(row, "province")
	if err != nil {
		return rec, false, err
	}
	rec.Jurisdiction, err = canonicalName(strings.TrimSpace(code), pops)
	if err != nil {
		return rec, false, err
	}

	raw, err = h.Field(row, "cumulative_additionaldose")
	if err != nil {
		return rec, false, err
	}
	rec.Cumulative, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return rec, false, fmt.Errorf("column cumulative_additionaldose: invalid count %q", raw)
	}

	if rec.Cumulative == 0 {
		// Placeholder row from before the jurisdiction started reporting.
		return rec, false, nil
	}
	if !splice.ReplaceThirdDose(rec.Jurisdiction) {
		return rec, false, nil
	}

	pop, err := pops.Population(rec.Jurisdiction)
	if err != nil {
		return rec, false, err
	}
	rec.Coverage = domain.Round2(float64(rec.Cumulative) / float64(pop) * 100)

	return rec, true, nil
}

func canonicalName(code string, pops *refdata.Populations) (string, error) {
	name := code
	if full, ok := renames[code]; ok {
		name = full
	}
	// The aggregate never appears in this source; seeing it means the file
	// changed shape.
	if name == refdata.Aggregate || !pops.Known(name) {
		return "", fmt.Errorf("column province: unmapped jurisdiction code %q", code)
	}
	return name, nil
}
