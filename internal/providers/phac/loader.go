// Package phac loads the agency-published weekly vaccination coverage file
// and reconciles its population denominators before anything downstream
// consumes them.
package phac

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
)

const dateLayout = "2006-01-02"

// Record is one weekly row of the agency file. Raw dose counts and the
// published percentages are kept side by side so the denominators can be
// reconciled against each other.
type Record struct {
	Date         time.Time
	Jurisdiction string

	Count1, Count2, Count3       domain.Count
	Percent1, Percent2, Percent3 domain.Percent
}

var columns = []string{
	"week_end",
	"prename",
	"numtotal_dose1",
	"numtotal_dose2",
	"numtotal_dose3",
	"proptotal_dose1",
	"proptotal_dose2",
	"proptotal_dose3",
}

// Load reads the raw agency snapshot. Jurisdiction names are constrained to
// the canonical vocabulary; an unseen name, or any unparseable date or
// number, fails the whole load.
func Load(path string, pops *refdata.Populations) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phac: open snapshot: %w", err)
	}
	defer f.Close()

	records, err := parse(f, pops)
	if err != nil {
		return nil, fmt.Errorf("phac: %s: %w", path, err)
	}
	return records, nil
}

func parse(r io.Reader, pops *refdata.Populations) ([]Record, error) {
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

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(h, row, pops)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(h providers.Header, row []string, pops *refdata.Populations) (Record, error) {
	var rec Record

	raw, err := h.Field(row, "week_end")
	if err != nil {
		return rec, err
	}
	rec.Date, err = time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return rec, fmt.Errorf("column week_end: %w", err)
	}

	rec.Jurisdiction, err = h.Field(row, "prename")
	if err != nil {
		return rec, err
	}
	rec.Jurisdiction = strings.TrimSpace(rec.Jurisdiction)
	if !pops.Known(rec.Jurisdiction) {
		return rec, fmt.Errorf("column prename: unknown jurisdiction %q", rec.Jurisdiction)
	}

	counts := []struct {
		col string
		dst *domain.Count
	}{
		{"numtotal_dose1", &rec.Count1},
		{"numtotal_dose2", &rec.Count2},
		{"numtotal_dose3", &rec.Count3},
	}
	for _, c := range counts {
		if *c.dst, err = parseCount(h, row, c.col); err != nil {
			return rec, err
		}
	}

	percents := []struct {
		col string
		dst *domain.Percent
	}{
		{"proptotal_dose1", &rec.Percent1},
		{"proptotal_dose2", &rec.Percent2},
		{"proptotal_dose3", &rec.Percent3},
	}
	for _, p := range percents {
		if *p.dst, err = parsePercent(h, row, p.col); err != nil {
			return rec, err
		}
	}

	return rec, nil
}

// Empty cells are real in this file (weeks before a dose existed), so they
// map to null rather than zero. Anything else must parse cleanly.
func parseCount(h providers.Header, row []string, col string) (domain.Count, error) {
	raw, err := h.Field(row, col)
	if err != nil {
		return domain.Count{}, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "na" {
		return domain.Count{}, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return domain.Count{}, fmt.Errorf("column %s: invalid count %q", col, raw)
	}
	return domain.CountOf(v), nil
}

func parsePercent(h providers.Header, row []string, col string) (domain.Percent, error) {
	raw, err := h.Field(row, col)
	if err != nil {
		return domain.Percent{}, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "na" {
		return domain.Percent{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.Percent{}, fmt.Errorf("column %s: invalid percentage %q", col, raw)
	}
	return domain.PercentOf(v), nil
}

// Coverage projects the validated records onto the output domain: the
// aggregate rows are dropped and only the published percentages survive.
func Coverage(records []Record) []domain.CoverageRecord {
	out := make([]domain.CoverageRecord, 0, len(records))
	for _, rec := range records {
		if rec.Jurisdiction == refdata.Aggregate {
			continue
		}
		out = append(out, domain.CoverageRecord{
			Date:         rec.Date,
			Jurisdiction: rec.Jurisdiction,
			Dose1:        rec.Percent1,
			Dose2:        rec.Percent2,
			Dose3:        rec.Percent3,
		})
	}
	return out
}

// MaxDate returns the latest reporting date in the series.
func MaxDate(records []Record) time.Time {
	var max time.Time
	for _, rec := range records {
		if rec.Date.After(max) {
			max = rec.Date
		}
	}
	return max
}
