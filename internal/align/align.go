// Package align turns the community series' arbitrary reporting dates into
// one weekly sample per jurisdiction on the agency's reporting day.
package align

import (
	"fmt"
	"time"

	"vax-coverage/internal/domain"
)

// AnchorWeekday is the agency series' as-of reporting day.
const AnchorWeekday = time.Saturday

// DefaultStart is the first sampled community date: the Sunday after the
// first anchor day carrying a spliced third-dose value.
var DefaultStart = time.Date(2021, time.October, 3, 0, 0, 0, 0, time.UTC)

// Sample keeps the community rows falling on the 7-day grid that starts at
// start and runs to primaryMax+1 day, then shifts each kept date back one
// day onto the anchor weekday. Jurisdiction/week combinations absent from
// the source are simply absent from the result; the splicer treats them as
// nulls, not errors.
func Sample(records []domain.DoseCount, start, primaryMax time.Time) ([]domain.DoseCount, error) {
	sampleDay := (AnchorWeekday + 1) % 7
	if start.Weekday() != sampleDay {
		return nil, fmt.Errorf("align: start date %s is a %s, want %s",
			start.Format("2006-01-02"), start.Weekday(), sampleDay)
	}

	targets := map[time.Time]bool{}
	bound := primaryMax.AddDate(0, 0, 1)
	for d := start; !d.After(bound); d = d.AddDate(0, 0, 7) {
		targets[d] = true
	}

	var out []domain.DoseCount
	for _, rec := range records {
		if !targets[rec.Date] {
			continue
		}
		rec.Date = rec.Date.AddDate(0, 0, -1)
		out = append(out, rec)
	}
	return out, nil
}
