// Package export writes the final dataset in its two shapes. Files are
// written to a temp file and renamed into place so an aborted run never
// leaves a partial artifact behind.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"vax-coverage/internal/domain"
)

// Keep header order EXACT: downstream notebooks read these by position too.
var wideHeader = []string{
	"date",
	"pt",
	"percent_dose_1",
	"percent_dose_2",
	"percent_dose_3",
}

const dateLayout = "2006-01-02"

// WriteWide writes the wide table: one row per (date, jurisdiction), null
// percentages as empty cells.
func WriteWide(w io.Writer, records []domain.CoverageRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(wideHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(dateLayout),
			rec.Jurisdiction,
			formatPercent(rec.Dose1),
			formatPercent(rec.Dose2),
			formatPercent(rec.Dose3),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWideCSV writes the wide table to path atomically.
func WriteWideCSV(path string, records []domain.CoverageRecord) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteWide(w, records)
	})
}

func formatPercent(p domain.Percent) string {
	if !p.Valid {
		return ""
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64)
}
