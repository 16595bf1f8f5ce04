package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"vax-coverage/internal/domain"
)

var longHeader = []string{
	"date",
	"pt",
	"dose",
	"coverage",
}

// LongRecord is one row of the tidy projection: a single defined dose value.
type LongRecord struct {
	Date         time.Time
	Jurisdiction string
	Dose         string
	Coverage     float64
}

// Longify reshapes the wide table into long form, emitting up to three rows
// per input row and skipping null doses. It is a pure reshape: pivoting the
// result back by (date, jurisdiction) reproduces the wide table.
func Longify(records []domain.CoverageRecord) []LongRecord {
	var out []LongRecord
	for _, rec := range records {
		doses := []struct {
			label string
			value domain.Percent
		}{
			{"dose_1", rec.Dose1},
			{"dose_2", rec.Dose2},
			{"dose_3", rec.Dose3},
		}
		for _, d := range doses {
			if !d.value.Valid {
				continue
			}
			out = append(out, LongRecord{
				Date:         rec.Date,
				Jurisdiction: rec.Jurisdiction,
				Dose:         d.label,
				Coverage:     d.value.Value,
			})
		}
	}
	return out
}

// WriteLong writes the long table.
func WriteLong(w io.Writer, records []LongRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(longHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(dateLayout),
			rec.Jurisdiction,
			rec.Dose,
			strconv.FormatFloat(rec.Coverage, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLongCSV writes the long table to path atomically.
func WriteLongCSV(path string, records []LongRecord) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteLong(w, records)
	})
}
