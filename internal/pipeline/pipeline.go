// Package pipeline runs the whole splice: load and reconcile the agency
// series, derive the community series with corrected denominators, align,
// splice, and write both output shapes. The causal order matters — the
// denominator overrides must be installed before the community coverage is
// derived — so every step here passes the Populations value forward
// explicitly.
package pipeline

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"vax-coverage/internal/align"
	"vax-coverage/internal/export"
	"vax-coverage/internal/providers/ccodwg"
	"vax-coverage/internal/providers/phac"
	"vax-coverage/internal/refdata"
	"vax-coverage/internal/splice"
)

const (
	WideFileName = "vaccine_coverage_wide.csv"
	LongFileName = "vaccine_coverage_long.csv"
)

type Options struct {
	PrimaryPath   string
	SecondaryPath string
	OutDir        string

	// SpliceStart overrides the first sampled community date. Zero means
	// align.DefaultStart.
	SpliceStart time.Time

	// Logf receives reconciliation anomalies and progress notes. Nil means
	// log.Printf.
	Logf func(format string, args ...any)
}

type Result struct {
	WidePath string
	LongPath string

	Rows      int
	LongRows  int
	Anomalies []phac.Anomaly
	Overrides map[string]int
}

// Run executes the pipeline. Any error aborts before either output file is
// touched.
func Run(opts Options) (*Result, error) {
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	start := opts.SpliceStart
	if start.IsZero() {
		start = align.DefaultStart
	}

	pops := refdata.New()

	primary, err := phac.Load(opts.PrimaryPath, pops)
	if err != nil {
		return nil, err
	}

	anomalies, err := phac.Reconcile(primary, pops)
	if err != nil {
		return nil, err
	}
	for _, a := range anomalies {
		logf("reconcile: unexpected discrepancy: %s", a)
	}
	for name, pop := range pops.Overrides() {
		logf("reconcile: corrected denominator for %s: %d", name, pop)
	}

	// The community load reads the corrected denominators, so it has to run
	// after Reconcile.
	secondary, err := ccodwg.Load(opts.SecondaryPath, pops)
	if err != nil {
		return nil, err
	}

	aligned, err := align.Sample(secondary, start, phac.MaxDate(primary))
	if err != nil {
		return nil, err
	}

	final := splice.Apply(phac.Coverage(primary), aligned)
	sort.Slice(final, func(i, j int) bool {
		if !final[i].Date.Equal(final[j].Date) {
			return final[i].Date.Before(final[j].Date)
		}
		return final[i].Jurisdiction < final[j].Jurisdiction
	})
	long := export.Longify(final)

	res := &Result{
		WidePath:  filepath.Join(opts.OutDir, WideFileName),
		LongPath:  filepath.Join(opts.OutDir, LongFileName),
		Rows:      len(final),
		LongRows:  len(long),
		Anomalies: anomalies,
		Overrides: pops.Overrides(),
	}

	if err := export.WriteWideCSV(res.WidePath, final); err != nil {
		return nil, err
	}
	if err := export.WriteLongCSV(res.LongPath, long); err != nil {
		return nil, fmt.Errorf("pipeline: wide table written but long table failed: %w", err)
	}
	return res, nil
}
