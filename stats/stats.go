//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package stats accumulates per-run simplification statistics --
// gate counts before and after each pass, wall-clock duration, and
// the minimizer's per-sweep splice counters -- and renders them
// either as a terminal summary table or as a CSV row for batch
// benchmarking.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/circsimplify/circuit"
	"github.com/markkurossi/circsimplify/minimize"
	"github.com/markkurossi/tabulate"
)

// StageSample records one named pipeline stage's effect on the
// circuit: its gate count before and after, and how long it took.
type StageSample struct {
	Label    string
	Before   circuit.Stats
	After    circuit.Stats
	Duration time.Duration

	// Minimize is non-nil when this stage was a minimizer sweep, and
	// carries its splice/skip counters.
	Minimize *minimize.Stats
}

// Run accumulates a full simplification run's statistics: one sample
// per pipeline stage, plus the circuit's starting and ending gate
// counts.
type Run struct {
	InitialGates int
	FinalGates   int
	Stages       []StageSample
}

// Clear resets r to an empty run, so a single Run value can be
// reused across repeated benchmark iterations.
func (r *Run) Clear() {
	r.InitialGates = 0
	r.FinalGates = 0
	r.Stages = nil
}

// AddStage appends a pipeline stage's sample.
func (r *Run) AddStage(s StageSample) {
	r.Stages = append(r.Stages, s)
}

// TotalDuration sums every stage's duration.
func (r *Run) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range r.Stages {
		total += s.Duration
	}
	return total
}

// WriteSummary renders a human-readable report of r to w using
// markkurossi/tabulate, in the same "Op / Time / %" layout the
// upstream profiling report uses.
func (r *Run) WriteSummary(w io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Stage").SetAlign(tabulate.ML)
	tab.Header("Gates before").SetAlign(tabulate.MR)
	tab.Header("Gates after").SetAlign(tabulate.MR)
	tab.Header("Delta").SetAlign(tabulate.MR)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := r.TotalDuration()
	for _, s := range r.Stages {
		before := gateTotal(s.Before)
		after := gateTotal(s.After)

		row := tab.Row()
		row.Column(s.Label)
		row.Column(fmt.Sprintf("%d", before))
		row.Column(fmt.Sprintf("%d", after))
		row.Column(fmt.Sprintf("%+d", after-before))
		row.Column(s.Duration.String())
		if total > 0 {
			row.Column(fmt.Sprintf("%.2f%%", float64(s.Duration)/float64(total)*100))
		} else {
			row.Column("0.00%")
		}

		if s.Minimize != nil {
			mrow := tab.Row()
			mrow.Column("╰╴splices").SetFormat(tabulate.FmtItalic)
			mrow.Column("")
			mrow.Column("")
			mrow.Column(fmt.Sprintf("%d", s.Minimize.Spliced)).SetFormat(tabulate.FmtItalic)
			mrow.Column(fmt.Sprintf("saved %d gates", s.Minimize.GatesSaved)).SetFormat(tabulate.FmtItalic)
			mrow.Column("")
		}
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", r.InitialGates)).SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", r.FinalGates)).SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%+d", r.FinalGates-r.InitialGates)).SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("100.00%").SetFormat(tabulate.FmtBold)

	tab.Print(w)
}

// WriteCSV renders r as a single CSV row (after a header row, if
// header is true), for accumulating many runs into one benchmark
// spreadsheet.
func (r *Run) WriteCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write([]string{
			"initial_gates", "final_gates", "delta", "total_duration_ns", "stages",
		}); err != nil {
			return err
		}
	}
	record := []string{
		fmt.Sprintf("%d", r.InitialGates),
		fmt.Sprintf("%d", r.FinalGates),
		fmt.Sprintf("%d", r.FinalGates-r.InitialGates),
		fmt.Sprintf("%d", r.TotalDuration().Nanoseconds()),
		fmt.Sprintf("%d", len(r.Stages)),
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func gateTotal(s circuit.Stats) int {
	n := 0
	for _, count := range s {
		n += count
	}
	return n
}
