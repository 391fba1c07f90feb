// Package tracing records simulated steps while a simulator runs, into CSV
// files or a database, and reads recorded runs back.
package tracing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
)

// A StepWriter stores the steps and the summary of simulated runs.
type StepWriter interface {
	WriteStep(runID string, rec replacement.StepRecord)
	WriteRun(run RunEntry)
	Flush()
}

// RunEntry summarizes one simulator run.
type RunEntry struct {
	RunID      string
	FrameCount int
	References string
	Steps      int
	Hits       int
	Faults     int
}

// StepEntry is the flat form of a StepRecord. Page lists are space-separated
// with "-" for empty slots.
type StepEntry struct {
	RunID        string
	Step         int
	Page         int
	Outcome      string
	TargetSlot   int
	ReplacedPage int
	FramesBefore string
	FramesAfter  string
	StackAfter   string
}

// MakeStepEntry flattens a record.
func MakeStepEntry(runID string, rec replacement.StepRecord) StepEntry {
	return StepEntry{
		RunID:        runID,
		Step:         rec.Step,
		Page:         int(rec.Page),
		Outcome:      rec.Outcome.String(),
		TargetSlot:   rec.TargetSlot,
		ReplacedPage: int(rec.ReplacedPage),
		FramesBefore: encodePages(rec.FramesBefore),
		FramesAfter:  encodePages(rec.FramesAfter),
		StackAfter:   encodePages(rec.StackAfter),
	}
}

// Record rebuilds the StepRecord from the entry.
func (e StepEntry) Record() (replacement.StepRecord, error) {
	rec := replacement.StepRecord{
		Step:         e.Step,
		Page:         replacement.Page(e.Page),
		TargetSlot:   e.TargetSlot,
		ReplacedPage: replacement.Page(e.ReplacedPage),
	}

	err := rec.Outcome.UnmarshalText([]byte(e.Outcome))
	if err != nil {
		return rec, err
	}

	for _, field := range []struct {
		dst *[]replacement.Page
		src string
	}{
		{&rec.FramesBefore, e.FramesBefore},
		{&rec.FramesAfter, e.FramesAfter},
		{&rec.StackAfter, e.StackAfter},
	} {
		*field.dst, err = decodePages(field.src)
		if err != nil {
			return rec, fmt.Errorf("step %d: %w", e.Step, err)
		}
	}

	return rec, nil
}

func encodePages(pages []replacement.Page) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = p.String()
	}

	return strings.Join(parts, " ")
}

func decodePages(s string) ([]replacement.Page, error) {
	fields := strings.Fields(s)

	pages := make([]replacement.Page, 0, len(fields))
	for _, f := range fields {
		if f == "-" {
			pages = append(pages, replacement.NoPage)
			continue
		}

		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad page %q", f)
		}

		pages = append(pages, replacement.Page(n))
	}

	return pages, nil
}
