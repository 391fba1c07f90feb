// Package render draws replacement histories as text: a reference table, a
// stack widget and log lines. It reads records and never changes them.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
)

// FrameLabel returns the user-facing name of a slot, Frame 1 for slot 0.
func FrameLabel(slot int) string {
	return fmt.Sprintf("Frame %d", slot+1)
}

// Table writes the reference table for steps 0 to upTo inclusive. Each
// column is a step; the rows are the reference, every frame after the step,
// and the outcome. A negative upTo writes the row headers only.
func Table(w io.Writer, h replacement.History, upTo int) error {
	if upTo >= h.Len() {
		upTo = h.Len() - 1
	}

	if upTo < -1 {
		upTo = -1
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	steps := h.Steps[:upTo+1]

	row := []string{"Reference"}
	for _, s := range steps {
		row = append(row, s.Page.String())
	}
	writeRow(tw, row)

	for slot := 0; slot < h.FrameCount; slot++ {
		row = []string{FrameLabel(slot)}
		for _, s := range steps {
			cell := s.FramesAfter[slot].String()
			if s.Outcome == replacement.Fault && s.TargetSlot == slot {
				cell += "*"
			}
			row = append(row, cell)
		}
		writeRow(tw, row)
	}

	row = []string{"Result"}
	for _, s := range steps {
		row = append(row, outcomeLetter(s.Outcome))
	}
	writeRow(tw, row)

	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
}

func outcomeLetter(o replacement.Outcome) string {
	if o == replacement.Hit {
		return "H"
	}

	return "F"
}

// StackView draws the replacement stack after the step, top first.
func StackView(rec replacement.StepRecord) string {
	if len(rec.StackAfter) == 0 {
		return "(empty stack)\n"
	}

	var b strings.Builder
	for i := len(rec.StackAfter) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "| %3s |", rec.StackAfter[i])
		if i == len(rec.StackAfter)-1 {
			b.WriteString(" <- top")
		}
		b.WriteString("\n")
	}
	b.WriteString("+-----+\n")

	return b.String()
}

// FramesView lists the frames after the step, marking the slot that was
// just filled.
func FramesView(rec replacement.StepRecord) string {
	parts := make([]string, len(rec.FramesAfter))
	for slot, p := range rec.FramesAfter {
		parts[slot] = fmt.Sprintf("%s: %s", FrameLabel(slot), p)
		if rec.Outcome == replacement.Fault && rec.TargetSlot == slot {
			parts[slot] += " (new)"
		}
	}

	return strings.Join(parts, "  ")
}

// LogLine describes a step in one sentence.
func LogLine(rec replacement.StepRecord) string {
	prefix := fmt.Sprintf("Step %d: page %s -> %s", rec.Step, rec.Page, rec.Outcome)

	switch {
	case rec.Outcome == replacement.Hit:
		return prefix
	case rec.Evicted():
		return fmt.Sprintf("%s, replaced page %s in %s",
			prefix, rec.ReplacedPage, FrameLabel(rec.TargetSlot))
	default:
		return fmt.Sprintf("%s, loaded into empty %s",
			prefix, FrameLabel(rec.TargetSlot))
	}
}

// Log writes the log lines of steps 0 to upTo inclusive.
func Log(w io.Writer, h replacement.History, upTo int) error {
	for i := 0; i <= upTo && i < h.Len(); i++ {
		_, err := fmt.Fprintln(w, LogLine(h.Steps[i]))
		if err != nil {
			return err
		}
	}

	return nil
}

// Summary formats hit and fault counts with the hit ratio.
func Summary(s replacement.Stats) string {
	return fmt.Sprintf("Hits: %d  Faults: %d  Hit ratio: %.2f%%",
		s.Hits, s.Faults, s.HitRatioPercent())
}

type totalsJSON struct {
	Hits     int     `json:"hits"`
	Faults   int     `json:"faults"`
	HitRatio float64 `json:"hit_ratio"`
}

type historyJSON struct {
	FrameCount int                      `json:"frame_count"`
	Steps      []replacement.StepRecord `json:"steps"`
	Totals     totalsJSON               `json:"totals"`
}

// WriteJSON writes the history with its totals as indented JSON.
func WriteJSON(w io.Writer, h replacement.History) error {
	totals := h.Totals()

	doc := historyJSON{
		FrameCount: h.FrameCount,
		Steps:      h.Steps,
		Totals: totalsJSON{
			Hits:     totals.Hits,
			Faults:   totals.Faults,
			HitRatio: totals.HitRatio(),
		},
	}

	if doc.Steps == nil {
		doc.Steps = []replacement.StepRecord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
