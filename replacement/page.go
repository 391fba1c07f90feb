// Package replacement simulates LIFO page replacement over a fixed set of
// memory frames and produces a replayable, step-by-step history.
package replacement

import (
	"errors"
	"strconv"
)

// ErrInvalidInput is returned when the simulator is asked to run with a frame
// count below one or with a negative page reference.
var ErrInvalidInput = errors.New("invalid input")

// A Page identifies a requested page. Valid pages are non-negative.
type Page int

// NoPage marks an empty frame slot, or the absence of an evicted page.
const NoPage Page = -1

// IsEmpty tells if p stands for an empty slot.
func (p Page) IsEmpty() bool {
	return p < 0
}

func (p Page) String() string {
	if p.IsEmpty() {
		return "-"
	}

	return strconv.Itoa(int(p))
}

// Outcome classifies how a single page reference was served.
type Outcome int

// The two possible outcomes of a page reference.
const (
	Hit Outcome = iota
	Fault
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "HIT"
	case Fault:
		return "FAULT"
	default:
		return "Outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// MarshalText encodes the outcome as its name.
func (o Outcome) MarshalText() ([]byte, error) {
	switch o {
	case Hit, Fault:
		return []byte(o.String()), nil
	default:
		return nil, errors.New("unknown outcome " + strconv.Itoa(int(o)))
	}
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HIT":
		*o = Hit
	case "FAULT":
		*o = Fault
	default:
		return errors.New("unknown outcome " + strconv.Quote(string(text)))
	}

	return nil
}

// A StepRecord captures what happened when serving one page reference. All
// slices are private copies owned by the record.
type StepRecord struct {
	Step         int     `json:"step"`
	Page         Page    `json:"page"`
	FramesBefore []Page  `json:"frames_before"`
	FramesAfter  []Page  `json:"frames_after"`
	StackAfter   []Page  `json:"stack_after"`
	Outcome      Outcome `json:"outcome"`

	// TargetSlot is the slot that received the page on a fault, -1 on a hit.
	TargetSlot int `json:"target_slot"`

	// ReplacedPage is the evicted page, NoPage if the fault used an empty
	// slot or the step was a hit.
	ReplacedPage Page `json:"replaced_page"`
}

// IsHit tells if the reference was already resident.
func (r StepRecord) IsHit() bool {
	return r.Outcome == Hit
}

// Evicted tells if serving this reference pushed another page out.
func (r StepRecord) Evicted() bool {
	return r.Outcome == Fault && !r.ReplacedPage.IsEmpty()
}

// StackTop returns the most recently loaded resident page after the step.
func (r StepRecord) StackTop() (Page, bool) {
	if len(r.StackAfter) == 0 {
		return NoPage, false
	}

	return r.StackAfter[len(r.StackAfter)-1], true
}

// Clone returns a record that shares no slice with r.
func (r StepRecord) Clone() StepRecord {
	r.FramesBefore = clonePages(r.FramesBefore)
	r.FramesAfter = clonePages(r.FramesAfter)
	r.StackAfter = clonePages(r.StackAfter)

	return r
}

func clonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}

	dup := make([]Page, len(pages))
	copy(dup, pages)

	return dup
}
