package replacement

// A History is the complete, ordered list of steps computed for one reference
// string. It is never modified after the simulator returns it.
type History struct {
	FrameCount int          `json:"frame_count"`
	Steps      []StepRecord `json:"steps"`
}

// Len returns the number of steps.
func (h History) Len() int {
	return len(h.Steps)
}

// At returns the step at index i, 0-based.
func (h History) At(i int) (StepRecord, bool) {
	if i < 0 || i >= len(h.Steps) {
		return StepRecord{}, false
	}

	return h.Steps[i], true
}

// References returns the page reference string the history was built from.
func (h History) References() []Page {
	refs := make([]Page, len(h.Steps))
	for i, s := range h.Steps {
		refs[i] = s.Page
	}

	return refs
}

// Clone returns a history that shares no slice with h.
func (h History) Clone() History {
	if h.Steps == nil {
		return h
	}

	steps := make([]StepRecord, len(h.Steps))
	for i, s := range h.Steps {
		steps[i] = s.Clone()
	}
	h.Steps = steps

	return h
}

// Stats counts hits and faults over the steps with index 0 to upTo,
// inclusive. A negative upTo selects no step and an upTo past the end selects
// all of them.
func (h History) Stats(upTo int) Stats {
	s := Stats{}

	if upTo >= len(h.Steps) {
		upTo = len(h.Steps) - 1
	}

	for i := 0; i <= upTo; i++ {
		if h.Steps[i].Outcome == Hit {
			s.Hits++
		} else {
			s.Faults++
		}
	}

	return s
}

// Totals counts hits and faults over the whole history.
func (h History) Totals() Stats {
	return h.Stats(len(h.Steps) - 1)
}

// Stats summarizes the outcomes of a prefix of a history.
type Stats struct {
	Hits   int `json:"hits"`
	Faults int `json:"faults"`
}

// Total returns the number of references counted.
func (s Stats) Total() int {
	return s.Hits + s.Faults
}

// HitRatio returns hits over total references, 0 when nothing was counted.
func (s Stats) HitRatio() float64 {
	if s.Total() == 0 {
		return 0
	}

	return float64(s.Hits) / float64(s.Total())
}

// FaultRatio returns faults over total references, 0 when nothing was
// counted.
func (s Stats) FaultRatio() float64 {
	if s.Total() == 0 {
		return 0
	}

	return float64(s.Faults) / float64(s.Total())
}

// HitRatioPercent returns the hit ratio in percent.
func (s Stats) HitRatioPercent() float64 {
	return s.HitRatio() * 100
}
