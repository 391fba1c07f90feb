package replacement

import (
	"fmt"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
)

// HookPosStep is triggered after each step is computed. The hook item is a
// copy of the StepRecord.
var HookPosStep = &hooking.HookPos{Name: "Step"}

// HookPosHistoryDone is triggered once the whole history is computed. The
// hook item is a copy of the History.
var HookPosHistoryDone = &hooking.HookPos{Name: "HistoryDone"}

// A Simulator computes page replacement histories for a fixed number of
// frames. It keeps no state between runs.
type Simulator struct {
	*hooking.HookableBase

	name         string
	frameCount   int
	victimFinder VictimFinder
}

// ComputeHistory runs the LIFO replacement over refs with frameCount frames
// and returns one StepRecord per reference.
func ComputeHistory(refs []Page, frameCount int) (History, error) {
	s := MakeBuilder().WithFrameCount(frameCount).Build("Simulator")
	return s.Run(refs)
}

// Name returns the name of the simulator.
func (s *Simulator) Name() string {
	return s.name
}

// FrameCount returns the number of frames the simulator manages.
func (s *Simulator) FrameCount() int {
	return s.frameCount
}

// Run computes the history for refs. It either returns a complete history
// or an error wrapping ErrInvalidInput, never a partial result.
func (s *Simulator) Run(refs []Page) (History, error) {
	err := s.validate(refs)
	if err != nil {
		return History{}, err
	}

	frames := make([]Page, s.frameCount)
	for i := range frames {
		frames[i] = NoPage
	}

	stack := NewStack(s.frameCount)
	h := History{
		FrameCount: s.frameCount,
		Steps:      make([]StepRecord, 0, len(refs)),
	}

	for i, page := range refs {
		rec := s.step(i, page, frames, stack)
		h.Steps = append(h.Steps, rec)

		s.InvokeHook(hooking.HookCtx{
			Domain: s,
			Pos:    HookPosStep,
			Item:   rec.Clone(),
		})
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosHistoryDone,
		Item:   h.Clone(),
	})

	return h, nil
}

func (s *Simulator) validate(refs []Page) error {
	if s.frameCount < 1 {
		return fmt.Errorf("%w: frame count must be at least 1, got %d",
			ErrInvalidInput, s.frameCount)
	}

	for i, p := range refs {
		if p < 0 {
			return fmt.Errorf("%w: page reference %d at position %d is negative",
				ErrInvalidInput, p, i+1)
		}
	}

	return nil
}

func (s *Simulator) step(
	i int,
	page Page,
	frames []Page,
	stack *Stack,
) StepRecord {
	rec := StepRecord{
		Step:         i + 1,
		Page:         page,
		FramesBefore: clonePages(frames),
		TargetSlot:   -1,
		ReplacedPage: NoPage,
	}

	if slotOf(frames, page) >= 0 {
		rec.Outcome = Hit
	} else {
		rec.Outcome = Fault
		rec.TargetSlot, rec.ReplacedPage = s.load(page, frames, stack)
	}

	rec.FramesAfter = clonePages(frames)
	rec.StackAfter = stack.Snapshot()

	return rec
}

func (s *Simulator) load(
	page Page,
	frames []Page,
	stack *Stack,
) (slot int, victim Page) {
	victim = NoPage

	slot = slotOf(frames, NoPage)
	if slot < 0 {
		var found bool

		victim, found = s.victimFinder.FindVictim(stack)
		if !found {
			panic("all frames are occupied but no victim is found")
		}

		stack.Remove(victim)
		slot = slotOf(frames, victim)
	}

	frames[slot] = page
	stack.Push(page)

	return slot, victim
}

func slotOf(frames []Page, page Page) int {
	for i, p := range frames {
		if p == page {
			return i
		}
	}

	return -1
}
