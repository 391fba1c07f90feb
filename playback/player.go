// Package playback drives a cursor through a precomputed replacement history.
// It never recomputes anything; it only decides which step is shown.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
)

// NotStarted is the cursor value before the first step is shown.
const NotStarted = -1

var (
	// ErrEmptyHistory is returned when playing a history without steps.
	ErrEmptyHistory = errors.New("history has no step to play")

	// ErrInterval is returned when the auto-play interval is not positive.
	ErrInterval = errors.New("invalid auto-play interval")
)

// HookPosCursorMoved is triggered after the cursor changes. The hook item is
// the new cursor and the detail is the StepRecord shown, if any.
var HookPosCursorMoved = &hooking.HookPos{Name: "CursorMoved"}

// HookPosPlaybackDone is triggered when auto-play reaches the last step.
var HookPosPlaybackDone = &hooking.HookPos{Name: "PlaybackDone"}

// A Player owns the cursor over a read-only history. It is safe for
// concurrent use. Hooks must be registered before playback starts and must
// not call Pause or Wait.
type Player struct {
	*hooking.HookableBase

	lock    sync.Mutex
	history replacement.History
	current int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer creates a player positioned before the first step of h.
func NewPlayer(h replacement.History) *Player {
	return &Player{
		HookableBase: hooking.NewHookableBase(),
		history:      h,
		current:      NotStarted,
	}
}

// Load stops auto-play, replaces the history, and rewinds the cursor.
func (p *Player) Load(h replacement.History) {
	p.Pause()

	p.lock.Lock()
	p.history = h
	p.current = NotStarted
	p.lock.Unlock()

	p.cursorMoved(NotStarted, replacement.StepRecord{}, false)
}

// History returns the history being played.
func (p *Player) History() replacement.History {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.history
}

// Current returns the cursor, NotStarted before the first step.
func (p *Player) Current() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.current
}

// Step returns the record under the cursor.
func (p *Player) Step() (replacement.StepRecord, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.history.At(p.current)
}

// Stats counts hits and faults up to and including the cursor.
func (p *Player) Stats() replacement.Stats {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.history.Stats(p.current)
}

// AtEnd tells if the last step is shown. An empty history is always at its
// end.
func (p *Player) AtEnd() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.atEndLocked()
}

func (p *Player) atEndLocked() bool {
	return p.current >= p.history.Len()-1
}

// Next moves the cursor one step forward. It returns false at the end.
func (p *Player) Next() bool {
	return p.move(func(cur int) int { return cur + 1 })
}

// Prev moves the cursor one step back. Once started, the cursor does not go
// back before the first step; use Reset for that.
func (p *Player) Prev() bool {
	return p.move(func(cur int) int {
		if cur <= 0 {
			return cur
		}

		return cur - 1
	})
}

// Seek moves the cursor to i, clamped to [NotStarted, Len-1].
func (p *Player) Seek(i int) bool {
	return p.move(func(int) int { return i })
}

// Reset stops auto-play and rewinds the cursor to NotStarted.
func (p *Player) Reset() {
	p.Pause()
	p.Seek(NotStarted)
}

func (p *Player) move(target func(cur int) int) bool {
	p.lock.Lock()

	next := p.clamp(target(p.current))
	if next == p.current {
		p.lock.Unlock()
		return false
	}

	p.current = next
	rec, ok := p.history.At(next)
	p.lock.Unlock()

	p.cursorMoved(next, rec, ok)

	return true
}

func (p *Player) clamp(i int) int {
	if i < NotStarted {
		return NotStarted
	}

	if i > p.history.Len()-1 {
		return p.history.Len() - 1
	}

	return i
}

func (p *Player) cursorMoved(cur int, rec replacement.StepRecord, ok bool) {
	ctx := hooking.HookCtx{
		Domain: p,
		Pos:    HookPosCursorMoved,
		Item:   cur,
	}

	if ok {
		ctx.Detail = rec.Clone()
	}

	p.InvokeHook(ctx)
}

// Play starts auto-play, advancing the cursor once per interval until the
// last step, until ctx is cancelled, or until Pause is called. Playing from
// the last step starts over. Calling Play while playing does nothing.
func (p *Player) Play(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInterval, interval)
	}

	p.lock.Lock()

	if p.history.Len() == 0 {
		p.lock.Unlock()
		return ErrEmptyHistory
	}

	if p.cancel != nil {
		p.lock.Unlock()
		return nil
	}

	restart := p.atEndLocked()
	if restart {
		p.current = NotStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.lock.Unlock()

	if restart {
		p.cursorMoved(NotStarted, replacement.StepRecord{}, false)
	}

	go p.autoPlay(ctx, interval, done)

	return nil
}

func (p *Player) autoPlay(
	ctx context.Context,
	interval time.Duration,
	done chan struct{},
) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.stopPlayback(done)
			return
		case <-ticker.C:
			p.Next()

			if p.AtEnd() {
				p.stopPlayback(done)
				p.InvokeHook(hooking.HookCtx{
					Domain: p,
					Pos:    HookPosPlaybackDone,
					Item:   p.Current(),
				})

				return
			}
		}
	}
}

func (p *Player) stopPlayback(done chan struct{}) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.done != done {
		return
	}

	p.cancel()
	p.cancel = nil
	p.done = nil
}

// IsPlaying tells if auto-play is running.
func (p *Player) IsPlaying() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.cancel != nil
}

// Pause stops auto-play and waits for it to finish. The cursor stays where it
// is.
func (p *Player) Pause() {
	p.lock.Lock()
	cancel, done := p.cancel, p.done
	p.lock.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Wait blocks until auto-play stops.
func (p *Player) Wait() {
	p.lock.Lock()
	done := p.done
	p.lock.Unlock()

	if done == nil {
		return
	}

	<-done
}
