package replacement

import "github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"

// A Builder can build Simulators.
type Builder struct {
	frameCount   int
	victimFinder VictimFinder
	hooks        []hooking.Hook
}

// MakeBuilder returns a new Builder with three frames and LIFO eviction.
func MakeBuilder() Builder {
	return Builder{
		frameCount:   3,
		victimFinder: NewLIFOVictimFinder(),
	}
}

// WithFrameCount sets the number of frames. Frame counts below one are
// reported by Run, not by the builder.
func (b Builder) WithFrameCount(n int) Builder {
	b.frameCount = n
	return b
}

// WithVictimFinder sets the policy that picks the page to evict.
func (b Builder) WithVictimFinder(f VictimFinder) Builder {
	b.victimFinder = f
	return b
}

// WithHook registers a hook on every simulator built.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(append([]hooking.Hook(nil), b.hooks...), h)
	return b
}

// Build creates a Simulator with the given name.
func (b Builder) Build(name string) *Simulator {
	s := &Simulator{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		frameCount:   b.frameCount,
		victimFinder: b.victimFinder,
	}

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	return s
}
