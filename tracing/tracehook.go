package tracing

import (
	"fmt"
	"reflect"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/rs/xid"
)

// CollectTrace lets the writer record every run of the domain, usually a
// replacement.Simulator.
func CollectTrace(domain hooking.Hookable, w StepWriter) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.w == w {
			panic(fmt.Sprintf("domain already traced by %s", reflect.TypeOf(w)))
		}
	}

	domain.AcceptHook(&traceHook{w: w, newID: func() string {
		return xid.New().String()
	}})
}

// A traceHook forwards steps to a StepWriter. Each run gets its own ID.
type traceHook struct {
	w     StepWriter
	newID func() string

	runID string
}

// Func calls the writer when the hook is triggered.
func (h *traceHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case replacement.HookPosStep:
		h.w.WriteStep(h.currentRunID(), ctx.Item.(replacement.StepRecord))
	case replacement.HookPosHistoryDone:
		h.finishRun(ctx.Item.(replacement.History))
	}
}

func (h *traceHook) currentRunID() string {
	if h.runID == "" {
		h.runID = h.newID()
	}

	return h.runID
}

func (h *traceHook) finishRun(history replacement.History) {
	totals := history.Totals()

	refs := history.References()
	h.w.WriteRun(RunEntry{
		RunID:      h.currentRunID(),
		FrameCount: history.FrameCount,
		References: encodePages(refs),
		Steps:      history.Len(),
		Hits:       totals.Hits,
		Faults:     totals.Faults,
	})
	h.w.Flush()

	h.runID = ""
}
