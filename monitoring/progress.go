package monitoring

import (
	"sync"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/playback"
	"github.com/rs/xid"
)

// A ProgressBar tracks how far playback has gone through a history.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// NewProgressBar creates a bar with nothing finished.
func NewProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// progressHook keeps a bar in sync with a player's cursor.
type progressHook struct {
	bar *ProgressBar
}

func (h *progressHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != playback.HookPosCursorMoved {
		return
	}

	player := ctx.Domain.(*playback.Player)
	cursor := ctx.Item.(int)

	h.bar.Lock()
	defer h.bar.Unlock()

	h.bar.Total = uint64(player.History().Len())
	h.bar.Finished = uint64(cursor + 1)
}
