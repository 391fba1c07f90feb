package replacement

import (
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
	"github.com/sirupsen/logrus"
)

// StepLogger is a hook that writes every computed step to a logger.
type StepLogger struct {
	logger logrus.FieldLogger
}

// NewStepLogger returns a StepLogger that writes into logger at debug level.
func NewStepLogger(logger logrus.FieldLogger) *StepLogger {
	return &StepLogger{logger: logger}
}

// Func logs the step carried by the hook context.
func (h *StepLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosStep {
		return
	}

	rec, ok := ctx.Item.(StepRecord)
	if !ok {
		return
	}

	fields := logrus.Fields{
		"step":    rec.Step,
		"page":    rec.Page,
		"outcome": rec.Outcome.String(),
		"stack":   rec.StackAfter,
	}

	if rec.Outcome == Fault {
		fields["slot"] = rec.TargetSlot
		fields["replaced"] = rec.ReplacedPage.String()
	}

	h.logger.WithFields(fields).Debug("page reference served")
}
