package tracing

import (
	"context"
	"fmt"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/datarecording"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
)

// Table names used in recorded databases.
const (
	RunTable  = "runs"
	StepTable = "steps"
)

// DBStepWriter stores runs and steps through a DataRecorder.
type DBStepWriter struct {
	backend datarecording.DataRecorder
}

// NewDBStepWriter creates the run and step tables in the backend.
func NewDBStepWriter(backend datarecording.DataRecorder) *DBStepWriter {
	backend.CreateTable(RunTable, RunEntry{})
	backend.CreateTable(StepTable, StepEntry{})

	return &DBStepWriter{backend: backend}
}

// WriteStep buffers a step.
func (w *DBStepWriter) WriteStep(runID string, rec replacement.StepRecord) {
	w.backend.InsertData(StepTable, MakeStepEntry(runID, rec))
}

// WriteRun buffers a run summary.
func (w *DBStepWriter) WriteRun(run RunEntry) {
	w.backend.InsertData(RunTable, run)
}

// Flush writes buffered rows into the database.
func (w *DBStepWriter) Flush() {
	w.backend.Flush()
}

// ListRuns returns up to limit recorded runs, skipping the first offset, in
// recording order. A limit of 0 returns every run after offset. The total
// number of recorded runs is returned as well.
func ListRuns(
	ctx context.Context,
	reader datarecording.DataReader,
	offset, limit int,
) ([]RunEntry, int, error) {
	if offset < 0 || limit < 0 {
		return nil, 0, fmt.Errorf(
			"offset and limit must not be negative, got %d and %d",
			offset, limit)
	}

	reader.MapTable(RunTable, RunEntry{})

	results, total, err := reader.Query(ctx, RunTable, datarecording.QueryParams{
		OrderBy: "rowid",
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, 0, err
	}

	runs := make([]RunEntry, 0, len(results))
	for _, r := range results {
		runs = append(runs, *r.(*RunEntry))
	}

	return runs, total, nil
}

// ReadHistory rebuilds the history of a recorded run.
func ReadHistory(
	ctx context.Context,
	reader datarecording.DataReader,
	runID string,
) (replacement.History, error) {
	reader.MapTable(RunTable, RunEntry{})
	reader.MapTable(StepTable, StepEntry{})

	runs, _, err := reader.Query(ctx, RunTable, datarecording.QueryParams{
		Where: "RunID = ?",
		Args:  []any{runID},
	})
	if err != nil {
		return replacement.History{}, err
	}

	if len(runs) == 0 {
		return replacement.History{}, fmt.Errorf("run %s not found", runID)
	}

	run := runs[0].(*RunEntry)

	steps, _, err := reader.Query(ctx, StepTable, datarecording.QueryParams{
		Where:   "RunID = ?",
		Args:    []any{runID},
		OrderBy: "Step",
	})
	if err != nil {
		return replacement.History{}, err
	}

	h := replacement.History{
		FrameCount: run.FrameCount,
		Steps:      make([]replacement.StepRecord, 0, len(steps)),
	}

	for _, s := range steps {
		rec, err := s.(*StepEntry).Record()
		if err != nil {
			return replacement.History{}, fmt.Errorf("run %s: %w", runID, err)
		}

		h.Steps = append(h.Steps, rec)
	}

	if h.Len() != run.Steps {
		return replacement.History{}, fmt.Errorf(
			"run %s: expected %d steps, found %d", runID, run.Steps, h.Len())
	}

	return h, nil
}
