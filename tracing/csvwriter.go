package tracing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVStepWriter stores steps into a CSV file. Run summaries are not kept.
type CSVStepWriter struct {
	path string
	file *os.File
	csv  *csv.Writer

	entries    []StepEntry
	bufferSize int
}

// NewCSVStepWriter creates a new CSVStepWriter. Init must be called before
// writing.
func NewCSVStepWriter(path string) *CSVStepWriter {
	return &CSVStepWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the csv file. The file must not exist yet.
func (w *CSVStepWriter) Init() {
	if w.path == "" {
		w.path = "lifosim_trace_" + xid.New().String()
	}

	filename := w.path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	w.file = file
	w.csv = csv.NewWriter(file)

	w.mustWrite([]string{
		"RunID", "Step", "Page", "Outcome", "TargetSlot", "ReplacedPage",
		"FramesBefore", "FramesAfter", "StackAfter",
	})

	atexit.Register(func() { w.Close() })
}

// Filename returns the file the writer writes into.
func (w *CSVStepWriter) Filename() string {
	return w.path + ".csv"
}

// WriteStep buffers a step.
func (w *CSVStepWriter) WriteStep(runID string, rec replacement.StepRecord) {
	w.entries = append(w.entries, MakeStepEntry(runID, rec))
	if len(w.entries) >= w.bufferSize {
		w.Flush()
	}
}

// WriteRun does nothing, the CSV file only has steps.
func (w *CSVStepWriter) WriteRun(RunEntry) {}

// Flush writes the buffered steps to the file.
func (w *CSVStepWriter) Flush() {
	if w.csv == nil {
		return
	}

	for _, e := range w.entries {
		w.mustWrite([]string{
			e.RunID,
			strconv.Itoa(e.Step),
			strconv.Itoa(e.Page),
			e.Outcome,
			strconv.Itoa(e.TargetSlot),
			strconv.Itoa(e.ReplacedPage),
			e.FramesBefore,
			e.FramesAfter,
			e.StackAfter,
		})
	}

	w.entries = nil

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		panic(err)
	}
}

// Close flushes and closes the file.
func (w *CSVStepWriter) Close() error {
	if w.file == nil {
		return nil
	}

	w.Flush()

	err := w.file.Close()
	w.file = nil
	w.csv = nil

	return err
}

func (w *CSVStepWriter) mustWrite(record []string) {
	err := w.csv.Write(record)
	if err != nil {
		panic(err)
	}
}
