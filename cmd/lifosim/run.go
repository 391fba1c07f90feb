package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/datarecording"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/render"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/tracing"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a reference string and print the whole history.",
		Example: `  lifosim run --refs "7 0 1 2 0 3 0 4" --frames 3
  lifosim run --random 20 --frames 4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}

	addInputFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the history as JSON")
	cmd.Flags().String("record", "",
		"Record the run into the SQLite database <record>.sqlite3")
	cmd.Flags().String("trace", "", "Write the steps into the CSV file <trace>.csv")

	return cmd
}

func (a *app) run(cmd *cobra.Command) error {
	refs, frames, err := a.readInput(cmd)
	if err != nil {
		return err
	}

	record, _ := cmd.Flags().GetString("record")
	trace, _ := cmd.Flags().GetString("trace")

	err = checkOutputs(record, trace)
	if err != nil {
		return err
	}

	sim := a.simulatorBuilder(frames).Build("Simulator")

	if record != "" {
		recorder := datarecording.New(record)
		defer recorder.Close()

		tracing.CollectTrace(sim, tracing.NewDBStepWriter(recorder))
	}

	if trace != "" {
		writer := tracing.NewCSVStepWriter(trace)
		writer.Init()
		defer writer.Close()

		tracing.CollectTrace(sim, writer)
	}

	h, err := sim.Run(refs)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return render.WriteJSON(a.out, h)
	}

	return printHistory(a.out, h)
}

// checkOutputs makes sure neither the record database nor the trace file
// exists yet, before any of them is created.
func checkOutputs(record, trace string) error {
	if record != "" {
		err := mustNotExist(record + ".sqlite3")
		if err != nil {
			return err
		}
	}

	if trace != "" {
		return mustNotExist(trace + ".csv")
	}

	return nil
}

func mustNotExist(filename string) error {
	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("%s already exists", filename)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func printHistory(w io.Writer, h replacement.History) error {
	last := h.Len() - 1

	err := render.Table(w, h, last)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)

	err = render.Log(w, h, last)
	if err != nil {
		return err
	}

	if rec, ok := h.At(last); ok {
		fmt.Fprintf(w, "\nFinal stack:\n%s", render.StackView(rec))
	}

	_, err = fmt.Fprintf(w, "\n%s\n", render.Summary(h.Totals()))

	return err
}
