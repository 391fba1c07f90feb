package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/datarecording"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/tracing"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <database.sqlite3>",
		Short: "List recorded runs, or print one with --run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.replay(cmd, args[0])
		},
	}

	cmd.Flags().String("run", "", "ID of the run to print")
	cmd.Flags().Int("offset", 0, "Number of runs to skip when listing")
	cmd.Flags().Int("limit", 0, "Maximum number of runs to list, 0 for all")

	return cmd
}

func (a *app) replay(cmd *cobra.Command, filename string) error {
	reader, err := datarecording.NewReader(filename)
	if err != nil {
		return err
	}
	defer reader.Close()

	runID, _ := cmd.Flags().GetString("run")
	if runID != "" {
		h, err := tracing.ReadHistory(cmd.Context(), reader, runID)
		if err != nil {
			return err
		}

		return printHistory(a.out, h)
	}

	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")

	runs, total, err := tracing.ListRuns(cmd.Context(), reader, offset, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tFRAMES\tSTEPS\tHITS\tFAULTS\tREFERENCES")

	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.RunID, r.FrameCount, r.Steps, r.Hits, r.Faults, r.References)
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	if len(runs) > 0 && len(runs) < total {
		_, err = fmt.Fprintf(a.out, "Showing runs %d-%d of %d\n",
			offset+1, offset+len(runs), total)
	}

	return err
}
