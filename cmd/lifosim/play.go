package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/hooking"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/playback"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/render"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Auto-play the history in the terminal, one step per interval.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.play(cmd)
		},
	}

	addInputFlags(cmd)
	cmd.Flags().Duration("interval", 0,
		"Time between steps (default from LIFOSIM_INTERVAL, or 1s)")

	return cmd
}

func (a *app) play(cmd *cobra.Command) error {
	refs, frames, err := a.readInput(cmd)
	if err != nil {
		return err
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	if !cmd.Flags().Changed("interval") {
		interval = a.cfg.Interval
	}

	h, err := a.simulatorBuilder(frames).Build("Simulator").Run(refs)
	if err != nil {
		return err
	}

	player := playback.NewPlayer(h)
	player.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
		if ctx.Pos != playback.HookPosCursorMoved {
			return
		}

		rec, ok := ctx.Detail.(replacement.StepRecord)
		if !ok {
			return
		}

		fmt.Fprintf(a.out, "%s\n%s\n%s%s\n\n",
			render.LogLine(rec),
			render.FramesView(rec),
			render.StackView(rec),
			render.Summary(h.Stats(ctx.Item.(int))))
	}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err = player.Play(ctx, interval)
	if err != nil {
		return err
	}

	player.Wait()

	if !player.AtEnd() {
		a.logger.WithField("step", player.Current()+1).Info("playback interrupted")
		return nil
	}

	_, err = fmt.Fprintln(a.out, render.Summary(h.Totals()))

	return err
}
