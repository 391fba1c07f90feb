package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/monitoring"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/playback"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation over HTTP until interrupted.",
		Long: `serve starts an HTTP server that shows the simulation and ` +
			`accepts control requests (next, prev, play, pause, load). ` +
			`If --refs or --random is given, that string is loaded first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd)
		},
	}

	addInputFlags(cmd)
	cmd.Flags().IntP("port", "p", 0,
		"Port to listen on (default from LIFOSIM_PORT, or random)")
	cmd.Flags().Bool("open", false, "Open the server in the default browser")

	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	h := replacement.History{FrameCount: a.cfg.Frames}

	refsGiven := cmd.Flags().Changed("refs") || cmd.Flags().Changed("random")
	if refsGiven {
		refs, frames, err := a.readInput(cmd)
		if err != nil {
			return err
		}

		h, err = a.simulatorBuilder(frames).Build("Simulator").Run(refs)
		if err != nil {
			return err
		}
	}

	port, _ := cmd.Flags().GetInt("port")
	if !cmd.Flags().Changed("port") {
		port = a.cfg.Port
	}

	player := playback.NewPlayer(h)
	m := monitoring.NewMonitor(player).
		WithLogger(a.logger).
		WithPortNumber(port).
		WithMaxFrames(a.cfg.MaxFrames).
		WithDefaultInterval(a.cfg.Interval).
		WithSimulatorBuilder(a.simulatorBuilder(a.cfg.Frames))

	url, err := m.StartServer()
	if err != nil {
		return err
	}

	open, _ := cmd.Flags().GetBool("open")
	if open {
		m.OpenInBrowser(url)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return m.Shutdown(shutdownCtx)
}
