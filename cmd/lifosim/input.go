package main

import (
	"errors"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/refstring"
	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/replacement"
	"github.com/spf13/cobra"
)

// addInputFlags registers the flags that select the reference string and
// the number of frames.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("refs", "r", "",
		"Page reference string, separated by spaces or commas")
	cmd.Flags().IntP("frames", "f", 0,
		"Number of frames (default from LIFOSIM_FRAMES, or 3)")
	cmd.Flags().Int("random", 0,
		"Generate a random reference string of this length instead of --refs")
	cmd.Flags().Int("max-page", 9, "Largest page of a random reference string")
	cmd.Flags().Int64("seed", 0,
		"Seed of the random reference string (default: current time)")
}

func (a *app) readInput(cmd *cobra.Command) ([]replacement.Page, int, error) {
	frames, _ := cmd.Flags().GetInt("frames")
	if !cmd.Flags().Changed("frames") {
		frames = a.cfg.Frames
	}

	err := refstring.ValidateFrameCount(frames, a.cfg.MaxFrames)
	if err != nil {
		return nil, 0, err
	}

	if cmd.Flags().Changed("random") {
		length, _ := cmd.Flags().GetInt("random")
		maxPage, _ := cmd.Flags().GetInt("max-page")
		seed, _ := cmd.Flags().GetInt64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		refs, err := refstring.Random(length, maxPage, seed)
		if err != nil {
			return nil, 0, err
		}

		a.logger.WithField("refs", refstring.Format(refs)).
			Info("random reference string generated")

		return refs, frames, nil
	}

	text, _ := cmd.Flags().GetString("refs")
	if text == "" {
		return nil, 0, errors.New("either --refs or --random is required")
	}

	refs, err := refstring.Parse(text)
	if err != nil {
		return nil, 0, err
	}

	return refs, frames, nil
}

func (a *app) simulatorBuilder(frames int) replacement.Builder {
	return replacement.MakeBuilder().
		WithFrameCount(frames).
		WithHook(replacement.NewStepLogger(a.logger))
}
