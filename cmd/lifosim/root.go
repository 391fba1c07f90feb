package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every subcommand shares once the root command has read
// the configuration.
type app struct {
	out    io.Writer
	cfg    config
	logger *logrus.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:    out,
		cfg:    defaultConfig(),
		logger: logrus.New(),
	}
	a.logger.SetOutput(errOut)

	rootCmd := &cobra.Command{
		Use:   "lifosim",
		Short: "lifosim simulates LIFO page replacement step by step.",
		Long: `lifosim simulates the LIFO page replacement algorithm over a ` +
			`page reference string and a fixed number of frames. The whole ` +
			`history is computed once and can be printed, played back in the ` +
			`terminal, recorded, or served over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().String("env", ".env",
		"File with LIFOSIM_* variables to load before reading the environment")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Log every simulated step")

	rootCmd.AddCommand(
		newRunCmd(a),
		newPlayCmd(a),
		newServeCmd(a),
		newReplayCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env")

	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.SetLevel(cfg.LogLevel)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		a.logger.SetLevel(logrus.DebugLevel)
	}

	return nil
}
