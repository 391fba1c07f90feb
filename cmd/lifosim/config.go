package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/Minhal-Zubair/LIFO-PAGE-REPLACEMENT-ALGO-SIMULATOR/refstring"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variables read by lifosim. Flags take precedence over them.
const (
	envFrames    = "LIFOSIM_FRAMES"
	envMaxFrames = "LIFOSIM_MAX_FRAMES"
	envInterval  = "LIFOSIM_INTERVAL"
	envPort      = "LIFOSIM_PORT"
	envLogLevel  = "LIFOSIM_LOG_LEVEL"
)

type config struct {
	Frames    int
	MaxFrames int
	Interval  time.Duration
	Port      int
	LogLevel  logrus.Level
}

func defaultConfig() config {
	return config{
		Frames:    3,
		MaxFrames: refstring.DefaultMaxFrames,
		Interval:  time.Second,
		Port:      0,
		LogLevel:  logrus.InfoLevel,
	}
}

// loadConfig reads envFile, if it exists, into the environment without
// overriding variables already set, then builds the config from the
// environment.
func loadConfig(envFile string) (config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	c := defaultConfig()

	err := readInt(envFrames, &c.Frames)
	if err != nil {
		return c, err
	}

	err = readInt(envMaxFrames, &c.MaxFrames)
	if err != nil {
		return c, err
	}

	err = readInt(envPort, &c.Port)
	if err != nil {
		return c, err
	}

	if s, ok := os.LookupEnv(envInterval); ok {
		c.Interval, err = time.ParseDuration(s)
		if err != nil {
			return c, fmt.Errorf("%s: %w", envInterval, err)
		}
	}

	if s, ok := os.LookupEnv(envLogLevel); ok {
		c.LogLevel, err = logrus.ParseLevel(s)
		if err != nil {
			return c, fmt.Errorf("%s: %w", envLogLevel, err)
		}
	}

	if c.MaxFrames < 1 {
		return c, fmt.Errorf("%s must be positive, got %d",
			envMaxFrames, c.MaxFrames)
	}

	return c, nil
}

func readInt(name string, dst *int) error {
	s, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, s)
	}

	*dst = n

	return nil
}
