// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package cli implements the rxlift command line: it feeds a sequence of
// integers through one of the stream operators and prints what comes out.
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/joamaki/rxlift/internal/config"
)

// ErrInjected is the upstream error raised by --fail-after.
var ErrInjected = errors.New("injected upstream failure")

type rootOptions struct {
	configFile string
	format     string
	logLevel   string
	failAfter  int
	metrics    bool
}

// NewRootCommand builds the rxlift command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rxlift",
		Short: "Run integer sequences through lifted stream operators",
		Long: `rxlift feeds a sequence of integers through a stream operator and
prints the items that come out followed by the terminal event.

Values are given as arguments. Without arguments the 'input' list from the
config file (.rxlift.yaml in the working directory, or --config) is used,
which defaults to 1 2 3 2 5 4 7 5 6 7 8 9 5 6 9 10 9 12.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default .rxlift.yaml in the working directory)")
	flags.StringVar(&opts.format, "format", "", "output format: text or yaml")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.IntVar(&opts.failAfter, "fail-after", config.FailAfterDisabled, "fail the source after emitting this many items")
	flags.BoolVar(&opts.metrics, "metrics", false, "print event counters after the run")

	root.AddCommand(
		newOnlyGreaterCommand(opts),
		newFilterCommand(opts),
		newScanMaxCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the config file and applies the flags that were set
// on the command line on top of it.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile, ".")
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("fail-after") {
		cfg.FailAfter = o.failAfter
	}
	if flags.Changed("metrics") {
		cfg.Metrics = o.metrics
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(cfg.Level())
	return log
}

func parseInput(args []string, fallback []int) ([]int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	input := make([]int, 0, len(args))
	for _, arg := range args {
		x, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", arg, err)
		}
		input = append(input, x)
	}
	return input, nil
}
