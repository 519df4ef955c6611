// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joamaki/rxlift/internal/config"
	"github.com/joamaki/rxlift/stream"
)

// stage builds the stream under test on top of the source.
type stage func(cfg *config.Config, src stream.Observable[int]) stream.Observable[int]

// Result is the outcome of a run as printed by the commands.
type Result struct {
	Operator string `yaml:"operator"`
	Input    []int  `yaml:"input"`
	Output   []int  `yaml:"output"`
	Terminal string `yaml:"terminal"`
	Error    string `yaml:"error,omitempty"`
}

func (o *rootOptions) run(cmd *cobra.Command, args []string, name string, build stage) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	input, err := parseInput(args, cfg.Input)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg).WithField("command", name)

	var src stream.Observable[int] = stream.FromSlice(input)
	if cfg.FailAfter >= 0 {
		src = stream.FailAfter(input[:min(cfg.FailAfter, len(input))], ErrInjected)
	}

	reg := prometheus.NewRegistry()
	counter, err := stream.NewEventCounter(reg)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	if cfg.Metrics {
		src = stream.Lift(src, stream.Instrument[int](counter, "source"))
	}

	out := stream.Lift(build(cfg, src), stream.Trace[int](log, name))
	if cfg.Metrics {
		out = stream.Lift(out, stream.Instrument[int](counter, name))
	}

	log.WithField("items", len(input)).Debug("Starting run")
	res := collect(name, input, stream.Materialize(cmd.Context(), out))

	if err := writeResult(cmd.OutOrStdout(), cfg.Format, res); err != nil {
		return err
	}
	if cfg.Metrics {
		return writeMetrics(cmd.OutOrStdout(), reg)
	}
	return nil
}

func collect(name string, input []int, events []stream.Event[int]) Result {
	res := Result{Operator: name, Input: input, Output: []int{}}
	for _, e := range events {
		switch e.Kind {
		case stream.EventNext:
			res.Output = append(res.Output, e.Value)
		case stream.EventCompleted:
			res.Terminal = e.Kind.String()
		case stream.EventError:
			res.Terminal = e.Kind.String()
			res.Error = e.Err.Error()
		}
	}
	return res
}

func writeResult(w io.Writer, format string, res Result) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return enc.Close()
	}

	output := make([]string, len(res.Output))
	for i, x := range res.Output {
		output[i] = fmt.Sprint(x)
	}
	fmt.Fprintf(w, "output: %s\n", strings.Join(output, " "))
	if res.Error != "" {
		fmt.Fprintf(w, "terminal: %s: %s\n", res.Terminal, res.Error)
	} else {
		fmt.Fprintf(w, "terminal: %s\n", res.Terminal)
	}
	return nil
}

// writeMetrics prints the gathered counters in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
