// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package cli

import (
	"github.com/spf13/cobra"

	"github.com/joamaki/rxlift/internal/config"
	"github.com/joamaki/rxlift/stream"
)

func newOnlyGreaterCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "only-greater [values...]",
		Short: "Emit each value that is greater than every value before it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, "only-greater",
				func(_ *config.Config, src stream.Observable[int]) stream.Observable[int] {
					return stream.Lift(src, stream.OnlyGreater[int]())
				})
		},
	}
}

func newFilterCommand(opts *rootOptions) *cobra.Command {
	var below int
	cmd := &cobra.Command{
		Use:   "filter [values...]",
		Short: "Emit the values below a limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, "filter",
				func(cfg *config.Config, src stream.Observable[int]) stream.Observable[int] {
					limit := cfg.Below
					if cmd.Flags().Changed("below") {
						limit = below
					}
					return stream.Lift(src, stream.PredicateFilter(func(x int) bool { return x < limit }))
				})
		},
	}
	cmd.Flags().IntVar(&below, "below", 5, "exclusive upper bound of the emitted values")
	return cmd
}

func newScanMaxCommand(opts *rootOptions) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "scan-max [values...]",
		Short: "Emit the running maximum with repeats removed",
		Long: `Computes the running maximum with Scan and removes repeated values.
Maxima equal to the smallest int are dropped like only-greater drops them,
so the output matches only-greater, but is built from several stages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, "scan-max",
				func(_ *config.Config, src stream.Observable[int]) stream.Observable[int] {
					running := stream.Lift(
						stream.Scan(src, stream.MinValue[int](), stream.Max[int]),
						stream.PredicateFilter(func(x int) bool { return x > stream.MinValue[int]() }))
					if global {
						return stream.Lift(running, stream.Distinct[int]())
					}
					return stream.Lift(running, stream.DistinctUntilChanged[int]())
				})
		},
	}
	cmd.Flags().BoolVar(&global, "distinct", false, "drop every value seen before, not just adjacent repeats")
	return cmd
}
