// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"time"

	"github.com/zoobzio/clockz"
	"golang.org/x/time/rate"
)

// Map applies a function onto an observable.
func Map[A, B any](src Observable[A], apply func(A) B) Observable[B] {
	return FuncObservable[B](
		func(ctx context.Context, next func(B) error) error {
			return src.Observe(
				ctx,
				func(a A) error { return next(apply(a)) })
		})
}

// Filter keeps only the elements for which the filter function returns true.
// Equivalent to Lift(src, PredicateFilter(filter)).
func Filter[T any](src Observable[T], filter func(T) bool) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			return src.Observe(
				ctx,
				func(x T) error {
					if filter(x) {
						return next(x)
					}
					return nil
				})
		})
}

// Scan takes an initial state and a step function that is called on each element with the
// previous state and returns an observable of the states returned by the step function.
// The state is kept per Observe() call.
func Scan[In, Out any](src Observable[In], init Out, step func(Out, In) Out) Observable[Out] {
	return FuncObservable[Out](
		func(ctx context.Context, next func(Out) error) error {
			prev := init
			return src.Observe(
				ctx,
				func(x In) error {
					prev = step(prev, x)
					return next(prev)
				})
		})
}

// OnNext calls the supplied function on each emitted item.
func OnNext[T any](src Observable[T], f func(T)) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			return src.Observe(
				ctx,
				func(item T) error {
					f(item)
					return next(item)
				})
		})
}

// Take takes 'n' items from the source 'src'.
// The context given to source observable is cancelled after 'n' items
// have been emitted and the resulting cancelled error is ignored.
func Take[T any](n int, src Observable[T]) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			if n <= 0 {
				return nil
			}
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			remaining := n
			err := src.Observe(ctx,
				func(item T) error {
					if remaining == 0 {
						return nil
					}
					if err := next(item); err != nil {
						return err
					}
					remaining--
					if remaining == 0 {
						cancel()
					}
					return nil
				})

			if remaining == 0 && errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
}

// Throttle limits the rate at which items are emitted.
func Throttle[T any](src Observable[T], ratePerSecond float64, burst int) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			limiter := rate.NewLimiter(rate.Limit(ratePerSecond), burst)
			return src.Observe(
				ctx,
				func(item T) error {
					if err := limiter.Wait(ctx); err != nil {
						return err
					}
					return next(item)
				})
		})
}

type Timestamped[T any] struct {
	Time  time.Time
	Value T
}

// Timestamp pairs each item with the time it was observed according to 'clock'.
func Timestamp[T any](src Observable[T], clock clockz.Clock) Observable[Timestamped[T]] {
	return Map(src, func(item T) Timestamped[T] {
		return Timestamped[T]{Time: clock.Now(), Value: item}
	})
}
