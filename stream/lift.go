// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
)

// Operator is a stream stage expressed as a subscriber decorator: given the
// downstream subscriber it returns the subscriber that upstream pushes into.
//
// Apply is called once per subscription. Any state the stage needs belongs
// to the returned subscriber, so the same Operator can be lifted onto any
// number of streams.
type Operator[T any] interface {
	Apply(downstream Subscriber[T]) Subscriber[T]
}

// OperatorFunc implements Operator with a function.
type OperatorFunc[T any] func(downstream Subscriber[T]) Subscriber[T]

func (f OperatorFunc[T]) Apply(downstream Subscriber[T]) Subscriber[T] {
	return f(downstream)
}

// errLiftStopped stops the source after downstream has terminated without
// an error of its own.
var errLiftStopped = errors.New("lift: downstream terminated")

// Lift inserts 'op' between 'src' and the observer. On each Observe() the
// operator is applied to a subscriber feeding 'next' and the result is
// subscribed to 'src'. Completion of 'src' is delivered as OnCompleted
// and a failure as OnError.
//
// Observe() returns the error the observer was terminated with, or nil if
// it completed. If 'next' fails the source is stopped and that error is
// returned.
func Lift[T any](src Observable[T], op Operator[T]) Observable[T] {
	return FuncObservable[T](
		func(ctx context.Context, next func(T) error) error {
			sink := &nextSink[T]{next: next}
			upstream := op.Apply(sink)

			err := src.Observe(
				ctx,
				func(item T) error {
					upstream.OnNext(item)
					if sink.done {
						if sink.err != nil {
							return sink.err
						}
						return errLiftStopped
					}
					return nil
				})

			switch {
			case errors.Is(err, errLiftStopped):
			case err != nil:
				upstream.OnError(err)
			default:
				upstream.OnCompleted()
			}
			return sink.err
		})
}

// nextSink adapts the 'next' function of Observe() into the terminal
// subscriber of a lifted stream.
type nextSink[T any] struct {
	next func(T) error
	err  error
	done bool
}

func (s *nextSink[T]) OnNext(item T) {
	if s.done {
		return
	}
	if err := s.next(item); err != nil {
		s.err = err
		s.done = true
	}
}

func (s *nextSink[T]) OnCompleted() {
	s.done = true
}

func (s *nextSink[T]) OnError(err error) {
	if !s.done {
		s.err = err
		s.done = true
	}
}

// Subscribe observes 'src' with 'sub': every item is delivered with OnNext
// followed by exactly one OnCompleted or OnError. Cancelling 'ctx' ends the
// stream with OnError(ctx.Err()). The error the stream ended with is
// returned.
func Subscribe[T any](ctx context.Context, src Observable[T], sub Subscriber[T]) error {
	g := Guard(sub)
	err := src.Observe(
		ctx,
		func(item T) error {
			g.OnNext(item)
			return nil
		})
	if err != nil {
		g.OnError(err)
	} else {
		g.OnCompleted()
	}
	return err
}
