// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"context"
	"errors"
	"testing"
)

// identity forwards everything unchanged.
func identity[T any]() Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return downstream
	})
}

func TestLift(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. identity operator passes items and completion through
	{
		xs, err := ToSlice(ctx, Lift(Range(0, 5), identity[int]()))
		assertNil(t, "case 1", err)
		assertSlice(t, "case 1", []int{0, 1, 2, 3, 4}, xs)
	}

	// 2. upstream error is returned from Observe
	{
		errBoom := errors.New("boom")
		xs, err := ToSlice(ctx, Lift(FailAfter([]int{1, 2}, errBoom), identity[int]()))
		if !errors.Is(err, errBoom) {
			t.Fatalf("case 2: expected %s, got %s", errBoom, err)
		}
		assertSlice(t, "case 2", []int{1, 2}, xs)
	}

	// 3. error from 'next' stops the source and is returned
	{
		errStop := errors.New("stop")
		var seen []int
		err := Lift(Range(0, 100), identity[int]()).Observe(
			ctx,
			func(x int) error {
				seen = append(seen, x)
				if x == 2 {
					return errStop
				}
				return nil
			})
		if !errors.Is(err, errStop) {
			t.Fatalf("case 3: expected %s, got %s", errStop, err)
		}
		assertSlice(t, "case 3", []int{0, 1, 2}, seen)
	}

	// 4. cancelled context
	checkCancelled(t, "case 4", Lift(Range(0, 100), identity[int]()))
}

func TestLiftEarlyCompletion(t *testing.T) {
	// An operator that completes downstream on the first item.
	first := OperatorFunc[int](func(downstream Subscriber[int]) Subscriber[int] {
		g := Guard(downstream)
		return SubscriberFuncs[int]{
			Next: func(x int) {
				g.OnNext(x)
				g.OnCompleted()
			},
			Completed: g.OnCompleted,
			Error:     g.OnError,
		}
	})

	emitted := 0
	src := OnNext(Range(0, 100), func(int) { emitted++ })
	xs, err := ToSlice(context.TODO(), Lift(src, first))
	assertNil(t, "ToSlice", err)
	assertSlice(t, "first", []int{0}, xs)
	if emitted != 1 {
		t.Fatalf("expected source to stop after 1 item, it emitted %d", emitted)
	}
}

func TestLiftAppliesPerObserve(t *testing.T) {
	applied := 0
	op := OperatorFunc[int](func(downstream Subscriber[int]) Subscriber[int] {
		applied++
		return downstream
	})
	src := Lift(Range(0, 3), op)

	for i := 1; i <= 3; i++ {
		assertNil(t, "Discard", Discard(context.TODO(), src))
		if applied != i {
			t.Fatalf("expected operator to be applied %d times, got %d", i, applied)
		}
	}
}

func TestSubscribe(t *testing.T) {
	errBoom := errors.New("boom")

	// 1. values followed by completion
	{
		rec := &Recorder[int]{}
		err := Subscribe(context.TODO(), Range(0, 3), rec)
		assertNil(t, "case 1", err)
		assertEvents(t, "case 1", eventsOf([]int{0, 1, 2}, CompletedEvent[int]()), rec.Events())
	}

	// 2. values followed by an error
	{
		rec := &Recorder[int]{}
		err := Subscribe(context.TODO(), FailAfter([]int{1, 2}, errBoom), rec)
		if !errors.Is(err, errBoom) {
			t.Fatalf("case 2: expected %s, got %s", errBoom, err)
		}
		assertEvents(t, "case 2", eventsOf([]int{1, 2}, ErrorEvent[int](errBoom)), rec.Events())
	}

	// 3. cancellation ends in OnError(ctx.Err())
	{
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := &Recorder[int]{}
		Subscribe(ctx, Stuck[int](), rec)
		terminals := rec.Terminals()
		if len(terminals) != 1 || !errors.Is(terminals[0].Err, context.Canceled) {
			t.Fatalf("case 3: expected a single Canceled error, got %v", terminals)
		}
	}
}

func TestMaterialize(t *testing.T) {
	events := Materialize(context.TODO(), Lift(Empty[int](), identity[int]()))
	assertEvents(t, "Materialize", []Event[int]{CompletedEvent[int]()}, events)
}
