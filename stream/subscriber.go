// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"fmt"
)

// Subscriber is the receiving end of a stream. OnNext is called zero or
// more times, followed by at most one call to either OnCompleted or OnError.
// Calls are never concurrent.
type Subscriber[T any] interface {
	OnNext(item T)
	OnCompleted()
	OnError(err error)
}

// SubscriberFuncs implements Subscriber with optional callbacks. Nil
// callbacks are skipped.
type SubscriberFuncs[T any] struct {
	Next      func(T)
	Completed func()
	Error     func(error)
}

func (s SubscriberFuncs[T]) OnNext(item T) {
	if s.Next != nil {
		s.Next(item)
	}
}

func (s SubscriberFuncs[T]) OnCompleted() {
	if s.Completed != nil {
		s.Completed()
	}
}

func (s SubscriberFuncs[T]) OnError(err error) {
	if s.Error != nil {
		s.Error(err)
	}
}

type EventKind int

const (
	EventNext EventKind = iota
	EventCompleted
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventNext:
		return "next"
	case EventCompleted:
		return "completed"
	case EventError:
		return "error"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a single notification of a stream: a value, completion or an error.
type Event[T any] struct {
	Kind  EventKind
	Value T
	Err   error
}

func NextEvent[T any](item T) Event[T] { return Event[T]{Kind: EventNext, Value: item} }
func CompletedEvent[T any]() Event[T] { return Event[T]{Kind: EventCompleted} }
func ErrorEvent[T any](err error) Event[T] { return Event[T]{Kind: EventError, Err: err} }

func (e Event[T]) IsTerminal() bool {
	return e.Kind != EventNext
}

func (e Event[T]) String() string {
	switch e.Kind {
	case EventNext:
		return fmt.Sprintf("next(%v)", e.Value)
	case EventError:
		return fmt.Sprintf("error(%s)", e.Err)
	}
	return e.Kind.String()
}

// Deliver sends the event to the subscriber.
func (e Event[T]) Deliver(sub Subscriber[T]) {
	switch e.Kind {
	case EventNext:
		sub.OnNext(e.Value)
	case EventCompleted:
		sub.OnCompleted()
	case EventError:
		sub.OnError(e.Err)
	}
}

type SubscriberState int

const (
	StateActive SubscriberState = iota
	StateCompleted
	StateErrored
)

func (s SubscriberState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("SubscriberState(%d)", int(s))
}

// Guarded is a subscriber that enforces the stream protocol on behalf of
// the subscriber it wraps. Once a terminal event has been delivered all
// further calls are ignored.
type Guarded[T any] struct {
	downstream Subscriber[T]
	state      SubscriberState
}

// Guard wraps 'downstream' so that it sees at most one terminal event and
// no values after it.
func Guard[T any](downstream Subscriber[T]) *Guarded[T] {
	if g, ok := downstream.(*Guarded[T]); ok {
		return g
	}
	return &Guarded[T]{downstream: downstream}
}

func (g *Guarded[T]) State() SubscriberState {
	return g.state
}

func (g *Guarded[T]) Active() bool {
	return g.state == StateActive
}

func (g *Guarded[T]) OnNext(item T) {
	if g.state == StateActive {
		g.downstream.OnNext(item)
	}
}

func (g *Guarded[T]) OnCompleted() {
	if g.state == StateActive {
		g.state = StateCompleted
		g.downstream.OnCompleted()
	}
}

func (g *Guarded[T]) OnError(err error) {
	if g.state == StateActive {
		g.state = StateErrored
		g.downstream.OnError(err)
	}
}

// Recorder is a subscriber that keeps every event it receives.
type Recorder[T any] struct {
	events []Event[T]
}

func (r *Recorder[T]) OnNext(item T) { r.events = append(r.events, NextEvent(item)) }
func (r *Recorder[T]) OnCompleted() { r.events = append(r.events, CompletedEvent[T]()) }
func (r *Recorder[T]) OnError(err error) { r.events = append(r.events, ErrorEvent[T](err)) }

// Events returns the recorded events in arrival order.
func (r *Recorder[T]) Events() []Event[T] {
	return r.events
}

// Values returns the values of the recorded next events.
func (r *Recorder[T]) Values() []T {
	values := make([]T, 0, len(r.events))
	for _, e := range r.events {
		if e.Kind == EventNext {
			values = append(values, e.Value)
		}
	}
	return values
}

// Terminals returns the recorded completion and error events.
func (r *Recorder[T]) Terminals() []Event[T] {
	var terminals []Event[T]
	for _, e := range r.events {
		if e.IsTerminal() {
			terminals = append(terminals, e)
		}
	}
	return terminals
}
