// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "rxlift"
	labelOperator    = "operator"
	labelEvent       = "event"
)

// NewEventCounter creates the counter used by Instrument and registers it
// with 'reg' if it is non-nil.
func NewEventCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Number of stream events observed, by operator and event kind.",
		},
		[]string{labelOperator, labelEvent})
	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// Instrument counts the events passing through it in 'events' under the
// given operator name and forwards them unchanged.
func Instrument[T any](events *prometheus.CounterVec, name string) Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &instrumented[T]{
			Guarded:   Guard(downstream),
			next:      events.WithLabelValues(name, EventNext.String()),
			completed: events.WithLabelValues(name, EventCompleted.String()),
			errored:   events.WithLabelValues(name, EventError.String()),
		}
	})
}

type instrumented[T any] struct {
	*Guarded[T]
	next, completed, errored prometheus.Counter
}

func (m *instrumented[T]) OnNext(item T) {
	if m.Active() {
		m.next.Inc()
		m.Guarded.OnNext(item)
	}
}

func (m *instrumented[T]) OnCompleted() {
	if m.Active() {
		m.completed.Inc()
		m.Guarded.OnCompleted()
	}
}

func (m *instrumented[T]) OnError(err error) {
	if m.Active() {
		m.errored.Inc()
		m.Guarded.OnError(err)
	}
}
