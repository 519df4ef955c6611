// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"github.com/sirupsen/logrus"
)

// Trace logs every event passing through it at debug level and forwards
// it unchanged. Errors are logged at warning level.
func Trace[T any](log logrus.FieldLogger, name string) Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &tracer[T]{
			Guarded: Guard(downstream),
			log:     log.WithField("operator", name),
		}
	})
}

type tracer[T any] struct {
	*Guarded[T]
	log logrus.FieldLogger
}

func (t *tracer[T]) OnNext(item T) {
	if t.Active() {
		t.log.WithFields(logrus.Fields{"event": EventNext, "value": item}).Debug("Forwarding item")
		t.Guarded.OnNext(item)
	}
}

func (t *tracer[T]) OnCompleted() {
	if t.Active() {
		t.log.WithField("event", EventCompleted).Debug("Stream completed")
		t.Guarded.OnCompleted()
	}
}

func (t *tracer[T]) OnError(err error) {
	if t.Active() {
		t.log.WithField("event", EventError).WithError(err).Warn("Stream failed")
		t.Guarded.OnError(err)
	}
}
