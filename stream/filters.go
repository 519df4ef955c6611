// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"cmp"
	"math"
	"reflect"
)

//
// Filtering operators to use with Lift().
//

// PredicateFilter forwards only the items for which 'pred' returns true.
// Completion and errors are forwarded as is.
func PredicateFilter[T any](pred func(T) bool) Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &predicateFilter[T]{Guarded: Guard(downstream), pred: pred}
	})
}

type predicateFilter[T any] struct {
	*Guarded[T]
	pred func(T) bool
}

func (f *predicateFilter[T]) OnNext(item T) {
	if f.Active() && f.pred(item) {
		f.Guarded.OnNext(item)
	}
}

// OnlyGreater forwards an item only if it is strictly greater than all the
// items forwarded before it, e.g. it emits each new running maximum.
// The running maximum starts at MinValue[T]().
func OnlyGreater[T cmp.Ordered]() Operator[T] {
	return OnlyGreaterThan(MinValue[T]())
}

// OnlyGreaterThan is OnlyGreater with the running maximum starting at 'floor'.
func OnlyGreaterThan[T cmp.Ordered](floor T) Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &onlyGreater[T]{Guarded: Guard(downstream), maxSoFar: floor}
	})
}

type onlyGreater[T cmp.Ordered] struct {
	*Guarded[T]
	maxSoFar T
}

func (f *onlyGreater[T]) OnNext(item T) {
	if f.Active() && item > f.maxSoFar {
		f.maxSoFar = item
		f.Guarded.OnNext(item)
	}
}

// MinValue returns the smallest value representable by T: the most negative
// integer for signed integers, negative infinity for floats and the zero
// value for unsigned integers and strings.
func MinValue[T cmp.Ordered]() T {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(-1 << (rv.Type().Bits() - 1))
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(math.Inf(-1))
	}
	return v
}

// Max returns the larger of 'a' and 'b'. Meant as the step function for Scan.
func Max[T cmp.Ordered](a, b T) T {
	if b > a {
		return b
	}
	return a
}

// Distinct forwards the first occurrence of each item.
func Distinct[T comparable]() Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &distinct[T]{Guarded: Guard(downstream), seen: make(map[T]struct{})}
	})
}

type distinct[T comparable] struct {
	*Guarded[T]
	seen map[T]struct{}
}

func (f *distinct[T]) OnNext(item T) {
	if !f.Active() {
		return
	}
	if _, ok := f.seen[item]; ok {
		return
	}
	f.seen[item] = struct{}{}
	f.Guarded.OnNext(item)
}

// DistinctUntilChanged drops items equal to the item immediately before them.
func DistinctUntilChanged[T comparable]() Operator[T] {
	return OperatorFunc[T](func(downstream Subscriber[T]) Subscriber[T] {
		return &distinctUntilChanged[T]{Guarded: Guard(downstream)}
	})
}

type distinctUntilChanged[T comparable] struct {
	*Guarded[T]
	prev    T
	hasPrev bool
}

func (f *distinctUntilChanged[T]) OnNext(item T) {
	if !f.Active() || (f.hasPrev && item == f.prev) {
		return
	}
	f.prev, f.hasPrev = item, true
	f.Guarded.OnNext(item)
}
