// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

package stream

import (
	"testing"
)

//
// Test helpers
//

func assertSlice[T comparable](t *testing.T, what string, expected []T, actual []T) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("assertSlice[%s]: expected %d items, got %d (%v)", what, len(expected), len(actual), actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("assertSlice[%s]: at index %d, expected %v, got %v", what, i, expected[i], actual[i])
		}
	}
}

func assertNil(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error in %s: %s", what, err)
	}
}

// assertEvents compares recorded events. Errors are compared by identity.
func assertEvents[T comparable](t *testing.T, what string, expected []Event[T], actual []Event[T]) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("assertEvents[%s]: expected %d events, got %d (%v)", what, len(expected), len(actual), actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("assertEvents[%s]: at index %d, expected %s, got %s", what, i, expected[i], actual[i])
		}
	}
}

// worked example input and the outputs of the two filtering operators.
var (
	exampleInput       = []int{1, 2, 3, 2, 5, 4, 7, 5, 6, 7, 8, 9, 5, 6, 9, 10, 9, 12}
	exampleOnlyGreater = []int{1, 2, 3, 5, 7, 8, 9, 10, 12}
	exampleBelowFive   = []int{1, 2, 3, 2, 4}
)

func below(n int) func(int) bool {
	return func(x int) bool { return x < n }
}

// eventsOf builds the expected events for 'items' followed by 'terminal'.
func eventsOf[T any](items []T, terminal Event[T]) []Event[T] {
	events := make([]Event[T], 0, len(items)+1)
	for _, item := range items {
		events = append(events, NextEvent(item))
	}
	return append(events, terminal)
}
