// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package traceserde

// Bounded reports whether containers have a fixed capacity.
const Bounded = false

// list is a growable sequence.
type list[T any] struct {
	items []T
}

func newList[T any](capacity int) list[T] {
	if capacity <= 0 {
		return list[T]{}
	}
	return list[T]{items: make([]T, 0, capacity)}
}

func (l *list[T]) push(item T) error {
	l.items = append(l.items, item)
	return nil
}

func (l *list[T]) slice() []T { return l.items }

func (l *list[T]) len() int { return len(l.items) }
