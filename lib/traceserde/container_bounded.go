// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build tracecodec_bounded

package traceserde

import "fmt"

// Bounded reports whether containers have a fixed capacity.
const Bounded = true

// MaxEntries is the capacity of every owned container: field maps and
// field name lists.
const MaxEntries = 32

// list is a fixed-capacity sequence stored inline.
type list[T any] struct {
	items [MaxEntries]T
	count int
}

func newList[T any](int) list[T] { return list[T]{} }

func (l *list[T]) push(item T) error {
	if l.count == MaxEntries {
		return fmt.Errorf("%d entries: %w", MaxEntries, ErrCapacity)
	}
	l.items[l.count] = item
	l.count++
	return nil
}

func (l *list[T]) slice() []T { return l.items[:l.count] }

func (l *list[T]) len() int { return l.count }
