// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package vartype provides values that remember whether a weather provider supplied them.
package vartype

import (
	"fmt"
)

type (
	// VarFloat64 is a float64 value with initialization tracking.
	VarFloat64 = Variable[float64]

	// VarString is a string value with initialization tracking.
	VarString = Variable[string]
)

// Variable holds a value and tracks whether it has been set.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable returns a Variable that is set to value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{value: value, isset: true}
}

// Get returns the value and whether it was set.
func (v Variable[T]) Get() (T, bool) {
	return v.value, v.isset
}

// Value returns the value, which is the zero value of T when unset.
func (v Variable[T]) Value() T {
	return v.value
}

// IsSet reports whether the value was supplied.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String renders the value, or "n/a" when it was never supplied.
func (v Variable[T]) String() string {
	if !v.isset {
		return "n/a"
	}
	return fmt.Sprint(v.value)
}
