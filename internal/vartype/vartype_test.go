// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import "testing"

func TestVariable(t *testing.T) {
	t.Run("zero value is unset", func(t *testing.T) {
		var v VarFloat64
		if v.IsSet() {
			t.Error("expected zero value to be unset")
		}
		if v.String() != "n/a" {
			t.Errorf("expected placeholder, got %q", v.String())
		}
		if _, ok := v.Get(); ok {
			t.Error("expected Get to report unset value")
		}
	})
	t.Run("new variable is set", func(t *testing.T) {
		v := NewVariable("Partially cloudy")
		got, ok := v.Get()
		if !ok || got != "Partially cloudy" {
			t.Errorf("expected set value %q, got %q (set: %t)", "Partially cloudy", got, ok)
		}
		if v.String() != "Partially cloudy" {
			t.Errorf("unexpected string representation: %q", v.String())
		}
	})
	t.Run("set zero value is still set", func(t *testing.T) {
		v := NewVariable(0.0)
		if !v.IsSet() {
			t.Error("expected explicitly set zero value to be set")
		}
		if v.String() != "0" {
			t.Errorf("expected %q, got %q", "0", v.String())
		}
	})
}
