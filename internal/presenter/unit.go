// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"strings"
)

// Unit is the temperature unit used for rendering. Records always carry Celsius.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// ParseUnit parses a unit name case-insensitively.
func ParseUnit(val string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(val))) {
	case Celsius:
		return Celsius, nil
	case Fahrenheit:
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("invalid temperature unit: %q", val)
	}
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Convert converts a Celsius value into u.
func (u Unit) Convert(celsius float64) float64 {
	if u == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// Symbol returns the unit suffix, e.g. "°C".
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// FormatTemperature renders a Celsius value in u with one decimal place.
func (u Unit) FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%.1f%s", u.Convert(celsius), u.Symbol())
}
