// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/vartype"
)

// Provider is implemented by each weather API backend. GetWeather resolves a free-text
// location query into the current conditions for that place.
type Provider interface {
	Name() string
	GetWeather(ctx context.Context, query string) (*Record, error)
}

// Record is the normalized current weather for one location. Temperature is always
// stored in degree Celsius and wind speed in km/h.
type Record struct {
	Provider    string
	Query       string
	Location    string
	Coordinates geocode.Coordinate
	ObservedAt  time.Time

	Temperature   float64
	ConditionCode int
	WindSpeed     float64

	// Set only by providers that describe the condition themselves.
	Condition vartype.VarString
	Icon      vartype.VarString
	IconURL   vartype.VarString
	Humidity  vartype.VarFloat64
}

// HasProviderCondition reports whether the provider supplied condition text and icon, in
// which case the numeric condition code is not meaningful.
func (r *Record) HasProviderCondition() bool {
	return r.Condition.IsSet()
}
