// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNoResults is returned by a Geocoder when the lookup yields no place.
	ErrNoResults = errors.New("no location found")

	// ErrInvalidResponse is returned when a provider answered with data that cannot be used.
	ErrInvalidResponse = errors.New("invalid geocoder response")
)

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsZero reports whether the coordinate was never set.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// Location is the result of a forward geocoding lookup.
type Location struct {
	Coordinate
	// Name is the normalized "locality, country" display name.
	Name string
	// DisplayName is the full place description returned by the provider.
	DisplayName string
}

// Geocoder resolves a free-text place query into a Location.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) (Location, error)
}

// ShortName reduces a comma-separated place description to its first and last segment,
// e.g. "Paris, Île-de-France, France" becomes "Paris, France".
func ShortName(description string) string {
	parts := strings.Split(description, ",")
	first := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return first
	}
	return first + ", " + strings.TrimSpace(parts[len(parts)-1])
}
