// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"errors"
	"fmt"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/http"
)

var (
	// ErrNotFound indicates an empty or unknown location.
	ErrNotFound = errors.New("location not found")

	// ErrNetwork indicates a failed request or an unsuccessful response.
	ErrNetwork = errors.New("weather request failed")

	// ErrParse indicates a malformed or unexpected response body.
	ErrParse = errors.New("malformed weather response")
)

// Classify wraps err into the matching error category. Errors that already carry a
// category are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNetwork), errors.Is(err, ErrParse):
		return err
	case errors.Is(err, geocode.ErrNoResults):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, http.ErrDecodeJSON), errors.Is(err, geocode.ErrInvalidResponse):
		return fmt.Errorf("%w: %w", ErrParse, err)
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
}
