// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 10
	name              = "osm-nominatim"
)

type Nominatim struct {
	http     *http.Client
	endpoint string
}

type SearchResult struct {
	APILat      string `json:"lat"`
	APILon      string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func New(client *http.Client) *Nominatim {
	return &Nominatim{
		http:     client,
		endpoint: APISearchEndpoint,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search looks up a city by name and returns the first match.
func (n *Nominatim) Search(ctx context.Context, city string) (geocode.Location, error) {
	var result []SearchResult
	var err error

	query := url.Values{}
	query.Set("city", city)
	query.Set("format", "json")
	query.Set("limit", "1")

	if _, err = n.http.GetWithTimeout(ctx, n.endpoint, &result, query, nil, APITimeout); err != nil {
		return geocode.Location{}, fmt.Errorf("failed to fetch location details from Nominatim API: %w", err)
	}
	if len(result) < 1 {
		return geocode.Location{}, fmt.Errorf("%w for city %q", geocode.ErrNoResults, city)
	}

	location := geocode.Location{
		Name:        geocode.ShortName(result[0].DisplayName),
		DisplayName: result[0].DisplayName,
	}
	location.Lat, err = strconv.ParseFloat(result[0].APILat, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("%w: failed to parse latitude from Nominatim API response: %w",
			geocode.ErrInvalidResponse, err)
	}
	location.Lon, err = strconv.ParseFloat(result[0].APILon, 64)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("%w: failed to parse longitude from Nominatim API response: %w",
			geocode.ErrInvalidResponse, err)
	}
	if !location.Valid() {
		return geocode.Location{}, fmt.Errorf("%w: coordinates out of range: %f, %f", geocode.ErrInvalidResponse,
			location.Lat, location.Lon)
	}

	return location, nil
}
