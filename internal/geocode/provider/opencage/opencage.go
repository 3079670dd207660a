// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/http"
)

const (
	APIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	APITimeout  = time.Second * 10
	name        = "opencage"
)

type OpenCage struct {
	apikey string
	http   *http.Client
	lang   language.Tag
}

type Response struct {
	Results      []Result `json:"results"`
	Status       Status   `json:"status"`
	TotalResults int      `json:"total_results"`
}

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Result struct {
	Components  Components `json:"components"`
	DisplayName string     `json:"formatted"`
	Geometry    Geometry   `json:"geometry"`
}

type Components struct {
	NormalizedCity string `json:"_normalized_city"`
	Country        string `json:"country"`
}

type Geometry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

func New(client *http.Client, lang language.Tag, apikey string) *OpenCage {
	return &OpenCage{
		apikey: apikey,
		lang:   lang,
		http:   client,
	}
}

func (o *OpenCage) Name() string {
	return name
}

// Search forward geocodes a place name. The display name prefers the normalized city and
// country components and falls back to the formatted address.
func (o *OpenCage) Search(ctx context.Context, city string) (geocode.Location, error) {
	var response Response

	query := url.Values{}
	query.Set("key", o.apikey)
	query.Set("q", city)
	query.Set("limit", "1")
	query.Set("no_annotations", "1")
	query.Set("no_record", "1")
	query.Set("language", o.lang.String())

	code, err := o.http.GetWithTimeout(ctx, APIEndpoint, &response, query, nil, APITimeout)
	if err != nil {
		return geocode.Location{}, fmt.Errorf("failed to retrieve location details from OpenCage API: %w", err)
	}
	if !http.IsSuccess(code) {
		return geocode.Location{}, fmt.Errorf("OpenCage API returned non-positive response code %d: %s", code,
			response.Status.Message)
	}
	if len(response.Results) < 1 {
		return geocode.Location{}, fmt.Errorf("%w for city %q", geocode.ErrNoResults, city)
	}

	result := response.Results[0]
	location := geocode.Location{
		Coordinate:  geocode.Coordinate{Lat: result.Geometry.Lat, Lon: result.Geometry.Lon},
		Name:        geocode.ShortName(result.DisplayName),
		DisplayName: result.DisplayName,
	}
	if result.Components.NormalizedCity != "" && result.Components.Country != "" {
		location.Name = result.Components.NormalizedCity + ", " + result.Components.Country
	}
	if !location.Valid() {
		return geocode.Location{}, fmt.Errorf("%w: coordinates out of range: %f, %f", geocode.ErrInvalidResponse,
			location.Lat, location.Lon)
	}

	return location, nil
}
