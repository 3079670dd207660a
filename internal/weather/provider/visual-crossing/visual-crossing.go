// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package visualcrossing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/http"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/vartype"
	"github.com/wneessen/weathercard/internal/weather"
)

const (
	name        = "visual-crossing"
	apiEndpoint = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline/"
	apiTimeout  = time.Second * 10

	// IconBaseURL is the static asset location of the icon names returned by the API.
	IconBaseURL = "https://raw.githubusercontent.com/visualcrossing/WeatherIcons/main/PNG/1st%20Set%20-%20Color/"
)

// VisualCrossing fetches current conditions by city name from the Visual Crossing timeline API.
type VisualCrossing struct {
	apikey string
	log    *logger.Logger
	http   *http.Client
}

type response struct {
	Address           string  `json:"address"`
	ResolvedAddress   string  `json:"resolvedAddress"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Timezone          string  `json:"timezone"`
	CurrentConditions *struct {
		DatetimeEpoch int64    `json:"datetimeEpoch"`
		Conditions    string   `json:"conditions"`
		Temp          float64  `json:"temp"`
		WindSpeed     float64  `json:"windspeed"`
		Humidity      *float64 `json:"humidity"`
		Icon          string   `json:"icon"`
	} `json:"currentConditions"`
}

func New(http *http.Client, log *logger.Logger, apikey string) (*VisualCrossing, error) {
	if http == nil {
		return nil, errors.New("http client is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if apikey == "" {
		return nil, errors.New("API key is required")
	}

	return &VisualCrossing{apikey: apikey, http: http, log: log}, nil
}

func (v *VisualCrossing) Name() string {
	return name
}

func (v *VisualCrossing) GetWeather(ctx context.Context, city string) (*weather.Record, error) {
	res := new(response)

	query := url.Values{}
	query.Set("unitGroup", "metric")
	query.Set("key", v.apikey)
	query.Set("contentType", "json")

	code, err := v.http.GetWithTimeout(ctx, apiEndpoint+url.PathEscape(city), res, query, nil, apiTimeout)
	if code != 0 && !http.IsSuccess(code) {
		return nil, fmt.Errorf("%w: Visual Crossing API returned response code %d for %q", weather.ErrNotFound,
			code, city)
	}
	if err != nil {
		return nil, weather.Classify(fmt.Errorf("failed to retrieve weather data from Visual Crossing API: %w", err))
	}
	if res.CurrentConditions == nil {
		return nil, fmt.Errorf("%w: Visual Crossing API response is missing currentConditions", weather.ErrParse)
	}

	current := res.CurrentConditions
	rec := &weather.Record{
		Provider:    name,
		Query:       city,
		Location:    res.Address,
		Coordinates: geocode.Coordinate{Lat: res.Latitude, Lon: res.Longitude},
		ObservedAt:  time.Now(),
		Temperature: current.Temp,
		WindSpeed:   current.WindSpeed,
		Condition:   vartype.NewVariable(current.Conditions),
		Icon:        vartype.NewVariable(current.Icon),
	}
	if current.DatetimeEpoch > 0 {
		rec.ObservedAt = time.Unix(current.DatetimeEpoch, 0)
	}
	if current.Icon != "" {
		rec.IconURL = vartype.NewVariable(IconURL(current.Icon))
	}
	if current.Humidity != nil {
		rec.Humidity = vartype.NewVariable(*current.Humidity)
	}

	return rec, nil
}

// IconURL returns the static asset URL for an icon name supplied by the API.
func IconURL(icon string) string {
	return IconBaseURL + url.PathEscape(icon) + ".png"
}
