// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/http"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/weather"
)

const (
	name        = "open-meteo"
	apiEndpoint = "https://api.open-meteo.com/v1/forecast"
	apiTimeout  = time.Second * 10
)

// OpenMeteo resolves the query through a geocoder and fetches the current conditions for the
// resulting coordinates.
type OpenMeteo struct {
	coder geocode.Geocoder
	log   *logger.Logger
	http  *http.Client
}

type resTime struct {
	time.Time
}

type response struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	CurrentWeather *struct {
		Time          resTime `json:"time"`
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
	} `json:"current_weather"`
}

func New(http *http.Client, log *logger.Logger, coder geocode.Geocoder) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if coder == nil {
		return nil, fmt.Errorf("geocoder is required")
	}

	return &OpenMeteo{coder: coder, http: http, log: log}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) GetWeather(ctx context.Context, query string) (*weather.Record, error) {
	loc, err := o.coder.Search(ctx, query)
	if err != nil {
		return nil, weather.Classify(fmt.Errorf("failed to resolve location with %s: %w", o.coder.Name(), err))
	}
	o.log.Debug("location resolved", slog.String("query", query), slog.String("location", loc.Name),
		slog.Float64("lat", loc.Lat), slog.Float64("lon", loc.Lon))

	res := new(response)
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	params.Set("current_weather", "true")

	if _, err = o.http.GetWithTimeout(ctx, apiEndpoint, res, params, nil, apiTimeout); err != nil {
		return nil, weather.Classify(fmt.Errorf("failed to retrieve weather data from Open-Meteo API: %w", err))
	}
	if res.CurrentWeather == nil {
		return nil, fmt.Errorf("%w: Open-Meteo API response is missing current_weather", weather.ErrParse)
	}

	observed := res.CurrentWeather.Time.Time
	if observed.IsZero() {
		observed = time.Now()
	}
	return &weather.Record{
		Provider:      name,
		Query:         query,
		Location:      loc.Name,
		Coordinates:   loc.Coordinate,
		ObservedAt:    observed,
		Temperature:   res.CurrentWeather.Temperature,
		ConditionCode: res.CurrentWeather.WeatherCode,
		WindSpeed:     res.CurrentWeather.WindSpeed,
	}, nil
}

func (r *resTime) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' {
		return fmt.Errorf("invalid time format: %s", string(b))
	}

	apiTime, err := time.Parse("2006-01-02T15:04", string(b[1:len(b)-1]))
	if err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}
	r.Time = apiTime

	return nil
}
