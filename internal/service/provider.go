// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/geocode/provider/opencage"
	nominatim "github.com/wneessen/weathercard/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weathercard/internal/http"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/weather"
	openmeteo "github.com/wneessen/weathercard/internal/weather/provider/open-meteo"
	visualcrossing "github.com/wneessen/weathercard/internal/weather/provider/visual-crossing"
)

const (
	msgInlineError = "Error fetching weather data."
	msgAlertError  = "City not found or API error. Please check spelling or try another."
)

func (s *Service) selectGeocodeProvider(conf *config.Config, log *logger.Logger, lang language.Tag) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.GeoCoder.Provider) {
	case "nominatim":
		geocoder = nominatim.New(http.New(log))
	case "opencage":
		if conf.GeoCoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(http.New(log), lang, conf.GeoCoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.GeoCoder.Provider)
	}

	return geocoder, nil
}

func (s *Service) selectWeatherProvider() (provider weather.Provider, err error) {
	switch strings.ToLower(s.config.Weather.Provider) {
	case config.WeatherOpenMeteo:
		geocoder, err := s.selectGeocodeProvider(s.config, s.logger, s.t.Language())
		if err != nil {
			return nil, fmt.Errorf("failed to create geocode provider: %w", err)
		}
		provider, err = openmeteo.New(http.New(s.logger), s.logger, geocoder)
		if err != nil {
			return provider, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	case config.WeatherVisualCrossing:
		provider, err = visualcrossing.New(http.New(s.logger), s.logger, s.config.Weather.APIKey)
		if err != nil {
			return provider, fmt.Errorf("failed to create Visual Crossing weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", s.config.Weather.Provider)
	}
	return provider, nil
}

// frontendOptions returns the error presentation and unit toggle of the configured
// weather provider. Visual Crossing shows an alert and has no toggle.
func (s *Service) frontendOptions() (controller.Options, error) {
	unit, err := presenter.ParseUnit(s.config.Display.Unit)
	if err != nil {
		return controller.Options{}, err
	}
	opts := controller.Options{Unit: unit}

	switch strings.ToLower(s.config.Weather.Provider) {
	case config.WeatherVisualCrossing:
		opts.ErrorStyle = controller.ErrorStyleAlert
		opts.ErrorMessage = s.t.Get(msgAlertError)
	default:
		opts.ErrorStyle = controller.ErrorStyleInline
		opts.ErrorMessage = s.t.Get(msgInlineError)
		opts.UnitToggle = true
	}
	return opts, nil
}
