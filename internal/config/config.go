// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const configEnv = "WEATHERCARD"

const (
	WeatherOpenMeteo      = "open-meteo"
	WeatherVisualCrossing = "visual-crossing"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Server struct {
		Listen       string        `fig:"listen" default:"127.0.0.1:8080"`
		ReadTimeout  time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout time.Duration `fig:"write_timeout" default:"20s"`
	} `fig:"server"`

	Weather struct {
		// Allowed values: open-meteo, visual-crossing
		Provider string `fig:"provider" default:"open-meteo"`
		APIKey   string `fig:"apikey"`
	} `fig:"weather"`

	GeoCoder struct {
		// Allowed values: nominatim, opencage
		Provider string `fig:"provider" default:"nominatim"`
		APIKey   string `fig:"apikey"`
	} `fig:"geocoder"`

	Display struct {
		// Allowed values: celsius, fahrenheit
		Unit      string `fig:"unit" default:"celsius"`
		Astronomy bool   `fig:"astronomy"`
	} `fig:"display"`

	Intervals struct {
		// Zero disables the scheduled refresh
		Refresh time.Duration `fig:"refresh"`
	} `fig:"intervals"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}

	c.Weather.Provider = strings.ToLower(c.Weather.Provider)
	switch c.Weather.Provider {
	case WeatherOpenMeteo:
	case WeatherVisualCrossing:
		if c.Weather.APIKey == "" {
			return fmt.Errorf("weather provider %s requires an API key", c.Weather.Provider)
		}
	default:
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}

	c.Display.Unit = strings.ToLower(c.Display.Unit)
	if c.Display.Unit != "celsius" && c.Display.Unit != "fahrenheit" {
		return fmt.Errorf("invalid temperature unit: %s", c.Display.Unit)
	}
	if c.Intervals.Refresh < 0 {
		return fmt.Errorf("invalid refresh interval: %s", c.Intervals.Refresh)
	}
	if c.Intervals.Refresh > 0 && c.Intervals.Refresh < time.Minute {
		return fmt.Errorf("refresh interval must be at least 1m, got: %s", c.Intervals.Refresh)
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server listen address must not be empty")
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
