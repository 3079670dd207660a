// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weathercard/internal/weather"
)

// Card is the display model of one weather record. Every field is already formatted.
type Card struct {
	Location    string     `json:"location"`
	IconClass   string     `json:"icon_class,omitempty"`
	IconURL     string     `json:"icon_url,omitempty"`
	Condition   string     `json:"condition"`
	Temperature string     `json:"temperature"`
	Wind        string     `json:"wind"`
	Humidity    string     `json:"humidity,omitempty"`
	Background  Background `json:"background,omitempty"`
	Unit        Unit       `json:"unit"`
	UpdatedAt   string     `json:"updated_at"`

	Sunrise   string `json:"sunrise,omitempty"`
	Sunset    string `json:"sunset,omitempty"`
	MoonPhase string `json:"moon_phase,omitempty"`
}

// Presenter turns weather records into cards.
type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	astronomy bool
}

func New(localizer *spreak.Localizer, astronomy bool) (*Presenter, error) {
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}

	return &Presenter{
		localizer: localizer,
		humanizer: collection.CreateHumanizer(localizer.Language()),
		astronomy: astronomy,
	}, nil
}

// Card renders rec in the given unit. The result depends only on its arguments.
func (p *Presenter) Card(rec *weather.Record, unit Unit) Card {
	card := Card{
		Location:    rec.Location,
		Temperature: unit.FormatTemperature(rec.Temperature),
		Wind:        fmt.Sprintf("%s: %s km/h", p.localizer.Get("Wind Speed"), formatNumber(rec.WindSpeed)),
		Unit:        unit,
		UpdatedAt:   p.humanizer.FormatTime(rec.ObservedAt, humanize.TimeFormat),
	}

	if rec.HasProviderCondition() {
		card.Condition = rec.Condition.Value()
		if iconURL, ok := rec.IconURL.Get(); ok && iconURL != "" {
			card.IconURL = iconURL
		}
	} else {
		cond := LookupCondition(rec.ConditionCode)
		card.Condition = p.localizer.Get(cond.Label)
		card.IconClass = "wi wi-" + cond.IconID
		card.Background = BackgroundFor(rec.ConditionCode)
	}
	if humidity, ok := rec.Humidity.Get(); ok {
		card.Humidity = fmt.Sprintf("%s: %s%%", p.localizer.Get("Humidity"), formatNumber(humidity))
	}

	if p.astronomy && !rec.Coordinates.IsZero() {
		day := rec.ObservedAt
		rise, set := sunrise.SunriseSunset(rec.Coordinates.Lat, rec.Coordinates.Lon, day.Year(), day.Month(),
			day.Day())
		if !rise.IsZero() && !set.IsZero() {
			card.Sunrise = p.humanizer.FormatTime(rise, humanize.TimeFormat)
			card.Sunset = p.humanizer.FormatTime(set, humanize.TimeFormat)
		}
		phase := moonphase.New(day).PhaseName()
		if msg, ok := moonPhaseNames[phase]; ok {
			card.MoonPhase = p.localizer.Get(msg)
		}
	}

	return card
}

// formatNumber prints a value in its shortest form, e.g. 12 or 12.5.
func formatNumber(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
