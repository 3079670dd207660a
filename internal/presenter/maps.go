// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// Condition is the display label and icon id for a WMO weather code. The icon id is
// rendered as the CSS class "wi wi-<IconID>".
type Condition struct {
	Label  localize.MsgID
	IconID string
}

// UnknownCondition is returned for codes outside the WMO table.
var UnknownCondition = Condition{Label: "Unknown", IconID: "na"}

// wmoConditions maps WMO weather code integers to their descriptions and icons. It is
// only read through LookupCondition.
var wmoConditions = map[int]Condition{
	0: {"Clear Sky", "day-sunny"},

	1: {"Mainly Clear", "day-sunny-overcast"},
	2: {"Partly Cloudy", "day-cloudy"},
	3: {"Overcast", "cloudy"},

	45: {"Fog", "fog"},
	48: {"Rime Fog", "fog"},

	51: {"Light Drizzle", "sprinkle"},
	53: {"Moderate Drizzle", "sprinkle"},
	55: {"Dense Drizzle", "sprinkle"},
	56: {"Freezing Drizzle", "rain-mix"},
	57: {"Freezing Drizzle", "rain-mix"},

	61: {"Slight Rain", "rain"},
	63: {"Moderate Rain", "rain"},
	65: {"Heavy Rain", "rain"},
	66: {"Freezing Rain", "rain-mix"},
	67: {"Freezing Rain", "rain-mix"},

	71: {"Light Snow", "snow"},
	73: {"Moderate Snow", "snow"},
	75: {"Heavy Snow", "snow"},
	77: {"Snow Grains", "snowflake-cold"},

	80: {"Light Rain Showers", "showers"},
	81: {"Moderate Showers", "showers"},
	82: {"Violent Showers", "showers"},
	85: {"Snow Showers", "snow-wind"},
	86: {"Heavy Snow Showers", "snow-wind"},

	95: {"Thunderstorm", "thunderstorm"},
	96: {"Thunderstorm & Hail", "storm-showers"},
	99: {"Thunderstorm & Hail", "storm-showers"},
}

// LookupCondition returns the condition for a WMO weather code. It never fails: unknown
// codes yield UnknownCondition.
func LookupCondition(code int) Condition {
	if cond, ok := wmoConditions[code]; ok {
		return cond
	}
	return UnknownCondition
}

// Background is the page theme derived from a weather code.
type Background string

const (
	BackgroundSunny   Background = "sunny"
	BackgroundRainy   Background = "rainy"
	BackgroundCloudy  Background = "cloudy"
	BackgroundSnowy   Background = "snowy"
	BackgroundThunder Background = "thunder"
	BackgroundFoggy   Background = "foggy"
)

// Codes outside every set, e.g. drizzle or snow grains, fall back to sunny.
var backgroundSets = []struct {
	background Background
	codes      []int
}{
	{BackgroundRainy, []int{61, 63, 65, 80, 81, 82}},
	{BackgroundCloudy, []int{1, 2, 3}},
	{BackgroundSnowy, []int{71, 73, 75, 85, 86}},
	{BackgroundThunder, []int{95, 96, 99}},
	{BackgroundFoggy, []int{45, 48}},
}

// BackgroundFor maps a weather code to its page theme, defaulting to sunny.
func BackgroundFor(code int) Background {
	for _, set := range backgroundSets {
		for _, c := range set.codes {
			if c == code {
				return set.background
			}
		}
	}
	return BackgroundSunny
}

var moonPhaseNames = map[string]localize.MsgID{
	"New Moon":        "New Moon",
	"Waxing Crescent": "Waxing Crescent",
	"First Quarter":   "First Quarter",
	"Waxing Gibbous":  "Waxing Gibbous",
	"Full Moon":       "Full Moon",
	"Waning Gibbous":  "Waning Gibbous",
	"Third Quarter":   "Third Quarter",
	"Waning Crescent": "Waning Crescent",
}
