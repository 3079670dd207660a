// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package terminal renders weather cards as text boxes for the command line.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/presenter"
)

// View writes cards and errors to an io.Writer. The output is append-only, so ClearOutput
// does nothing.
type View struct {
	mu        sync.Mutex
	out       io.Writer
	localizer *spreak.Localizer
	loading   bool
	failed    bool
}

var _ controller.View = (*View)(nil)

func New(out io.Writer, localizer *spreak.Localizer) *View {
	return &View{out: out, localizer: localizer}
}

func (v *View) SetLoading(loading bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if loading && !v.loading {
		_, _ = fmt.Fprintln(v.out, v.localizer.Get("Loading..."))
	}
	v.loading = loading
}

func (v *View) ClearOutput() {}

func (v *View) ShowCard(card presenter.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failed = false
	_, _ = io.WriteString(v.out, Box(v.lines(card)))
}

func (v *View) ShowError(style controller.ErrorStyle, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failed = true
	if style == controller.ErrorStyleAlert {
		_, _ = io.WriteString(v.out, Box([]string{"! " + message}))
		return
	}
	_, _ = fmt.Fprintln(v.out, message)
}

// Failed reports whether the last output was an error.
func (v *View) Failed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.failed
}

func (v *View) lines(card presenter.Card) []string {
	lines := []string{
		card.Location,
		"",
		fmt.Sprintf("%s  %s", card.Temperature, card.Condition),
		card.Wind,
	}
	if card.Humidity != "" {
		lines = append(lines, card.Humidity)
	}
	if card.Sunrise != "" {
		lines = append(lines, fmt.Sprintf("%s: %s  %s: %s", v.localizer.Get("Sunrise"), card.Sunrise,
			v.localizer.Get("Sunset"), card.Sunset))
	}
	if card.MoonPhase != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", v.localizer.Get("Moon phase"), card.MoonPhase))
	}
	if card.UpdatedAt != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", v.localizer.Get("Updated"), card.UpdatedAt))
	}
	return lines
}

// Box draws a frame around lines. Column widths are measured in terminal cells, so wide
// and combining characters stay aligned.
func Box(lines []string) string {
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}

	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, line := range lines {
		sb.WriteString("│ " + runewidth.FillRight(line, width) + " │\n")
	}
	sb.WriteString("└" + strings.Repeat("─", width+2) + "┘\n")
	return sb.String()
}
