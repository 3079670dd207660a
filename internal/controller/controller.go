// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package controller runs weather lookups submitted by a user and keeps the current record.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/weather"
)

// ErrSuperseded is returned by Submit when a newer submission was started while this one
// was in flight. Its result is discarded.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// State is the state of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrorStyle selects how failures are shown to the user.
type ErrorStyle int

const (
	// ErrorStyleInline replaces the output area with the message.
	ErrorStyleInline ErrorStyle = iota
	// ErrorStyleAlert shows a blocking alert and keeps the output hidden.
	ErrorStyleAlert
)

// View is the output surface a Controller drives.
type View interface {
	SetLoading(loading bool)
	ClearOutput()
	ShowCard(card presenter.Card)
	ShowError(style ErrorStyle, message string)
}

// Options configure the user-facing behavior of a Controller.
type Options struct {
	ErrorStyle   ErrorStyle
	ErrorMessage string
	UnitToggle   bool
	Unit         presenter.Unit
}

// Controller owns the current record and the unit preference.
type Controller struct {
	provider  weather.Provider
	presenter *presenter.Presenter
	view      View
	log       *logger.Logger
	opts      Options

	mu      sync.Mutex
	state   State
	outcome State
	current *weather.Record
	unit    presenter.Unit
	seq     uint64
}

func New(provider weather.Provider, pres *presenter.Presenter, view View, log *logger.Logger,
	opts Options,
) (*Controller, error) {
	if provider == nil {
		return nil, errors.New("weather provider is required")
	}
	if pres == nil {
		return nil, errors.New("presenter is required")
	}
	if view == nil {
		return nil, errors.New("view is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Unit == "" {
		opts.Unit = presenter.Celsius
	}

	return &Controller{
		provider:  provider,
		presenter: pres,
		view:      view,
		log:       log,
		opts:      opts,
		unit:      opts.Unit,
	}, nil
}

// Submit looks up the weather for input and renders the result. Blank input is ignored.
// A failure is shown on the view, logged and returned; it never alters the current record.
func (c *Controller) Submit(ctx context.Context, input string) error {
	// The query is kept in the current record, so it must not share memory with input.
	query := strings.Clone(strings.TrimSpace(input))
	if query == "" {
		return nil
	}

	id := uuid.NewString()
	log := &logger.Logger{Logger: c.log.With(slog.String("submission", id), slog.String("query", query),
		slog.String("provider", c.provider.Name()))}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.transition(log, StateLoading)
	c.view.SetLoading(true)
	c.view.ClearOutput()
	c.mu.Unlock()

	rec, err := c.provider.GetWeather(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Only the latest submission owns the view and the loading indicator.
	if seq != c.seq {
		log.Debug("discarding result of superseded submission", slog.Uint64("seq", seq),
			slog.Uint64("latest", c.seq))
		return ErrSuperseded
	}
	defer c.view.SetLoading(false)

	if err != nil {
		log.Error("failed to fetch weather data", logger.Err(err))
		c.transition(log, StateFailed)
		c.view.ShowError(c.opts.ErrorStyle, c.opts.ErrorMessage)
		c.transition(log, StateIdle)
		return err
	}

	c.current = rec
	c.transition(log, StateSuccess)
	c.view.ShowCard(c.presenter.Card(rec, c.unit))
	c.transition(log, StateIdle)
	return nil
}

// ToggleUnit flips the temperature unit and re-renders the current record. It reports
// whether anything was rendered.
func (c *Controller) ToggleUnit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opts.UnitToggle || c.current == nil {
		return false
	}
	c.unit = c.unit.Toggle()
	c.view.ShowCard(c.presenter.Card(c.current, c.unit))
	c.log.Debug("temperature unit toggled", slog.String("unit", string(c.unit)))
	return true
}

// Refresh re-fetches the weather for the query of the current record. It is a no-op
// without a current record, while a submission is in flight or after a failed
// submission. Unlike Submit it leaves the view alone unless the fetch succeeds, so a
// failed refresh is only logged and the card stays as it is. A submission started
// during the refresh wins over its result.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	rec := c.current
	if rec == nil || c.state == StateLoading || c.outcome != StateSuccess {
		c.mu.Unlock()
		return
	}
	seq := c.seq
	c.mu.Unlock()

	log := &logger.Logger{Logger: c.log.With(slog.String("refresh", uuid.NewString()),
		slog.String("query", rec.Query), slog.String("provider", c.provider.Name()))}
	fresh, err := c.provider.GetWeather(ctx, rec.Query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Debug("discarding refresh, a newer submission was started")
		return
	}
	if err != nil {
		log.Warn("scheduled weather refresh failed, keeping current card", logger.Err(err))
		return
	}

	c.current = fresh
	c.view.ShowCard(c.presenter.Card(fresh, c.unit))
	log.Debug("weather record refreshed")
}

// Current returns the current record, if any.
func (c *Controller) Current() (*weather.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// CurrentCard renders the current record with the current unit.
func (c *Controller) CurrentCard() (presenter.Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return presenter.Card{}, false
	}
	return c.presenter.Card(c.current, c.unit), true
}

// State returns the current state of the state machine.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOutcome returns the terminal state of the most recent completed submission, or
// StateIdle if none has completed yet.
func (c *Controller) LastOutcome() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Unit returns the current temperature unit.
func (c *Controller) Unit() presenter.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unit
}

// UnitToggleEnabled reports whether the unit toggle is offered.
func (c *Controller) UnitToggleEnabled() bool {
	return c.opts.UnitToggle
}

// transition must be called with c.mu held.
func (c *Controller) transition(log *logger.Logger, to State) {
	if to == StateSuccess || to == StateFailed {
		c.outcome = to
	}
	log.Debug("submission state changed", slog.String("from", c.state.String()), slog.String("to", to.String()))
	c.state = to
}
