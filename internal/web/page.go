// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"sync"

	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/presenter"
)

// PageState is a snapshot of the page model.
type PageState struct {
	Loading       bool            `json:"loading"`
	OutputVisible bool            `json:"output_visible"`
	Card          *presenter.Card `json:"card,omitempty"`
	Error         string          `json:"error,omitempty"`
	Alert         string          `json:"alert,omitempty"`
	BodyClass     string          `json:"body_class,omitempty"`
}

// Page is the server side page model. It implements controller.View.
type Page struct {
	mu        sync.Mutex
	loading   bool
	card      *presenter.Card
	inlineErr string
	alert     string
	bodyClass string
}

var _ controller.View = (*Page)(nil)

func NewPage() *Page {
	return &Page{}
}

func (p *Page) SetLoading(loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = loading
}

func (p *Page) ClearOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.card = nil
	p.inlineErr = ""
}

func (p *Page) ShowCard(card presenter.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.card = &card
	p.inlineErr = ""
	if card.Background != "" {
		p.bodyClass = string(card.Background)
	}
}

// ShowError shows message inline in the output area or queues it as an alert. Alerts keep
// the output area hidden.
func (p *Page) ShowError(style controller.ErrorStyle, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.card = nil
	switch style {
	case controller.ErrorStyleAlert:
		p.inlineErr = ""
		p.alert = message
	default:
		p.inlineErr = message
	}
}

// Snapshot returns the current page state. With consumeAlert set, a pending alert is
// returned once and then cleared.
func (p *Page) Snapshot(consumeAlert bool) PageState {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := PageState{
		Loading:       p.loading,
		OutputVisible: p.card != nil || p.inlineErr != "",
		Error:         p.inlineErr,
		Alert:         p.alert,
		BodyClass:     p.bodyClass,
	}
	if p.card != nil {
		card := *p.card
		state.Card = &card
	}
	if consumeAlert {
		p.alert = ""
	}
	return state
}
