// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/geocode"
	"github.com/wneessen/weathercard/internal/i18n"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/vartype"
	"github.com/wneessen/weathercard/internal/weather"
)

const (
	inlineMessage = "Error fetching weather data."
	alertMessage  = "City not found or API error. Please check spelling or try another."
)

type mockProvider struct {
	records map[string]*weather.Record
	err     error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) GetWeather(_ context.Context, query string) (*weather.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[query]
	if !ok {
		return nil, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}
	return rec, nil
}

// echoProvider returns a record built from the query itself and fails for every query
// except accept.
type echoProvider struct {
	accept string
}

func (e *echoProvider) Name() string { return "echo" }

func (e *echoProvider) GetWeather(_ context.Context, query string) (*weather.Record, error) {
	if query != e.accept {
		return nil, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}
	return &weather.Record{Query: query, Location: query, Temperature: 20, ConditionCode: 0}, nil
}

var (
	paris = &weather.Record{
		Query:         "Paris",
		Location:      "Paris, France",
		Coordinates:   geocode.Coordinate{Lat: 48.85, Lon: 2.35},
		ObservedAt:    time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		Temperature:   18.2,
		ConditionCode: 3,
		WindSpeed:     12,
	}
	parisProvided = &weather.Record{
		Query:       "Paris",
		Location:    "Paris",
		Coordinates: geocode.Coordinate{Lat: 48.85, Lon: 2.35},
		ObservedAt:  time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		Temperature: 17.4,
		WindSpeed:   14.8,
		Condition:   vartype.NewVariable("Partially cloudy"),
		Icon:        vartype.NewVariable("partly-cloudy-day"),
		IconURL:     vartype.NewVariable("https://icons.example.com/partly-cloudy-day.png"),
		Humidity:    vartype.NewVariable(63.5),
	}
)

func TestPage(t *testing.T) {
	t.Run("new page hides the output", func(t *testing.T) {
		state := NewPage().Snapshot(false)
		if state.Loading || state.OutputVisible || state.Card != nil {
			t.Errorf("expected empty page, got %+v", state)
		}
	})
	t.Run("card sets the body class", func(t *testing.T) {
		page := NewPage()
		page.ShowCard(presenter.Card{Location: "Paris", Background: presenter.BackgroundRainy})
		state := page.Snapshot(false)
		if !state.OutputVisible || state.Card == nil || state.BodyClass != "rainy" {
			t.Errorf("unexpected page state: %+v", state)
		}
	})
	t.Run("inline error replaces the output", func(t *testing.T) {
		page := NewPage()
		page.ShowCard(presenter.Card{Location: "Paris"})
		page.ShowError(controller.ErrorStyleInline, inlineMessage)
		state := page.Snapshot(false)
		if !state.OutputVisible || state.Card != nil || state.Error != inlineMessage {
			t.Errorf("unexpected page state: %+v", state)
		}
	})
	t.Run("alert is returned once", func(t *testing.T) {
		page := NewPage()
		page.ShowError(controller.ErrorStyleAlert, alertMessage)
		if state := page.Snapshot(false); state.Alert != alertMessage {
			t.Errorf("expected peeking snapshot to keep the alert, got %q", state.Alert)
		}
		first := page.Snapshot(true)
		if first.Alert != alertMessage || first.OutputVisible {
			t.Errorf("unexpected page state: %+v", first)
		}
		if second := page.Snapshot(true); second.Alert != "" {
			t.Errorf("expected alert to be consumed, got %q", second.Alert)
		}
	})
	t.Run("clearing the output keeps the body class", func(t *testing.T) {
		page := NewPage()
		page.ShowCard(presenter.Card{Background: presenter.BackgroundSnowy})
		page.ClearOutput()
		state := page.Snapshot(false)
		if state.OutputVisible || state.BodyClass != "snowy" {
			t.Errorf("unexpected page state: %+v", state)
		}
	})
}

func TestServer_Index(t *testing.T) {
	t.Run("empty page renders the form", func(t *testing.T) {
		server := testServer(t, &mockProvider{}, controller.Options{UnitToggle: true})
		code, body := doRequest(t, server, http.MethodGet, "/", nil)
		if code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, code)
		}
		for _, want := range []string{`name="location"`, `<div id="loader" hidden>`, `<div id="weather-output" hidden>`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
		if strings.Contains(body, `id="unit-toggle"`) {
			t.Error("did not expect unit toggle without a card")
		}
	})
}

func TestServer_Submit(t *testing.T) {
	t.Run("variant with mapped conditions renders the card", func(t *testing.T) {
		provider := &mockProvider{records: map[string]*weather.Record{"Paris": paris}}
		server := testServer(t, provider, controller.Options{
			ErrorStyle: controller.ErrorStyleInline, ErrorMessage: inlineMessage, UnitToggle: true,
		})
		code, _ := doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {" Paris "}})
		if code != http.StatusSeeOther {
			t.Fatalf("expected status %d, got %d", http.StatusSeeOther, code)
		}

		_, body := doRequest(t, server, http.MethodGet, "/", nil)
		for _, want := range []string{
			"Paris, France", "Overcast", "18.2°C", "Wind Speed: 12 km/h", `class="wi wi-cloudy"`,
			`<body class="cloudy">`, `id="unit-toggle"`, "Show °F",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
		if strings.Contains(body, `<div id="weather-output" hidden>`) {
			t.Error("expected output to be visible")
		}
	})
	t.Run("unit toggle re-renders the card", func(t *testing.T) {
		provider := &mockProvider{records: map[string]*weather.Record{"Paris": paris}}
		server := testServer(t, provider, controller.Options{UnitToggle: true})
		doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {"Paris"}})
		code, _ := doRequest(t, server, http.MethodPost, "/unit", nil)
		if code != http.StatusSeeOther {
			t.Fatalf("expected status %d, got %d", http.StatusSeeOther, code)
		}
		_, body := doRequest(t, server, http.MethodGet, "/", nil)
		if !strings.Contains(body, "64.8°F") || !strings.Contains(body, "Show °C") {
			t.Error("expected fahrenheit card")
		}
	})
	t.Run("inline error replaces the output", func(t *testing.T) {
		server := testServer(t, &mockProvider{}, controller.Options{
			ErrorStyle: controller.ErrorStyleInline, ErrorMessage: inlineMessage, UnitToggle: true,
		})
		doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {"Atlantis"}})
		_, body := doRequest(t, server, http.MethodGet, "/", nil)
		if !strings.Contains(body, `<p class="error">`+inlineMessage+`</p>`) {
			t.Error("expected inline error message")
		}
		if strings.Contains(body, "alert(") {
			t.Error("did not expect an alert")
		}
	})
	t.Run("provider supplied condition with 404 alert", func(t *testing.T) {
		provider := &mockProvider{records: map[string]*weather.Record{"Paris": parisProvided}}
		server := testServer(t, provider, controller.Options{
			ErrorStyle: controller.ErrorStyleAlert, ErrorMessage: alertMessage,
		})
		doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {"Paris"}})
		_, body := doRequest(t, server, http.MethodGet, "/", nil)
		for _, want := range []string{"Partially cloudy", "Humidity: 63.5%", "partly-cloudy-day.png"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
		if strings.Contains(body, `id="unit-toggle"`) {
			t.Error("did not expect a unit toggle")
		}

		doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {"Xyzzyville"}})
		_, body = doRequest(t, server, http.MethodGet, "/", nil)
		if !strings.Contains(body, alertMessage) || !strings.Contains(body, "alert(") {
			t.Error("expected alert with the generic message")
		}
		if !strings.Contains(body, `<div id="weather-output" hidden>`) {
			t.Error("expected output to stay hidden")
		}
		if !strings.Contains(body, `<div id="loader" hidden>`) {
			t.Error("expected loader to be hidden")
		}

		_, body = doRequest(t, server, http.MethodGet, "/", nil)
		if strings.Contains(body, "alert(") {
			t.Error("expected alert to be shown only once")
		}
	})
	t.Run("blank submission changes nothing", func(t *testing.T) {
		server := testServer(t, &mockProvider{}, controller.Options{})
		doRequest(t, server, http.MethodPost, "/weather", url.Values{"location": {"   "}})
		code, body := doRequest(t, server, http.MethodGet, "/api/state", nil)
		if code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, code)
		}
		var state struct {
			State       string    `json:"state"`
			LastOutcome string    `json:"last_outcome"`
			Page        PageState `json:"page"`
		}
		if err := json.Unmarshal([]byte(body), &state); err != nil {
			t.Fatalf("failed to decode state: %s", err)
		}
		if state.State != "idle" || state.LastOutcome != "idle" || state.Page.OutputVisible {
			t.Errorf("unexpected state: %+v", state)
		}
	})
}

func TestServer_SubmitKeepAlive(t *testing.T) {
	t.Run("current query survives later requests on the same connection", func(t *testing.T) {
		server := testServer(t, &echoProvider{accept: "Paris"}, controller.Options{
			ErrorStyle: controller.ErrorStyleInline, ErrorMessage: inlineMessage,
		})
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to listen: %s", err)
		}
		go func() { _ = server.Serve(ln) }()

		transport := &http.Transport{MaxConnsPerHost: 1, MaxIdleConnsPerHost: 1}
		client := &http.Client{
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		t.Cleanup(func() {
			transport.CloseIdleConnections()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = ln.Close()
		})

		target := "http://" + ln.Addr().String() + "/weather"
		post := func(location string) {
			t.Helper()
			resp, err := client.PostForm(target, url.Values{"location": {location}})
			if err != nil {
				t.Fatalf("failed to submit %q: %s", location, err)
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusSeeOther {
				t.Fatalf("expected status %d, got %d", http.StatusSeeOther, resp.StatusCode)
			}
		}

		post("Paris")
		for range 5 {
			post("Tokyo")
		}

		rec, ok := server.ctrl.Current()
		if !ok {
			t.Fatal("expected a current record")
		}
		if rec.Query != "Paris" || rec.Location != "Paris" {
			t.Errorf("expected current record for Paris, got query %q and location %q", rec.Query, rec.Location)
		}
		if server.ctrl.LastOutcome() != controller.StateFailed {
			t.Errorf("expected last submission to fail, got %s", server.ctrl.LastOutcome())
		}
	})
}

func TestServer_API(t *testing.T) {
	provider := &mockProvider{records: map[string]*weather.Record{"Paris": paris}}
	server := testServer(t, provider, controller.Options{})
	tests := []struct {
		name     string
		target   string
		wantCode int
		wantBody string
	}{
		{"card in celsius", "/api/weather?location=Paris", http.StatusOK, `"temperature":"18.2°C"`},
		{"card in fahrenheit", "/api/weather?location=Paris&unit=Fahrenheit", http.StatusOK, `"temperature":"64.8°F"`},
		{"missing location", "/api/weather", http.StatusBadRequest, `"error":true`},
		{"blank location", "/api/weather?location=%20%20", http.StatusBadRequest, `"error":true`},
		{"invalid unit", "/api/weather?location=Paris&unit=kelvin", http.StatusBadRequest, `"error":true`},
		{"unknown location", "/api/weather?location=Atlantis", http.StatusNotFound, "location not found"},
		{"health", "/health", http.StatusOK, `"status":"ok"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := doRequest(t, server, http.MethodGet, tc.target, nil)
			if code != tc.wantCode {
				t.Errorf("expected status %d, got %d", tc.wantCode, code)
			}
			if !strings.Contains(body, tc.wantBody) {
				t.Errorf("expected body to contain %q, got %q", tc.wantBody, body)
			}
		})
	}
	t.Run("network failures are reported as bad gateway", func(t *testing.T) {
		failing := testServer(t, &mockProvider{err: fmt.Errorf("%w: connection refused", weather.ErrNetwork)},
			controller.Options{})
		code, _ := doRequest(t, failing, http.MethodGet, "/api/weather?location=Paris", nil)
		if code != http.StatusBadGateway {
			t.Errorf("expected status %d, got %d", http.StatusBadGateway, code)
		}
	})
}

func TestNew(t *testing.T) {
	if _, err := New(nil, NewPage(), &mockProvider{}, nil, nil, nil, Options{}); err == nil {
		t.Error("expected server creation to fail")
	}
}

func testServer(t *testing.T, provider weather.Provider, opts controller.Options) *Server {
	t.Helper()
	lang, err := i18n.New("en")
	if err != nil {
		t.Fatalf("failed to create localizer: %s", err)
	}
	pres, err := presenter.New(lang, false)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	log := logger.NewLogger(slog.LevelDebug, io.Discard)
	page := NewPage()
	ctrl, err := controller.New(provider, pres, page, log, opts)
	if err != nil {
		t.Fatalf("failed to create controller: %s", err)
	}
	server, err := New(ctrl, page, provider, pres, lang, log, Options{})
	if err != nil {
		t.Fatalf("failed to create server: %s", err)
	}
	return server
}

func doRequest(t *testing.T, server *Server, method, target string, form url.Values) (int, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := server.App().Test(req, -1)
	if err != nil {
		t.Fatalf("failed to perform request: %s", err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %s", err)
	}
	return resp.StatusCode, string(data)
}
