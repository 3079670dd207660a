// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package web serves the weather card page and a small JSON API.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/weather"
)

//go:embed templates/*
var templates embed.FS

var validate = validator.New()

// Options configure the HTTP server.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type labels struct {
	Title       string
	Placeholder string
	Submit      string
	Loading     string
	Sunrise     string
	Sunset      string
	MoonPhase   string
	Updated     string
	ShowCelsius string
	ShowFahr    string
}

type pageData struct {
	Lang        string
	Labels      labels
	Page        PageState
	ShowToggle  bool
	ToggleLabel string
}

// weatherQuery holds the query parameters of the stateless weather endpoint.
type weatherQuery struct {
	Location string `query:"location" validate:"required,max=200"`
	Unit     string `query:"unit" validate:"omitempty,oneof=celsius fahrenheit"`
}

type Server struct {
	app       *fiber.App
	ctrl      *controller.Controller
	page      *Page
	provider  weather.Provider
	presenter *presenter.Presenter
	log       *logger.Logger
	tpl       *template.Template
	lang      string
	labels    labels
}

func New(ctrl *controller.Controller, page *Page, provider weather.Provider, pres *presenter.Presenter,
	localizer *spreak.Localizer, log *logger.Logger, opts Options,
) (*Server, error) {
	if ctrl == nil || page == nil || provider == nil || pres == nil {
		return nil, errors.New("controller, page, provider and presenter are required")
	}
	if localizer == nil {
		return nil, errors.New("localizer is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	tpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	server := &Server{
		ctrl:      ctrl,
		page:      page,
		provider:  provider,
		presenter: pres,
		log:       log,
		tpl:       tpl,
		lang:      localizer.Language().String(),
		labels: labels{
			Title:       localizer.Get("Weather"),
			Placeholder: localizer.Get("Enter city name"),
			Submit:      localizer.Get("Get Weather"),
			Loading:     localizer.Get("Loading..."),
			Sunrise:     localizer.Get("Sunrise"),
			Sunset:      localizer.Get("Sunset"),
			MoonPhase:   localizer.Get("Moon phase"),
			Updated:     localizer.Get("Updated"),
			ShowCelsius: localizer.Get("Show °C"),
			ShowFahr:    localizer.Get("Show °F"),
		},
	}

	server.app = fiber.New(fiber.Config{
		AppName:               "weathercard",
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          server.handleError,
	})
	server.app.Use(recover.New())
	server.app.Use(server.logRequest)
	server.registerRoutes()

	return server, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves HTTP on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("web server listening", slog.String("addr", ln.Addr().String()))
	return s.app.Listener(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleIndex)
	s.app.Post("/weather", s.handleSubmit)
	s.app.Post("/unit", s.handleToggle)
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")
	api.Get("/weather", s.handleWeather)
	api.Get("/state", s.handleState)
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	data := pageData{
		Lang:       s.lang,
		Labels:     s.labels,
		Page:       s.page.Snapshot(true),
		ShowToggle: s.ctrl.UnitToggleEnabled(),
	}
	data.ToggleLabel = s.labels.ShowFahr
	if s.ctrl.Unit() == presenter.Fahrenheit {
		data.ToggleLabel = s.labels.ShowCelsius
	}

	buf := bytes.NewBuffer(nil)
	if err := s.tpl.ExecuteTemplate(buf, "index.html", data); err != nil {
		s.log.Error("failed to render page", logger.Err(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) handleSubmit(c *fiber.Ctx) error {
	// FormValue aliases the request buffer, which fasthttp reuses on keep-alive
	// connections. The query outlives the request as part of the current record.
	location := utils.CopyString(c.FormValue("location"))

	// Failures are already on the page model.
	_ = s.ctrl.Submit(c.UserContext(), location)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) handleToggle(c *fiber.Ctx) error {
	s.ctrl.ToggleUnit()
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) handleWeather(c *fiber.Ctx) error {
	var query weatherQuery
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	query.Location = strings.TrimSpace(query.Location)
	query.Unit = strings.ToLower(query.Unit)
	if err := validate.Struct(query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	unit := s.ctrl.Unit()
	if query.Unit != "" {
		unit = presenter.Unit(query.Unit)
	}

	rec, err := s.provider.GetWeather(c.UserContext(), query.Location)
	if err != nil {
		s.log.Debug("weather lookup failed", slog.String("location", query.Location), logger.Err(err))
		switch {
		case errors.Is(err, weather.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "location not found")
		case errors.Is(err, weather.ErrParse):
			return fiber.NewError(fiber.StatusBadGateway, "malformed weather response")
		default:
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}
	}
	return c.JSON(s.presenter.Card(rec, unit))
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"state":        s.ctrl.State().String(),
		"last_outcome": s.ctrl.LastOutcome().String(),
		"unit":         s.ctrl.Unit(),
		"page":         s.page.Snapshot(false),
	})
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug("http request", slog.String("method", c.Method()), slog.String("path", c.Path()),
		slog.Int("status", c.Response().StatusCode()), slog.Duration("duration", time.Since(start)))
	return err
}
