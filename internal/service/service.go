// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/controller"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/terminal"
	"github.com/wneessen/weathercard/internal/weather"
	"github.com/wneessen/weathercard/internal/web"
)

const ShutdownTimeout = time.Second * 5

// ErrEmptyLocation is returned by Lookup for blank input.
var ErrEmptyLocation = errors.New("location must not be empty")

type Service struct {
	SignalSrc signalSource

	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	scheduler gocron.Scheduler

	provider  weather.Provider
	presenter *presenter.Presenter
	page      *web.Page
	ctrl      *controller.Controller
	server    *web.Server
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if t == nil {
		return nil, errors.New("localizer is required")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	service := &Service{
		SignalSrc: stdLibSignalSource{},
		config:    conf,
		logger:    log,
		t:         t,
		scheduler: scheduler,
	}

	service.provider, err = service.selectWeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	service.presenter, err = presenter.New(t, conf.Display.Astronomy)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	opts, err := service.frontendOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create frontend options: %w", err)
	}

	service.page = web.NewPage()
	service.ctrl, err = controller.New(service.provider, service.presenter, service.page, log, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	service.server, err = web.New(service.ctrl, service.page, service.provider, service.presenter, t, log,
		web.Options{ReadTimeout: conf.Server.ReadTimeout, WriteTimeout: conf.Server.WriteTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create web server: %w", err)
	}

	return service, nil
}

// Run serves the web front-end until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Server.Listen, err)
	}

	// Start scheduled jobs
	if s.config.Intervals.Refresh > 0 {
		if err = s.createScheduledJob(ctx, s.config.Intervals.Refresh, s.refreshWeather,
			"weather_refresh_job"); err != nil {
			_ = ln.Close()
			return err
		}
	}
	s.scheduler.Start()

	// Toggle the unit on SIGUSR1
	sigChan := make(chan os.Signal, 1)
	s.SignalSrc.Notify(sigChan, syscall.SIGUSR1)
	defer s.SignalSrc.Stop(sigChan)
	go s.HandleUnitToggleSignal(ctx, sigChan)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(ln)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		runErr = errors.New("web server stopped unexpectedly")
		if err != nil {
			runErr = fmt.Errorf("web server stopped unexpectedly: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err = s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("failed to shut down web server", logger.Err(err))
	}
	_ = ln.Close()
	if runErr == nil {
		select {
		case <-serveErr:
		case <-shutdownCtx.Done():
			s.logger.Warn("web server did not stop in time")
		}
	}

	return errors.Join(runErr, s.scheduler.Shutdown())
}

// Lookup fetches the weather for city once and writes the card to out.
func (s *Service) Lookup(ctx context.Context, city string, out io.Writer) error {
	opts, err := s.frontendOptions()
	if err != nil {
		return err
	}
	ctrl, err := controller.New(s.provider, s.presenter, terminal.New(out, s.t), s.logger, opts)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	if err = ctrl.Submit(ctx, city); err != nil {
		return err
	}
	if _, ok := ctrl.Current(); !ok {
		return ErrEmptyLocation
	}
	return nil
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}
