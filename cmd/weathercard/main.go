// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux || darwin

// Package main implements the weathercard service.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/i18n"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// Environment overrides from a local .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Error("failed to load .env file", logger.Err(err))
		os.Exit(1)
	}

	// Read config
	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	city := flag.String("city", "", "look up the weather for this city once and exit")
	unit := flag.String("unit", "", "temperature unit for the lookup (celsius or fahrenheit)")
	flag.Parse()

	// Read default config
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	// If config file was specified, read it
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	// Check if we have a config file in the default location
	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	if *unit != "" {
		conf.Display.Unit = *unit
		if err = conf.Validate(); err != nil {
			log.Error("invalid unit", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize weathercard service", logger.Err(err))
		os.Exit(1)
	}

	// One-shot lookup in the terminal
	if *city != "" {
		if err = serv.Lookup(ctx, *city, os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}

	// Start the service loop
	log.Info(t.Get("starting weathercard service"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date), slog.String("listen", conf.Server.Listen),
		slog.String("provider", conf.Weather.Provider))
	if err = serv.Run(ctx); err != nil {
		log.Error(t.Get("failed to start weathercard service"), logger.Err(err))
		os.Exit(1)
	}
	log.Info(t.Get("shutting down weathercard service"))
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weathercard", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
