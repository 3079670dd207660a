// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package i18n provides the localizer for condition labels, card lines and page texts.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

const (
	// catalogDir holds one gettext catalog per language, named <lang>.po.
	catalogDir = "locale"
	// catalogDomain is empty as the catalogs are not split into domains.
	catalogDomain = ""
)

//go:embed locale/*.po
var catalogs embed.FS

// New returns a localizer for loc. An empty loc detects the system locale. Languages
// without a bundled catalog fall back to English, the source language.
func New(loc string) (*spreak.Localizer, error) {
	tag, err := Match(loc)
	if err != nil {
		return nil, err
	}

	catalogFS, err := fs.Sub(catalogs, catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs(catalogDomain, catalogFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// Match resolves loc to the closest language with a bundled catalog.
func Match(loc string) (language.Tag, error) {
	available, err := Available()
	if err != nil {
		return language.English, err
	}

	tag := language.Make(loc)
	if loc == "" {
		if tag, err = locale.Detect(); err != nil {
			return language.English, nil
		}
	}

	_, idx, confidence := language.NewMatcher(available).Match(tag)
	if confidence == language.No {
		return language.English, nil
	}
	return available[idx], nil
}

// Available returns the source language followed by every language with a bundled catalog.
func Available() ([]language.Tag, error) {
	entries, err := fs.ReadDir(catalogs, catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogs: %w", err)
	}

	tags := []language.Tag{language.English}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".po" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".po"))
		if err != nil {
			return nil, fmt.Errorf("invalid catalog name %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
