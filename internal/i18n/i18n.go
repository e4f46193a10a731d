// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package i18n loads the embedded message catalogs and resolves the display language.
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

const catalogDir = "locale"

//go:embed locale/*.po
var catalogs embed.FS

// New returns a localizer for the catalog that best matches loc. An empty loc is
// detected from the environment.
func New(loc string) (*spreak.Localizer, error) {
	supported, err := Languages()
	if err != nil {
		return nil, err
	}
	tag := Match(loc, supported)

	catalogFS, err := fs.Sub(catalogs, catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}
	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", catalogFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// Languages lists English followed by every language with an embedded catalog.
func Languages() ([]language.Tag, error) {
	files, err := fs.Glob(catalogs, path.Join(catalogDir, "*.po"))
	if err != nil {
		return nil, fmt.Errorf("failed to list message catalogs: %w", err)
	}
	tags := []language.Tag{language.English}
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), ".po"))
		if err != nil {
			return nil, fmt.Errorf("invalid message catalog name %q: %w", file, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Match resolves loc against the supported languages. POSIX locale names such as
// "tr_TR.UTF-8" are accepted. Anything without a close match resolves to supported[0].
func Match(loc string, supported []language.Tag) language.Tag {
	if len(supported) == 0 {
		return language.English
	}
	var requested []language.Tag
	if loc != "" {
		loc, _, _ = strings.Cut(loc, ".")
		requested = append(requested, language.Make(strings.ReplaceAll(loc, "_", "-")))
	} else if detected, err := locale.DetectAll(); err == nil {
		requested = detected
	}
	if len(requested) == 0 {
		return supported[0]
	}

	_, idx, confidence := language.NewMatcher(supported).Match(requested...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[idx]
}
