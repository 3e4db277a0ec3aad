// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package locale defines the two site locales and the article visibility
// flag, and normalizes the spellings found in stored data and requests.
package locale

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported site languages. Its string form is the
// URL prefix ("pt-BR", "en-US").
type Locale string

const (
	PTBR Locale = "pt-BR"
	ENUS Locale = "en-US"
)

// Default is used when a request carries no usable locale.
const Default = PTBR

var (
	ErrUnknownLocale     = errors.New("locale: unknown locale")
	ErrUnknownVisibility = errors.New("locale: unknown visibility")
)

// supported lists the tags in preference order for negotiation.
var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supported)

// All returns every supported locale, pt-BR first.
func All() []Locale {
	return []Locale{PTBR, ENUS}
}

func (l Locale) String() string { return string(l) }

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == PTBR || l == ENUS
}

// Parse normalizes a locale spelling. It accepts "pt-BR", "pt_BR", "pt",
// "en-US", "en_US", "en" in any case. Other regions of the two languages
// map to the supported region.
func Parse(s string) (Locale, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return "", ErrUnknownLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", ErrUnknownLocale
	}
	base, _ := tag.Base()
	switch base.String() {
	case "pt":
		return PTBR, nil
	case "en":
		return ENUS, nil
	}
	return "", ErrUnknownLocale
}

// Negotiate picks the best locale for an Accept-Language header value,
// returning fallback when nothing matches.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	switch idx {
	case 0:
		return PTBR
	case 1:
		return ENUS
	}
	return fallback
}

// Visibility controls which locales an article is published under.
type Visibility string

const (
	PTOnly Visibility = "pt_BR"
	ENOnly Visibility = "en_US"
	Both   Visibility = "Both"
)

// ParseVisibility normalizes the stored article locale column. The stored
// spellings are "pt_BR", "en_US" and "Both"; locale spellings accepted by
// Parse are also understood. An empty value means Both.
func ParseVisibility(s string) (Visibility, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "both") {
		return Both, nil
	}
	l, err := Parse(s)
	if err != nil {
		return "", ErrUnknownVisibility
	}
	if l == PTBR {
		return PTOnly, nil
	}
	return ENOnly, nil
}

// Includes reports whether content with this visibility is published in l.
func (v Visibility) Includes(l Locale) bool {
	switch v {
	case Both:
		return true
	case PTOnly:
		return l == PTBR
	case ENOnly:
		return l == ENUS
	}
	return false
}
