// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"gigfin/internal/locale"
	"gigfin/internal/taxonomy"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// writeError writes a JSON error. Errors are never cached by clients.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps err to a response: ErrNotFound to 404, unknown locales to 400,
// anything else to a logged 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, taxonomy.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, locale.ErrUnknownLocale):
		writeError(w, http.StatusBadRequest, "unknown locale")
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// localeResolver turns request input into one of the site's locales.
type localeResolver struct {
	locales  []locale.Locale
	fallback locale.Locale
}

// parse accepts s only when it names a site locale.
func (lr localeResolver) parse(s string) (locale.Locale, error) {
	if len(s) > maxLocaleParam {
		return "", locale.ErrUnknownLocale
	}
	l, err := locale.Parse(s)
	if err != nil {
		return "", err
	}
	if !slices.Contains(lr.locales, l) {
		return "", locale.ErrUnknownLocale
	}
	return l, nil
}

// fromPath reads the {locale} URL parameter.
func (lr localeResolver) fromPath(r *http.Request) (locale.Locale, error) {
	return lr.parse(chi.URLParam(r, "locale"))
}

// fromQuery reads the named query parameter, negotiating from
// Accept-Language when it is absent.
func (lr localeResolver) fromQuery(r *http.Request, name string) (locale.Locale, error) {
	if q := r.URL.Query().Get(name); q != "" {
		return lr.parse(q)
	}
	l := locale.Negotiate(r.Header.Get("Accept-Language"), lr.fallback)
	if !slices.Contains(lr.locales, l) {
		return lr.fallback, nil
	}
	return l, nil
}

// wildcardSegments returns the slug path captured by a trailing "/*".
func wildcardSegments(r *http.Request) []string {
	return taxonomy.SplitPath(chi.URLParam(r, "*"))
}
