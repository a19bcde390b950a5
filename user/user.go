// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNameEmpty    = errors.New("name must not be empty")
	ErrNameTooShort = errors.New("name must be at least 2 characters")
	ErrNameTooLong  = errors.New("name must be at most 50 characters")
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns     = regexp.MustCompile(`-+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// Validate checks a display name as entered at login.
func Validate(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return ErrNameEmpty
	case len(trimmed) < 2:
		return ErrNameTooShort
	case len(trimmed) > 50:
		return ErrNameTooLong
	}
	return nil
}

// Slugify converts a display name to the slug used in storage keys and API
// paths: lowercase, spaces to dashes, everything outside [a-z0-9-] dropped,
// dash runs collapsed, leading/trailing dashes trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s is an acceptable user slug. Handlers use this
// to reject path parameters that would produce malformed storage keys.
func ValidSlug(s string) bool {
	return s != "" && len(s) <= 50 && slugPattern.MatchString(s)
}
