package theme

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultColors are the built-in theme backgrounds, dark first.
var DefaultColors = []string{
	"#161616",
	"#d4c0a9ff",
}

var (
	// ErrEmptyThemeSet is returned when a theme set would have no colors.
	ErrEmptyThemeSet = errors.New("theme set has no colors")

	// ErrInvalidColor is returned for colors that are not #rgb, #rgba, #rrggbb or #rrggbbaa.
	ErrInvalidColor = errors.New("invalid theme color")
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ThemeSet is an ordered, fixed list of theme colors.
type ThemeSet struct {
	colors []string
}

// NewThemeSet builds a ThemeSet from the given colors.
func NewThemeSet(colors ...string) (ThemeSet, error) {
	if len(colors) == 0 {
		return ThemeSet{}, ErrEmptyThemeSet
	}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return ThemeSet{}, fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}
	return ThemeSet{colors: append([]string(nil), colors...)}, nil
}

// DefaultThemeSet returns the built-in two-color set.
func DefaultThemeSet() ThemeSet {
	return ThemeSet{colors: append([]string(nil), DefaultColors...)}
}

// Len returns the number of colors.
func (s ThemeSet) Len() int {
	return len(s.colors)
}

// At returns the color for index i, wrapping i into range.
func (s ThemeSet) At(i int) string {
	n := len(s.colors)
	return s.colors[((i%n)+n)%n]
}

// Next returns the index following i.
func (s ThemeSet) Next(i int) int {
	return (i + 1) % len(s.colors)
}

// Colors returns a copy of the colors.
func (s ThemeSet) Colors() []string {
	return append([]string(nil), s.colors...)
}
