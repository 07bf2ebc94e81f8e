package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Location is one entry in the navigation history.
type Location struct {
	Path     string
	RawQuery string
	Fragment string
	Key      string // Unique per entry, even when the same path is visited twice
}

// String returns the location as a URL path.
func (l Location) String() string {
	u := url.URL{Path: l.Path, RawQuery: l.RawQuery, Fragment: l.Fragment}
	return u.String()
}

// ParseLocation parses a target such as "/settings?tab=2#top".
func ParseLocation(target string) (Location, error) {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "/") {
		return Location{}, fmt.Errorf("parse location %q: %w", target, ErrInvalidPath)
	}

	u, err := url.Parse(target)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", target, err)
	}
	if u.Host != "" {
		return Location{}, fmt.Errorf("parse location %q: %w", target, ErrInvalidPath)
	}

	return Location{
		Path:     u.Path,
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
		Key:      ulid.Make().String(),
	}, nil
}

// History is an in-memory back/forward stack of locations. It is not safe
// for concurrent use; the shell owns it on the event loop.
type History struct {
	entries []Location
	index   int
}

// NewHistory creates a history starting at initial.
func NewHistory(initial string) (*History, error) {
	loc, err := ParseLocation(initial)
	if err != nil {
		return nil, err
	}
	return &History{entries: []Location{loc}}, nil
}

// Current returns the active location.
func (h *History) Current() Location {
	return h.entries[h.index]
}

// Push navigates to target, dropping any forward entries.
func (h *History) Push(target string) (Location, error) {
	loc, err := ParseLocation(target)
	if err != nil {
		return Location{}, err
	}
	h.entries = append(h.entries[:h.index+1], loc)
	h.index++
	return loc, nil
}

// Replace swaps the active location for target.
func (h *History) Replace(target string) (Location, error) {
	loc, err := ParseLocation(target)
	if err != nil {
		return Location{}, err
	}
	h.entries[h.index] = loc
	return loc, nil
}

// Back moves one entry back. It reports false at the start.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward. It reports false at the end.
func (h *History) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
