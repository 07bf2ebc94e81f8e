// Package router maps location paths to pages.
package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jmylchreest/appshell/internal/pages"
)

var (
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrRouteNotFound = errors.New("route not found")
	ErrInvalidPath   = errors.New("path must start with /")
)

// DuplicatePathError is returned when a path is registered twice.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("route %q already registered", e.Path)
}

func (e *DuplicatePathError) Unwrap() error {
	return ErrDuplicatePath
}

// RouteNotFoundError is returned by Lookup when no route matches.
type RouteNotFoundError struct {
	Path string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route for %q", e.Path)
}

func (e *RouteNotFoundError) Unwrap() error {
	return ErrRouteNotFound
}

// Entry is one route.
type Entry struct {
	Path string
	Page pages.Page
}

// Match is the result of resolving a path.
type Match struct {
	Found bool
	Entry Entry      // Zero when Found is false
	Page  pages.Page // Never nil: the not-found page when Found is false
}

// Router holds an ordered route table.
type Router struct {
	mu       sync.RWMutex
	entries  []Entry
	notFound pages.Page
}

// New creates a router that falls back to notFound. A nil notFound uses
// pages.NewNotFound.
func New(notFound pages.Page) *Router {
	if notFound == nil {
		notFound = pages.NewNotFound()
	}
	return &Router{notFound: notFound}
}

// Register adds a route. Paths must start with "/" and be unique.
func (r *Router) Register(path string, page pages.Page) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("register %q: %w", path, ErrInvalidPath)
	}
	if page == nil {
		return fmt.Errorf("register %q: nil page", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.Path == path {
			return &DuplicatePathError{Path: path}
		}
	}
	r.entries = append(r.entries, Entry{Path: path, Page: page})
	return nil
}

// MustRegister is like Register but panics on error. Use it when building
// a fixed route table at startup.
func (r *Router) MustRegister(path string, page pages.Page) {
	if err := r.Register(path, page); err != nil {
		panic(err)
	}
}

// Resolve finds the page for path by exact match. It never fails: an
// unknown path resolves to the not-found page.
func (r *Router) Resolve(path string) Match {
	if e, ok := r.find(path); ok {
		return Match{Found: true, Entry: e, Page: e.Page}
	}
	return Match{Page: r.NotFound()}
}

// Lookup is the strict form of Resolve.
func (r *Router) Lookup(path string) (Entry, error) {
	if e, ok := r.find(path); ok {
		return e, nil
	}
	return Entry{}, &RouteNotFoundError{Path: path}
}

// Entries returns the route table in registration order.
func (r *Router) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// NotFound returns the fallback page.
func (r *Router) NotFound() pages.Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notFound
}

// SetNotFound replaces the fallback page. nil is ignored.
func (r *Router) SetNotFound(p pages.Page) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.notFound = p
	r.mu.Unlock()
}

func (r *Router) find(path string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}
