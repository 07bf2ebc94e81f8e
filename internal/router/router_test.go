package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/appshell/internal/pages"
)

func page(name string) pages.Page {
	return &pages.Func{Name: name, Render: func(pages.Context) string { return name }}
}

func TestRouter_ResolveRegisteredPath(t *testing.T) {
	r := New(nil)
	home := page("Home")
	require.NoError(t, r.Register("/", home))

	m := r.Resolve("/")
	assert.True(t, m.Found)
	assert.Equal(t, "/", m.Entry.Path)
	assert.Equal(t, home, m.Page)
}

func TestRouter_ResolveUnknownPathFallsBack(t *testing.T) {
	notFound := page("Missing")
	r := New(notFound)
	require.NoError(t, r.Register("/", page("Home")))

	tests := []string{"/unknown", "", "/Home", "//", "/ "}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			m := r.Resolve(path)
			assert.False(t, m.Found)
			assert.Equal(t, Entry{}, m.Entry)
			assert.Equal(t, notFound, m.Page)
		})
	}
}

func TestRouter_DefaultNotFoundPage(t *testing.T) {
	r := New(nil)
	m := r.Resolve("/anything")
	require.NotNil(t, m.Page)
	assert.IsType(t, &pages.NotFound{}, m.Page)
}

func TestRouter_ExactMatchOnly(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("/", page("Home")))

	assert.False(t, r.Resolve("/?x=1").Found)
	assert.False(t, r.Resolve("/home/").Found)
}

func TestRouter_RegisterDuplicate(t *testing.T) {
	r := New(nil)
	first := page("First")
	require.NoError(t, r.Register("/", first))

	err := r.Register("/", page("Second"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicatePath)

	var dpe *DuplicatePathError
	require.True(t, errors.As(err, &dpe))
	assert.Equal(t, "/", dpe.Path)

	// The first registration is kept
	assert.Equal(t, first, r.Resolve("/").Page)
	assert.Len(t, r.Entries(), 1)
}

func TestRouter_RegisterInvalid(t *testing.T) {
	r := New(nil)

	err := r.Register("home", page("Home"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = r.Register("/", nil)
	assert.Error(t, err)
	assert.Empty(t, r.Entries())
}

func TestRouter_MustRegisterPanics(t *testing.T) {
	r := New(nil)
	r.MustRegister("/", page("Home"))

	assert.Panics(t, func() {
		r.MustRegister("/", page("Again"))
	})
}

func TestRouter_Lookup(t *testing.T) {
	r := New(nil)
	r.MustRegister("/", page("Home"))

	e, err := r.Lookup("/")
	require.NoError(t, err)
	assert.Equal(t, "/", e.Path)

	_, err = r.Lookup("/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)

	var rnf *RouteNotFoundError
	require.True(t, errors.As(err, &rnf))
	assert.Equal(t, "/missing", rnf.Path)
}

func TestRouter_EntriesInRegistrationOrder(t *testing.T) {
	r := New(nil)
	r.MustRegister("/", page("Home"))
	r.MustRegister("/about", page("About"))
	r.MustRegister("/settings", page("Settings"))

	entries := r.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "/", entries[0].Path)
	assert.Equal(t, "/about", entries[1].Path)
	assert.Equal(t, "/settings", entries[2].Path)

	// Returned slice is a copy
	entries[0].Path = "/changed"
	assert.Equal(t, "/", r.Entries()[0].Path)
}

func TestRouter_SetNotFound(t *testing.T) {
	r := New(nil)
	custom := page("Custom")

	r.SetNotFound(custom)
	assert.Equal(t, custom, r.Resolve("/x").Page)

	r.SetNotFound(nil)
	assert.Equal(t, custom, r.NotFound())
}
