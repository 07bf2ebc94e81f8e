package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		target   string
		path     string
		query    string
		fragment string
		wantErr  bool
	}{
		{"/", "/", "", "", false},
		{"/settings?tab=2#top", "/settings", "tab=2", "top", false},
		{"  /about ", "/about", "", "", false},
		{"about", "", "", "", true},
		{"", "", "", "", true},
		{"//evil.example/x", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			loc, err := ParseLocation(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, loc.Path)
			assert.Equal(t, tt.query, loc.RawQuery)
			assert.Equal(t, tt.fragment, loc.Fragment)
			assert.NotEmpty(t, loc.Key)
		})
	}
}

func TestParseLocation_InvalidPathSentinel(t *testing.T) {
	_, err := ParseLocation("relative")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocation_String(t *testing.T) {
	loc, err := ParseLocation("/settings?tab=2#top")
	require.NoError(t, err)
	assert.Equal(t, "/settings?tab=2#top", loc.String())
}

func TestHistory_PushBackForward(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Back())
	assert.False(t, h.Forward())

	_, err = h.Push("/a")
	require.NoError(t, err)
	_, err = h.Push("/b")
	require.NoError(t, err)
	assert.Equal(t, "/b", h.Current().Path)
	assert.Equal(t, 3, h.Len())

	require.True(t, h.Back())
	assert.Equal(t, "/a", h.Current().Path)
	require.True(t, h.Back())
	assert.Equal(t, "/", h.Current().Path)
	assert.False(t, h.Back())

	require.True(t, h.Forward())
	assert.Equal(t, "/a", h.Current().Path)
}

func TestHistory_PushTruncatesForward(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)

	_, _ = h.Push("/a")
	_, _ = h.Push("/b")
	h.Back()
	h.Back()

	_, err = h.Push("/c")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/c", h.Current().Path)
	assert.False(t, h.Forward())
}

func TestHistory_Replace(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)

	_, err = h.Push("/a")
	require.NoError(t, err)
	_, err = h.Replace("/b")
	require.NoError(t, err)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/b", h.Current().Path)
	h.Back()
	assert.Equal(t, "/", h.Current().Path)
}

func TestHistory_InvalidTargetLeavesStateUnchanged(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)

	_, err = h.Push("nope")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = h.Replace("nope")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "/", h.Current().Path)

	_, err = NewHistory("nope")
	assert.Error(t, err)
}

func TestHistory_KeysAreUnique(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)
	first := h.Current().Key

	_, err = h.Push("/")
	require.NoError(t, err)
	assert.NotEqual(t, first, h.Current().Key)
}
