package theme

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestResolver_ExplicitThemes(t *testing.T) {
	called := false
	r := NewResolver(nil, DetectorFunc(func(context.Context) (Appearance, bool) {
		called = true
		return AppearanceLight, true
	}))

	assert.Equal(t, AppearanceLight, r.Resolve(context.Background(), Light))
	assert.Equal(t, AppearanceDark, r.Resolve(context.Background(), Dark))
	assert.False(t, called, "detectors are only consulted for system")
}

func TestResolver_SystemUsesFirstAnswer(t *testing.T) {
	var order []string
	noAnswer := DetectorFunc(func(context.Context) (Appearance, bool) {
		order = append(order, "none")
		return "", false
	})
	light := DetectorFunc(func(context.Context) (Appearance, bool) {
		order = append(order, "light")
		return AppearanceLight, true
	})
	dark := DetectorFunc(func(context.Context) (Appearance, bool) {
		order = append(order, "dark")
		return AppearanceDark, true
	})

	r := NewResolver(nil, noAnswer, light, dark)
	assert.Equal(t, AppearanceLight, r.Resolve(context.Background(), System))
	assert.Equal(t, []string{"none", "light"}, order)
}

func TestResolver_SystemFallsBackToDark(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, AppearanceDark, r.Resolve(context.Background(), System))
}

func TestResolver_DetectorTimeout(t *testing.T) {
	slow := DetectorFunc(func(ctx context.Context) (Appearance, bool) {
		<-ctx.Done()
		return "", false
	})

	r := NewResolver(nil, slow, Static(AppearanceLight))
	r.SetTimeout(10 * time.Millisecond)

	start := time.Now()
	assert.Equal(t, AppearanceLight, r.Resolve(context.Background(), System))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSnapshot_DetectsOnce(t *testing.T) {
	calls := 0
	d := Snapshot(context.Background(), DetectorFunc(func(context.Context) (Appearance, bool) {
		calls++
		return AppearanceLight, true
	}))
	assert.Equal(t, 1, calls)

	r := NewResolver(nil, d)
	for i := 0; i < 3; i++ {
		assert.Equal(t, AppearanceLight, r.Resolve(context.Background(), System))
	}
	assert.Equal(t, 1, calls)
}

func TestSnapshot_KeepsNoAnswer(t *testing.T) {
	d := Snapshot(context.Background(), DetectorFunc(func(context.Context) (Appearance, bool) {
		return "", false
	}))

	r := NewResolver(nil, d, Static(AppearanceLight))
	assert.Equal(t, AppearanceLight, r.Resolve(context.Background(), System))
}

func TestAppearanceFromColorScheme(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected Appearance
		ok       bool
	}{
		{"no_preference", uint32(0), "", false},
		{"dark", uint32(1), AppearanceDark, true},
		{"light", uint32(2), AppearanceLight, true},
		{"unknown", uint32(7), "", false},
		{"nested_variant", dbus.MakeVariant(uint32(1)), AppearanceDark, true},
		{"wrong_type", "dark", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := appearanceFromColorScheme(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, a)
		})
	}
}
