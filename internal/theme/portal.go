package theme

import (
	"context"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Freedesktop desktop portal identifiers for the colour-scheme setting.
const (
	portalDest       = "org.freedesktop.portal.Desktop"
	portalPath       = "/org/freedesktop/portal/desktop"
	portalSettings   = "org.freedesktop.portal.Settings"
	appearanceNS     = "org.freedesktop.appearance"
	colorSchemeKey   = "color-scheme"
	colorSchemeNone  = 0
	colorSchemeDark  = 1
	colorSchemeLight = 2
)

// PortalDetector reads the desktop colour-scheme preference from the
// xdg-desktop-portal over the D-Bus session bus.
type PortalDetector struct {
	logger *slog.Logger

	// connect is replaceable in tests.
	connect func() (*dbus.Conn, error)
}

// NewPortalDetector creates a detector using the shared session bus.
func NewPortalDetector(logger *slog.Logger) *PortalDetector {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortalDetector{
		logger:  logger,
		connect: dbus.SessionBus,
	}
}

// Detect implements Detector.
func (p *PortalDetector) Detect(ctx context.Context) (Appearance, bool) {
	conn, err := p.connect()
	if err != nil {
		p.logger.Debug("session bus unavailable", "error", err)
		return "", false
	}

	obj := conn.Object(portalDest, portalPath)

	var v dbus.Variant
	err = obj.CallWithContext(ctx, portalSettings+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&v)
	if err != nil {
		// Older portals only provide Read, which nests the value in a second variant.
		err = obj.CallWithContext(ctx, portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&v)
		if err != nil {
			p.logger.Debug("portal color-scheme lookup failed", "error", err)
			return "", false
		}
	}

	return appearanceFromColorScheme(v.Value())
}

// appearanceFromColorScheme maps the portal value (0 no preference,
// 1 dark, 2 light) to an appearance.
func appearanceFromColorScheme(value any) (Appearance, bool) {
	if inner, ok := value.(dbus.Variant); ok {
		value = inner.Value()
	}

	scheme, ok := value.(uint32)
	if !ok {
		return "", false
	}

	switch scheme {
	case colorSchemeDark:
		return AppearanceDark, true
	case colorSchemeLight:
		return AppearanceLight, true
	case colorSchemeNone:
		return "", false
	default:
		return "", false
	}
}
