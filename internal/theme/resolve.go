package theme

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultDetectTimeout bounds a single system appearance lookup.
const DefaultDetectTimeout = 500 * time.Millisecond

// Detector reports the system appearance. ok is false when the detector
// has no answer, in which case the next detector is tried.
type Detector interface {
	Detect(ctx context.Context) (a Appearance, ok bool)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(ctx context.Context) (Appearance, bool)

// Detect implements Detector.
func (f DetectorFunc) Detect(ctx context.Context) (Appearance, bool) {
	return f(ctx)
}

// Resolver turns a Theme into a concrete Appearance.
type Resolver struct {
	detectors []Detector
	fallback  Appearance
	timeout   time.Duration
	logger    *slog.Logger
}

// NewResolver creates a resolver that consults detectors in order when
// resolving System. Without an answer System resolves to dark.
func NewResolver(logger *slog.Logger, detectors ...Detector) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		detectors: detectors,
		fallback:  AppearanceDark,
		timeout:   DefaultDetectTimeout,
		logger:    logger,
	}
}

// SetTimeout sets the per-detector timeout.
func (r *Resolver) SetTimeout(d time.Duration) {
	r.timeout = d
}

// Resolve returns the appearance for t.
func (r *Resolver) Resolve(ctx context.Context, t Theme) Appearance {
	switch t {
	case Light:
		return AppearanceLight
	case Dark:
		return AppearanceDark
	}

	for _, d := range r.detectors {
		dctx, cancel := context.WithTimeout(ctx, r.timeout)
		a, ok := d.Detect(dctx)
		cancel()
		if ok {
			return a
		}
	}
	r.logger.Debug("no system appearance detected, using fallback", "appearance", r.fallback)
	return r.fallback
}

// NewRendererDetector asks the terminal behind a lipgloss renderer for its
// background colour and remembers the answer. The query reads the tty, so
// call it before a program starts reading input. Over SSH each session has
// its own renderer.
func NewRendererDetector(r *lipgloss.Renderer) Detector {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Snapshot(context.Background(), DetectorFunc(func(context.Context) (Appearance, bool) {
		if r.HasDarkBackground() {
			return AppearanceDark, true
		}
		return AppearanceLight, true
	}))
}

// Snapshot runs d once and answers every later Detect with that result.
func Snapshot(ctx context.Context, d Detector) Detector {
	a, ok := d.Detect(ctx)
	return snapshot{appearance: a, ok: ok}
}

type snapshot struct {
	appearance Appearance
	ok         bool
}

func (s snapshot) Detect(context.Context) (Appearance, bool) {
	return s.appearance, s.ok
}

// Static always answers with a fixed appearance.
type Static Appearance

// Detect implements Detector.
func (s Static) Detect(context.Context) (Appearance, bool) {
	return Appearance(s), true
}
