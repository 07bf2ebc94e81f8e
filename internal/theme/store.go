package theme

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/appshell/internal/storage"
)

// Default store settings.
const (
	DefaultTheme      = Dark
	DefaultStorageKey = "vite-ui-theme"
)

// StoragePersistError reports that a theme change could not be written to
// storage. The in-memory theme has still changed.
type StoragePersistError struct {
	Key   string
	Theme Theme
	Err   error
}

func (e *StoragePersistError) Error() string {
	return fmt.Sprintf("persist theme %q under %q: %v", e.Theme, e.Key, e.Err)
}

func (e *StoragePersistError) Unwrap() error {
	return e.Err
}

// Listener is called with the new theme after every change.
type Listener func(Theme)

// StoreOptions configures a Store.
type StoreOptions struct {
	DefaultTheme Theme  // Used when storage holds nothing valid (default: dark)
	StorageKey   string // Storage key (default: vite-ui-theme)
	Logger       *slog.Logger
}

type subscription struct {
	id int
	fn Listener
}

// Store is the single source of truth for the active theme.
type Store struct {
	mu      sync.RWMutex
	current Theme

	// setMu serializes Set and Reload so a change fully completes
	// (memory, storage, listeners) before the next one starts.
	setMu sync.Mutex

	storage      storage.Storage
	key          string
	defaultTheme Theme
	logger       *slog.Logger

	subs   []subscription
	nextID int

	onPersistError func(error)
}

// NewStore creates a store and resolves the initial theme from storage.
// A stored value that is not a valid theme is ignored in favour of the
// default.
func NewStore(s storage.Storage, opts StoreOptions) *Store {
	if s == nil {
		s = storage.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = DefaultTheme
	}
	if !opts.DefaultTheme.Valid() {
		opts.Logger.Warn("invalid default theme, using dark", "theme", opts.DefaultTheme)
		opts.DefaultTheme = DefaultTheme
	}

	st := &Store{
		storage:      s,
		key:          opts.StorageKey,
		defaultTheme: opts.DefaultTheme,
		logger:       opts.Logger,
	}
	st.current = st.readStored()
	return st
}

// readStored returns the stored theme or the default.
func (s *Store) readStored() Theme {
	raw, ok := s.storage.Read(s.key)
	if !ok {
		return s.defaultTheme
	}
	t := Theme(raw)
	if !t.Valid() {
		s.logger.Debug("ignoring unrecognized stored theme", "key", s.key, "value", raw)
		return s.defaultTheme
	}
	return t
}

// Get returns the active theme.
func (s *Store) Get() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// StorageKey returns the key the theme is persisted under.
func (s *Store) StorageKey() string {
	return s.key
}

// DefaultTheme returns the theme used when storage holds nothing valid.
func (s *Store) DefaultTheme() Theme {
	return s.defaultTheme
}

// SetPersistErrorHandler sets a callback for storage write failures.
// Failures are always logged; the handler is optional.
func (s *Store) SetPersistErrorHandler(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPersistError = fn
}

// Set changes the active theme, writes it to storage and notifies
// listeners. Only an invalid theme is returned as an error; a storage
// failure is reported as a *StoragePersistError to the logger and the
// persist error handler.
func (s *Store) Set(t Theme) error {
	if !t.Valid() {
		return &InvalidThemeError{Value: string(t)}
	}

	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	if err := s.storage.Write(s.key, string(t)); err != nil {
		s.reportPersistError(&StoragePersistError{Key: s.key, Theme: t, Err: err})
	}

	s.notify(t)
	return nil
}

// Cycle advances to the next theme (light, dark, system) and returns it.
func (s *Store) Cycle() Theme {
	next := s.Get().Next()
	// next is always valid
	_ = s.Set(next)
	return next
}

// Reload re-reads storage and adopts the stored value, choosing the same
// theme NewStore would: a missing or unrecognized value means the default.
// It reports whether the theme changed. Reload never writes to storage.
func (s *Store) Reload() bool {
	s.setMu.Lock()
	defer s.setMu.Unlock()

	t := s.defaultTheme
	if raw, ok := s.storage.Read(s.key); ok {
		if stored := Theme(raw); stored.Valid() {
			t = stored
		} else {
			s.logger.Warn("ignoring invalid stored theme", "key", s.key, "value", raw)
		}
	}

	s.mu.Lock()
	if s.current == t {
		s.mu.Unlock()
		return false
	}
	s.current = t
	s.mu.Unlock()

	s.logger.Debug("theme reloaded from storage", "theme", t)
	s.notify(t)
	return true
}

// Subscribe registers fn to be called after every change, in subscription
// order. Listeners must not call Set. The returned function removes the
// listener; calling it more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls listeners outside the lock so they can read the store.
func (s *Store) notify(t Theme) {
	s.mu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(t)
	}
}

func (s *Store) reportPersistError(err *StoragePersistError) {
	s.logger.Warn("failed to persist theme", "key", err.Key, "theme", err.Theme, "error", err.Err)

	s.mu.RLock()
	handler := s.onPersistError
	s.mu.RUnlock()
	if handler != nil {
		handler(err)
	}
}
