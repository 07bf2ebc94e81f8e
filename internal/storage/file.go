package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// SchemaVersion is the current version of the storage file format.
const SchemaVersion = 1

// ErrUnsupportedSchema is returned when the file was written by a newer version.
var ErrUnsupportedSchema = errors.New("unsupported storage schema version")

// Entry is a single stored value with its last write time.
type Entry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// document is the on-disk JSON structure.
type document struct {
	SchemaVersion int              `json:"schema_version"`
	Entries       map[string]Entry `json:"entries"`
}

// File is a Storage backed by a single JSON document.
// Every write rewrites the document atomically via a temp file.
type File struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewFile creates a file storage at path. The file is created lazily on
// the first write.
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Path returns the location of the storage file.
func (f *File) Path() string {
	return f.path
}

// Read implements Storage. Read failures are logged and reported as absent.
func (f *File) Read(key string) (string, bool) {
	e, ok := f.Lookup(key)
	if !ok {
		return "", false
	}
	return e.Value, true
}

// Lookup returns the full entry stored under key.
func (f *File) Lookup(key string) (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		f.logger.Warn("failed to read storage file", "path", f.path, "error", err)
		return Entry{}, false
	}
	e, ok := doc.Entries[key]
	return e, ok
}

// Write implements Storage.
func (f *File) Write(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		if errors.Is(err, ErrUnsupportedSchema) {
			return err
		}
		// A corrupt file is replaced rather than blocking every write.
		f.logger.Warn("discarding unreadable storage file", "path", f.path, "error", err)
		doc = newDocument()
	}

	doc.Entries[key] = Entry{Value: value, UpdatedAt: f.now().UTC()}
	return f.save(doc)
}

// Delete removes key. Deleting a missing key is not an error.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[key]; !ok {
		return nil
	}
	delete(doc.Entries, key)
	return f.save(doc)
}

// Keys returns all stored keys in sorted order.
func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(doc.Entries))
	for k := range doc.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func newDocument() *document {
	return &document{
		SchemaVersion: SchemaVersion,
		Entries:       make(map[string]Entry),
	}
}

// load reads the document. A missing file yields an empty document.
func (f *File) load() (*document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newDocument(), nil
		}
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	if doc.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: %d (max: %d)", ErrUnsupportedSchema, doc.SchemaVersion, SchemaVersion)
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = SchemaVersion
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]Entry)
	}
	return &doc, nil
}

func (f *File) save(doc *document) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create storage directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, f.path)
}
