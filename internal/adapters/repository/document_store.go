package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/itemkeeper/core/internal/domain/entities"
	"github.com/itemkeeper/core/internal/infrastructure/logger"
)

// Policy decides how a store treats a missing or unparsable database file.
type Policy int

const (
	// PolicyStrict reports ErrDatabaseNotFound, ErrMalformedDocument and
	// ErrDocumentMismatch.
	PolicyStrict Policy = iota
	// PolicyLenient falls back to the empty document when the file is missing
	// or not JSON. A document of the wrong shape is still an error so that a
	// later save cannot overwrite records it failed to read.
	PolicyLenient
)

// StoreOptions configures a DocumentStore
type StoreOptions struct {
	Service      string
	Path         string
	Policy       Policy
	AtomicWrites bool
	FileMode     os.FileMode
	Metrics      *Metrics
	Logger       *logger.Logger
}

// DocumentStore keeps one whole JSON document in a single file. Every load
// reads the full file and every save rewrites it.
//
// Read-modify-write cycles issued through Update are serialised per store;
// writers in other processes are not coordinated.
type DocumentStore[T any] struct {
	opts  StoreOptions
	empty func() T
	count func(T) int
	mu    sync.RWMutex
}

// NewDocumentStore creates a store. empty builds the document used when the
// file is absent (lenient) or freshly initialised; count reports the number
// of records for metrics.
func NewDocumentStore[T any](opts StoreOptions, empty func() T, count func(T) int) *DocumentStore[T] {
	if opts.FileMode == 0 {
		opts.FileMode = 0o644
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &DocumentStore[T]{
		opts:  opts,
		empty: empty,
		count: count,
	}
}

// Path returns the database file path
func (s *DocumentStore[T]) Path() string {
	return s.opts.Path
}

// Exists reports ErrDatabaseNotFound when the file is absent.
func (s *DocumentStore[T]) Exists() error {
	info, err := os.Stat(s.opts.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", entities.ErrDatabaseNotFound, s.opts.Path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("database path %s is a directory", s.opts.Path)
	}
	return nil
}

// Load reads and decodes the whole document.
func (s *DocumentStore[T]) Load(ctx context.Context) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx)
}

// Save overwrites the file with doc.
func (s *DocumentStore[T]) Save(ctx context.Context, doc T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// Update loads the document, applies fn and saves the result while holding
// the store lock. Nothing is written when fn fails.
func (s *DocumentStore[T]) Update(ctx context.Context, fn func(doc T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	doc, err = fn(doc)
	if err != nil {
		return err
	}

	return s.save(ctx, doc)
}

// Init writes the empty document when no file exists yet. It reports
// whether a file was created.
func (s *DocumentStore[T]) Init(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.opts.Path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(s.opts.Path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := s.save(ctx, s.empty()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DocumentStore[T]) load(ctx context.Context) (doc T, err error) {
	start := time.Now()
	defer func() { s.observe("load", start, doc, err) }()

	if err := ctx.Err(); err != nil {
		return doc, err
	}

	data, err := os.ReadFile(s.opts.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if s.opts.Policy == PolicyLenient {
			return s.empty(), nil
		}
		return doc, fmt.Errorf("%w: %s", entities.ErrDatabaseNotFound, s.opts.Path)
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read database: %w", err)
	}

	doc, err = s.decode(data)
	if err != nil {
		if s.opts.Policy == PolicyLenient && errors.Is(err, entities.ErrMalformedDocument) {
			s.opts.Logger.Warnw("Database file unreadable, using empty document",
				"service", s.opts.Service,
				"path", s.opts.Path,
				"error", err.Error(),
			)
			return s.empty(), nil
		}
		return doc, err
	}

	return doc, nil
}

// decode reports ErrMalformedDocument for content that is not JSON at all
// (including an empty file and a bare null) and ErrDocumentMismatch for valid
// JSON of the wrong shape.
func (s *DocumentStore[T]) decode(data []byte) (T, error) {
	doc := s.empty()

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return doc, fmt.Errorf("%w: document is null", entities.ErrMalformedDocument)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return doc, fmt.Errorf("%w: %v", entities.ErrMalformedDocument, err)
		}
		return doc, fmt.Errorf("%w: %v", entities.ErrDocumentMismatch, err)
	}

	return doc, nil
}

func (s *DocumentStore[T]) save(ctx context.Context, doc T) (err error) {
	start := time.Now()
	defer func() { s.observe("save", start, doc, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}

	if !s.opts.AtomicWrites {
		if err := os.WriteFile(s.opts.Path, data, s.opts.FileMode); err != nil {
			return fmt.Errorf("failed to write database: %w", err)
		}
		return nil
	}

	return writeFileAtomic(s.opts.Path, data, s.opts.FileMode)
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace database: %w", err)
	}
	return nil
}

func (s *DocumentStore[T]) observe(op string, start time.Time, doc T, err error) {
	elapsed := time.Since(start)
	s.opts.Logger.LogStoreOperation(op, s.opts.Path, float64(elapsed.Nanoseconds())/1000000, err)

	s.opts.Metrics.observe(s.opts.Service, op, elapsed, err)
	if err == nil && s.count != nil {
		s.opts.Metrics.setRecords(s.opts.Service, s.count(doc))
	}
}
