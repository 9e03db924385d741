// Package blob stores uploaded document bytes on the local filesystem.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("blob: not found")
	ErrTooLarge    = errors.New("blob: too large")
	ErrInvalidName = errors.New("blob: invalid name")
)

// Object is an open blob ready to be streamed.
type Object struct {
	io.ReadSeekCloser
	Size    int64
	ModTime time.Time
}

// Store is the minimal blob surface the document service needs.
type Store interface {
	// Save writes r under name and returns the bytes written. A blob larger
	// than maxBytes (when > 0) is discarded with ErrTooLarge.
	Save(ctx context.Context, name string, r io.Reader, maxBytes int64) (int64, error)
	Open(ctx context.Context, name string) (*Object, error)
	// Delete is idempotent.
	Delete(ctx context.Context, name string) error
	// Ping checks the store is usable.
	Ping(ctx context.Context) error
}

// FS keeps one file per blob in a flat directory.
type FS struct {
	dir string
}

// NewFS creates dir when missing.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FS{dir: abs}, nil
}

func (s *FS) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Save writes to a temp file in the same directory, syncs it and renames it
// into place so readers never observe a partial blob.
func (s *FS) Save(ctx context.Context, name string, r io.Reader, maxBytes int64) (int64, error) {
	dst, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp blob: %w", err)
	}
	tmp := f.Name()

	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}

	n, err := io.Copy(f, readerWithContext(ctx, src))
	if err != nil {
		return 0, fmt.Errorf("write blob: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		return 0, ErrTooLarge
	}

	if err := f.Sync(); err != nil {
		return 0, fmt.Errorf("sync blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close blob: %w", err)
	}
	if err := os.Chmod(tmp, 0o640); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, dst); err != nil {
		return 0, fmt.Errorf("rename blob: %w", err)
	}

	committed = true
	return n, nil
}

func (s *FS) Open(ctx context.Context, name string) (*Object, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Object{ReadSeekCloser: f, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (s *FS) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Ping confirms the directory still exists and is writable.
func (s *FS) Ping(ctx context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
