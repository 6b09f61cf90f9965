// Package filesystem provides the working directory storage for tinifycli.
// It lists candidate images without descending into subdirectories, reads
// them whole, and writes compressed copies atomically using temp files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/sagarc03/tinifycli"
)

// Store provides file operations sandboxed to a single directory.
type Store struct {
	root *os.Root
}

// NewStore creates a new Store for the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Open opens dir as a sandbox root and returns a Store for it.
// The caller must Close the Store.
func Open(dir string) (*Store, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", dir, err)
	}
	return NewStore(root), nil
}

// Close releases the underlying root.
func (s *Store) Close() error {
	return s.root.Close()
}

// Dir returns the directory the store is rooted at.
func (s *Store) Dir() string {
	return s.root.Name()
}

// List returns the regular files directly inside the root whose names pass
// tinifycli.IsImageName. Directories, symlinks and other special files are
// never returned, even when their name looks like an image.
func (s *Store) List(ctx context.Context) ([]tinifycli.ImageFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	files := make([]tinifycli.ImageFile, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !tinifycli.IsImageName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// removed since the listing
				continue
			}
			return nil, fmt.Errorf("list images: %w", err)
		}

		files = append(files, tinifycli.ImageFile{
			Name: entry.Name(),
			Size: info.Size(),
		})
	}

	return files, nil
}

// Read returns the content of the named file. Returns tinifycli.ErrNotFound if
// the file does not exist.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, tinifycli.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "file", name, "err", closeErr)
		}
	}()

	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write atomically writes content to name using a temp file and rename, and
// returns the number of bytes written. An existing file is replaced. The
// operation respects context cancellation.
func (s *Store) Write(ctx context.Context, name string, content io.Reader) (int64, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return 0, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	written, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return 0, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return 0, fmt.Errorf("could not sync written file: %w", err)
	}

	if err := t.Close(); err != nil {
		return 0, fmt.Errorf("could not close written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, name); renameErr != nil {
		return 0, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return written, nil
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
