package tinifycli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Compressor submits image bytes to a compression backend and returns the
// compressed bytes.
//
// Implementations classify failures so the Service can decide whether a run
// continues:
//   - an error matching ErrNoOutput means the backend produced nothing to
//     download; the image is skipped silently
//   - a *DownloadError means the result could not be fetched; it is reported
//     and the run continues
//   - any other error (transport, reading the response) aborts the run
type Compressor interface {
	Compress(ctx context.Context, data []byte) ([]byte, error)
}

// FileStorage defines the file operations the Service needs on the working directory.
//
// All methods accept a context for cancellation.
type FileStorage interface {
	// List returns the candidate images. Order is unspecified.
	List(ctx context.Context) ([]ImageFile, error)

	// Read returns the full content of the named file.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write stores content under name, replacing any existing file, and
	// returns the number of bytes written. Implementations should write
	// atomically so a failed write never leaves a truncated file behind.
	Write(ctx context.Context, name string, content io.Reader) (int64, error)
}

// Reporter receives progress for a run. Calls happen on the goroutine running
// Service.Run, in file order.
type Reporter interface {
	// Compressing is called before an image is uploaded.
	Compressing(name string)

	// Compressed is called after the compressed copy was written.
	Compressed(r Result)

	// DownloadFailed is called when the compressed copy could not be
	// downloaded or written.
	DownloadFailed(name string, err error)
}

type Service struct {
	compressor Compressor
	storage    FileStorage
	reporter   Reporter
}

func NewService(compressor Compressor, storage FileStorage, reporter Reporter) (*Service, error) {
	if compressor == nil {
		return nil, fmt.Errorf("new service: %w: compressor is required", ErrInvalidInput)
	}
	if storage == nil {
		return nil, fmt.Errorf("new service: %w: storage is required", ErrInvalidInput)
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Service{
		compressor: compressor,
		storage:    storage,
		reporter:   reporter,
	}, nil
}

// Run compresses every image FileStorage.List returns, one at a time.
//
// The run stops at the first error reading an image or uploading it and
// returns the summary so far together with that error. Images the backend
// returns no result for are skipped. Download and write failures are passed
// to the Reporter and counted as failed without stopping the run.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run: %w", err)
	}

	files, err := s.storage.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("run: %w", err)
	}

	slog.Debug("found images", "count", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run: %w", err)
		}

		result, err := s.CompressFile(ctx, file.Name)
		if err != nil {
			return summary, fmt.Errorf("run: %w", err)
		}
		summary.add(result)
	}

	return summary, nil
}

// CompressFile compresses a single image and writes OutputName(name).
//
// The returned error is non-nil only for failures that must abort a run.
// Skips and download or write failures are described by the Result.
func (s *Service) CompressFile(ctx context.Context, name string) (Result, error) {
	result := Result{Name: name}

	s.reporter.Compressing(name)

	data, err := s.storage.Read(ctx, name)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", name, err)
	}
	result.OriginalSize = int64(len(data))

	compressed, err := s.compressor.Compress(ctx, data)
	if err != nil {
		var downloadErr *DownloadError
		switch {
		case errors.Is(err, ErrNoOutput):
			slog.Debug("no compressed output, skipping", "file", name, "err", err)
			result.Skipped = true
			return result, nil
		case errors.As(err, &downloadErr):
			result.Err = err
			s.reporter.DownloadFailed(name, err)
			return result, nil
		default:
			return result, fmt.Errorf("compress %s: %w", name, err)
		}
	}

	outName := OutputName(name)
	written, err := s.storage.Write(ctx, outName, bytes.NewReader(compressed))
	if err != nil {
		result.Err = fmt.Errorf("write %s: %w", outName, err)
		s.reporter.DownloadFailed(name, result.Err)
		return result, nil
	}

	result.OutputName = outName
	result.CompressedSize = written
	s.reporter.Compressed(result)

	slog.Debug("compressed image",
		"file", name,
		"output", outName,
		"original_bytes", result.OriginalSize,
		"compressed_bytes", result.CompressedSize,
	)

	return result, nil
}

type nopReporter struct{}

func (nopReporter) Compressing(string)           {}
func (nopReporter) Compressed(Result)            {}
func (nopReporter) DownloadFailed(string, error) {}
