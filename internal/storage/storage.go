// Package storage persists result sets: CSV/JSON/JSONL exports on disk
// and an optional MongoDB archive.
package storage

import (
	"log/slog"
	"path/filepath"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Storage is the interface for all storage backends.
type Storage interface {
	// Store persists a batch of articles.
	Store(articles []*types.Article) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// NewFileStorage creates the appropriate file-based storage by format.
func NewFileStorage(format, outputDir string, logger *slog.Logger) (Storage, error) {
	switch format {
	case "json":
		return NewJSONStorage(filepath.Join(outputDir, "results.json"), logger)
	case "jsonl":
		return NewJSONLStorage(filepath.Join(outputDir, "results.jsonl"), logger)
	case "csv":
		return NewCSVStorage(filepath.Join(outputDir, "results.csv"), logger)
	default:
		return nil, &types.StorageError{Backend: format, Err: types.ErrUnknownFormat}
	}
}
