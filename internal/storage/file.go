package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/newswatch-id/newswatch/internal/types"
)

// --- CSV Storage ---

// CSVStorage writes articles as CSV rows with a fixed column order.
type CSVStorage struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewCSVStorage creates a new CSV file storage. The header row is
// written immediately so even an empty run produces a valid file.
func NewCSVStorage(outputPath string, logger *slog.Logger) (*CSVStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("create output dir: %w", err)}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("create output file: %w", err)}
	}

	w := csv.NewWriter(f)
	if err := w.Write(types.ArticleColumns); err != nil {
		f.Close()
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("write header: %w", err)}
	}

	return &CSVStorage{
		path:   outputPath,
		file:   f,
		writer: w,
		logger: logger.With("component", "csv_storage"),
	}, nil
}

func (s *CSVStorage) Name() string { return "csv" }

func (s *CSVStorage) Store(articles []*types.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range articles {
		if err := s.writer.Write(a.Row()); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
		s.count++
	}

	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return nil
}

func (s *CSVStorage) Close() error {
	s.logger.Info("CSV written", "path", s.path, "articles", s.count)
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return s.file.Close()
}

// WriteCSV streams articles as CSV to any writer. The dashboard's CSV
// download endpoint shares this with the file backend.
func WriteCSV(w io.Writer, articles []*types.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.ArticleColumns); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	for _, a := range articles {
		if err := cw.Write(a.Row()); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return nil
}

// ReadCSV loads articles back from a CSV export. Rows with the wrong
// column count or an unparseable date are skipped.
func ReadCSV(r io.Reader) ([]*types.Article, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}

	wib := time.FixedZone("WIB", 7*3600)
	var articles []*types.Article
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == types.ArticleColumns[0] {
			continue // header
		}
		if len(rec) != len(types.ArticleColumns) {
			continue
		}
		publishDate, err := time.ParseInLocation("2006-01-02 15:04:05", rec[1], wib)
		if err != nil {
			continue
		}
		articles = append(articles, &types.Article{
			Title:       rec[0],
			PublishDate: publishDate,
			Author:      rec[2],
			Content:     rec[3],
			Keyword:     rec[4],
			Category:    rec[5],
			Source:      rec[6],
			Link:        rec[7],
		})
	}
	return articles, nil
}

// --- JSON Storage ---

// JSONStorage buffers articles and writes them as one JSON array on Close.
type JSONStorage struct {
	path     string
	articles []*types.Article
	mu       sync.Mutex
	logger   *slog.Logger
}

// NewJSONStorage creates a new JSON file storage.
func NewJSONStorage(outputPath string, logger *slog.Logger) (*JSONStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Backend: "json", Err: fmt.Errorf("create output dir: %w", err)}
	}

	return &JSONStorage{
		path:   outputPath,
		logger: logger.With("component", "json_storage"),
	}, nil
}

func (s *JSONStorage) Name() string { return "json" }

func (s *JSONStorage) Store(articles []*types.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, articles...)
	s.logger.Debug("articles buffered", "count", len(articles), "total", len(s.articles))
	return nil
}

func (s *JSONStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return &types.StorageError{Backend: "json", Err: fmt.Errorf("create output file: %w", err)}
	}
	defer f.Close()

	output := s.articles
	if output == nil {
		output = []*types.Article{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return &types.StorageError{Backend: "json", Err: fmt.Errorf("encode JSON: %w", err)}
	}

	s.logger.Info("JSON written", "path", s.path, "articles", len(s.articles))
	return nil
}

// --- JSONL Storage ---

// JSONLStorage writes articles as newline-delimited JSON, streaming.
type JSONLStorage struct {
	path   string
	file   *os.File
	enc    *json.Encoder
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewJSONLStorage creates a new JSONL file storage.
func NewJSONLStorage(outputPath string, logger *slog.Logger) (*JSONLStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Backend: "jsonl", Err: fmt.Errorf("create output dir: %w", err)}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, &types.StorageError{Backend: "jsonl", Err: fmt.Errorf("create output file: %w", err)}
	}

	return &JSONLStorage{
		path:   outputPath,
		file:   f,
		enc:    json.NewEncoder(f),
		logger: logger.With("component", "jsonl_storage"),
	}, nil
}

func (s *JSONLStorage) Name() string { return "jsonl" }

func (s *JSONLStorage) Store(articles []*types.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range articles {
		if err := s.enc.Encode(a); err != nil {
			return &types.StorageError{Backend: "jsonl", Err: err}
		}
		s.count++
	}
	return nil
}

func (s *JSONLStorage) Close() error {
	s.logger.Info("JSONL written", "path", s.path, "articles", s.count)
	return s.file.Close()
}
