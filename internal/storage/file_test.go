package storage

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/newswatch-id/newswatch/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func sampleArticles() []*types.Article {
	wib := time.FixedZone("WIB", 7*3600)
	return []*types.Article{
		{
			Title:       "Banjir Rendam Batam",
			PublishDate: time.Date(2025, time.May, 12, 14, 30, 0, 0, wib),
			Author:      "Redaksi",
			Content:     "Hujan deras, dua kecamatan terendam.\n\nWarga mengungsi.",
			Keyword:     "banjir",
			Category:    "Daerah",
			Source:      "detik",
			Link:        "https://news.detik.com/berita/d-100/banjir-batam",
		},
		{
			Title:       "Investasi Natuna Naik",
			PublishDate: time.Date(2025, time.May, 13, 9, 0, 0, 0, wib),
			Author:      "Unknown",
			Content:     "Nilai investasi naik.",
			Keyword:     "investasi",
			Category:    "Ekonomi",
			Source:      "tempo",
			Link:        "https://www.tempo.co/ekonomi/investasi-natuna-1",
		},
	}
}

func TestCSVStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	store, err := NewCSVStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewCSVStorage: %v", err)
	}

	articles := sampleArticles()
	if err := store.Store(articles); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := ReadCSV(f)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != len(articles) {
		t.Fatalf("read %d articles, want %d", len(got), len(articles))
	}

	for i := range articles {
		if got[i].Link != articles[i].Link {
			t.Errorf("article %d Link = %q, want %q", i, got[i].Link, articles[i].Link)
		}
		if got[i].Title != articles[i].Title {
			t.Errorf("article %d Title = %q, want %q", i, got[i].Title, articles[i].Title)
		}
		if !got[i].PublishDate.Equal(articles[i].PublishDate) {
			t.Errorf("article %d PublishDate = %v, want %v", i, got[i].PublishDate, articles[i].PublishDate)
		}
		if got[i].Content != articles[i].Content {
			t.Errorf("article %d Content mismatch", i)
		}
	}
}

func TestCSVHeaderOnEmptyRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	store, err := NewCSVStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewCSVStorage: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if first != strings.Join(types.ArticleColumns, ",") {
		t.Errorf("header = %q", first)
	}
}

func TestWriteCSVToBuffer(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleArticles()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d articles, want 2", len(got))
	}
	if got[0].Source != "detik" || got[1].Source != "tempo" {
		t.Errorf("sources = %q, %q", got[0].Source, got[1].Source)
	}
}

func TestJSONStorage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")

	store, err := NewJSONStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONStorage: %v", err)
	}
	if err := store.Store(sampleArticles()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got []*types.Article
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Banjir Rendam Batam" {
		t.Errorf("decoded %d articles, first title %q", len(got), got[0].Title)
	}
}

func TestJSONLStorage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.jsonl")

	store, err := NewJSONLStorage(path, testLogger)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	if err := store.Store(sampleArticles()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var a types.Article
	if err := json.Unmarshal([]byte(lines[1]), &a); err != nil {
		t.Fatalf("unmarshal line 2: %v", err)
	}
	if a.Source != "tempo" {
		t.Errorf("line 2 source = %q", a.Source)
	}
}

func TestNewFileStorageUnknownFormat(t *testing.T) {
	if _, err := NewFileStorage("xml", t.TempDir(), testLogger); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
