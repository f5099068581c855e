package pipeline

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/newswatch-id/newswatch/internal/filter"
	"github.com/newswatch-id/newswatch/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func wib() *time.Location { return time.FixedZone("WIB", 7*3600) }

func sampleArticle() *types.Article {
	return &types.Article{
		Title:       "  Banjir Rendam Batam  ",
		PublishDate: time.Date(2025, time.May, 12, 14, 30, 0, 0, wib()),
		Author:      "Redaksi",
		Content:     "Hujan deras merendam dua kecamatan di Batam.",
		Keyword:     "banjir",
		Source:      "detik",
		Link:        "https://news.detik.com/berita/d-100/banjir-batam",
	}
}

func TestPipelineTrimAndKeep(t *testing.T) {
	p := New(testLogger)
	p.Use(&TrimMiddleware{})
	p.Use(&RequiredFieldsMiddleware{})

	got, err := p.Process(sampleArticle())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got == nil {
		t.Fatal("article dropped unexpectedly")
	}
	if got.Title != "Banjir Rendam Batam" {
		t.Errorf("Title = %q, want trimmed", got.Title)
	}
}

func TestRequiredFieldsDrops(t *testing.T) {
	m := &RequiredFieldsMiddleware{}

	a := sampleArticle()
	a.Title = ""
	if got, _ := m.Process(a); got != nil {
		t.Error("article without title not dropped")
	}

	a = sampleArticle()
	a.PublishDate = time.Time{}
	if got, _ := m.Process(a); got != nil {
		t.Error("article without date not dropped")
	}
}

func TestDateWindow(t *testing.T) {
	start := time.Date(2025, time.May, 10, 0, 0, 0, 0, wib())
	end := time.Date(2025, time.May, 13, 23, 59, 59, 0, wib())
	m := &DateWindowMiddleware{Start: start, End: end}

	inWindow := sampleArticle()
	if got, _ := m.Process(inWindow); got == nil {
		t.Error("in-window article dropped")
	}

	early := sampleArticle()
	early.PublishDate = time.Date(2025, time.May, 9, 12, 0, 0, 0, wib())
	if got, _ := m.Process(early); got != nil {
		t.Error("too-early article kept")
	}

	late := sampleArticle()
	late.PublishDate = time.Date(2025, time.May, 14, 0, 0, 1, 0, wib())
	if got, _ := m.Process(late); got != nil {
		t.Error("too-late article kept")
	}
}

func TestDateWindowOpenBounds(t *testing.T) {
	m := &DateWindowMiddleware{}
	if got, _ := m.Process(sampleArticle()); got == nil {
		t.Error("article dropped with no bounds set")
	}
}

func TestRelevanceMiddleware(t *testing.T) {
	m := &RelevanceMiddleware{Matcher: filter.NewMatcher(nil), RegionOnly: true}

	kepri := sampleArticle()
	if got, _ := m.Process(kepri); got == nil {
		t.Error("Kepri article dropped")
	}

	offKeyword := sampleArticle()
	offKeyword.Keyword = "pemilu"
	if got, _ := m.Process(offKeyword); got != nil {
		t.Error("article kept despite keyword mismatch")
	}

	offRegion := sampleArticle()
	offRegion.Title = "Banjir Jakarta"
	offRegion.Content = "ibukota banjir lagi"
	if got, _ := m.Process(offRegion); got != nil {
		t.Error("non-Kepri article kept with RegionOnly")
	}

	m.RegionOnly = false
	if got, _ := m.Process(offRegion); got == nil {
		t.Error("non-Kepri article dropped without RegionOnly")
	}
}

func TestDedupFirstWriteWins(t *testing.T) {
	m := NewDedupMiddleware()

	first := sampleArticle()
	first.Keyword = "banjir"
	if got, _ := m.Process(first); got == nil {
		t.Fatal("first article dropped")
	}

	// Same page found under another keyword, with tracking noise.
	second := sampleArticle()
	second.Keyword = "batam"
	second.Link = "https://news.detik.com/berita/d-100/banjir-batam/?utm_source=share#bagikan"
	if got, _ := m.Process(second); got != nil {
		t.Error("duplicate link not dropped")
	}

	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}

func TestCanonicalLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTPS://News.Detik.com/berita/d-1/x/", "https://news.detik.com/berita/d-1/x"},
		{"https://example.com:443/a", "https://example.com/a"},
		{"https://example.com/a?b=2&a=1", "https://example.com/a?a=1&b=2"},
		{"https://example.com/a?utm_source=x&id=7", "https://example.com/a?id=7"},
		{"https://example.com/a#section", "https://example.com/a"},
		{"https://example.com", "https://example.com/"},
	}

	for _, tt := range tests {
		if got := CanonicalLink(tt.in); got != tt.want {
			t.Errorf("CanonicalLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func BenchmarkPipeline(b *testing.B) {
	p := New(testLogger)
	p.Use(&TrimMiddleware{})
	p.Use(&RequiredFieldsMiddleware{})
	p.Use(&RelevanceMiddleware{Matcher: filter.NewMatcher(nil), RegionOnly: true})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Process(sampleArticle())
	}
}

func BenchmarkCanonicalLink(b *testing.B) {
	for i := 0; i < b.N; i++ {
		CanonicalLink("https://News.Detik.com/berita/d-100/banjir-batam?utm_source=x&id=7#top")
	}
}
