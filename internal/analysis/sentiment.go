package analysis

import (
	"math"
	"regexp"
	"strings"

	"github.com/newswatch-id/newswatch/internal/types"
)

// Indonesian sentiment lexicons. Matching is substring containment over
// the cleaned text, so multi-word entries like "luar biasa" work too.
var (
	positiveWords = []string{
		"baik", "bagus", "hebat", "senang", "gembira", "sukses", "berhasil",
		"positif", "memuaskan", "luar biasa", "sempurna", "mantap", "optimal",
		"naik", "meningkat", "bertambah", "berkembang", "maju", "unggul",
		"kemenangan", "prestasi", "pencapaian", "apresiasi", "pujian",
	}

	negativeWords = []string{
		"buruk", "jelek", "sedih", "kecewa", "gagal", "negatif", "tidak",
		"kurang", "sulit", "masalah", "kesulitan", "krisis", "bencana",
		"turun", "menurun", "berkurang", "merosot", "anjlok", "jatuh",
		"korupsi", "kriminal", "kecelakaan", "banjir", "kebakaran", "gempa",
		"kematian", "keracunan", "sakit", "penyakit", "covid", "virus",
	}
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// Score holds the sentiment verdict for one article.
type Score struct {
	Sentiment  string  `json:"sentiment"` // "positive", "negative", or "neutral"
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Summary aggregates sentiment across a result set.
type Summary struct {
	Total       int     `json:"total"`
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
}

// AnalyzeSentiment scores text with the rule-based Indonesian lexicon.
// The score is the positive/negative imbalance per hundred words; beyond
// half a point either way the text stops being neutral. Confidence grows
// with the number of lexicon hits, saturating at ten.
func AnalyzeSentiment(text string) Score {
	cleaned := cleanText(text)
	if cleaned == "" {
		return Score{Sentiment: "neutral"}
	}

	var positive, negative int
	for _, w := range positiveWords {
		if strings.Contains(cleaned, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(cleaned, w) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return Score{Sentiment: "neutral"}
	}

	words := len(strings.Fields(cleaned))
	score := float64(positive-negative) / float64(words) * 100
	confidence := math.Min(float64(total)/10, 1.0)

	sentiment := "neutral"
	switch {
	case score > 0.5:
		sentiment = "positive"
	case score < -0.5:
		sentiment = "negative"
	}

	return Score{
		Sentiment:  sentiment,
		Score:      round2(score),
		Confidence: round2(confidence),
	}
}

// AnalyzeArticle scores an article's title and body together.
func AnalyzeArticle(a *types.Article) Score {
	return AnalyzeSentiment(a.Text())
}

// SummarizeSentiment scores every article and tallies the verdicts.
func SummarizeSentiment(articles []*types.Article) Summary {
	s := Summary{Total: len(articles)}
	for _, a := range articles {
		switch AnalyzeArticle(a).Sentiment {
		case "positive":
			s.Positive++
		case "negative":
			s.Negative++
		default:
			s.Neutral++
		}
	}
	if s.Total > 0 {
		s.PositivePct = round2(float64(s.Positive) / float64(s.Total) * 100)
		s.NegativePct = round2(float64(s.Negative) / float64(s.Total) * 100)
		s.NeutralPct = round2(float64(s.Neutral) / float64(s.Total) * 100)
	}
	return s
}

// cleanText strips URLs, collapses whitespace, and lowercases.
func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
