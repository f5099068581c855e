// Package analysis derives word frequencies and sentiment from result
// sets, feeding the dashboard's word cloud, charts, and sentiment summary.
package analysis

import (
	"sort"
	"strings"
	"unicode"

	"github.com/newswatch-id/newswatch/internal/types"
)

// indonesianStopwords are function words excluded from frequency counts.
var indonesianStopwords = map[string]bool{
	"yang": true, "dan": true, "di": true, "ke": true, "dari": true,
	"untuk": true, "pada": true, "dengan": true, "dalam": true, "itu": true,
	"ini": true, "adalah": true, "akan": true, "juga": true, "tidak": true,
	"ada": true, "sudah": true, "telah": true, "atau": true, "bisa": true,
	"karena": true, "saat": true, "oleh": true, "para": true, "kata": true,
	"tersebut": true, "sebagai": true, "lebih": true, "agar": true,
	"saya": true, "kami": true, "kita": true, "mereka": true, "dia": true,
	"ia": true, "hingga": true, "serta": true, "setelah": true,
	"namun": true, "tetapi": true, "masih": true, "dapat": true,
	"bagi": true, "secara": true, "tak": true, "pun": true, "jadi": true,
	"seperti": true, "sementara": true, "sedangkan": true, "yakni": true,
	"yaitu": true, "antara": true, "terhadap": true, "melalui": true,
	"tentang": true, "sebuah": true, "seorang": true, "banyak": true,
	"satu": true, "dua": true, "tiga": true, "per": true, "bahwa": true,
	"belum": true, "sebelumnya": true, "kemudian": true, "lalu": true,
	"saja": true, "hanya": true, "harus": true, "sangat": true,
	"the": true, "and": true, "for": true, "with": true, "that": true,
}

// TermCount is one entry in a frequency ranking.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// WordFrequencies counts content words across all articles' titles and
// bodies and returns the topN terms, most frequent first. Ties break
// alphabetically so the ranking is stable.
func WordFrequencies(articles []*types.Article, topN int) []TermCount {
	counts := make(map[string]int)
	for _, a := range articles {
		for _, term := range Tokenize(a.Text()) {
			counts[term]++
		}
	}

	ranked := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Tokenize lowercases the text and splits it into content words: letters
// only, at least three runes, stopwords removed.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := fields[:0]
	for _, w := range fields {
		if len([]rune(w)) < 3 || indonesianStopwords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
