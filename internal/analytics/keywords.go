package analytics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

const minKeywordLength = 3

type KeywordStat struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
	Severity  string `json:"severity"`
}

// TopKeywords counts description words across records and returns the n most
// frequent. Words are lower-cased letter runs of at least three letters that
// are not stop words. Equal frequencies keep first-seen order.
func (a *Aggregator) TopKeywords(records []models.FlaggedContent, n int) []KeywordStat {
	counts := make(map[string]int)
	order := make([]string, 0)

	for i := range records {
		for _, w := range tokenize(records[i].Description) {
			if a.tables.isStopWord(w) {
				continue
			}
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	out := make([]KeywordStat, len(order))
	for i, w := range order {
		out[i] = KeywordStat{
			Keyword:   titleCase(w),
			Frequency: counts[w],
			Severity:  keywordSeverity(counts[w]),
		}
	}
	return out
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minKeywordLength {
			words = append(words, f)
		}
	}
	return words
}

func keywordSeverity(freq int) string {
	switch {
	case freq > 100:
		return "high"
	case freq > 50:
		return "medium"
	default:
		return "low"
	}
}
