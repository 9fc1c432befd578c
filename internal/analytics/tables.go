package analytics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

// Tables holds the static lookup data the resolvers and the aggregator work
// from. A Tables value is read-only once built and safe to share.
type Tables struct {
	StopWords          map[string]struct{}
	RiskScores         map[string]float64
	DefaultRiskScore   float64
	LocationIssues     map[string][]string // keyed by lower-cased location
	ContentTypeAliases map[string]string   // external token -> content type
}

// tablesFile is the on-disk shape of an override file. Sections left out
// keep their defaults.
type tablesFile struct {
	StopWords          []string            `yaml:"stop_words"`
	RiskScores         map[string]float64  `yaml:"risk_scores"`
	DefaultRiskScore   *float64            `yaml:"default_risk_score"`
	LocationIssues     map[string][]string `yaml:"location_issues"`
	ContentTypeAliases map[string]string   `yaml:"content_type_aliases"`
}

var defaultStopWords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "day", "get", "has", "him",
	"his", "how", "man", "new", "now", "old", "see", "two", "way", "who",
	"did", "its", "let", "put", "say", "she", "too", "use", "this", "that",
	"with", "have", "from", "they", "know", "want", "been", "good", "much",
	"some", "time", "very", "when", "come", "here", "just", "like", "long",
	"make", "many", "over", "such", "take", "than", "them", "well", "were",
	"will", "what", "there", "their", "would", "about", "which", "these",
	"other", "into", "more", "also", "your", "then", "only", "could", "should",
	"being", "because", "where", "while", "after", "before", "onto",
	"each", "those", "does", "doing", "again", "same", "most", "even",
	"les", "des", "une", "est", "pour", "dans", "qui", "que", "sur", "pas",
	"avec", "par", "sont", "nous", "vous", "ils", "elle", "mais", "ses", "aux",
}

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	stop := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		stop[w] = struct{}{}
	}

	return &Tables{
		StopWords: stop,
		RiskScores: map[string]float64{
			models.UrgencyLow:      25,
			models.UrgencyMedium:   50,
			models.UrgencyHigh:     75,
			models.UrgencyCritical: 95,
		},
		DefaultRiskScore: 50,
		LocationIssues: map[string][]string{
			"douala":     {"election misinformation", "ethnic hate speech", "online scams"},
			"yaoundé":    {"political misinformation", "fake government announcements"},
			"yaounde":    {"political misinformation", "fake government announcements"},
			"bamenda":    {"separatist hate speech", "conflict misinformation", "harassment of civilians"},
			"buea":       {"separatist hate speech", "conflict misinformation"},
			"bafoussam":  {"tribal hate speech", "health misinformation"},
			"garoua":     {"extremist propaganda", "security rumours"},
			"maroua":     {"extremist propaganda", "refugee-related misinformation"},
			"ngaoundéré": {"farmer-herder tensions", "security rumours"},
			"ngaoundere": {"farmer-herder tensions", "security rumours"},
			"kumba":      {"conflict misinformation", "harassment of civilians"},
			"limbe":      {"conflict misinformation", "online scams"},
		},
		ContentTypeAliases: map[string]string{
			"hate_speech":    models.ContentHateSpeech,
			"hate-speech":    models.ContentHateSpeech,
			"hatespeech":     models.ContentHateSpeech,
			"hate":           models.ContentHateSpeech,
			"misinformation": models.ContentMisinformation,
			"misinfo":        models.ContentMisinformation,
			"disinformation": models.ContentMisinformation,
			"harassment":     models.ContentHarassment,
			"spam":           models.ContentSpam,
			"fake":           models.ContentFake,
			"fake_news":      models.ContentFake,
			"news":           models.ContentNews,
			"other":          models.ContentOther,
		},
	}
}

// LoadTables starts from DefaultTables and applies the sections present in
// the YAML file at path. An empty path returns the defaults.
func LoadTables(path string) (*Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analytics tables: %w", err)
	}

	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse analytics tables: %w", err)
	}

	if len(f.StopWords) > 0 {
		t.StopWords = make(map[string]struct{}, len(f.StopWords))
		for _, w := range f.StopWords {
			t.StopWords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
	if len(f.RiskScores) > 0 {
		t.RiskScores = f.RiskScores
	}
	if f.DefaultRiskScore != nil {
		t.DefaultRiskScore = *f.DefaultRiskScore
	}
	if len(f.LocationIssues) > 0 {
		t.LocationIssues = make(map[string][]string, len(f.LocationIssues))
		for loc, issues := range f.LocationIssues {
			t.LocationIssues[strings.ToLower(strings.TrimSpace(loc))] = issues
		}
	}
	if len(f.ContentTypeAliases) > 0 {
		for token, ct := range f.ContentTypeAliases {
			if !models.IsValidContentType(ct) {
				return nil, fmt.Errorf("content type alias %q maps to unknown type %q", token, ct)
			}
		}
		t.ContentTypeAliases = f.ContentTypeAliases
	}

	return t, nil
}

func (t *Tables) isStopWord(w string) bool {
	_, ok := t.StopWords[w]
	return ok
}

func (t *Tables) riskScore(urgency string) float64 {
	if s, ok := t.RiskScores[urgency]; ok {
		return s
	}
	return t.DefaultRiskScore
}

// mapContentTypes translates external tokens to content types, dropping
// tokens without an alias.
func (t *Tables) mapContentTypes(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		ct, ok := t.ContentTypeAliases[strings.ToLower(strings.TrimSpace(tok))]
		if !ok || seen[ct] {
			continue
		}
		seen[ct] = true
		out = append(out, ct)
	}
	return out
}
