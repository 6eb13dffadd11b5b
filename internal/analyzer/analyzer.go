package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/creachadair/mds/mapset"
	"github.com/mcncl/textfreq/internal/config"
	"github.com/mcncl/textfreq/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Analyzer tokenizes text blocks and aggregates word statistics
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: config.NewConfig(), // Use default config if none provided
	}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Analyze computes statistics over blocks with the default configuration.
func Analyze(blocks, stopwords []string) models.TextStats {
	return NewAnalyzer().Analyze(blocks, stopwords)
}

// Analyze tokenizes each block and aggregates word counts, sentence counts
// and word lengths. Words found in stopwords are left out of
// WordFreqNoStops. Analyze never fails.
func (a *Analyzer) Analyze(blocks, stopwords []string) models.TextStats {
	stats := models.NewTextStats()

	stops := mapset.New[string]()
	for _, s := range stopwords {
		stops.Add(strings.ToLower(s))
	}

	for _, block := range blocks {
		if a.config.Analysis.NormalizeUnicode {
			block = norm.NFC.String(block)
		}
		stats.TotalSentences += scan(block, func(word string) {
			stats.TotalWords++
			stats.WordFreq[word]++
			if !stops.Has(word) {
				stats.WordFreqNoStops[word]++
			}
			stats.LengthDistribution[utf8.RuneCountInString(word)]++
		})
	}

	stats.UniqueWords = len(stats.WordFreq)
	return stats
}

// Tokenize splits a single block into lowercased words and reports how many
// sentence terminators it contains.
func Tokenize(block string) (words []string, sentences int) {
	sentences = scan(block, func(word string) {
		words = append(words, word)
	})
	return words, sentences
}

// scan calls emit for each maximal run of word characters in block, lowercased,
// and returns the number of sentence terminators seen.
func scan(block string, emit func(string)) int {
	sentences := 0
	start := -1
	for i, r := range block {
		if isWordChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(strings.ToLower(block[start:i]))
			start = -1
		}
		if isSentenceEnd(r) {
			sentences++
		}
	}
	if start >= 0 {
		emit(strings.ToLower(block[start:]))
	}
	return sentences
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
