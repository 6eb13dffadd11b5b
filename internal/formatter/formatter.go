package formatter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mcncl/textfreq/internal/config"
	"github.com/mcncl/textfreq/internal/models"
)

const (
	wordColumnWidth   = 22
	lengthColumnWidth = 7

	freqRule   = "----------------------------------------"
	lengthRule = "-----------------------------"
)

// Formatter renders analysis results as reports
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{config: config.NewConfig()}
}

// NewFormatterWithConfig creates a Formatter that uses cfg for structured
// output settings
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// FormatReport renders stats with the default formatter.
func FormatReport(stats models.TextStats, topN int) string {
	return NewFormatter().FormatReport(stats, topN)
}

// FormatReport renders the fixed-layout text report: the summary counters,
// the topN most frequent words with and without stopwords, and the complete
// word length distribution.
func (f *Formatter) FormatReport(stats models.TextStats, topN int) string {
	var b strings.Builder

	b.WriteString("=== Text Frequency Analysis ===\n\n")
	fmt.Fprintf(&b, "Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(&b, "Total sentences: %d\n", stats.TotalSentences)
	fmt.Fprintf(&b, "Unique words: %d\n\n", stats.UniqueWords)

	writeFreqTable(&b, fmt.Sprintf("Top %d words (all words):", topN), Rank(stats.WordFreq, topN))
	b.WriteString("\n")
	writeFreqTable(&b, fmt.Sprintf("Top %d words (without stopwords):", topN), Rank(stats.WordFreqNoStops, topN))
	b.WriteString("\n")

	b.WriteString("Word length distribution:\n")
	b.WriteString(lengthRule + "\n")
	fmt.Fprintf(&b, "%-*s| %s\n", lengthColumnWidth, "Length", "Words")
	b.WriteString(lengthRule + "\n")
	for _, length := range sortedLengths(stats.LengthDistribution) {
		fmt.Fprintf(&b, "%-*d| %d\n", lengthColumnWidth, length, stats.LengthDistribution[length])
	}
	b.WriteString(lengthRule + "\n")

	return b.String()
}

// writeFreqTable writes a titled word/frequency table. Words are padded to
// the column width by character count; longer words are not truncated.
func writeFreqTable(b *strings.Builder, title string, rows []models.WordCount) {
	b.WriteString(title + "\n")
	b.WriteString(freqRule + "\n")
	fmt.Fprintf(b, "%-*s| %s\n", wordColumnWidth, "Word", "Frequency")
	b.WriteString(freqRule + "\n")
	for _, row := range rows {
		fmt.Fprintf(b, "%-*s| %d\n", wordColumnWidth, row.Word, row.Count)
	}
	b.WriteString(freqRule + "\n")
}

// Rank orders freq by descending count, breaking ties by ascending word, and
// returns at most n rows.
func Rank(freq map[string]int, n int) []models.WordCount {
	rows := make([]models.WordCount, 0, len(freq))
	for word, count := range freq {
		rows = append(rows, models.WordCount{Word: word, Count: count})
	}
	slices.SortFunc(rows, func(a, b models.WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
	if n < len(rows) {
		rows = rows[:max(n, 0)]
	}
	return rows
}

func sortedLengths(dist map[int]int) []int {
	lengths := make([]int, 0, len(dist))
	for length := range dist {
		lengths = append(lengths, length)
	}
	slices.Sort(lengths)
	return lengths
}
