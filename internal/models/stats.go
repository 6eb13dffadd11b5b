package models

// TextStats holds the aggregated result of one analysis run.
type TextStats struct {
	TotalWords     int
	TotalSentences int
	UniqueWords    int

	// WordFreq counts every lowercased word.
	WordFreq map[string]int
	// WordFreqNoStops counts the words that are not stopwords.
	WordFreqNoStops map[string]int
	// LengthDistribution maps a word length in characters to the number of
	// words with that length.
	LengthDistribution map[int]int
}

// NewTextStats returns zeroed statistics with empty maps.
func NewTextStats() TextStats {
	return TextStats{
		WordFreq:           make(map[string]int),
		WordFreqNoStops:    make(map[string]int),
		LengthDistribution: make(map[int]int),
	}
}

// WordCount is a single row of a ranked frequency table.
type WordCount struct {
	Word  string
	Count int
}
