package analyzer

import (
	"strings"
	"testing"

	"github.com/mcncl/textfreq/internal/config"
	"github.com/mcncl/textfreq/internal/extractor"
	"github.com/mcncl/textfreq/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_HelloWorld(t *testing.T) {
	stats := Analyze([]string{"Hello world. Hello C++!"}, []string{"hello"})

	assert.Equal(t, 4, stats.TotalWords)
	assert.Equal(t, 2, stats.TotalSentences)
	assert.Equal(t, 3, stats.UniqueWords)
	assert.Equal(t, map[string]int{"hello": 2, "world": 1, "c": 1}, stats.WordFreq)
	assert.Equal(t, map[string]int{"world": 1, "c": 1}, stats.WordFreqNoStops)
	assert.NotContains(t, stats.WordFreqNoStops, "hello")
	assert.Equal(t, map[int]int{5: 3, 1: 1}, stats.LengthDistribution)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, blocks := range [][]string{nil, {}, {""}, {"   ", "--- ,,, ;;"}} {
		stats := Analyze(blocks, nil)
		assert.Zero(t, stats.TotalWords)
		assert.Zero(t, stats.TotalSentences)
		assert.Zero(t, stats.UniqueWords)
		assert.NotNil(t, stats.WordFreq)
		assert.Empty(t, stats.WordFreq)
		assert.Empty(t, stats.WordFreqNoStops)
		assert.Empty(t, stats.LengthDistribution)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name      string
		block     string
		words     []string
		sentences int
	}{
		{"apostrophes stay in words", "Don't stop, it's 'fine'", []string{"don't", "stop", "it's", "'fine'"}, 0},
		{"digits are word characters", "Route 66 and abc123.", []string{"route", "66", "and", "abc123"}, 1},
		{"symbols split words", "C++ e-mail foo_bar", []string{"c", "e", "mail", "foo", "bar"}, 0},
		{"ellipsis counts each terminator", "Wait... what?!", []string{"wait", "what"}, 5},
		{"terminators without words", "?!.", nil, 3},
		{"lowercasing", "HeLLo WORLD", []string{"hello", "world"}, 0},
		{"non-ascii letters", "Привет, мир! Été.", []string{"привет", "мир", "été"}, 2},
		{"word at end of block", "last", []string{"last"}, 0},
		{"whitespace variants", "a\tb\nc\r\nd", []string{"a", "b", "c", "d"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, sentences := Tokenize(tt.block)
			assert.Equal(t, tt.words, words)
			assert.Equal(t, tt.sentences, sentences)
		})
	}
}

func TestAnalyze_WordsDoNotSpanBlocks(t *testing.T) {
	stats := Analyze([]string{"hel", "lo"}, nil)
	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, map[string]int{"hel": 1, "lo": 1}, stats.WordFreq)
}

func TestAnalyze_StopwordsCaseInsensitive(t *testing.T) {
	stats := Analyze([]string{"The cat and THE dog. And then?"}, []string{"The", "AND"})

	assert.Equal(t, 7, stats.TotalWords)
	assert.Equal(t, 2, stats.TotalSentences)
	assert.Equal(t, 2, stats.WordFreq["the"])
	assert.Equal(t, 2, stats.WordFreq["and"])
	assert.Equal(t, map[string]int{"cat": 1, "dog": 1, "then": 1}, stats.WordFreqNoStops)
}

func TestAnalyze_Invariants(t *testing.T) {
	inputs := [][]string{
		{"Hello world. Hello C++!"},
		{"One fish, two fish. Red fish, blue fish!", "It's 4 o'clock... isn't it?"},
		{strings.Repeat("lorem ipsum dolor sit amet, ", 50)},
		{"Ünïcödé wörds ärë cöüntéd bÿ rünés.", "日本語 テキスト"},
	}

	for _, blocks := range inputs {
		stats := Analyze(blocks, []string{"fish", "it"})

		freqSum := 0
		for _, n := range stats.WordFreq {
			freqSum += n
		}
		lengthSum := 0
		for _, n := range stats.LengthDistribution {
			lengthSum += n
		}
		noStopSum := 0
		for w, n := range stats.WordFreqNoStops {
			noStopSum += n
			assert.Equal(t, stats.WordFreq[w], n, "no-stops count for %q", w)
		}

		assert.Equal(t, stats.TotalWords, freqSum)
		assert.Equal(t, stats.UniqueWords, len(stats.WordFreq))
		assert.Equal(t, stats.TotalWords, lengthSum)
		assert.LessOrEqual(t, noStopSum, stats.TotalWords)
	}
}

func TestAnalyze_LengthCountsCharacters(t *testing.T) {
	stats := Analyze([]string{"мир \u00e9t\u00e9 a"}, nil)
	assert.Equal(t, map[int]int{3: 2, 1: 1}, stats.LengthDistribution)
}

func TestAnalyze_NormalizeUnicode(t *testing.T) {
	// "café" composed, then decomposed as "cafe" + U+0301.
	blocks := []string{"caf\u00e9 cafe\u0301"}

	plain := Analyze(blocks, nil)
	assert.Equal(t, 2, plain.UniqueWords)

	cfg := config.NewConfig()
	cfg.Analysis.NormalizeUnicode = true
	normalized := NewAnalyzerWithConfig(cfg).Analyze(blocks, nil)
	assert.Equal(t, 1, normalized.UniqueWords)
	assert.Equal(t, 2, normalized.WordFreq["caf\u00e9"])
	assert.Equal(t, map[int]int{4: 2}, normalized.LengthDistribution)
}

func TestAnalyze_FromParsedDocument(t *testing.T) {
	root, err := parser.ParseString(`[{"paragraph": "The first paragraph."}, "And the second one!"]`)
	require.NoError(t, err)
	stops, err := parser.ParseString(`["the", {"stop": "AND"}]`)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(extractor.ExtractTextBlocks(root), extractor.ExtractStopwords(stops))

	assert.Equal(t, 7, stats.TotalWords)
	assert.Equal(t, 2, stats.TotalSentences)
	assert.Equal(t, 2, stats.WordFreq["the"])
	assert.NotContains(t, stats.WordFreqNoStops, "the")
	assert.NotContains(t, stats.WordFreqNoStops, "and")
	assert.Equal(t, 1, stats.WordFreqNoStops["paragraph"])
}

func BenchmarkAnalyze_LargeText(b *testing.B) {
	blocks := []string{strings.Repeat("a", 100000)}
	for i := 0; i < b.N; i++ {
		Analyze(blocks, nil)
	}
}

func BenchmarkAnalyze_ManySmallTexts(b *testing.B) {
	blocks := []string{"word1 word2 word3 word4 word5."}
	stops := []string{"word1", "word2"}
	a := NewAnalyzer()
	for i := 0; i < b.N; i++ {
		a.Analyze(blocks, stops)
	}
}
