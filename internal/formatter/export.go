package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcncl/textfreq/internal/models"
	"gopkg.in/yaml.v3"
)

// field is one key/value pair of an ordered document.
type field struct {
	Key   string
	Value any
}

// document is a mapping that keeps its keys in insertion order when encoded
// as JSON or YAML.
type document []field

func (d document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d document) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range d {
		var key, val yaml.Node
		if err := key.Encode(f.Key); err != nil {
			return nil, err
		}
		if err := val.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// Export renders stats as a structured document in the given format ("json"
// or "yaml"). Keys follow the configured key style. The document carries the
// summary counters, both ranked tables limited to topN rows, and the full
// length distribution in ascending order.
func (f *Formatter) Export(stats models.TextStats, topN int, format string) (string, error) {
	doc := f.exportDocument(stats, topN)

	switch format {
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return string(out) + "\n", nil
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("failed to encode YAML report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported export format '%s'", format)
	}
}

func (f *Formatter) exportDocument(stats models.TextStats, topN int) document {
	key := f.config.FormatKey

	ranked := func(freq map[string]int) []document {
		rows := Rank(freq, topN)
		out := make([]document, len(rows))
		for i, row := range rows {
			out[i] = document{{key("Word"), row.Word}, {key("Count"), row.Count}}
		}
		return out
	}

	lengths := sortedLengths(stats.LengthDistribution)
	dist := make([]document, len(lengths))
	for i, length := range lengths {
		dist[i] = document{{key("Length"), length}, {key("Count"), stats.LengthDistribution[length]}}
	}

	return document{
		{key("TotalWords"), stats.TotalWords},
		{key("TotalSentences"), stats.TotalSentences},
		{key("UniqueWords"), stats.UniqueWords},
		{key("TopN"), topN},
		{key("TopWords"), ranked(stats.WordFreq)},
		{key("TopWordsNoStops"), ranked(stats.WordFreqNoStops)},
		{key("LengthDistribution"), dist},
	}
}
