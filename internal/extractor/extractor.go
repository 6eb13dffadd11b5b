// Package extractor pulls text blocks and stopwords out of a parsed JSON
// document. Documents of an unexpected shape yield empty results, never errors.
package extractor

import (
	"strings"

	"github.com/mcncl/textfreq/internal/models"
)

// Keys recognized in the accepted document shapes.
const (
	TextKey      = "text"
	ParagraphKey = "paragraph"
	StopKey      = "stop"
)

// ExtractTextBlocks returns the text blocks of root. It accepts an object
// with a string "text" member, or an array whose elements are strings or
// objects with a string "paragraph" member. Other elements are skipped.
func ExtractTextBlocks(root models.Value) []string {
	var blocks []string
	switch v := root.(type) {
	case *models.Object:
		if s, ok := v.GetString(TextKey); ok {
			blocks = append(blocks, s)
		}
	case models.Array:
		for _, elem := range v {
			if s, ok := stringMember(elem, ParagraphKey); ok {
				blocks = append(blocks, s)
			}
		}
	}
	return blocks
}

// ExtractStopwords returns the lowercased stopwords listed in root, which must
// be an array of strings or objects with a string "stop" member.
func ExtractStopwords(root models.Value) []string {
	arr, ok := root.(models.Array)
	if !ok {
		return nil
	}
	var stops []string
	for _, elem := range arr {
		if s, ok := stringMember(elem, StopKey); ok {
			stops = append(stops, strings.ToLower(s))
		}
	}
	return stops
}

// stringMember matches an array element that is either a bare string or an
// object holding a string under key.
func stringMember(elem models.Value, key string) (string, bool) {
	switch e := elem.(type) {
	case models.String:
		return string(e), true
	case *models.Object:
		return e.GetString(key)
	}
	return "", false
}
