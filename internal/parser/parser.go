package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/textfreq/internal/errors" // Custom errors package
	"github.com/mcncl/textfreq/internal/models"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is unset.
const DefaultMaxDepth = 1000

// ErrMaxDepth is wrapped by a ParseError when arrays and objects nest deeper
// than the configured limit.
var ErrMaxDepth = stderrors.New("maximum nesting depth exceeded")

// ParseError reports the first grammar violation found in the input.
type ParseError struct {
	Message string
	Offset  int   // byte offset of the offending input
	Err     error // optional cause, e.g. ErrMaxDepth
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("JSON parse error at position %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports every ParseError as errors.ErrInvalidJSON.
func (e *ParseError) Is(target error) bool { return target == errors.ErrInvalidJSON }

// Options control parsing.
type Options struct {
	// MaxDepth bounds the nesting of arrays and objects. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// AllowJWCC accepts comments and trailing commas (JSON With Commas and
	// Comments) by blanking them before the strict parse.
	AllowJWCC bool
}

// Parse parses a single JSON document from data.
func Parse(data []byte) (models.Value, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions parses a single JSON document from data using opts.
func ParseWithOptions(data []byte, opts Options) (models.Value, error) {
	if opts.AllowJWCC {
		// Standardize keeps byte offsets stable. On failure the raw input is
		// parsed as-is so the caller still gets a positioned ParseError.
		if std, err := hujson.Standardize(append([]byte(nil), data...)); err == nil {
			data = std
		}
	}
	p := &decoder{src: mem.B(data), maxDepth: opts.MaxDepth}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	return p.parse()
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	return Parse([]byte(jsonString))
}

// ParseReader reads all of r and parses it. Empty or whitespace-only input is
// reported as an input error rather than a ParseError.
func ParseReader(r io.Reader, opts Options) (models.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return ParseWithOptions(data, opts)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts Options) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	return ParseWithOptions(data, opts)
}
