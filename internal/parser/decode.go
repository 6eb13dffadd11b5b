package parser

import (
	"fmt"
	"strconv"

	"github.com/mcncl/textfreq/internal/models"
	"go4.org/mem"
)

// unescape maps the byte after a backslash to the byte it stands for.
// Zero entries are unsupported escapes.
var unescape = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// A decoder is a recursive-descent parser over a read-only view of the input.
// Errors abort the parse; there is no partial result.
type decoder struct {
	src      mem.RO
	pos      int
	depth    int
	maxDepth int
}

func (d *decoder) parse() (models.Value, error) {
	d.skipWhitespace()
	v, err := d.parseValue()
	if err != nil {
		return nil, err
	}
	d.skipWhitespace()
	if !d.eof() {
		return nil, d.errorf("unexpected characters after JSON value")
	}
	return v, nil
}

func (d *decoder) eof() bool { return d.pos >= d.src.Len() }

// peek returns the next byte, or 0 at end of input.
func (d *decoder) peek() byte {
	if d.eof() {
		return 0
	}
	return d.src.At(d.pos)
}

func (d *decoder) match(c byte) bool {
	if !d.eof() && d.src.At(d.pos) == c {
		d.pos++
		return true
	}
	return false
}

func (d *decoder) skipWhitespace() {
	for !d.eof() {
		switch d.src.At(d.pos) {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *decoder) skipDigits() {
	for isDigit(d.peek()) {
		d.pos++
	}
}

func (d *decoder) errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: d.pos}
}

func (d *decoder) parseValue() (models.Value, error) {
	switch c := d.peek(); {
	case d.eof():
		return nil, d.errorf("unexpected end of input")
	case c == 'n':
		return d.parseLiteral("null", models.Null{})
	case c == 't':
		return d.parseLiteral("true", models.Bool(true))
	case c == 'f':
		return d.parseLiteral("false", models.Bool(false))
	case c == '"':
		s, err := d.parseRawString()
		if err != nil {
			return nil, err
		}
		return models.String(s), nil
	case c == '-' || isDigit(c):
		return d.parseNumber()
	case c == '[':
		return d.parseArray()
	case c == '{':
		return d.parseObject()
	default:
		return nil, d.errorf("unexpected character %q while parsing value", c)
	}
}

func (d *decoder) parseLiteral(word string, v models.Value) (models.Value, error) {
	for i := 0; i < len(word); i++ {
		if d.peek() != word[i] {
			return nil, d.errorf("invalid literal '%s'", word)
		}
		d.pos++
	}
	return v, nil
}

func (d *decoder) parseNumber() (models.Value, error) {
	start := d.pos
	d.match('-')

	// A leading zero stands alone; "01" stops after the "0".
	switch {
	case d.match('0'):
	case isDigit(d.peek()):
		d.skipDigits()
	default:
		return nil, d.errorf("invalid number")
	}

	if d.match('.') {
		if !isDigit(d.peek()) {
			return nil, d.errorf("invalid number after decimal point")
		}
		d.skipDigits()
	}

	if c := d.peek(); c == 'e' || c == 'E' {
		d.pos++
		if c := d.peek(); c == '+' || c == '-' {
			d.pos++
		}
		if !isDigit(d.peek()) {
			return nil, d.errorf("invalid exponent")
		}
		d.skipDigits()
	}

	text := d.src.SliceTo(d.pos).SliceFrom(start).StringCopy()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to convert number %q", text), Offset: start, Err: err}
	}
	return models.Number(f), nil
}

func (d *decoder) parseRawString() (string, error) {
	if !d.match('"') {
		return "", d.errorf(`expected '"' at beginning of string`)
	}

	// Fast path: the closing quote comes before any escape.
	rest := d.src.SliceFrom(d.pos)
	if q := mem.IndexByte(rest, '"'); q >= 0 {
		if b := mem.IndexByte(rest.SliceTo(q), '\\'); b < 0 {
			d.pos += q + 1
			return rest.SliceTo(q).StringCopy(), nil
		}
	}

	var buf []byte
	for !d.eof() {
		c := d.src.At(d.pos)
		switch c {
		case '"':
			d.pos++
			return string(buf), nil
		case '\\':
			d.pos++
			if d.eof() {
				return "", d.errorf("unfinished escape sequence")
			}
			esc := d.src.At(d.pos)
			dec := unescape[esc]
			if dec == 0 {
				return "", d.errorf("unsupported escape sequence '\\%c'", esc)
			}
			buf = append(buf, dec)
			d.pos++
		default:
			buf = append(buf, c)
			d.pos++
		}
	}
	return "", d.errorf("unterminated string")
}

// enter records one more level of nesting for the bracket at offset open.
func (d *decoder) enter(open int) error {
	d.depth++
	if d.depth > d.maxDepth {
		return &ParseError{
			Message: fmt.Sprintf("maximum nesting depth of %d exceeded", d.maxDepth),
			Offset:  open,
			Err:     ErrMaxDepth,
		}
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

func (d *decoder) parseArray() (models.Value, error) {
	if err := d.enter(d.pos); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // '['

	arr := models.Array{}
	d.skipWhitespace()
	if d.match(']') {
		return arr, nil
	}
	for {
		d.skipWhitespace()
		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		d.skipWhitespace()
		if d.match(']') {
			return arr, nil
		}
		if !d.match(',') {
			return nil, d.errorf("expected ',' or ']'")
		}
	}
}

func (d *decoder) parseObject() (models.Value, error) {
	if err := d.enter(d.pos); err != nil {
		return nil, err
	}
	defer d.leave()
	d.pos++ // '{'

	obj := models.NewObject()
	d.skipWhitespace()
	if d.match('}') {
		return obj, nil
	}
	for {
		d.skipWhitespace()
		if d.peek() != '"' {
			return nil, d.errorf("expected string key")
		}
		key, err := d.parseRawString()
		if err != nil {
			return nil, err
		}
		d.skipWhitespace()
		if !d.match(':') {
			return nil, d.errorf("expected ':' after key")
		}
		d.skipWhitespace()
		v, err := d.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Add(key, v)
		d.skipWhitespace()
		if d.match('}') {
			return obj, nil
		}
		if !d.match(',') {
			return nil, d.errorf("expected ',' or '}'")
		}
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
