package parser

import "go4.org/mem"

var escapeByte = [256]byte{
	'"':  '"',
	'\\': '\\',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

// Quote encodes s as a JSON string literal, including the enclosing quotes,
// using only escapes that Parse understands. Other bytes, control bytes
// included, are copied through unchanged, so Parse(Quote(s)) yields s.
func Quote(s string) string {
	src := mem.S(s)
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		if e := escapeByte[c]; e != 0 {
			buf = append(buf, '\\', e)
		} else {
			buf = append(buf, c)
		}
	}
	buf = append(buf, '"')
	return string(buf)
}
