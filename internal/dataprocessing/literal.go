package dataprocessing

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxLiteralDepth bounds container nesting in a nested cell.
const maxLiteralDepth = 64

// simpleEscapes maps single-character escapes to their text. A backslash
// before a newline continues the line.
var simpleEscapes = map[byte]string{
	'\n': "", '\\': `\`, '\'': `'`, '"': `"`,
	'a': "\a", 'b': "\b", 'f': "\f", 'n': "\n", 'r': "\r", 't': "\t", 'v': "\v",
}

// literalParser decodes Python literal syntax, the encoding of the TMDB
// nested columns: lists, tuples, dicts, sets, strings in either quote style,
// numbers, None, True and False. Lists, tuples and sets decode to []any,
// dicts to map[string]any with non-string keys ignored. JSON's null, true
// and false are not literals and fail the parse.
type literalParser struct {
	src string
	pos int
}

// parseLiteral decodes s as a single literal with nothing after it.
func parseLiteral(s string) (any, bool) {
	p := &literalParser{src: s}
	v, _, ok := p.value(0)
	if !ok {
		return nil, false
	}
	p.skipSpace()
	return v, p.pos == len(p.src)
}

// value parses one literal. The second result reports whether it may be a
// dict key or set member.
func (p *literalParser) value(depth int) (any, bool, bool) {
	if depth > maxLiteralDepth {
		return nil, false, false
	}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, false, false
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		p.pos++
		items, _, ok := p.items(']', depth)
		return items, false, ok
	case c == '(':
		p.pos++
		return p.tuple(depth)
	case c == '{':
		p.pos++
		return p.dictOrSet(depth)
	case c == '\'' || c == '"':
		s, ok := p.stringLiteral()
		return s, true, ok
	case c == '-' || c == '+':
		p.pos++
		p.skipSpace()
		if p.pos >= len(p.src) || (p.src[p.pos] != '.' && !isDigit(p.src[p.pos])) {
			return nil, false, false
		}
		n, ok := p.number()
		if c == '-' {
			n = negate(n)
		}
		return n, true, ok
	case c == '.' || isDigit(c):
		n, ok := p.number()
		return n, true, ok
	default:
		return p.word()
	}
}

// items parses comma separated values up to closing. A trailing comma is
// allowed.
func (p *literalParser) items(closing byte, depth int) ([]any, bool, bool) {
	out := []any{}
	hashable := true
	for {
		p.skipSpace()
		if p.consume(closing) {
			return out, hashable, true
		}
		v, h, ok := p.value(depth + 1)
		if !ok {
			return nil, false, false
		}
		out = append(out, v)
		hashable = hashable && h

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(closing) {
			return out, hashable, true
		}
		return nil, false, false
	}
}

// tuple parses after "(". A single value without a comma is only
// parenthesized.
func (p *literalParser) tuple(depth int) (any, bool, bool) {
	p.skipSpace()
	if p.consume(')') {
		return []any{}, true, true
	}
	first, h, ok := p.value(depth + 1)
	if !ok {
		return nil, false, false
	}
	p.skipSpace()
	if p.consume(')') {
		return first, h, true
	}
	if !p.consume(',') {
		return nil, false, false
	}
	rest, rh, ok := p.items(')', depth)
	if !ok {
		return nil, false, false
	}
	return append([]any{first}, rest...), h && rh, true
}

// dictOrSet parses after "{". Set members and dict keys must be hashable.
func (p *literalParser) dictOrSet(depth int) (any, bool, bool) {
	p.skipSpace()
	if p.consume('}') {
		return map[string]any{}, false, true
	}
	first, h, ok := p.value(depth + 1)
	if !ok {
		return nil, false, false
	}
	p.skipSpace()
	if p.consume(':') {
		return p.dict(first, h, depth)
	}

	if !h {
		return nil, false, false
	}
	if p.consume('}') {
		return []any{first}, false, true
	}
	if !p.consume(',') {
		return nil, false, false
	}
	rest, rh, ok := p.items('}', depth)
	if !ok || !rh {
		return nil, false, false
	}
	return append([]any{first}, rest...), false, true
}

// dict parses the remaining entries once the first key and its colon are
// consumed. Later duplicates win.
func (p *literalParser) dict(key any, hashable bool, depth int) (any, bool, bool) {
	obj := map[string]any{}
	for {
		if !hashable {
			return nil, false, false
		}
		v, _, ok := p.value(depth + 1)
		if !ok {
			return nil, false, false
		}
		if k, isString := key.(string); isString {
			obj[k] = v
		}

		p.skipSpace()
		if p.consume('}') {
			return obj, false, true
		}
		if !p.consume(',') {
			return nil, false, false
		}
		p.skipSpace()
		if p.consume('}') {
			return obj, false, true
		}
		if key, hashable, ok = p.value(depth + 1); !ok {
			return nil, false, false
		}
		p.skipSpace()
		if !p.consume(':') {
			return nil, false, false
		}
	}
}

// word parses None, True, False and prefixed strings such as u'x'.
func (p *literalParser) word() (any, bool, bool) {
	start := p.pos
	for p.pos < len(p.src) && isWordByte(p.src[p.pos]) {
		p.pos++
	}
	w := p.src[start:p.pos]

	if p.pos < len(p.src) && (p.src[p.pos] == '\'' || p.src[p.pos] == '"') {
		switch strings.ToLower(w) {
		case "u":
			s, ok := p.str(false)
			return s, true, ok
		case "r":
			s, ok := p.str(true)
			return s, true, ok
		case "b":
			s, ok := p.str(false)
			return []byte(s), true, ok
		}
		return nil, false, false
	}

	switch w {
	case "None":
		return nil, true, true
	case "True":
		return true, true, true
	case "False":
		return false, true, true
	}
	return nil, false, false
}

// number parses an unsigned int or float, including 0x/0o/0b ints and
// digit separators.
func (p *literalParser) number() (any, bool) {
	start := p.pos
	for p.pos < len(p.src) && p.inNumber(start) {
		p.pos++
	}
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if text == "" || text == "." {
		return nil, false
	}

	if hasRadixPrefix(text) {
		n, err := strconv.ParseInt(text, 0, 64)
		return float64(n), err == nil
	}
	if imag, ok := strings.CutSuffix(strings.ToLower(text), "j"); ok {
		f, err := strconv.ParseFloat(imag, 64)
		return complex(0, f), err == nil
	}
	// Python rejects decimal ints with leading zeros other than 0, 00, ...
	if !strings.ContainsAny(text, ".eE") && len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
		return nil, false
	}
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil
}

// inNumber reports whether the byte at p.pos continues the number that
// begins at start. A sign belongs to it only right after a decimal exponent.
func (p *literalParser) inNumber(start int) bool {
	c := p.src[p.pos]
	if isWordByte(c) || c == '.' {
		return true
	}
	if c != '+' && c != '-' {
		return false
	}
	prev := p.src[p.pos-1]
	return (prev == 'e' || prev == 'E') && !hasRadixPrefix(p.src[start:p.pos])
}

func negate(n any) any {
	switch v := n.(type) {
	case float64:
		return -v
	case complex128:
		return -v
	}
	return n
}

// stringLiteral parses a string literal and any adjacent ones, which
// concatenate.
func (p *literalParser) stringLiteral() (string, bool) {
	var b strings.Builder
	for {
		s, ok := p.str(false)
		if !ok {
			return "", false
		}
		b.WriteString(s)

		p.skipSpace()
		if p.pos >= len(p.src) || (p.src[p.pos] != '\'' && p.src[p.pos] != '"') {
			return b.String(), true
		}
	}
}

// str parses one quoted string starting at the quote. Raw strings keep
// backslashes.
func (p *literalParser) str(raw bool) (string, bool) {
	quote := p.src[p.pos]
	delim := string(quote)
	if strings.HasPrefix(p.src[p.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	p.pos += len(delim)

	var b strings.Builder
	for p.pos < len(p.src) {
		if strings.HasPrefix(p.src[p.pos:], delim) {
			p.pos += len(delim)
			return b.String(), true
		}

		c := p.src[p.pos]
		switch {
		case c == '\n' && len(delim) == 1:
			return "", false
		case c == '\\' && p.pos+1 < len(p.src):
			if raw {
				b.WriteString(p.src[p.pos : p.pos+2])
				p.pos += 2
				continue
			}
			if !p.escape(&b) {
				return "", false
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

// escape decodes the escape sequence at p.pos into b.
func (p *literalParser) escape(b *strings.Builder) bool {
	c := p.src[p.pos+1]
	p.pos += 2

	if s, ok := simpleEscapes[c]; ok {
		b.WriteString(s)
		return true
	}

	switch c {
	case 'x':
		return p.codePoint(b, 2, 16)
	case 'u':
		return p.codePoint(b, 4, 16)
	case 'U':
		return p.codePoint(b, 8, 16)
	case 'N':
		return false
	}

	if c >= '0' && c <= '7' {
		p.pos--
		n := 0
		for n < 3 && p.pos+n < len(p.src) && p.src[p.pos+n] >= '0' && p.src[p.pos+n] <= '7' {
			n++
		}
		return p.codePoint(b, n, 8)
	}

	// unknown escapes keep their backslash
	b.WriteByte('\\')
	b.WriteByte(c)
	return true
}

func (p *literalParser) codePoint(b *strings.Builder, digits, base int) bool {
	if p.pos+digits > len(p.src) {
		return false
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], base, 32)
	if err != nil || n > utf8.MaxRune {
		return false
	}
	p.pos += digits
	b.WriteRune(rune(n))
	return true
}

func (p *literalParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			p.pos++
		default:
			return
		}
	}
}

func hasRadixPrefix(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
