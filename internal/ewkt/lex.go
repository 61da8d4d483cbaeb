package ewkt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"geotext/internal/geom"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokNum
	tokLParen
	tokRParen
	tokComma
	tokKeyword
)

func (k tokKind) String() string {
	switch k {
	case tokNum:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokKeyword:
		return "keyword"
	}
	return "end of input"
}

type token struct {
	kind tokKind
	pos  int
	num  float64

	// Set for keywords.
	shape    geom.Kind
	dim      geom.Dim
	explicit bool
}

var shapes = map[string]geom.Kind{
	"POINT":              geom.KindPoint,
	"LINESTRING":         geom.KindLineString,
	"POLYGON":            geom.KindPolygon,
	"MULTIPOINT":         geom.KindMultiPoint,
	"MULTILINESTRING":    geom.KindMultiLineString,
	"MULTIPOLYGON":       geom.KindMultiPolygon,
	"GEOMETRYCOLLECTION": geom.KindGeometryCollection,
}

// lexer produces tokens on demand from one input line.
type lexer struct {
	line    string
	pos     int
	lastPos int
}

func newLexer(line string) *lexer {
	return &lexer{line: line}
}

// caret renders the input with a marker under pos.
func caret(line string, pos int) string {
	return fmt.Sprintf("%s\n%s^", line, strings.Repeat(" ", pos))
}

func (l *lexer) errorf(what string) error {
	err := geom.Lexf("lex error: invalid %s at pos %d", what, l.lastPos)
	return errors.WithDetail(err, caret(l.line, l.lastPos))
}

// lex returns the next token, or a lex error for input matching no token.
func (l *lexer) lex() (token, error) {
	l.trimLeft()
	l.lastPos = l.pos
	tok := token{pos: l.pos}

	switch c := l.peek(); {
	case c == 0:
		tok.kind = tokEOF
	case c == '(':
		l.next()
		tok.kind = tokLParen
	case c == ')':
		l.next()
		tok.kind = tokRParen
	case c == ',':
		l.next()
		tok.kind = tokComma
	case unicode.IsLetter(rune(c)):
		return l.keyword(tok)
	case isNumByte(c):
		return l.number(tok)
	default:
		l.next()
		return token{}, l.errorf("character")
	}
	return tok, nil
}

func (l *lexer) keyword(tok token) (token, error) {
	var b strings.Builder
	for unicode.IsLetter(rune(l.peek())) {
		b.WriteByte(byte(unicode.ToUpper(rune(l.next()))))
	}
	word := b.String()

	base, hasZ, hasM := word, false, false
	if _, ok := shapes[base]; !ok {
		switch {
		case strings.HasSuffix(word, "ZM"):
			base, hasZ, hasM = strings.TrimSuffix(word, "ZM"), true, true
		case strings.HasSuffix(word, "Z"):
			base, hasZ = strings.TrimSuffix(word, "Z"), true
		case strings.HasSuffix(word, "M"):
			base, hasM = strings.TrimSuffix(word, "M"), true
		}
	}
	shape, ok := shapes[base]
	if !ok {
		return token{}, l.errorf("keyword")
	}
	if !hasZ && !hasM {
		l.trimLeft()
		if unicode.ToUpper(rune(l.peek())) == 'Z' {
			l.next()
			hasZ = true
		}
		if unicode.ToUpper(rune(l.peek())) == 'M' {
			l.next()
			hasM = true
		}
	}
	tok.kind = tokKeyword
	tok.shape = shape
	tok.dim = geom.DimOf(hasZ, hasM)
	tok.explicit = hasZ || hasM
	return tok, nil
}

func isNumByte(c byte) bool {
	switch c {
	case '-', '+', '.':
		return true
	}
	return c >= '0' && c <= '9'
}

func (l *lexer) number(tok token) (token, error) {
	start := l.pos
	for {
		c := l.peek()
		// An exponent marker may be followed by a sign.
		if c == 'e' || c == 'E' {
			l.next()
			if p := l.peek(); p == '+' || p == '-' {
				l.next()
			}
			continue
		}
		if !isNumByte(c) {
			break
		}
		l.next()
	}
	v, err := strconv.ParseFloat(l.line[start:l.pos], 64)
	if err != nil {
		return token{}, l.errorf("number")
	}
	tok.kind = tokNum
	tok.num = v
	return tok, nil
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.line) {
		return 0
	}
	return l.line[l.pos]
}

func (l *lexer) next() byte {
	c := l.peek()
	if c != 0 {
		l.pos++
	}
	return c
}

func (l *lexer) trimLeft() {
	for {
		c := l.peek()
		if c == 0 || !unicode.IsSpace(rune(c)) {
			return
		}
		l.next()
	}
}
