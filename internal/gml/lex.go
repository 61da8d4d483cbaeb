package gml

import (
	"strings"

	"geotext/internal/geom"
)

type tokKind uint8

const (
	tokEOF       tokKind = iota
	tokOpen              // <
	tokEndOpen           // </
	tokClose             // >
	tokSelfClose         // />
	tokEq                // =
	tokName
	tokValue
	tokCoord
)

var tokNames = [...]string{
	tokEOF:       "end of input",
	tokOpen:      "'<'",
	tokEndOpen:   "'</'",
	tokClose:     "'>'",
	tokSelfClose: "'/>'",
	tokEq:        "'='",
	tokName:      "name",
	tokValue:     "quoted value",
	tokCoord:     "coordinate",
}

func (k tokKind) String() string { return tokNames[k] }

type token struct {
	kind tokKind
	text string
	pos  int
}

// lexer splits a document into tokens. Inside a tag it yields names, '='
// and quoted values; between tags it yields whitespace separated
// coordinate text. Declarations and comments are skipped.
type lexer struct {
	src   string
	pos   int
	inTag bool
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) errorf(what string, pos int) error {
	return geom.Lexf("lex error: invalid %s at pos %d", what, pos)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '-', '.', ':':
		return true
	}
	return false
}

func isCoordByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '+', '-', '.', ',', 'e', 'E':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// skipUntil moves past the next occurrence of end.
func (l *lexer) skipUntil(end string) error {
	start := l.pos
	i := strings.Index(l.src[l.pos:], end)
	if i < 0 {
		return l.errorf("unterminated markup", start)
	}
	l.pos += i + len(end)
	return nil
}

func (l *lexer) lex() (token, error) {
	if l.inTag {
		return l.lexTag()
	}
	for {
		l.skipSpace()
		rest := l.src[l.pos:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			if err := l.skipUntil("-->"); err != nil {
				return token{}, err
			}
			continue
		case strings.HasPrefix(rest, "<?"):
			if err := l.skipUntil("?>"); err != nil {
				return token{}, err
			}
			continue
		case strings.HasPrefix(rest, "<!"):
			if err := l.skipUntil(">"); err != nil {
				return token{}, err
			}
			continue
		}
		break
	}

	tok := token{pos: l.pos}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		return tok, nil
	}
	switch c := l.src[l.pos]; {
	case c == '<':
		l.inTag = true
		if strings.HasPrefix(l.src[l.pos:], "</") {
			l.pos += 2
			tok.kind = tokEndOpen
		} else {
			l.pos++
			tok.kind = tokOpen
		}
	case isCoordByte(c):
		start := l.pos
		for l.pos < len(l.src) && isCoordByte(l.src[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.src) && !isSpace(l.src[l.pos]) && l.src[l.pos] != '<' {
			return token{}, l.errorf("character", l.pos)
		}
		tok.kind = tokCoord
		tok.text = l.src[start:l.pos]
	default:
		return token{}, l.errorf("character", l.pos)
	}
	return tok, nil
}

func (l *lexer) lexTag() (token, error) {
	l.skipSpace()
	tok := token{pos: l.pos}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		return tok, nil
	}
	switch c := l.src[l.pos]; {
	case c == '>':
		l.pos++
		l.inTag = false
		tok.kind = tokClose
	case c == '/' && strings.HasPrefix(l.src[l.pos:], "/>"):
		l.pos += 2
		l.inTag = false
		tok.kind = tokSelfClose
	case c == '=':
		l.pos++
		tok.kind = tokEq
	case c == '"' || c == '\'':
		end := strings.IndexByte(l.src[l.pos+1:], c)
		if end < 0 {
			return token{}, l.errorf("unterminated value", l.pos)
		}
		tok.kind = tokValue
		tok.text = l.src[l.pos+1 : l.pos+1+end]
		l.pos += end + 2
	case isNameByte(c):
		start := l.pos
		for l.pos < len(l.src) && isNameByte(l.src[l.pos]) {
			l.pos++
		}
		tok.kind = tokName
		tok.text = l.src[start:l.pos]
	default:
		return token{}, l.errorf("character", l.pos)
	}
	return tok, nil
}
