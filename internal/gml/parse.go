package gml

import "geotext/internal/geom"

type parseState uint8

const (
	stContent   parseState = iota // between tags
	stOpenName                    // after '<'
	stAttrs                       // inside an opening tag
	stAttrEq                      // after an attribute key
	stAttrValue                   // after '='
	stCloseName                   // after '</'
	stCloseEnd                    // after the closing tag name
)

// parseNodes turns a document into its flat node sequence.
func parseNodes(src string) ([]Node, error) {
	lex := newLexer(src)
	var (
		nodes []Node
		cur   Node
		key   string
		state = stContent
	)
	unexpected := func(tok token) error {
		return geom.Syntaxf("syntax error: unexpected %s at pos %d", tok.kind, tok.pos)
	}
	for {
		tok, err := lex.lex()
		if err != nil {
			return nil, err
		}
		switch state {
		case stContent:
			switch tok.kind {
			case tokEOF:
				if len(nodes) == 0 {
					return nil, geom.Syntaxf("syntax error: empty document")
				}
				return nodes, nil
			case tokOpen:
				cur = Node{Kind: Open, pos: tok.pos}
				state = stOpenName
			case tokEndOpen:
				cur = Node{Kind: Closing, pos: tok.pos}
				state = stCloseName
			case tokCoord:
				if len(nodes) == 0 || nodes[len(nodes)-1].Kind != Open {
					return nil, unexpected(tok)
				}
				last := &nodes[len(nodes)-1]
				last.Coords = append(last.Coords, tok.text)
			default:
				return nil, unexpected(tok)
			}
		case stOpenName:
			if tok.kind != tokName {
				return nil, unexpected(tok)
			}
			cur.Tag = tok.text
			state = stAttrs
		case stAttrs:
			switch tok.kind {
			case tokName:
				key = tok.text
				state = stAttrEq
			case tokClose:
				nodes = append(nodes, cur)
				state = stContent
			case tokSelfClose:
				cur.Kind = SelfClosed
				nodes = append(nodes, cur)
				state = stContent
			default:
				return nil, unexpected(tok)
			}
		case stAttrEq:
			if tok.kind != tokEq {
				return nil, unexpected(tok)
			}
			state = stAttrValue
		case stAttrValue:
			if tok.kind != tokValue {
				return nil, unexpected(tok)
			}
			cur.Attrs = append(cur.Attrs, Attr{Key: key, Value: tok.text})
			state = stAttrs
		case stCloseName:
			if tok.kind != tokName {
				return nil, unexpected(tok)
			}
			cur.Tag = tok.text
			state = stCloseEnd
		case stCloseEnd:
			if tok.kind != tokClose {
				return nil, unexpected(tok)
			}
			nodes = append(nodes, cur)
			state = stContent
		}
	}
}
