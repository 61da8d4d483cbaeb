package ewkt

import (
	"github.com/cockroachdb/errors"

	"geotext/internal/geom"
)

// parser is a predictive parser over the token stream. Production functions
// are named after the grammar rules they consume and build their values with
// the geom builders. A parser is used for a single input.
//
// The dimension is shared by the whole geometry: it is fixed by the first
// explicit Z/M suffix, or failing that by the arity of the first tuple, and
// every later tuple and suffix must agree with it.
type parser struct {
	lex *lexer
	tok token

	dim   geom.Dim
	fixed bool
}

func newParser(input string) *parser {
	return &parser{lex: newLexer(input)}
}

// advance pulls the next token into p.tok.
func (p *parser) advance() error {
	tok, err := p.lex.lex()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	err := geom.Syntaxf(format, args...)
	return errors.WithDetail(err, caret(p.lex.line, p.tok.pos))
}

func (p *parser) expect(kind tokKind) error {
	if p.tok.kind != kind {
		return p.errorf("syntax error: expected %s, found %s at pos %d", kind, p.tok.kind, p.tok.pos)
	}
	return p.advance()
}

// parse reads exactly one geometry followed by end of input.
func (p *parser) parse() (*geom.Geometry, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	g, err := p.geometry()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("syntax error: unexpected %s after geometry at pos %d", p.tok.kind, p.tok.pos)
	}
	return g, nil
}

// setDim records a keyword's explicit dimension suffix.
func (p *parser) setDim(tok token) error {
	if !tok.explicit {
		return nil
	}
	if p.fixed && p.dim != tok.dim {
		return p.errorf("syntax error: %s geometry inside %s geometry at pos %d", tok.dim, p.dim, tok.pos)
	}
	p.dim, p.fixed = tok.dim, true
	return nil
}

// geometry := keyword body
func (p *parser) geometry() (*geom.Geometry, error) {
	kw := p.tok
	if kw.kind != tokKeyword {
		return nil, p.errorf("syntax error: expected geometry keyword, found %s at pos %d", kw.kind, kw.pos)
	}
	if err := p.setDim(kw); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch kw.shape {
	case geom.KindPoint:
		pt, err := p.pointText()
		if err != nil {
			return nil, err
		}
		return geom.PointGeometry(pt), nil
	case geom.KindLineString:
		l, err := p.linestringText()
		if err != nil {
			return nil, err
		}
		return geom.LinestringGeometry(l), nil
	case geom.KindPolygon:
		poly, err := p.polygonText()
		if err != nil {
			return nil, err
		}
		return geom.PolygonGeometry(poly), nil
	case geom.KindMultiPoint:
		return p.multiPointText()
	case geom.KindMultiLineString:
		return p.multiLinestringText()
	case geom.KindMultiPolygon:
		return p.multiPolygonText()
	default:
		return p.collectionText()
	}
}

// list parses '(' item (',' item)* ')'.
func (p *parser) list(item func() error) error {
	if err := p.expect(tokLParen); err != nil {
		return err
	}
	for {
		if err := item(); err != nil {
			return err
		}
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.expect(tokRParen)
}

// tuple := number number [number [number]]
func (p *parser) tuple() (geom.Point, error) {
	pos := p.tok.pos
	var ords []float64
	for p.tok.kind == tokNum {
		ords = append(ords, p.tok.num)
		if err := p.advance(); err != nil {
			return geom.Point{}, err
		}
	}
	if !p.fixed {
		switch len(ords) {
		case 2:
			p.dim = geom.XY
		case 3:
			p.dim = geom.XYZ
		case 4:
			p.dim = geom.XYZM
		default:
			return geom.Point{}, p.errorf("syntax error: coordinate with %d values at pos %d", len(ords), pos)
		}
		p.fixed = true
	}
	if len(ords) != p.dim.Stride() {
		return geom.Point{}, p.errorf("syntax error: %s coordinate with %d values at pos %d", p.dim, len(ords), pos)
	}
	return geom.NewPoint(p.dim, ords...), nil
}

// tuples := '(' tuple (',' tuple)* ')'
func (p *parser) tuples() ([]geom.Point, error) {
	var pts []geom.Point
	err := p.list(func() error {
		pt, err := p.tuple()
		pts = append(pts, pt)
		return err
	})
	return pts, err
}

func (p *parser) pointText() (geom.Point, error) {
	if err := p.expect(tokLParen); err != nil {
		return geom.Point{}, err
	}
	pt, err := p.tuple()
	if err != nil {
		return geom.Point{}, err
	}
	return pt, p.expect(tokRParen)
}

func (p *parser) linestringText() (geom.Linestring, error) {
	pts, err := p.tuples()
	if err != nil {
		return geom.Linestring{}, err
	}
	return geom.NewLinestring(p.dim, pts)
}

func (p *parser) ringText() (geom.Ring, error) {
	pts, err := p.tuples()
	if err != nil {
		return geom.Ring{}, err
	}
	return geom.NewRing(p.dim, pts)
}

// polygonText := '(' ring (',' ring)* ')'
func (p *parser) polygonText() (geom.Polygon, error) {
	var rings []geom.Ring
	err := p.list(func() error {
		r, err := p.ringText()
		rings = append(rings, r)
		return err
	})
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon(rings)
}

// multiPointText accepts bare and parenthesized members:
// MULTIPOINT(1 2, 3 4) and MULTIPOINT((1 2), (3 4)).
func (p *parser) multiPointText() (*geom.Geometry, error) {
	var pts []geom.Point
	err := p.list(func() error {
		var pt geom.Point
		var err error
		if p.tok.kind == tokLParen {
			pt, err = p.pointText()
		} else {
			pt, err = p.tuple()
		}
		pts = append(pts, pt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.MultiPointGeometry(p.dim, pts)
}

func (p *parser) multiLinestringText() (*geom.Geometry, error) {
	var lines []geom.Linestring
	err := p.list(func() error {
		l, err := p.linestringText()
		lines = append(lines, l)
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.MultiLinestringGeometry(p.dim, lines)
}

func (p *parser) multiPolygonText() (*geom.Geometry, error) {
	var polys []geom.Polygon
	err := p.list(func() error {
		poly, err := p.polygonText()
		polys = append(polys, poly)
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.MultiPolygonGeometry(p.dim, polys)
}

// collectionText := '(' geometry (',' geometry)* ')'
func (p *parser) collectionText() (*geom.Geometry, error) {
	var members []*geom.Geometry
	err := p.list(func() error {
		m, err := p.geometry()
		if err == nil {
			members = append(members, m)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return geom.Collect(p.dim, members...)
}
