// Package gml reads the geometry subset of GML 2 and GML 3: Point,
// LineString, Curve, Polygon and the Multi* collections, with or without the
// gml: namespace prefix.
package gml

import (
	"go.uber.org/zap"

	"geotext/internal/geom"
)

// Parser parses GML geometry documents. It holds no per-call state and may
// be shared between goroutines.
type Parser struct {
	lookup ProjLookup
	reproj Reprojector
	strict bool
	log    *zap.Logger
}

type Option func(*Parser)

func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithReprojection enables reprojection of collection members whose SRID
// differs from the collection's.
func WithReprojection(lookup ProjLookup, r Reprojector) Option {
	return func(p *Parser) { p.lookup, p.reproj = lookup, r }
}

// WithStrictReprojection makes a member that cannot be reprojected fail
// the parse instead of being merged as is.
func WithStrictReprojection(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses input with a Parser that never reprojects.
func Parse(input string) (*geom.Geometry, error) {
	return defaultParser.Parse(input)
}

func (p *Parser) Parse(input string) (*geom.Geometry, error) {
	g, err := p.parse(input)
	if err != nil {
		p.log.Debug("gml rejected", zap.String("class", geom.Class(err)), zap.Error(err))
		return nil, err
	}
	return g, nil
}

func (p *Parser) parse(input string) (*geom.Geometry, error) {
	nodes, err := parseNodes(input)
	if err != nil {
		return nil, err
	}
	tr, err := translate(nodes)
	if err != nil {
		return nil, err
	}
	m := merger{lookup: p.lookup, reproj: p.reproj, strict: p.strict, log: p.log}
	g, err := m.merge(tr)
	if err != nil {
		return nil, err
	}
	if err := geom.Finalize(g, g.SRID); err != nil {
		return nil, err
	}
	return g, nil
}
