// Package ewkt reads geometries written in extended well-known text:
// an optional "SRID=<n>;" prefix followed by a WKT shape with optional
// Z, M or ZM dimension suffixes.
package ewkt

import (
	"go.uber.org/zap"

	"geotext/internal/geom"
)

// Parser parses EWKT. The zero value is not usable; call NewParser.
// A Parser holds no per-call state and may be shared between goroutines.
type Parser struct {
	log *zap.Logger
}

type Option func(*Parser)

// WithLogger sets the logger used to report rejected input.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) { p.log = l }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses input with a default Parser.
func Parse(input string) (*geom.Geometry, error) {
	return defaultParser.Parse(input)
}

// Parse returns the finished geometry for input, or an error and no
// geometry. The SRID is the prefix value, or -1 without a prefix.
func (p *Parser) Parse(input string) (*geom.Geometry, error) {
	srid, body := splitSRID(input)
	g, err := newParser(body).parse()
	if err == nil {
		err = geom.Finalize(g, srid)
	}
	if err != nil {
		p.log.Debug("ewkt rejected", zap.String("class", geom.Class(err)), zap.Error(err))
		return nil, err
	}
	return g, nil
}
