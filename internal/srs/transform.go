package srs

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ctessum/geom/proj"

	"geotext/internal/geom"
)

// Transformer reprojects geometries between proj4 definitions. Parsed
// definitions are cached; a Transformer is safe for concurrent use.
type Transformer struct {
	mu  sync.Mutex
	srs map[string]*proj.SR
}

func NewTransformer() *Transformer {
	return &Transformer{srs: make(map[string]*proj.SR)}
}

func (t *Transformer) sr(def string) (*proj.SR, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sr, ok := t.srs[def]; ok {
		return sr, nil
	}
	sr, err := proj.Parse(def)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing projection %q", def)
	}
	t.srs[def] = sr
	return sr, nil
}

// Reproject returns a copy of g with x and y moved from the from projection
// to the to projection. Z and M are carried over unchanged.
func (t *Transformer) Reproject(g *geom.Geometry, from, to string) (*geom.Geometry, error) {
	src, err := t.sr(from)
	if err != nil {
		return nil, err
	}
	dst, err := t.sr(to)
	if err != nil {
		return nil, err
	}
	fn, err := src.NewTransform(dst)
	if err != nil {
		return nil, errors.Wrap(err, "building transform")
	}

	seq := func(l *geom.Linestring) (geom.Linestring, error) {
		out := l.Clone()
		s := out.Dim.Stride()
		for i := 0; i+1 < len(out.Coords); i += s {
			x, y, err := fn(out.Coords[i], out.Coords[i+1])
			if err != nil {
				return geom.Linestring{}, err
			}
			out.Coords[i], out.Coords[i+1] = x, y
		}
		return out, nil
	}

	out := geom.New(g.Dim, g.Kind)
	out.SRID = g.SRID
	for _, p := range g.Points {
		x, y, err := fn(p.X, p.Y)
		if err != nil {
			return nil, errors.Wrap(err, "transforming point")
		}
		p.X, p.Y = x, y
		out.Points = append(out.Points, p)
	}
	for i := range g.Linestrings {
		l, err := seq(&g.Linestrings[i])
		if err != nil {
			return nil, errors.Wrap(err, "transforming linestring")
		}
		out.Linestrings = append(out.Linestrings, l)
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		rings := make([]geom.Ring, 0, p.NumRings())
		for r := 0; r < p.NumRings(); r++ {
			l, err := seq(&p.RingAt(r).Linestring)
			if err != nil {
				return nil, errors.Wrap(err, "transforming ring")
			}
			rings = append(rings, geom.Ring{Linestring: l})
		}
		poly, err := geom.NewPolygon(rings)
		if err != nil {
			return nil, err
		}
		out.Polygons = append(out.Polygons, poly)
	}
	return out, nil
}
