// Package geomconv converts between geotext geometries and go-geom, and
// encodes geometries in the output formats the cli offers.
package geomconv

import (
	"github.com/cockroachdb/errors"
	gogeom "github.com/twpayne/go-geom"

	"geotext/internal/geom"
)

var layouts = map[geom.Dim]gogeom.Layout{
	geom.XY:   gogeom.XY,
	geom.XYZ:  gogeom.XYZ,
	geom.XYM:  gogeom.XYM,
	geom.XYZM: gogeom.XYZM,
}

func dimOf(l gogeom.Layout) (geom.Dim, error) {
	for d, gl := range layouts {
		if gl == l {
			return d, nil
		}
	}
	return 0, errors.Newf("unsupported layout %v", l)
}

func ringEnds(p *geom.Polygon, flat []float64, ends []int) ([]float64, []int) {
	for r := 0; r < p.NumRings(); r++ {
		flat = append(flat, p.RingAt(r).Coords...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

// ToT returns g as a go-geom geometry. Collections list their points, then
// their linestrings, then their polygons.
func ToT(g *geom.Geometry) (gogeom.T, error) {
	l, ok := layouts[g.Dim]
	if !ok {
		return nil, errors.Newf("unknown dim %d", g.Dim)
	}
	srid := 0
	if g.SRID > 0 {
		srid = g.SRID
	}

	switch g.Kind {
	case geom.KindPoint:
		if len(g.Points) != 1 {
			return nil, errors.Newf("point geometry holds %d points", len(g.Points))
		}
		return gogeom.NewPointFlat(l, g.Points[0].Ords()).SetSRID(srid), nil
	case geom.KindLineString:
		if len(g.Linestrings) != 1 {
			return nil, errors.Newf("linestring geometry holds %d linestrings", len(g.Linestrings))
		}
		return gogeom.NewLineStringFlat(l, append([]float64(nil), g.Linestrings[0].Coords...)).SetSRID(srid), nil
	case geom.KindPolygon:
		if len(g.Polygons) != 1 {
			return nil, errors.Newf("polygon geometry holds %d polygons", len(g.Polygons))
		}
		flat, ends := ringEnds(&g.Polygons[0], nil, nil)
		return gogeom.NewPolygonFlat(l, flat, ends).SetSRID(srid), nil
	case geom.KindMultiPoint:
		var flat []float64
		for _, p := range g.Points {
			flat = append(flat, p.Ords()...)
		}
		return gogeom.NewMultiPointFlat(l, flat).SetSRID(srid), nil
	case geom.KindMultiLineString:
		var flat []float64
		var ends []int
		for i := range g.Linestrings {
			flat = append(flat, g.Linestrings[i].Coords...)
			ends = append(ends, len(flat))
		}
		return gogeom.NewMultiLineStringFlat(l, flat, ends).SetSRID(srid), nil
	case geom.KindMultiPolygon:
		var flat []float64
		var endss [][]int
		for i := range g.Polygons {
			var ends []int
			flat, ends = ringEnds(&g.Polygons[i], flat, nil)
			endss = append(endss, ends)
		}
		return gogeom.NewMultiPolygonFlat(l, flat, endss).SetSRID(srid), nil
	case geom.KindGeometryCollection:
		gc := gogeom.NewGeometryCollection()
		for _, p := range g.Points {
			if err := gc.Push(gogeom.NewPointFlat(l, p.Ords())); err != nil {
				return nil, err
			}
		}
		for i := range g.Linestrings {
			ls := gogeom.NewLineStringFlat(l, append([]float64(nil), g.Linestrings[i].Coords...))
			if err := gc.Push(ls); err != nil {
				return nil, err
			}
		}
		for i := range g.Polygons {
			flat, ends := ringEnds(&g.Polygons[i], nil, nil)
			if err := gc.Push(gogeom.NewPolygonFlat(l, flat, ends)); err != nil {
				return nil, err
			}
		}
		return gc.SetSRID(srid), nil
	}
	return nil, errors.Newf("unknown kind %d", g.Kind)
}

// FromT converts t and finalizes the result with t's SRID (none when zero).
func FromT(t gogeom.T) (*geom.Geometry, error) {
	g, err := fromT(t)
	if err != nil {
		return nil, err
	}
	srid := t.SRID()
	if srid == 0 {
		srid = -1
	}
	if err := geom.Finalize(g, srid); err != nil {
		return nil, err
	}
	return g, nil
}

func linestring(dim geom.Dim, flat []float64) geom.Linestring {
	return geom.Linestring{Dim: dim, Coords: append([]float64(nil), flat...)}
}

func polygon(dim geom.Dim, flat []float64, ends []int) (geom.Polygon, error) {
	rings := make([]geom.Ring, 0, len(ends))
	start := 0
	for _, end := range ends {
		rings = append(rings, geom.Ring{Linestring: linestring(dim, flat[start:end])})
		start = end
	}
	return geom.NewPolygon(rings)
}

func fromT(t gogeom.T) (*geom.Geometry, error) {
	if t.Empty() {
		return nil, geom.Structuralf("%T: empty", t)
	}
	dim, err := dimOf(t.Layout())
	if err != nil {
		return nil, err
	}
	s := t.Stride()

	switch t := t.(type) {
	case *gogeom.Point:
		return geom.PointGeometry(geom.NewPoint(dim, t.FlatCoords()...)), nil
	case *gogeom.LineString:
		return geom.LinestringGeometry(linestring(dim, t.FlatCoords())), nil
	case *gogeom.Polygon:
		p, err := polygon(dim, t.FlatCoords(), t.Ends())
		if err != nil {
			return nil, err
		}
		return geom.PolygonGeometry(p), nil
	case *gogeom.MultiPoint:
		flat := t.FlatCoords()
		pts := make([]geom.Point, 0, len(flat)/s)
		for i := 0; i+s <= len(flat); i += s {
			pts = append(pts, geom.NewPoint(dim, flat[i:i+s]...))
		}
		return geom.MultiPointGeometry(dim, pts)
	case *gogeom.MultiLineString:
		flat := t.FlatCoords()
		lines := make([]geom.Linestring, 0, len(t.Ends()))
		start := 0
		for _, end := range t.Ends() {
			lines = append(lines, linestring(dim, flat[start:end]))
			start = end
		}
		return geom.MultiLinestringGeometry(dim, lines)
	case *gogeom.MultiPolygon:
		flat := t.FlatCoords()
		polys := make([]geom.Polygon, 0, len(t.Endss()))
		start := 0
		for _, ends := range t.Endss() {
			if len(ends) == 0 {
				continue
			}
			rel := make([]int, len(ends))
			for i, e := range ends {
				rel[i] = e - start
			}
			p, err := polygon(dim, flat[start:ends[len(ends)-1]], rel)
			if err != nil {
				return nil, err
			}
			polys = append(polys, p)
			start = ends[len(ends)-1]
		}
		return geom.MultiPolygonGeometry(dim, polys)
	case *gogeom.GeometryCollection:
		members := make([]*geom.Geometry, 0, t.NumGeoms())
		for _, m := range t.Geoms() {
			g, err := fromT(m)
			if err != nil {
				return nil, err
			}
			members = append(members, g)
		}
		return gather(members)
	}
	return nil, errors.Newf("unsupported geometry %T", t)
}

// gather merges members into one collection at the widest member dim.
func gather(members []*geom.Geometry) (*geom.Geometry, error) {
	if len(members) == 0 {
		return nil, geom.Structuralf("collection: no members")
	}
	var hasZ, hasM bool
	for _, m := range members {
		hasZ = hasZ || m.Dim.HasZ()
		hasM = hasM || m.Dim.HasM()
	}
	dim := geom.DimOf(hasZ, hasM)
	g := geom.New(dim, geom.KindGeometryCollection)
	for _, m := range members {
		for _, p := range m.Points {
			g.Points = append(g.Points, p.To(dim))
		}
		for i := range m.Linestrings {
			g.Linestrings = append(g.Linestrings, m.Linestrings[i].To(dim))
		}
		for i := range m.Polygons {
			g.Polygons = append(g.Polygons, m.Polygons[i].To(dim))
		}
	}
	return g, nil
}
