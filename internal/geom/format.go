package geom

import (
	"strconv"
	"strings"
)

// Format renders g as EWKT: an SRID prefix when set, the shape keyword with
// its dimension suffix, then the coordinates. Collection members inherit the
// collection's dimension and are written points first, then linestrings,
// then polygons.
func Format(g *Geometry) string {
	var b strings.Builder
	if g.SRID != -1 {
		b.WriteString("SRID=")
		b.WriteString(strconv.Itoa(g.SRID))
		b.WriteByte(';')
	}
	w := writer{b: &b}
	w.geometry(g)
	return b.String()
}

type writer struct {
	b *strings.Builder
}

func (w writer) keyword(kw string, d Dim) {
	w.b.WriteString(kw)
	if s := d.suffix(); s != "" {
		w.b.WriteString(s)
		w.b.WriteByte(' ')
	}
}

func (w writer) num(v float64) {
	w.b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}

func (w writer) tuple(ords []float64) {
	for i, v := range ords {
		if i > 0 {
			w.b.WriteByte(' ')
		}
		w.num(v)
	}
}

func (w writer) seq(l *Linestring) {
	s := l.Dim.Stride()
	w.b.WriteByte('(')
	for i := 0; i+s <= len(l.Coords); i += s {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.tuple(l.Coords[i : i+s])
	}
	w.b.WriteByte(')')
}

func (w writer) polygon(p *Polygon) {
	w.b.WriteByte('(')
	for r := 0; r < p.NumRings(); r++ {
		if r > 0 {
			w.b.WriteByte(',')
		}
		w.seq(&p.RingAt(r).Linestring)
	}
	w.b.WriteByte(')')
}

func (w writer) empty() { w.b.WriteString("EMPTY") }

func (w writer) geometry(g *Geometry) {
	switch g.Kind {
	case KindPoint:
		w.keyword("POINT", g.Dim)
		if len(g.Points) == 0 {
			w.empty()
			return
		}
		w.b.WriteByte('(')
		w.tuple(g.Points[0].Ords())
		w.b.WriteByte(')')
	case KindLineString:
		w.keyword("LINESTRING", g.Dim)
		if len(g.Linestrings) == 0 {
			w.empty()
			return
		}
		w.seq(&g.Linestrings[0])
	case KindPolygon:
		w.keyword("POLYGON", g.Dim)
		if len(g.Polygons) == 0 {
			w.empty()
			return
		}
		w.polygon(&g.Polygons[0])
	case KindMultiPoint:
		w.keyword("MULTIPOINT", g.Dim)
		w.b.WriteByte('(')
		for i := range g.Points {
			if i > 0 {
				w.b.WriteByte(',')
			}
			w.tuple(g.Points[i].Ords())
		}
		w.b.WriteByte(')')
	case KindMultiLineString:
		w.keyword("MULTILINESTRING", g.Dim)
		w.b.WriteByte('(')
		for i := range g.Linestrings {
			if i > 0 {
				w.b.WriteByte(',')
			}
			w.seq(&g.Linestrings[i])
		}
		w.b.WriteByte(')')
	case KindMultiPolygon:
		w.keyword("MULTIPOLYGON", g.Dim)
		w.b.WriteByte('(')
		for i := range g.Polygons {
			if i > 0 {
				w.b.WriteByte(',')
			}
			w.polygon(&g.Polygons[i])
		}
		w.b.WriteByte(')')
	default:
		w.keyword("GEOMETRYCOLLECTION", g.Dim)
		w.b.WriteByte('(')
		n := 0
		sep := func() {
			if n > 0 {
				w.b.WriteByte(',')
			}
			n++
		}
		for i := range g.Points {
			sep()
			w.b.WriteString("POINT(")
			w.tuple(g.Points[i].Ords())
			w.b.WriteByte(')')
		}
		for i := range g.Linestrings {
			sep()
			w.b.WriteString("LINESTRING")
			w.seq(&g.Linestrings[i])
		}
		for i := range g.Polygons {
			sep()
			w.b.WriteString("POLYGON")
			w.polygon(&g.Polygons[i])
		}
		w.b.WriteByte(')')
	}
}
