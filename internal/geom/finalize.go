package geom

import "github.com/golang/geo/r2"

// ComputeEnvelope returns the x/y bounds of every coordinate in g.
func ComputeEnvelope(g *Geometry) BBox {
	rect := r2.EmptyRect()
	addSeq := func(l *Linestring) {
		s := l.Dim.Stride()
		for i := 0; i+1 < len(l.Coords); i += s {
			rect = rect.AddPoint(r2.Point{X: l.Coords[i], Y: l.Coords[i+1]})
		}
	}
	for _, p := range g.Points {
		rect = rect.AddPoint(r2.Point{X: p.X, Y: p.Y})
	}
	for i := range g.Linestrings {
		addSeq(&g.Linestrings[i])
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		for r := 0; r < p.NumRings(); r++ {
			addSeq(&p.RingAt(r).Linestring)
		}
	}
	if rect.IsEmpty() {
		return BBox{}
	}
	return BBox{MinX: rect.X.Lo, MinY: rect.Y.Lo, MaxX: rect.X.Hi, MaxY: rect.Y.Hi}
}

// Finalize validates g, computes its envelope and stamps srid.
func Finalize(g *Geometry, srid int) error {
	if err := CheckValidity(g); err != nil {
		return err
	}
	g.Envelope = ComputeEnvelope(g)
	g.SRID = srid
	return nil
}
