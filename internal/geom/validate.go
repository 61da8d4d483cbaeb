package geom

// CheckValidity rejects degenerate geometries: a linestring with fewer than
// two points, a ring with fewer than four points or open, a primitive whose
// dim differs from g's, or no primitives at all.
func CheckValidity(g *Geometry) error {
	if g == nil || g.NumPrimitives() == 0 {
		return Validationf("geometry has no primitives")
	}
	for i := range g.Points {
		if g.Points[i].Dim != g.Dim {
			return Validationf("point %d: dim %s, want %s", i, g.Points[i].Dim, g.Dim)
		}
	}
	for i := range g.Linestrings {
		l := &g.Linestrings[i]
		if l.Dim != g.Dim {
			return Validationf("linestring %d: dim %s, want %s", i, l.Dim, g.Dim)
		}
		if n := l.NumPoints(); n < 2 {
			return Validationf("linestring %d: %d points, need at least 2", i, n)
		}
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		if p.Dim != g.Dim {
			return Validationf("polygon %d: dim %s, want %s", i, p.Dim, g.Dim)
		}
		for r := 0; r < p.NumRings(); r++ {
			ring := p.RingAt(r)
			if ring.Dim != g.Dim {
				return Validationf("polygon %d ring %d: dim %s, want %s", i, r, ring.Dim, g.Dim)
			}
			if n := ring.NumPoints(); n < 4 {
				return Validationf("polygon %d ring %d: %d points, need at least 4", i, r, n)
			}
			if !ring.Closed() {
				return Validationf("polygon %d ring %d: not closed", i, r)
			}
		}
	}
	return nil
}
