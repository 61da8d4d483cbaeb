package geom

func flatten(dim Dim, pts []Point) []float64 {
	out := make([]float64, 0, len(pts)*dim.Stride())
	for _, p := range pts {
		out = p.To(dim).appendOrds(out)
	}
	return out
}

// NewLinestring copies pts into a fresh buffer of the given dim.
func NewLinestring(dim Dim, pts []Point) (Linestring, error) {
	if len(pts) == 0 {
		return Linestring{}, Structuralf("linestring: no points")
	}
	return Linestring{Dim: dim, Coords: flatten(dim, pts)}, nil
}

// NewRing builds a ring from pts. Fewer than four points or an open ring is
// an error.
func NewRing(dim Dim, pts []Point) (Ring, error) {
	if len(pts) < 4 {
		return Ring{}, Structuralf("ring: %d points, need at least 4", len(pts))
	}
	r := Ring{Linestring{Dim: dim, Coords: flatten(dim, pts)}}
	if !r.Closed() {
		return Ring{}, Structuralf("ring: not closed")
	}
	return r, nil
}

// NewPolygon takes ownership of rings; the first is the exterior.
func NewPolygon(rings []Ring) (Polygon, error) {
	if len(rings) == 0 {
		return Polygon{}, Structuralf("polygon: no rings")
	}
	dim := rings[0].Dim
	for i := range rings[1:] {
		if rings[i+1].Dim != dim {
			return Polygon{}, Structuralf("polygon: ring %d is %s, want %s", i+1, rings[i+1].Dim, dim)
		}
	}
	p := Polygon{Dim: dim, Exterior: rings[0]}
	if len(rings) > 1 {
		p.Interiors = rings[1:]
	}
	return p, nil
}

// PointGeometry wraps p in a Point geometry of p's dim.
func PointGeometry(p Point) *Geometry {
	g := New(p.Dim, KindPoint)
	g.Points = []Point{p}
	return g
}

// LinestringGeometry copies l into a new LineString geometry.
func LinestringGeometry(l Linestring) *Geometry {
	g := New(l.Dim, KindLineString)
	g.Linestrings = []Linestring{l.Clone()}
	return g
}

// PolygonGeometry moves p into a new Polygon geometry.
func PolygonGeometry(p Polygon) *Geometry {
	g := New(p.Dim, KindPolygon)
	g.Polygons = []Polygon{p}
	return g
}

func MultiPointGeometry(dim Dim, pts []Point) (*Geometry, error) {
	if len(pts) == 0 {
		return nil, Structuralf("multipoint: no points")
	}
	g := New(dim, KindMultiPoint)
	g.Points = make([]Point, len(pts))
	for i, p := range pts {
		g.Points[i] = p.To(dim)
	}
	return g, nil
}

func MultiLinestringGeometry(dim Dim, lines []Linestring) (*Geometry, error) {
	if len(lines) == 0 {
		return nil, Structuralf("multilinestring: no linestrings")
	}
	g := New(dim, KindMultiLineString)
	g.Linestrings = make([]Linestring, len(lines))
	for i := range lines {
		g.Linestrings[i] = lines[i].To(dim)
	}
	return g, nil
}

func MultiPolygonGeometry(dim Dim, polys []Polygon) (*Geometry, error) {
	if len(polys) == 0 {
		return nil, Structuralf("multipolygon: no polygons")
	}
	g := New(dim, KindMultiPolygon)
	g.Polygons = make([]Polygon, len(polys))
	for i := range polys {
		g.Polygons[i] = polys[i].To(dim)
	}
	return g, nil
}

// Collect splices the primitives of members onto a new GeometryCollection.
// The members are left empty.
func Collect(dim Dim, members ...*Geometry) (*Geometry, error) {
	if len(members) == 0 {
		return nil, Structuralf("collection: no members")
	}
	for i, m := range members {
		if m.Dim != dim {
			return nil, Structuralf("collection: member %d is %s, want %s", i, m.Dim, dim)
		}
	}
	g := New(dim, KindGeometryCollection)
	for _, m := range members {
		pts, lns, pgs := m.take()
		g.Points = append(g.Points, pts...)
		g.Linestrings = append(g.Linestrings, lns...)
		g.Polygons = append(g.Polygons, pgs...)
	}
	return g, nil
}
