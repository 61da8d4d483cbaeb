package geom

// Point is a single coordinate. Only the ordinates named by Dim are
// meaningful.
type Point struct {
	Dim        Dim
	X, Y, Z, M float64
}

// NewPoint assigns ords to the ordinates of dim in order (x, y, [z], [m]).
// Missing trailing ordinates are zero.
func NewPoint(dim Dim, ords ...float64) Point {
	p := Point{Dim: dim}
	get := func(i int) float64 {
		if i < len(ords) {
			return ords[i]
		}
		return 0
	}
	p.X, p.Y = get(0), get(1)
	switch dim {
	case XYZ:
		p.Z = get(2)
	case XYM:
		p.M = get(2)
	case XYZM:
		p.Z, p.M = get(2), get(3)
	}
	return p
}

// Ords returns the active ordinates of p in storage order.
func (p Point) Ords() []float64 { return p.appendOrds(nil) }

func (p Point) appendOrds(dst []float64) []float64 {
	dst = append(dst, p.X, p.Y)
	if p.Dim.HasZ() {
		dst = append(dst, p.Z)
	}
	if p.Dim.HasM() {
		dst = append(dst, p.M)
	}
	return dst
}

// Equal compares the ordinates active in p's dim.
func (p Point) Equal(q Point) bool {
	if p.Dim != q.Dim || p.X != q.X || p.Y != q.Y {
		return false
	}
	if p.Dim.HasZ() && p.Z != q.Z {
		return false
	}
	if p.Dim.HasM() && p.M != q.M {
		return false
	}
	return true
}

// To returns p re-expressed in dim; ordinates p does not carry become 0.
func (p Point) To(dim Dim) Point {
	q := Point{Dim: dim, X: p.X, Y: p.Y}
	if dim.HasZ() && p.Dim.HasZ() {
		q.Z = p.Z
	}
	if dim.HasM() && p.Dim.HasM() {
		q.M = p.M
	}
	return q
}

// Linestring is an ordered run of coordinates stored flat, Dim.Stride()
// values per point.
type Linestring struct {
	Dim    Dim
	Coords []float64
}

func (l *Linestring) NumPoints() int {
	return len(l.Coords) / l.Dim.Stride()
}

func (l *Linestring) PointAt(i int) Point {
	s := l.Dim.Stride()
	return NewPoint(l.Dim, l.Coords[i*s:(i+1)*s]...)
}

// Clone returns a copy that shares no storage with l.
func (l *Linestring) Clone() Linestring {
	return Linestring{Dim: l.Dim, Coords: append([]float64(nil), l.Coords...)}
}

func (l *Linestring) To(dim Dim) Linestring {
	if dim == l.Dim {
		return l.Clone()
	}
	n := l.NumPoints()
	out := Linestring{Dim: dim, Coords: make([]float64, 0, n*dim.Stride())}
	for i := 0; i < n; i++ {
		out.Coords = l.PointAt(i).To(dim).appendOrds(out.Coords)
	}
	return out
}

// Ring is a closed linestring bounding a polygon.
type Ring struct {
	Linestring
}

// Closed reports whether the first and last points are equal in every
// active ordinate.
func (r *Ring) Closed() bool {
	n := r.NumPoints()
	if n == 0 {
		return false
	}
	return r.PointAt(0).Equal(r.PointAt(n - 1))
}

func (r *Ring) Clone() Ring { return Ring{r.Linestring.Clone()} }

func (r *Ring) To(dim Dim) Ring { return Ring{r.Linestring.To(dim)} }

// Polygon is one exterior ring and any number of holes.
type Polygon struct {
	Dim       Dim
	Exterior  Ring
	Interiors []Ring
}

func (p *Polygon) NumRings() int { return 1 + len(p.Interiors) }

// RingAt returns the exterior ring for i == 0 and interior i-1 otherwise.
func (p *Polygon) RingAt(i int) *Ring {
	if i == 0 {
		return &p.Exterior
	}
	return &p.Interiors[i-1]
}

func (p *Polygon) Clone() Polygon { return p.To(p.Dim) }

func (p *Polygon) To(dim Dim) Polygon {
	out := Polygon{Dim: dim, Exterior: p.Exterior.To(dim)}
	if len(p.Interiors) > 0 {
		out.Interiors = make([]Ring, len(p.Interiors))
		for i := range p.Interiors {
			out.Interiors[i] = p.Interiors[i].To(dim)
		}
	}
	return out
}

// Geometry is a bag of primitives sharing one Dim. Kind labels which
// combinations are meaningful.
type Geometry struct {
	Dim      Dim
	Kind     Kind
	SRID     int
	Envelope BBox

	Points      []Point
	Linestrings []Linestring
	Polygons    []Polygon
}

// New returns an empty geometry with no SRID.
func New(dim Dim, kind Kind) *Geometry {
	return &Geometry{Dim: dim, Kind: kind, SRID: -1}
}

func (g *Geometry) NumPrimitives() int {
	return len(g.Points) + len(g.Linestrings) + len(g.Polygons)
}

// NumVertices counts every coordinate in g, ring closures included.
func (g *Geometry) NumVertices() int {
	n := len(g.Points)
	for i := range g.Linestrings {
		n += g.Linestrings[i].NumPoints()
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		for r := 0; r < p.NumRings(); r++ {
			n += p.RingAt(r).NumPoints()
		}
	}
	return n
}

// take moves every primitive out of g, leaving it empty.
func (g *Geometry) take() (pts []Point, lns []Linestring, pgs []Polygon) {
	pts, lns, pgs = g.Points, g.Linestrings, g.Polygons
	g.Points, g.Linestrings, g.Polygons = nil, nil, nil
	return pts, lns, pgs
}
