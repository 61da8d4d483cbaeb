package geom

// BBox is an axis-aligned x/y envelope.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width and Height are zero for a single-point envelope.
func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Data is a minimal x/y projection of a geometry for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

func xyPairs(l *Linestring) [][2]float64 {
	n := l.NumPoints()
	s := l.Dim.Stride()
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		out[i] = [2]float64{l.Coords[i*s], l.Coords[i*s+1]}
	}
	return out
}

// RenderData drops z and m and flattens g into Data.
func (g *Geometry) RenderData() Data {
	d := Data{BBox: g.Envelope}
	for _, p := range g.Points {
		d.Points = append(d.Points, [2]float64{p.X, p.Y})
	}
	for i := range g.Linestrings {
		d.Lines = append(d.Lines, xyPairs(&g.Linestrings[i]))
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		rings := make([][][2]float64, 0, p.NumRings())
		for r := 0; r < p.NumRings(); r++ {
			rings = append(rings, xyPairs(&p.RingAt(r).Linestring))
		}
		d.Polygons = append(d.Polygons, rings)
	}
	return d
}
