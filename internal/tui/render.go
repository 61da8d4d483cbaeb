package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geotext/internal/geom"
)

// viewBox is the envelope padded so that a single point or an axis aligned
// line still spans the map.
func (m Model) viewBox() geom.BBox {
	b := m.data.BBox
	if m.geo == nil {
		return b
	}
	if b.Width() == 0 {
		b.MinX, b.MaxX = b.MinX-0.5, b.MaxX+0.5
	}
	if b.Height() == 0 {
		b.MinY, b.MaxY = b.MinY-0.5, b.MaxY+0.5
	}
	return b
}

// cellToXY converts a map cell back to data coordinates using the view box,
// zoom and pan.
func (m Model) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	b := m.viewBox()
	if !(b.MaxX > b.MinX && b.MaxY > b.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return b.MinX + nx*b.Width(), b.MinY + ny*b.Height(), true
}

// eachVertex calls fn for every x/y vertex of the loaded data.
func (m Model) eachVertex(fn func(x, y float64)) {
	for _, p := range m.data.Points {
		fn(p[0], p[1])
	}
	for _, ls := range m.data.Lines {
		for _, p := range ls {
			fn(p[0], p[1])
		}
	}
	for _, poly := range m.data.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				fn(p[0], p[1])
			}
		}
	}
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		row := make([]rune, w)
		for x := 0; x < w; x++ {
			row[x] = ' '
		}
		lines[y] = string(row)
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	// Draw polygons (fill then edges)
	if m.showPolys && len(m.data.Polygons) > 0 {
		for _, poly := range m.data.Polygons {
			var ringsMic [][][2]int
			for _, ring := range poly {
				var sm [][2]int
				for _, p := range ring {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					sm = append(sm, [2]int{mx, my})
				}
				if len(sm) >= 3 {
					ringsMic = append(ringsMic, sm)
				}
			}
			if len(ringsMic) == 0 {
				continue
			}
			// even-odd scanline fill over every ring, so holes stay empty
			hMic := h * 4
			for yMic := 0; yMic < hMic; yMic++ {
				var xs []int
				for _, ring := range ringsMic {
					for i := 0; i < len(ring); i++ {
						a := ring[i]
						b := ring[(i+1)%len(ring)]
						if a[1] == b[1] {
							continue
						}
						y0, y1 := a[1], b[1]
						x0, x1 := a[0], b[0]
						if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
							t := float64(yMic-y0) / float64(y1-y0)
							xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
						}
					}
				}
				sort.Ints(xs)
				for i := 0; i+1 < len(xs); i += 2 {
					for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
						br.setPixel(xMic, yMic)
					}
				}
			}
			// draw edges (high-res)
			for idx := range ringsMic {
				r := ringsMic[idx]
				for i := 0; i < len(r); i++ {
					a := r[i]
					b := r[(i+1)%len(r)]
					br.drawLineMicro(a[0], a[1], b[0], b[1])
				}
			}
		}
	}

	if m.showPoints {
		for _, p := range m.data.Points {
			mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
			if !ok {
				continue
			}
			br.setPixel(mx, my)
		}
	}

	// Draw line strings (high-res)
	if m.showLines && len(m.data.Lines) > 0 {
		for _, ls := range m.data.Lines {
			var prev *[2]int
			for _, p := range ls {
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				if prev != nil {
					br.drawLineMicro(prev[0], prev[1], mx, my)
				}
				prev = &[2]int{mx, my}
			}
		}
	}
	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		if len(braLines[y]) == 0 {
			continue
		}
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}
	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				pre := string(r[:cx])
				post := string(r[cx+1:])
				lines[cy] = pre + circle + post
			}
		}
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps x/y into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(x, y)
	if !ok {
		return 0, 0, false
	}
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps x/y to screen cells considering zoom and pan.
func (m Model) screenXY(x, y float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(x, y)
	if !ok {
		return 0, 0, false
	}
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// normalize places x/y in the unit square of the view box, zoomed around
// its center.
func (m Model) normalize(x, y float64) (float64, float64, bool) {
	b := m.viewBox()
	if !(b.MaxX > b.MinX && b.MaxY > b.MinY) {
		return 0, 0, false
	}
	nx := (x - b.MinX) / b.Width()
	ny := (y - b.MinY) / b.Height()
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom, true
}

// inspectNearest finds the vertex closest to the viewport center.
func (m Model) inspectNearest() (x, y float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := -1
	m.eachVertex(func(vx, vy float64) {
		sx, sy, ok := m.screenXY(vx, vy, w, h)
		if !ok {
			return
		}
		dx, dy := sx-cx, sy-cy
		if d := dx*dx + dy*dy; bestD < 0 || d < bestD {
			bestD, x, y = d, vx, vy
		}
	})
	return x, y, bestD >= 0
}

// nearestMicro returns the microgrid position of the vertex closest to the
// hovered cell, or the cell itself when nothing is on screen.
func (m Model) nearestMicro(cellX, cellY, w, h int) (int, int) {
	hx, hy := cellX*2, cellY*4
	bx, by := hx, hy
	best := -1
	m.eachVertex(func(vx, vy float64) {
		mx, my, ok := m.screenXYMicro(vx, vy, w, h)
		if !ok {
			return
		}
		dx, dy := mx-hx, my-hy
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, bx, by = d, mx, my
		}
	})
	return bx, by
}
