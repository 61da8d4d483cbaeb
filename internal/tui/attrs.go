package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"geotext/internal/geom"
)

var attrCols = []string{"kind", "dim", "vertices", "rings", "first"}

// refreshAttrsFromCurrent rebuilds the table from the loaded geometry.
func (m *Model) refreshAttrsFromCurrent() {
	rows := primitiveRows(m.geo)
	// An empty table would panic on render.
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no geometry loaded"
		return
	}
	tcols := make([]table.Column, 0, len(attrCols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for j, c := range attrCols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[j])+2)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, 32)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, table.Row(append([]string{strconv.Itoa(i + 1)}, r...)))
	}
	// clear rows before columns change so the widths never disagree
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func fmtPoint(p geom.Point) string {
	s := ""
	for i, v := range p.Ords() {
		if i > 0 {
			s += " "
		}
		s += strconv.FormatFloat(v, 'g', 6, 64)
	}
	return s
}

// primitiveRows lists one row per point, linestring and polygon of g.
func primitiveRows(g *geom.Geometry) [][]string {
	if g == nil {
		return nil
	}
	var rows [][]string
	dim := g.Dim.String()
	for _, p := range g.Points {
		rows = append(rows, []string{"point", dim, "1", "", fmtPoint(p)})
	}
	for i := range g.Linestrings {
		l := &g.Linestrings[i]
		rows = append(rows, []string{"linestring", dim, strconv.Itoa(l.NumPoints()), "", fmtPoint(l.PointAt(0))})
	}
	for i := range g.Polygons {
		p := &g.Polygons[i]
		n := 0
		for r := 0; r < p.NumRings(); r++ {
			n += p.RingAt(r).NumPoints()
		}
		rows = append(rows, []string{"polygon", dim, strconv.Itoa(n), fmt.Sprint(p.NumRings()), fmtPoint(p.Exterior.PointAt(0))})
	}
	return rows
}
