package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"geotext/internal/config"
	"geotext/internal/geom"
	"geotext/internal/ingest"
)

func newTestModel(t *testing.T) Model {
	fs := afero.NewMemMapFs()
	for name, body := range map[string]string{
		"/data/a.wkt":   "POLYGON((0 0,4 0,4 4,0 4,0 0),(1 1,2 1,2 2,1 1))",
		"/data/b.gml":   `<gml:Point srsName="EPSG:4326"><gml:pos>3 4</gml:pos></gml:Point>`,
		"/data/bad.wkt": "POINT(",
		"/data/notes":   "not geometry",
	} {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	svc, err := ingest.New(config.Default(), nil)
	require.NoError(t, err)
	return New(svc, WithFs(fs), WithDir("/data"))
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRefreshDirListsSupportedFiles(t *testing.T) {
	m := newTestModel(t)
	var titles []string
	for _, it := range m.items {
		titles = append(titles, it.(fileItem).Title())
	}
	require.Equal(t, []string{"a.wkt", "b.gml", "bad.wkt"}, titles)
	require.Equal(t, ingest.LangGML, m.items[1].(fileItem).Description())
}

func TestLoadPath(t *testing.T) {
	m := newTestModel(t)
	m.loadPath("/data/a.wkt")
	require.NotNil(t, m.geo)
	require.Equal(t, geom.KindPolygon, m.geo.Kind)
	require.True(t, m.showPolys)
	require.False(t, m.showPoints)
	require.Contains(t, m.status, "loaded: a.wkt")
	require.Len(t, m.data.Polygons, 1)
	require.Len(t, m.data.Polygons[0], 2)

	m.loadPath("/data/bad.wkt")
	require.True(t, strings.HasPrefix(m.status, "load error (syntax)"), m.status)
	require.Equal(t, geom.KindPolygon, m.geo.Kind)
	require.Equal(t, "/data/a.wkt", m.selPath)
}

func TestPasteDetectsLanguage(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, key("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue("LINESTRING(0 0,")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.pasteMode)
	require.True(t, strings.HasPrefix(m.status, "syntax error"), m.status)
	require.Nil(t, m.geo)

	m.ta.SetValue(`<LineString><coordinates>0,0 1,1</coordinates></LineString>`)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.pasteMode)
	require.Equal(t, ingest.LangGML, m.lang)
	require.Equal(t, "LINESTRING(0 0,1 1)", geom.Format(m.geo))
	require.True(t, m.showLines)
}

func TestInspect(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, key("i"))
	require.Equal(t, "nothing loaded", m.inspectPopup)
	m = press(t, m, key("i"))
	require.Empty(t, m.inspectPopup)

	m.loadPath("/data/a.wkt")
	m = press(t, m, key("i"))
	require.Contains(t, m.inspectPopup, "kind: Polygon XY")
	require.Contains(t, m.inspectPopup, "srs: unknown")
	require.Contains(t, m.inspectPopup, "envelope: [0, 0, 4, 4]")
	require.Contains(t, m.inspectPopup, "primitives: 1  vertices: 9")

	m = press(t, m, key("i"))
	m.loadPath("/data/b.gml")
	m = press(t, m, key("i"))
	require.Contains(t, m.inspectPopup, "srs: EPSG:4326 (longlat)")
	require.Contains(t, m.inspectPopup, "nearest: x=3.000000 y=4.000000")
}

func TestPrimitiveRows(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.loadText("GEOMETRYCOLLECTION(POINT(1 2),LINESTRING(0 0,1 1),POLYGON((0 0,1 0,1 1,0 0)))"))
	require.Equal(t, [][]string{
		{"point", "XY", "1", "", "1 2"},
		{"linestring", "XY", "2", "", "0 0"},
		{"polygon", "XY", "4", "1", "0 0"},
	}, primitiveRows(m.geo))
	require.True(t, m.showPoints && m.showLines && m.showPolys)

	m = press(t, m, key("a"))
	require.True(t, m.showAttrs)
	require.Len(t, m.tbl.Rows(), 3)
	require.Len(t, m.tbl.Columns(), len(attrCols)+1)
}

func TestSinglePointRenders(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.loadText("POINT(3 4)"))
	require.Equal(t, geom.BBox{MinX: 2.5, MinY: 3.5, MaxX: 3.5, MaxY: 4.5}, m.viewBox())

	out := m.renderAsciiMap(20, 10)
	require.True(t, strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }))
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	require.Empty(t, m.View())
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m.loadPath("/data/a.wkt")
	require.Contains(t, m.View(), "geotext")
}

func TestBrailleBuf(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(3, 3)
	b.setPixel(-1, 0)
	b.setPixel(4, 0)
	require.Equal(t, []string{"⠁⢀"}, b.toLines())

	b = newBrailleBuf(1, 1)
	b.drawLineMicro(0, 0, 1, 3)
	require.Equal(t, []string{string(rune(0x2800 | 0x01 | 0x02 | 0x20 | 0x80))}, b.toLines())
}

func TestMapRectFollowsSidebar(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	x, y, w, h := m.mapRect()
	require.Equal(t, []int{0, 1, 79, 21}, []int{x, y, w, h})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	x, y, w, h = m.mapRect()
	require.Equal(t, []int{sidebarWidth + 1, 1, 80 - sidebarWidth - 1, 21}, []int{x, y, w, h})
	require.Contains(t, m.View(), "Files")
}
