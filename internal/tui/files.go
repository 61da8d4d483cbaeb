package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"geotext/internal/geom"
	"geotext/internal/ingest"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := afero.ReadDir(m.fs, m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lang := ingest.LangForPath(name)
		if lang == ingest.LangAuto {
			continue
		}
		items = append(items, fileItem{title: name, desc: lang, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath parses p into the model. The previous geometry stays on failure.
func (m *Model) loadPath(p string) {
	g, err := m.svc.ParseFile(m.fs, ingest.LangAuto, p)
	if err != nil {
		m.status = fmt.Sprintf("load error (%s): %v", geom.Class(err), err)
		m.log.Info("load failed", zap.String("path", p), zap.Error(err))
		return
	}
	m.selPath = p
	m.setGeometry(g, ingest.LangForPath(p))
	m.status = "loaded: " + filepath.Base(p) + "  " + m.counts()
}

// loadText parses pasted text, detecting its language.
func (m *Model) loadText(text string) error {
	lang := ingest.Detect(text)
	g, err := m.svc.Parse(lang, text)
	if err != nil {
		m.log.Info("paste rejected", zap.String("lang", lang), zap.Error(err))
		return err
	}
	m.selPath = ""
	m.setGeometry(g, lang)
	m.status = "rendered " + lang + "  " + m.counts()
	return nil
}

func (m *Model) setGeometry(g *geom.Geometry, lang string) {
	m.geo, m.lang = g, lang
	m.data = g.RenderData()
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	// prefer polys > lines > points for visibility; collections show all
	all := g.Kind == geom.KindGeometryCollection
	m.showPolys = len(m.data.Polygons) > 0
	m.showLines = len(m.data.Lines) > 0 && (all || !m.showPolys)
	m.showPoints = len(m.data.Points) > 0 && (all || !m.showPolys)
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

func (m *Model) counts() string {
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d", len(m.data.Points), len(m.data.Lines), len(m.data.Polygons))
}

func (m *Model) srsLabel() string {
	if m.geo == nil || m.geo.SRID == -1 {
		return "unknown"
	}
	label := fmt.Sprintf("EPSG:%d", m.geo.SRID)
	if m.svc != nil {
		if p := m.svc.Registry().ProjParams(m.geo.SRID); p != "" {
			if f := strings.Fields(p); len(f) > 0 {
				label += " (" + strings.TrimPrefix(f[0], "+proj=") + ")"
			}
		}
	}
	return label
}
