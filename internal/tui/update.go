package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geotext/internal/geom"
)

const sidebarWidth = 28

// mapRect returns the map origin and size for the current layout. It must
// agree with View.
func (m Model) mapRect() (x, y, w, h int) {
	contentH := max(4, m.height-3)
	contentW := max(10, m.width)
	sideW, ox := 0, 0
	if m.showSidebar {
		sideW, ox = sidebarWidth, sidebarWidth+1
	}
	return ox, 1, max(10, contentW-sideW-1), contentH
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.ta.Value())
				if text == "" {
					m.status = "paste: empty"
					return m, nil
				}
				if err := m.loadText(text); err != nil {
					m.status = fmt.Sprintf("%s error: %v", geom.Class(err), err)
					return m, nil
				}
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				m.status = "view mode"
				break
			}
			m.inspectPopup = m.inspect()
			m.status = "inspect popup"
		case "l":
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		ox, oy, w, h := m.mapRect()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, h-2)
		}
		cx, cy := msg.X, msg.Y
		if cx >= ox && cx < ox+w && cy >= oy && cy < oy+h {
			m.hovering = true
			m.hoverCellX = cx - ox
			m.hoverCellY = cy - oy
			m.hoverX, m.hoverY, m.hoverHasGeo = m.cellToXY(m.hoverCellX, m.hoverCellY, w, h)
			m.hoverMicX, m.hoverMicY = m.nearestMicro(m.hoverCellX, m.hoverCellY, w, h)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// inspect describes the loaded geometry and the vertex nearest the center.
func (m Model) inspect() string {
	if m.geo == nil {
		return "nothing loaded"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	e := m.geo.Envelope
	meta := []string{
		fmt.Sprintf("name: %s (%s)", name, m.lang),
		fmt.Sprintf("kind: %s %s", m.geo.Kind, m.geo.Dim),
		fmt.Sprintf("srs: %s", m.srsLabel()),
		fmt.Sprintf("envelope: [%g, %g, %g, %g]", e.MinX, e.MinY, e.MaxX, e.MaxY),
		fmt.Sprintf("primitives: %d  vertices: %d", m.geo.NumPrimitives(), m.geo.NumVertices()),
		m.counts(),
	}
	if x, y, ok := m.inspectNearest(); ok {
		meta = append(meta, fmt.Sprintf("nearest: x=%.6f y=%.6f", x, y))
	}
	return strings.Join(meta, "\n")
}
