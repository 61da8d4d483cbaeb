package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"geotext/internal/geom"
	"geotext/internal/ingest"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	svc *ingest.Service
	fs  afero.Fs
	log *zap.Logger

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Loaded geometry and its x/y projection
	geo  *geom.Geometry
	lang string
	data geom.Data

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverX      float64
	hoverY      float64

	// primitives table
	showAttrs bool
	tbl       table.Model
}

type Option func(*Model)

// WithFs swaps the filesystem used by the file explorer.
func WithFs(fs afero.Fs) Option { return func(m *Model) { m.fs = fs } }

// WithDir sets the directory the file explorer starts in.
func WithDir(dir string) Option { return func(m *Model) { m.cwd = dir } }

func WithLogger(l *zap.Logger) Option { return func(m *Model) { m.log = l } }

func New(svc *ingest.Service, opts ...Option) Model {
	m := Model{
		svc:         svc,
		fs:          afero.NewOsFs(),
		log:         zap.NewNop(),
		helpVisible: true,
		zoom:        1.0,
		status:      "geotext ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
	}
	m.cwd, _ = os.Getwd()
	for _, o := range opts {
		o(&m)
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste EWKT, GML or GeoJSON here. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file at launch.
func NewWithPath(svc *ingest.Service, path string, opts ...Option) Model {
	m := New(svc, opts...)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
