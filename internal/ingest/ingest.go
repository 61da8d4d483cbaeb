// Package ingest picks the right parser for a piece of geometry text and
// wires the parsers to configuration.
package ingest

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"geotext/internal/config"
	"geotext/internal/ewkt"
	"geotext/internal/geom"
	"geotext/internal/geomconv"
	"geotext/internal/gml"
	"geotext/internal/srs"
)

const (
	LangAuto    = "auto"
	LangEWKT    = "ewkt"
	LangGML     = "gml"
	LangGeoJSON = "geojson"
)

var Langs = []string{LangAuto, LangEWKT, LangGML, LangGeoJSON}

// Detect guesses the language of text from its first non-space character.
func Detect(text string) string {
	i := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return LangEWKT
	}
	switch text[i] {
	case '<':
		return LangGML
	case '{':
		return LangGeoJSON
	}
	return LangEWKT
}

// LangForPath maps a file extension to a language, or LangAuto when the
// extension says nothing.
func LangForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ewkt", ".wkt":
		return LangEWKT
	case ".gml", ".xml":
		return LangGML
	case ".geojson", ".json":
		return LangGeoJSON
	}
	return LangAuto
}

type Service struct {
	registry *srs.Registry
	ewkt     *ewkt.Parser
	gml      *gml.Parser
	log      *zap.Logger
}

// New builds a Service from cfg. Extra srs entries extend the built-in
// registry used for GML reprojection.
func New(cfg config.Config, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg := srs.NewRegistry()
	for _, s := range cfg.SRS {
		reg.Register(s.SRID, s.Proj)
	}
	return &Service{
		registry: reg,
		ewkt:     ewkt.NewParser(ewkt.WithLogger(log.Named("ewkt"))),
		gml: gml.NewParser(
			gml.WithLogger(log.Named("gml")),
			gml.WithReprojection(reg, srs.NewTransformer()),
			gml.WithStrictReprojection(cfg.StrictReprojection()),
		),
		log: log,
	}, nil
}

func (s *Service) Registry() *srs.Registry { return s.registry }

// Parse parses text as lang. LangAuto or "" detects the language first.
func (s *Service) Parse(lang, text string) (*geom.Geometry, error) {
	if lang == "" || lang == LangAuto {
		lang = Detect(text)
	}
	switch lang {
	case LangEWKT:
		return s.ewkt.Parse(text)
	case LangGML:
		return s.gml.Parse(text)
	case LangGeoJSON:
		return geomconv.DecodeGeoJSON([]byte(text))
	}
	return nil, errors.Newf("unknown language %q", lang)
}

// ParseFile reads path from fs. With LangAuto the extension decides, and
// the content decides when the extension is unknown.
func (s *Service) ParseFile(fs afero.Fs, lang, path string) (*geom.Geometry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if lang == "" || lang == LangAuto {
		lang = LangForPath(path)
	}
	g, err := s.Parse(lang, string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	s.log.Debug("parsed file",
		zap.String("path", path),
		zap.Stringer("kind", g.Kind),
		zap.Int("vertices", g.NumVertices()))
	return g, nil
}
