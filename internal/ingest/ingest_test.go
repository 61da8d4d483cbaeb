package ingest

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geotext/internal/config"
	"geotext/internal/geom"
)

func TestDetect(t *testing.T) {
	for in, want := range map[string]string{
		"POINT(1 2)":                   LangEWKT,
		"  SRID=4326;POINT(1 2)":       LangEWKT,
		"\n\t<gml:Point/>":             LangGML,
		`<?xml version="1.0"?><Point>`: LangGML,
		`{"type":"Point"}`:             LangGeoJSON,
		"":                             LangEWKT,
	} {
		assert.Equal(t, want, Detect(in), in)
	}
}

func TestLangForPath(t *testing.T) {
	assert.Equal(t, LangEWKT, LangForPath("a/b.WKT"))
	assert.Equal(t, LangGML, LangForPath("x.gml"))
	assert.Equal(t, LangGML, LangForPath("x.xml"))
	assert.Equal(t, LangGeoJSON, LangForPath("x.geojson"))
	assert.Equal(t, LangAuto, LangForPath("x.txt"))
}

func newService(t *testing.T, cfg config.Config) *Service {
	s, err := New(cfg, nil)
	require.NoError(t, err)
	return s
}

func TestParseDispatch(t *testing.T) {
	s := newService(t, config.Default())
	for _, tc := range []struct {
		lang, in, want string
	}{
		{LangAuto, "SRID=4326;POINT(1 2)", "SRID=4326;POINT(1 2)"},
		{LangAuto, `<gml:Point srsName="EPSG:4326"><gml:pos>1 2</gml:pos></gml:Point>`, "SRID=4326;POINT(1 2)"},
		{LangAuto, `{"type":"Point","coordinates":[1,2]}`, "SRID=4326;POINT(1 2)"},
		{LangEWKT, "linestring(0 0, 1 1)", "LINESTRING(0 0,1 1)"},
		{"", "POINT(3 4)", "POINT(3 4)"},
	} {
		g, err := s.Parse(tc.lang, tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, geom.Format(g))
	}

	_, err := s.Parse(LangGML, "POINT(1 2)")
	require.Error(t, err)
	_, err = s.Parse("kml", "POINT(1 2)")
	require.Error(t, err)
}

const mixedSRID = `<gml:MultiPoint srsName="EPSG:3857">
<gml:pointMember><gml:Point srsName="EPSG:4326"><gml:pos>0 0</gml:pos></gml:Point></gml:pointMember>
<gml:pointMember><gml:Point><gml:pos>5 6</gml:pos></gml:Point></gml:pointMember>
</gml:MultiPoint>`

func TestGMLReprojection(t *testing.T) {
	s := newService(t, config.Default())
	g, err := s.Parse(LangAuto, mixedSRID)
	require.NoError(t, err)
	require.Equal(t, 3857, g.SRID)
	require.Len(t, g.Points, 2)
	assert.InDelta(t, 0, g.Points[0].X, 1e-6)
	assert.InDelta(t, 0, g.Points[0].Y, 1e-6)
	assert.Equal(t, geom.NewPoint(geom.XY, 5, 6), g.Points[1])
}

func TestStrictReprojectionUnknownSRID(t *testing.T) {
	in := `<gml:MultiPoint srsName="EPSG:3857">
<gml:pointMember><gml:Point srsName="EPSG:99999"><gml:pos>0 0</gml:pos></gml:Point></gml:pointMember>
</gml:MultiPoint>`

	lenient := newService(t, config.Default())
	g, err := lenient.Parse(LangGML, in)
	require.NoError(t, err)
	require.Equal(t, "SRID=3857;MULTIPOINT(0 0)", geom.Format(g))

	cfg := config.Default()
	cfg.Reprojection = config.Strict
	_, err = newService(t, cfg).Parse(LangGML, in)
	require.Error(t, err)
	require.Equal(t, "semantic", geom.Class(err))

	cfg.SRS = []config.SRS{{SRID: 99999, Proj: "+proj=longlat +datum=WGS84 +no_defs"}}
	strict := newService(t, cfg)
	require.NotEmpty(t, strict.Registry().ProjParams(99999))
	_, err = strict.Parse(LangGML, in)
	require.NoError(t, err)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Reprojection = "maybe"
	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestParseFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/d/a.wkt":     "POINT(1 2)",
		"/d/b.gml":     `<Point><coordinates>3,4</coordinates></Point>`,
		"/d/c.geojson": `{"type":"Point","coordinates":[5,6]}`,
		"/d/d.txt":     "LINESTRING(0 0,1 1)",
		"/d/e.wkt":     "POINT(1 2",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	paths := []string{"/d/a.wkt", "/d/b.gml", "/d/c.geojson", "/d/d.txt", "/d/e.wkt", "/d/missing.wkt"}

	s := newService(t, config.Default())
	res, err := s.ParseFiles(context.Background(), fs, LangAuto, paths, 3)
	require.NoError(t, err)
	require.Len(t, res, len(paths))

	want := []string{"POINT(1 2)", "POINT(3 4)", "SRID=4326;POINT(5 6)", "LINESTRING(0 0,1 1)"}
	for i, w := range want {
		require.Equal(t, paths[i], res[i].Path)
		require.NoError(t, res[i].Err)
		require.Equal(t, w, geom.Format(res[i].Geom))
	}
	require.Error(t, res[4].Err)
	require.Equal(t, "syntax", geom.Class(res[4].Err))
	require.Error(t, res[5].Err)
}

func TestParseFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newService(t, config.Default())
	_, err := s.ParseFiles(ctx, afero.NewMemMapFs(), LangAuto, []string{"/a.wkt"}, 1)
	require.ErrorIs(t, err, context.Canceled)
}
