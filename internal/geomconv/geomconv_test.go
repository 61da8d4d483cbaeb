package geomconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"geotext/internal/ewkt"
	"geotext/internal/geom"
)

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{
		"POINT(1 2)",
		"SRID=4326;POINT Z (1 2 3)",
		"POINT M (1 2 4)",
		"LINESTRING ZM (0 0 1 2,1 1 3 4)",
		"POLYGON((0 0,4 0,4 4,0 0),(1 1,2 1,2 2,1 1))",
		"SRID=3857;MULTIPOINT(1 2,3 4)",
		"MULTILINESTRING((0 0,1 1),(2 2,3 3,4 4))",
		"MULTIPOLYGON(((0 0,1 0,1 1,0 0)),((5 5,6 5,6 6,5 5),(5.2 5.1,5.5 5.1,5.5 5.3,5.2 5.1)))",
		"GEOMETRYCOLLECTION(POINT(1 2),LINESTRING(0 0,1 1),POLYGON((0 0,1 0,1 1,0 0)))",
	} {
		t.Run(in, func(t *testing.T) {
			g, err := ewkt.Parse(in)
			require.NoError(t, err)
			tt, err := ToT(g)
			require.NoError(t, err)
			back, err := FromT(tt)
			require.NoError(t, err)
			require.Equal(t, geom.Format(g), geom.Format(back))
			require.Equal(t, g.Envelope, back.Envelope)
			require.Equal(t, g.Kind, back.Kind)
		})
	}
}

func TestEncode(t *testing.T) {
	parse := func(s string) *geom.Geometry {
		g, err := ewkt.Parse(s)
		require.NoError(t, err)
		return g
	}

	out, err := Encode(parse("SRID=4326;POINT(10 20)"), FormatText)
	require.NoError(t, err)
	require.Equal(t, "SRID=4326;POINT(10 20)", out)

	out, err = Encode(parse("POINT(1 2)"), FormatWKT)
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2)", out)

	out, err = Encode(parse("LINESTRING(0 0,1 1)"), FormatGeoJSON)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"LineString","coordinates":[[0,0],[1,1]]}`, out)

	out, err = Encode(parse("POINT(1 2)"), FormatEWKBHex)
	require.NoError(t, err)
	require.Equal(t, "0101000000000000000000f03f0000000000000040", strings.ToLower(out))

	out, err = Encode(parse("SRID=4326;POINT(1 2)"), FormatEWKBHex)
	require.NoError(t, err)
	require.Equal(t, "0101000020e6100000000000000000f03f0000000000000040", strings.ToLower(out))

	_, err = Encode(parse("POINT(1 2)"), "kml")
	require.Error(t, err)
}

func TestDecodeGeoJSON(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`{"type":"Point","coordinates":[1,2]}`, "SRID=4326;POINT(1 2)"},
		{`{"type":"Feature","properties":{"name":"a"},"geometry":{"type":"LineString","coordinates":[[0,0,1],[1,1,2]]}}`,
			"SRID=4326;LINESTRING Z (0 0 1,1 1 2)"},
		{`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},
			{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
		]}`, "SRID=4326;GEOMETRYCOLLECTION(POINT(1 2),POLYGON((0 0,1 0,1 1,0 0)))"},
	} {
		g, err := DecodeGeoJSON([]byte(tc.in))
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, geom.Format(g))
	}

	for _, in := range []string{
		`{"type":`,
		`{"type":"FeatureCollection","features":[]}`,
		`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1]]]}`,
	} {
		_, err := DecodeGeoJSON([]byte(in))
		require.Error(t, err, in)
	}

	// Empty input never turns into a geometry.
	for _, in := range []string{
		`{"type":"Point","coordinates":[]}`,
		`{"type":"GeometryCollection","geometries":[]}`,
	} {
		g, err := DecodeGeoJSON([]byte(in))
		require.Error(t, err, in)
		require.Nil(t, g)
		require.Equal(t, "structural", geom.Class(err), in)
	}
}
