package ewkt

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geotext/internal/geom"
)

func ff(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func TestParseDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			g, err := Parse(d.Input)
			if err != nil {
				return fmt.Sprintf("error: %s", geom.Class(err))
			}
			e := g.Envelope
			return fmt.Sprintf("%s\n%s %s [%s %s %s %s]", geom.Format(g), g.Kind, g.Dim,
				ff(e.MinX), ff(e.MinY), ff(e.MaxX), ff(e.MaxY))
		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}

func TestSplitSRID(t *testing.T) {
	for _, tc := range []struct {
		in   string
		srid int
		body string
	}{
		{"SRID=4326;POINT(1 2)", 4326, "POINT(1 2)"},
		{"POINT(1 2)", -1, "POINT(1 2)"},
		{"  SRID = 32 ;X", 32, "X"},
		{"srid=-5;X", -5, "X"},
		{"SRID=;X", -1, "SRID=;X"},
		{"SRID=+;X", -1, "SRID=+;X"},
		{"SRID=1a;X", -1, "SRID=1a;X"},
		{"SRID=99999999999;X", -1, "SRID=99999999999;X"},
		{"SRIDX=1;X", -1, "SRIDX=1;X"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			srid, body := splitSRID(tc.in)
			require.Equal(t, tc.srid, srid)
			require.Equal(t, tc.body, body)
		})
	}
}

func TestKindAndDimFollowKeyword(t *testing.T) {
	for _, tc := range []struct {
		in   string
		kind geom.Kind
		dim  geom.Dim
	}{
		{"POINT(0 0)", geom.KindPoint, geom.XY},
		{"POINTZ(0 0 0)", geom.KindPoint, geom.XYZ},
		{"LINESTRING M (0 0 0, 1 1 1)", geom.KindLineString, geom.XYM},
		{"LINESTRINGZM(0 0 0 0, 1 1 1 1)", geom.KindLineString, geom.XYZM},
		{"POLYGON Z ((0 0 0,1 0 0,1 1 0,0 0 0))", geom.KindPolygon, geom.XYZ},
		{"MULTIPOINTM(0 0 0)", geom.KindMultiPoint, geom.XYM},
		{"MULTILINESTRING((0 0,1 1))", geom.KindMultiLineString, geom.XY},
		{"MULTIPOLYGON ZM (((0 0 0 0,1 0 0 0,1 1 0 0,0 0 0 0)))", geom.KindMultiPolygon, geom.XYZM},
		{"GEOMETRYCOLLECTION(POINTM(1 2 3))", geom.KindGeometryCollection, geom.XYM},
	} {
		t.Run(tc.in, func(t *testing.T) {
			g, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.kind, g.Kind)
			require.Equal(t, tc.dim, g.Dim)
		})
	}
}

func TestErrorsCarryPosition(t *testing.T) {
	_, err := Parse("POINT(1 2 @)")
	require.True(t, errors.Is(err, geom.ErrLex))
	require.Contains(t, err.Error(), "pos 10")

	_, err = Parse("LINESTRING(0 0,)")
	require.True(t, errors.Is(err, geom.ErrSyntax))

	_, err = Parse("")
	require.True(t, errors.Is(err, geom.ErrSyntax))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, in := range []string{
		"SRID=4326;MULTIPOLYGON(((0 0,1 0,1 1,0 0)),((5 5,6 5,6 6,5 5),(5.1 5.1,5.2 5.1,5.2 5.2,5.1 5.1)))",
		"POINT ZM (1 -2 3.25 4)",
		"GEOMETRYCOLLECTION M (POINT(1 2 3),LINESTRING(0 0 0,1 1 1))",
	} {
		g, err := Parse(in)
		require.NoError(t, err)
		again, err := Parse(geom.Format(g))
		require.NoError(t, err)
		require.Equal(t, g, again)
	}
}

func TestConcurrentParses(t *testing.T) {
	inputs := []string{"POINT(1 2)", "LINESTRING(0 0)", "SRID=3857;POLYGON((0 0,4 0,4 4,0 0))", "POINT(1 2"}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			g, err := Parse(in)
			switch in {
			case "POINT(1 2)":
				assert.NoError(t, err)
				assert.Equal(t, geom.KindPoint, g.Kind)
			case "SRID=3857;POLYGON((0 0,4 0,4 4,0 0))":
				assert.NoError(t, err)
				assert.Equal(t, 3857, g.SRID)
			default:
				assert.Error(t, err)
				assert.Nil(t, g)
			}
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}
