package gml

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

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

func TestParseNodes(t *testing.T) {
	nodes, err := parseNodes(`<gml:Point srsName="EPSG:4326" gid='p1'><gml:pos>1 2</gml:pos><br/></gml:Point>`)
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	assert.Equal(t, "gml:Point", nodes[0].Tag)
	assert.Equal(t, Open, nodes[0].Kind)
	assert.Equal(t, []Attr{{"srsName", "EPSG:4326"}, {"gid", "p1"}}, nodes[0].Attrs)
	assert.Empty(t, nodes[0].Coords)

	assert.Equal(t, []string{"1", "2"}, nodes[1].Coords)
	assert.Equal(t, Closing, nodes[2].Kind)
	assert.Equal(t, SelfClosed, nodes[3].Kind)
	assert.Equal(t, "br", nodes[3].Tag)
	assert.Equal(t, Closing, nodes[4].Kind)

	for _, bad := range []string{"", "   ", "<", "<a", "<a b=>", "<a b='x>", "</a", "<a>>", "<a/> 1"} {
		_, err := parseNodes(bad)
		require.Error(t, err, bad)
	}
	_, err = parseNodes("<a b='x>")
	require.True(t, errors.Is(err, geom.ErrLex))
	_, err = parseNodes("<a b=>")
	require.True(t, errors.Is(err, geom.ErrSyntax))
}

func TestGuessSRID(t *testing.T) {
	for _, tc := range []struct {
		name string
		want int
	}{
		{"EPSG:4326", 4326},
		{"EPSG:", -1},
		{"EPSG:x", -1},
		{"urn:ogc:def:crs:EPSG::3003", 3003},
		{"urn:ogc:def:crs:EPSG:6.6:32632", 32632},
		{"http://www.opengis.net/gml/srs/epsg.xml#2154", 2154},
		{"CRS:84", -1},
		{"epsg:4326", -1},
		{"EPSG:4326 ", 4326},
		{" urn:ogc:def:crs:EPSG::3003\n", 3003},
	} {
		n := &Node{Attrs: []Attr{{"srsName", tc.name}}}
		assert.Equal(t, tc.want, guessSRID(n), tc.name)
	}
	assert.Equal(t, -1, guessSRID(&Node{}))
}

func TestCoordinates(t *testing.T) {
	pts, dim, err := coordinates([]string{"0,0,1", "1,", "1,2", "2", ",2,3"})
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, dim)
	require.Len(t, pts, 3)
	assert.Equal(t, geom.NewPoint(geom.XYZ, 1, 1, 2), pts[1])
	assert.Equal(t, geom.NewPoint(geom.XYZ, 2, 2, 3), pts[2])

	// A trailing comma keeps the last tuple open until the input ends.
	pts, dim, err = coordinates([]string{"3,4,"})
	require.NoError(t, err)
	require.Equal(t, geom.XY, dim)
	require.Equal(t, []geom.Point{geom.NewPoint(geom.XY, 3, 4)}, pts)

	_, _, err = coordinates([]string{"1"})
	require.True(t, errors.Is(err, geom.ErrStructural))
	_, _, err = coordinates([]string{"1,2,x"})
	require.True(t, errors.Is(err, geom.ErrStructural))

	pts, _, err = coordinates(nil)
	require.NoError(t, err)
	require.Empty(t, pts)
}

func TestCheckCoord(t *testing.T) {
	for _, ok := range []string{"1", "-1", "+1.5", ".5", "5."} {
		assert.True(t, checkCoord(ok), ok)
	}
	for _, bad := range []string{"", "-", ".", "1.2.3", "1e3", "--1", "1-"} {
		assert.False(t, checkCoord(bad), bad)
	}
}

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		declared      geom.Kind
		pts, lns, pgs int
		want          geom.Kind
	}{
		{geom.KindPoint, 1, 0, 0, geom.KindPoint},
		{geom.KindMultiPoint, 1, 0, 0, geom.KindMultiPoint},
		{geom.KindGeometryCollection, 1, 0, 0, geom.KindGeometryCollection},
		{geom.KindMultiLineString, 0, 1, 0, geom.KindMultiLineString},
		{geom.KindLineString, 0, 1, 0, geom.KindLineString},
		{geom.KindMultiPolygon, 0, 0, 1, geom.KindMultiPolygon},
		{geom.KindMultiPoint, 3, 0, 0, geom.KindMultiPoint},
		{geom.KindMultiLineString, 0, 2, 0, geom.KindMultiLineString},
		{geom.KindMultiPolygon, 0, 0, 2, geom.KindMultiPolygon},
		{geom.KindGeometryCollection, 1, 1, 0, geom.KindGeometryCollection},
		{geom.KindGeometryCollection, 0, 0, 3, geom.KindGeometryCollection},
	} {
		assert.Equal(t, tc.want, classify(tc.declared, tc.pts, tc.lns, tc.pgs))
	}
}

type fakeLookup map[int]string

func (f fakeLookup) ProjParams(srid int) string { return f[srid] }

// shift moves x by 1000 for every call and records the parameters.
type shift struct {
	calls [][2]string
	err   error
}

func (s *shift) Reproject(g *geom.Geometry, from, to string) (*geom.Geometry, error) {
	s.calls = append(s.calls, [2]string{from, to})
	if s.err != nil {
		return nil, s.err
	}
	out := geom.New(g.Dim, g.Kind)
	for _, p := range g.Points {
		p.X += 1000
		out.Points = append(out.Points, p)
	}
	return out, nil
}

const mixedSRID = `<MultiPoint>
<pointMember><Point srsName="EPSG:3857"><pos>1 2</pos></Point></pointMember>
<pointMember><Point srsName="EPSG:4326"><pos>3 4</pos></Point></pointMember>
<pointMember><Point><pos>5 6</pos></Point></pointMember>
</MultiPoint>`

func TestReprojectMismatchedMembers(t *testing.T) {
	r := &shift{}
	p := NewParser(WithReprojection(fakeLookup{3857: "merc", 4326: "longlat"}, r))
	g, err := p.Parse(mixedSRID)
	require.NoError(t, err)
	require.Equal(t, 3857, g.SRID)
	require.Equal(t, [][2]string{{"longlat", "merc"}}, r.calls)
	require.Equal(t, "SRID=3857;MULTIPOINT(1 2,1003 4,5 6)", geom.Format(g))
}

func TestReprojectFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	lookup := fakeLookup{3857: "merc"}

	p := NewParser(WithReprojection(lookup, &shift{}), WithLogger(zap.New(core)))
	g, err := p.Parse(mixedSRID)
	require.NoError(t, err)
	require.Equal(t, "SRID=3857;MULTIPOINT(1 2,3 4,5 6)", geom.Format(g))
	require.Equal(t, 1, logs.Len())

	p = NewParser(WithReprojection(lookup, &shift{}), WithStrictReprojection(true))
	_, err = p.Parse(mixedSRID)
	require.True(t, errors.Is(err, geom.ErrSemantic))

	failing := &shift{err: errors.New("transform failed")}
	p = NewParser(WithReprojection(fakeLookup{3857: "merc", 4326: "longlat"}, failing))
	g, err = p.Parse(mixedSRID)
	require.NoError(t, err)
	require.Equal(t, "SRID=3857;MULTIPOINT(1 2,3 4,5 6)", geom.Format(g))

	p = NewParser(WithReprojection(fakeLookup{3857: "merc", 4326: "longlat"}, failing), WithStrictReprojection(true))
	_, err = p.Parse(mixedSRID)
	require.True(t, errors.Is(err, geom.ErrSemantic))
}

func TestMismatchedTagsNeverYieldResult(t *testing.T) {
	good := `<MultiGeometry><geometryMember><Polygon><exterior><LinearRing><posList>0 0 1 0 1 1 0 0</posList></LinearRing></exterior></Polygon></geometryMember></MultiGeometry>`
	g, err := Parse(good)
	require.NoError(t, err)
	require.Equal(t, geom.KindGeometryCollection, g.Kind)

	nodes, err := parseNodes(good)
	require.NoError(t, err)
	// Renaming any closing tag must make the document fail.
	for i := range nodes {
		if nodes[i].Kind != Closing {
			continue
		}
		broken := append([]Node(nil), nodes...)
		broken[i].Tag = "gml:Unrelated"
		tr, err := translate(broken)
		if err == nil {
			_, err = (&merger{log: zap.NewNop()}).merge(tr)
		}
		require.Error(t, err, "closing tag %d", i)
	}
}
