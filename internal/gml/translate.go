package gml

import (
	"strings"

	"geotext/internal/geom"
)

type tag uint8

const (
	tagUnknown tag = iota
	tagPoint
	tagLineString
	tagCurve
	tagPolygon
	tagMultiPoint
	tagMultiLineString
	tagMultiCurve
	tagMultiPolygon
	tagMultiSurface
	tagMultiGeometry

	tagCoordinates
	tagPos
	tagPosList
	tagSegments
	tagLineStringSegment
	tagLinearRing
	tagOuterBoundaryIs
	tagInnerBoundaryIs
	tagExterior
	tagInterior

	tagPointMember
	tagLineStringMember
	tagCurveMember
	tagPolygonMember
	tagSurfaceMember
	tagGeometryMember
)

var tagNames = map[string]tag{
	"Point":             tagPoint,
	"LineString":        tagLineString,
	"Curve":             tagCurve,
	"Polygon":           tagPolygon,
	"MultiPoint":        tagMultiPoint,
	"MultiLineString":   tagMultiLineString,
	"MultiCurve":        tagMultiCurve,
	"MultiPolygon":      tagMultiPolygon,
	"MultiSurface":      tagMultiSurface,
	"MultiGeometry":     tagMultiGeometry,
	"coordinates":       tagCoordinates,
	"pos":               tagPos,
	"posList":           tagPosList,
	"segments":          tagSegments,
	"LineStringSegment": tagLineStringSegment,
	"LinearRing":        tagLinearRing,
	"outerBoundaryIs":   tagOuterBoundaryIs,
	"innerBoundaryIs":   tagInnerBoundaryIs,
	"exterior":          tagExterior,
	"interior":          tagInterior,
	"pointMember":       tagPointMember,
	"lineStringMember":  tagLineStringMember,
	"curveMember":       tagCurveMember,
	"polygonMember":     tagPolygonMember,
	"surfaceMember":     tagSurfaceMember,
	"geometryMember":    tagGeometryMember,
}

var tagStrings = func() map[tag]string {
	m := make(map[tag]string, len(tagNames))
	for name, t := range tagNames {
		m[t] = name
	}
	return m
}()

func (t tag) String() string { return tagStrings[t] }

const nsPrefix = "gml:"

// lookupTag matches a tag name exactly, with or without the gml prefix.
func lookupTag(name string) tag {
	return tagNames[strings.TrimPrefix(name, nsPrefix)]
}

// declaredKind is the kind a top-level tag asks for.
var declaredKind = map[tag]geom.Kind{
	tagPoint:           geom.KindPoint,
	tagLineString:      geom.KindLineString,
	tagCurve:           geom.KindLineString,
	tagPolygon:         geom.KindPolygon,
	tagMultiPoint:      geom.KindMultiPoint,
	tagMultiLineString: geom.KindMultiLineString,
	tagMultiCurve:      geom.KindMultiLineString,
	tagMultiPolygon:    geom.KindMultiPolygon,
	tagMultiSurface:    geom.KindMultiPolygon,
	tagMultiGeometry:   geom.KindGeometryCollection,
}

// memberGrammar lists, per multi tag, the member wrapper and the shapes it
// may wrap.
var memberGrammar = map[tag]struct {
	member tag
	shapes []tag
}{
	tagMultiPoint:      {tagPointMember, []tag{tagPoint}},
	tagMultiLineString: {tagLineStringMember, []tag{tagLineString}},
	tagMultiCurve:      {tagCurveMember, []tag{tagCurve, tagLineString}},
	tagMultiPolygon:    {tagPolygonMember, []tag{tagPolygon}},
	tagMultiSurface:    {tagSurfaceMember, []tag{tagPolygon}},
	tagMultiGeometry:   {tagGeometryMember, []tag{tagPoint, tagLineString, tagCurve, tagPolygon}},
}

// cursor walks the node sequence front to back.
type cursor struct {
	nodes []Node
	i     int
}

func (c *cursor) atEnd() bool  { return c.i >= len(c.nodes) }
func (c *cursor) atLast() bool { return c.i == len(c.nodes)-1 }

func (c *cursor) peek() *Node {
	if c.atEnd() {
		return nil
	}
	return &c.nodes[c.i]
}

func tagList(tags []tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, " or ")
}

// open consumes an opening tag that is one of want.
func (c *cursor) open(want ...tag) (*Node, tag, error) {
	n := c.peek()
	if n == nil {
		return nil, tagUnknown, geom.Structuralf("expected <%s>, found end of document", tagList(want))
	}
	got := lookupTag(n.Tag)
	for _, w := range want {
		if got == w && n.Kind == Open {
			c.i++
			return n, got, nil
		}
	}
	return nil, tagUnknown, geom.Structuralf("expected <%s>, found %s tag %q at pos %d", tagList(want), n.Kind, n.Tag, n.pos)
}

// close consumes the closing tag for t.
func (c *cursor) close(t tag) error {
	n := c.peek()
	if n == nil {
		return geom.Structuralf("expected </%s>, found end of document", t)
	}
	if lookupTag(n.Tag) != t || n.Kind != Closing {
		return geom.Structuralf("expected </%s>, found %s tag %q at pos %d", t, n.Kind, n.Tag, n.pos)
	}
	c.i++
	return nil
}

// translation is the result of walking a document: the kind and SRID the
// root tag asked for and one geometry per parsed member.
type translation struct {
	root    tag
	kind    geom.Kind
	srid    int
	members []*geom.Geometry
}

func translate(nodes []Node) (*translation, error) {
	c := &cursor{nodes: nodes}
	root := c.peek()
	rt := lookupTag(root.Tag)
	kind, ok := declaredKind[rt]
	if !ok || root.Kind != Open {
		return nil, geom.Semanticf("unsupported geometry tag %q", root.Tag)
	}
	tr := &translation{root: rt, kind: kind, srid: guessSRID(root)}

	if g, ok := memberGrammar[rt]; ok {
		c.i++
		for !c.atLast() {
			if c.atEnd() {
				return nil, geom.Structuralf("expected </%s>, found end of document", rt)
			}
			if _, _, err := c.open(g.member); err != nil {
				return nil, err
			}
			m, err := c.shape(g.shapes...)
			if err != nil {
				return nil, err
			}
			if err := c.close(g.member); err != nil {
				return nil, err
			}
			tr.members = append(tr.members, m)
		}
		if err := c.close(rt); err != nil {
			return nil, err
		}
		return tr, nil
	}

	m, err := c.shape(rt)
	if err != nil {
		return nil, err
	}
	m.SRID = tr.srid
	if n := c.peek(); n != nil {
		return nil, geom.Structuralf("unexpected %s tag %q after </%s> at pos %d", n.Kind, n.Tag, rt, n.pos)
	}
	tr.members = []*geom.Geometry{m}
	return tr, nil
}

// shape reads one Point, LineString, Curve or Polygon element. The result
// carries the SRID named on the element itself.
func (c *cursor) shape(want ...tag) (*geom.Geometry, error) {
	n, t, err := c.open(want...)
	if err != nil {
		return nil, err
	}
	var g *geom.Geometry
	switch t {
	case tagPoint:
		g, err = c.point()
	case tagLineString:
		g, err = c.lineString()
	case tagCurve:
		g, err = c.curve()
	case tagPolygon:
		g, err = c.polygon()
	}
	if err != nil {
		return nil, err
	}
	g.SRID = guessSRID(n)
	return g, nil
}

// leaf reads a coordinate element of one of the given kinds and its
// closing tag.
func (c *cursor) leaf(want ...tag) ([]geom.Point, geom.Dim, error) {
	n, t, err := c.open(want...)
	if err != nil {
		return nil, 0, err
	}
	var pts []geom.Point
	var dim geom.Dim
	switch t {
	case tagCoordinates:
		pts, dim, err = coordinates(n.Coords)
	case tagPosList:
		pts, dim, err = posList(n.Coords, hasZ(n))
	case tagPos:
		var p geom.Point
		p, err = pointPos(n.Coords)
		pts, dim = []geom.Point{p}, p.Dim
	}
	if err != nil {
		return nil, 0, err
	}
	return pts, dim, c.close(t)
}

func (c *cursor) point() (*geom.Geometry, error) {
	n, t, err := c.open(tagCoordinates, tagPos)
	if err != nil {
		return nil, err
	}
	var p geom.Point
	if t == tagCoordinates {
		p, err = pointCoordinates(n.Coords)
	} else {
		p, err = pointPos(n.Coords)
	}
	if err != nil {
		return nil, err
	}
	if err := c.close(t); err != nil {
		return nil, err
	}
	if err := c.close(tagPoint); err != nil {
		return nil, err
	}
	return geom.PointGeometry(p), nil
}

func lineGeometry(pts []geom.Point, dim geom.Dim) (*geom.Geometry, error) {
	if len(pts) < 2 {
		return nil, geom.Structuralf("linestring: %d points, need at least 2", len(pts))
	}
	l, err := geom.NewLinestring(dim, pts)
	if err != nil {
		return nil, err
	}
	return geom.LinestringGeometry(l), nil
}

func (c *cursor) lineString() (*geom.Geometry, error) {
	pts, dim, err := c.leaf(tagCoordinates, tagPosList)
	if err != nil {
		return nil, err
	}
	if err := c.close(tagLineString); err != nil {
		return nil, err
	}
	return lineGeometry(pts, dim)
}

// curve reads <segments><LineStringSegment> coordinates
// </LineStringSegment></segments></Curve>.
func (c *cursor) curve() (*geom.Geometry, error) {
	if _, _, err := c.open(tagSegments); err != nil {
		return nil, err
	}
	if _, _, err := c.open(tagLineStringSegment); err != nil {
		return nil, err
	}
	pts, dim, err := c.leaf(tagCoordinates, tagPosList)
	if err != nil {
		return nil, err
	}
	for _, t := range []tag{tagLineStringSegment, tagSegments, tagCurve} {
		if err := c.close(t); err != nil {
			return nil, err
		}
	}
	return lineGeometry(pts, dim)
}

type ringState uint8

const (
	ringWrapperOrEnd ringState = iota
	ringBody
	ringWrapperEnd
	polygonDone
)

// polygon reads boundary wrappers until </Polygon>. Exactly one of them
// must be an exterior; the polygon is 3D only when every ring is.
func (c *cursor) polygon() (*geom.Geometry, error) {
	var (
		exterior  *geom.Ring
		interiors []geom.Ring
		wrapper   tag
		dim       = geom.XYZ
		state     = ringWrapperOrEnd
	)
	for state != polygonDone {
		switch state {
		case ringWrapperOrEnd:
			if n := c.peek(); n != nil && n.Kind == Closing && lookupTag(n.Tag) == tagPolygon {
				c.i++
				state = polygonDone
				continue
			}
			var err error
			_, wrapper, err = c.open(tagOuterBoundaryIs, tagExterior, tagInnerBoundaryIs, tagInterior)
			if err != nil {
				return nil, err
			}
			state = ringBody
		case ringBody:
			if _, _, err := c.open(tagLinearRing); err != nil {
				return nil, err
			}
			pts, rdim, err := c.leaf(tagCoordinates, tagPosList)
			if err != nil {
				return nil, err
			}
			if err := c.close(tagLinearRing); err != nil {
				return nil, err
			}
			r, err := geom.NewRing(rdim, pts)
			if err != nil {
				return nil, err
			}
			if rdim == geom.XY {
				dim = geom.XY
			}
			if wrapper == tagOuterBoundaryIs || wrapper == tagExterior {
				if exterior != nil {
					return nil, geom.Structuralf("polygon: more than one exterior ring")
				}
				exterior = &r
			} else {
				interiors = append(interiors, r)
			}
			state = ringWrapperEnd
		case ringWrapperEnd:
			if err := c.close(wrapper); err != nil {
				return nil, err
			}
			state = ringWrapperOrEnd
		}
	}
	if exterior == nil {
		return nil, geom.Structuralf("polygon: no exterior ring")
	}
	rings := make([]geom.Ring, 0, 1+len(interiors))
	rings = append(rings, exterior.To(dim))
	for i := range interiors {
		rings = append(rings, interiors[i].To(dim))
	}
	p, err := geom.NewPolygon(rings)
	if err != nil {
		return nil, err
	}
	return geom.PolygonGeometry(p), nil
}
