package gml

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"geotext/internal/geom"
)

// ProjLookup maps an SRID to projection parameters. An empty string means
// the SRID is unknown.
type ProjLookup interface {
	ProjParams(srid int) string
}

// Reprojector returns a copy of g with its coordinates transformed between
// two projections.
type Reprojector interface {
	Reproject(g *geom.Geometry, from, to string) (*geom.Geometry, error)
}

type merger struct {
	lookup ProjLookup
	reproj Reprojector
	strict bool
	log    *zap.Logger
}

// classify picks the final kind from the primitive counts and the kind the
// root tag declared.
func classify(declared geom.Kind, pts, lns, pgs int) geom.Kind {
	if declared == geom.KindGeometryCollection {
		return geom.KindGeometryCollection
	}
	single := func(k, multi geom.Kind) geom.Kind {
		if declared == multi {
			return multi
		}
		return k
	}
	switch {
	case pts == 1 && lns == 0 && pgs == 0:
		return single(geom.KindPoint, geom.KindMultiPoint)
	case pts == 0 && lns == 1 && pgs == 0:
		return single(geom.KindLineString, geom.KindMultiLineString)
	case pts == 0 && lns == 0 && pgs == 1:
		return single(geom.KindPolygon, geom.KindMultiPolygon)
	case lns == 0 && pgs == 0:
		return geom.KindMultiPoint
	case pts == 0 && pgs == 0:
		return geom.KindMultiLineString
	case pts == 0 && lns == 0:
		return geom.KindMultiPolygon
	}
	return geom.KindGeometryCollection
}

// merge folds the members of tr into one geometry. Members whose SRID
// differs from the result's are reprojected first when a lookup and a
// reprojector are configured.
func (m *merger) merge(tr *translation) (*geom.Geometry, error) {
	var pts, lns, pgs int
	dim := geom.XY
	srid := tr.srid
	for _, g := range tr.members {
		pts += len(g.Points)
		lns += len(g.Linestrings)
		pgs += len(g.Polygons)
		if g.Dim.HasZ() {
			dim = geom.XYZ
		}
		if srid == -1 {
			srid = g.SRID
		}
	}
	if pts+lns+pgs == 0 {
		return nil, geom.Structuralf("<%s> has no members", tr.root)
	}

	out := geom.New(dim, classify(tr.kind, pts, lns, pgs))
	out.SRID = srid
	for _, g := range tr.members {
		src := g
		if srid != -1 && g.SRID != -1 && g.SRID != srid {
			r, err := m.reproject(g, srid)
			if err != nil {
				return nil, err
			}
			src = r
		}
		for _, p := range src.Points {
			out.Points = append(out.Points, p.To(dim))
		}
		for i := range src.Linestrings {
			out.Linestrings = append(out.Linestrings, src.Linestrings[i].To(dim))
		}
		for i := range src.Polygons {
			out.Polygons = append(out.Polygons, src.Polygons[i].To(dim))
		}
	}
	return out, nil
}

// reproject transforms g into the target SRID. When that is not possible
// it returns g unchanged, or an error in strict mode.
func (m *merger) reproject(g *geom.Geometry, to int) (*geom.Geometry, error) {
	if m.lookup == nil || m.reproj == nil {
		return g, nil
	}
	fail := func(err error) (*geom.Geometry, error) {
		if m.strict {
			return nil, errors.Mark(errors.Wrapf(err, "reprojecting member from %d to %d", g.SRID, to), geom.ErrSemantic)
		}
		m.log.Warn("merging member without reprojection",
			zap.Int("from", g.SRID), zap.Int("to", to), zap.Error(err))
		return g, nil
	}
	fromParams, toParams := m.lookup.ProjParams(g.SRID), m.lookup.ProjParams(to)
	if fromParams == "" {
		return fail(errors.Newf("no projection parameters for SRID %d", g.SRID))
	}
	if toParams == "" {
		return fail(errors.Newf("no projection parameters for SRID %d", to))
	}
	r, err := m.reproj.Reproject(g, fromParams, toParams)
	if err != nil {
		return fail(err)
	}
	return r, nil
}
