package geomconv

import (
	"encoding/binary"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"

	"geotext/internal/geom"
)

// Output formats accepted by Encode.
const (
	FormatText    = "text"
	FormatWKT     = "wkt"
	FormatGeoJSON = "geojson"
	FormatEWKBHex = "ewkbhex"
)

var Formats = []string{FormatText, FormatWKT, FormatGeoJSON, FormatEWKBHex}

// Encode renders g in format. text is the canonical EWKT of geom.Format.
func Encode(g *geom.Geometry, format string) (string, error) {
	if format == FormatText {
		return geom.Format(g), nil
	}
	t, err := ToT(g)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatWKT:
		return wkt.Marshal(t)
	case FormatGeoJSON:
		b, err := geojson.Marshal(t)
		return string(b), err
	case FormatEWKBHex:
		return ewkbhex.Encode(t, binary.LittleEndian)
	}
	return "", errors.Newf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// GeoJSON coordinates are WGS84 longitude/latitude.
const geoJSONSRID = 4326

// DecodeGeoJSON reads a GeoJSON geometry, Feature or FeatureCollection. The
// geometries of a collection with more than one feature are gathered into
// one GeometryCollection.
func DecodeGeoJSON(data []byte) (*geom.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, geom.Syntaxf("geojson: %v", err)
	}

	var ts []gogeom.T
	switch probe.Type {
	case "Feature":
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, geom.Syntaxf("geojson feature: %v", err)
		}
		ts = append(ts, f.Geometry)
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, geom.Syntaxf("geojson feature collection: %v", err)
		}
		for _, f := range fc.Features {
			ts = append(ts, f.Geometry)
		}
	default:
		var t gogeom.T
		if err := geojson.Unmarshal(data, &t); err != nil {
			return nil, geom.Syntaxf("geojson geometry: %v", err)
		}
		ts = append(ts, t)
	}

	members := make([]*geom.Geometry, 0, len(ts))
	for _, t := range ts {
		if t == nil {
			continue
		}
		g, err := fromT(t)
		if err != nil {
			return nil, err
		}
		members = append(members, g)
	}
	var g *geom.Geometry
	switch len(members) {
	case 0:
		return nil, geom.Validationf("geojson: no geometries")
	case 1:
		g = members[0]
	default:
		var err error
		if g, err = gather(members); err != nil {
			return nil, err
		}
	}
	if err := geom.Finalize(g, geoJSONSRID); err != nil {
		return nil, err
	}
	return g, nil
}
