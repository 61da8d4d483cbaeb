package geom

// Dim describes which ordinates a coordinate carries.
type Dim uint8

const (
	XY Dim = iota
	XYZ
	XYM
	XYZM
)

// DimOf returns the Dim carrying z and/or m.
func DimOf(hasZ, hasM bool) Dim {
	switch {
	case hasZ && hasM:
		return XYZM
	case hasZ:
		return XYZ
	case hasM:
		return XYM
	}
	return XY
}

// Stride is the number of float64 values per coordinate.
func (d Dim) Stride() int {
	switch d {
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	}
	return 2
}

func (d Dim) HasZ() bool { return d == XYZ || d == XYZM }
func (d Dim) HasM() bool { return d == XYM || d == XYZM }

func (d Dim) String() string {
	switch d {
	case XYZ:
		return "XYZ"
	case XYM:
		return "XYM"
	case XYZM:
		return "XYZM"
	}
	return "XY"
}

// suffix is the dimension marker written after a shape keyword.
func (d Dim) suffix() string {
	switch d {
	case XYZ:
		return " Z"
	case XYM:
		return " M"
	case XYZM:
		return " ZM"
	}
	return ""
}

// Kind is the declared shape of a Geometry.
type Kind uint8

const (
	KindPoint Kind = iota + 1
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

var kindNames = [...]string{
	KindPoint:              "Point",
	KindLineString:         "LineString",
	KindPolygon:            "Polygon",
	KindMultiPoint:         "MultiPoint",
	KindMultiLineString:    "MultiLineString",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Multi reports whether k is one of the Multi* kinds or a collection.
func (k Kind) Multi() bool { return k >= KindMultiPoint }
