package gml

import (
	"strconv"
	"strings"

	"geotext/internal/geom"
)

// checkCoord accepts an optional sign, digits and at most one '.'.
func checkCoord(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			if dot {
				return false
			}
			dot = true
		case c >= '0' && c <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0
}

func parseCoord(s string) (float64, error) {
	if !checkCoord(s) {
		return 0, geom.Structuralf("invalid coordinate %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

type coordState uint8

const (
	awaitFirst coordState = iota
	accumulating
	counted
	emitPoint
	done
)

// tuple collects positional fields; fields past z are counted only.
type tuple struct {
	n       int
	x, y, z float64
}

func (t *tuple) add(s string) error {
	v, err := parseCoord(s)
	if err != nil {
		return err
	}
	switch t.n {
	case 0:
		t.x = v
	case 1:
		t.y = v
	case 2:
		t.z = v
	}
	t.n++
	return nil
}

// addFields feeds the comma separated fields of tok into t.
func (t *tuple) addFields(tok string) error {
	for _, f := range strings.Split(tok, ",") {
		if f == "" {
			continue
		}
		if err := t.add(f); err != nil {
			return err
		}
	}
	return nil
}

func (t *tuple) point() (geom.Point, error) {
	switch t.n {
	case 2:
		return geom.NewPoint(geom.XY, t.x, t.y), nil
	case 3:
		return geom.NewPoint(geom.XYZ, t.x, t.y, t.z), nil
	}
	return geom.Point{}, geom.Structuralf("coordinate tuple with %d values", t.n)
}

// pointCoordinates reads a Point's <coordinates>: every token contributes
// to one tuple.
func pointCoordinates(tokens []string) (geom.Point, error) {
	var t tuple
	for _, tok := range tokens {
		if err := t.addFields(tok); err != nil {
			return geom.Point{}, err
		}
	}
	return t.point()
}

// pointPos reads a <pos>: one value per token.
func pointPos(tokens []string) (geom.Point, error) {
	var t tuple
	for _, tok := range tokens {
		if err := t.add(tok); err != nil {
			return geom.Point{}, err
		}
	}
	return t.point()
}

// coordinates reads the tuples of a <coordinates> list. A tuple spans
// several tokens while a token ends with ',' or the next one starts with
// ','. The result is 3D only when every tuple has a z.
func coordinates(tokens []string) ([]geom.Point, geom.Dim, error) {
	var (
		pts   []geom.Point
		t     tuple
		state = awaitFirst
		dim   = geom.XYZ
	)
	for i := 0; state != done; {
		switch state {
		case awaitFirst, accumulating:
			if i == len(tokens) {
				if state == accumulating {
					state = counted
				} else {
					state = done
				}
				continue
			}
			tok := tokens[i]
			if err := t.addFields(tok); err != nil {
				return nil, 0, err
			}
			i++
			follow := strings.HasSuffix(tok, ",") ||
				(i < len(tokens) && strings.HasPrefix(tokens[i], ","))
			if follow {
				state = accumulating
			} else {
				state = counted
			}
		case counted:
			if t.n != 2 && t.n != 3 {
				return nil, 0, geom.Structuralf("coordinate tuple with %d values", t.n)
			}
			state = emitPoint
		case emitPoint:
			p, _ := t.point()
			if p.Dim == geom.XY {
				dim = geom.XY
			}
			pts = append(pts, p)
			t = tuple{}
			state = awaitFirst
		}
	}
	return samedim(pts, dim), dim, nil
}

// posList reads a <posList> with a fixed number of values per point.
func posList(tokens []string, is3D bool) ([]geom.Point, geom.Dim, error) {
	dim, stride := geom.XY, 2
	if is3D {
		dim, stride = geom.XYZ, 3
	}
	if len(tokens)%stride != 0 {
		return nil, 0, geom.Structuralf("posList: %d values do not divide into %d-tuples", len(tokens), stride)
	}
	pts := make([]geom.Point, 0, len(tokens)/stride)
	ords := make([]float64, stride)
	for i := 0; i < len(tokens); i += stride {
		for j := range ords {
			v, err := parseCoord(tokens[i+j])
			if err != nil {
				return nil, 0, err
			}
			ords[j] = v
		}
		pts = append(pts, geom.NewPoint(dim, ords...))
	}
	return pts, dim, nil
}

func samedim(pts []geom.Point, dim geom.Dim) []geom.Point {
	for i := range pts {
		pts[i] = pts[i].To(dim)
	}
	return pts
}
