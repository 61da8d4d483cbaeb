package gml

import (
	"strconv"
	"strings"
)

// NodeKind tells an opening tag from a self-closed or closing one.
type NodeKind uint8

const (
	Open NodeKind = iota
	SelfClosed
	Closing
)

func (k NodeKind) String() string {
	switch k {
	case SelfClosed:
		return "self-closed"
	case Closing:
		return "closing"
	}
	return "open"
}

type Attr struct {
	Key   string
	Value string
}

// Node is one tag occurrence. Coords holds the whitespace separated text
// that followed an opening tag.
type Node struct {
	Tag    string
	Kind   NodeKind
	Attrs  []Attr
	Coords []string
	pos    int
}

// Attr returns the value of the first attribute named key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

const epsgURL = "http://www.opengis.net/gml/srs/epsg.xml#"

// guessSRID reads the srsName attribute: "EPSG:<n>",
// "urn:ogc:def:crs:EPSG:<version>:<n>" or the GML2 epsg.xml URL form.
// Anything else yields -1.
func guessSRID(n *Node) int {
	v, ok := n.Attr("srsName")
	if !ok {
		return -1
	}
	v = strings.TrimSpace(v)
	var digits string
	switch {
	case strings.HasPrefix(v, "EPSG:") && len(v) > len("EPSG:"):
		digits = v[len("EPSG:"):]
	case strings.HasPrefix(v, "urn:ogc:def:crs:EPSG:"):
		digits = v[strings.LastIndexByte(v, ':')+1:]
	case strings.HasPrefix(v, epsgURL):
		digits = v[len(epsgURL):]
	default:
		return -1
	}
	srid, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return srid
}

// hasZ reports srsDimension="3".
func hasZ(n *Node) bool {
	v, ok := n.Attr("srsDimension")
	if !ok {
		return false
	}
	d, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil && d == 3
}
