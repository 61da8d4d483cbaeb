// Package srs maps spatial reference ids to proj4 definitions and moves
// geometries between them.
package srs

import (
	"fmt"
	"sort"
	"sync"
)

const (
	wgs84     = "+proj=longlat +datum=WGS84 +no_defs"
	nad83     = "+proj=longlat +datum=NAD83 +no_defs"
	webMerc   = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs"
	utmNorth  = "+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs"
	utmSouth  = "+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs"
	utmZones  = 60
	utmNBase  = 32600
	utmSBase  = 32700
	googleOld = 900913
)

// Registry is a concurrency safe SRID → proj4 table.
type Registry struct {
	mu   sync.RWMutex
	defs map[int]string
}

// NewRegistry returns a registry holding WGS84, NAD83, web mercator and
// the WGS84 UTM zones.
func NewRegistry() *Registry {
	r := &Registry{defs: map[int]string{
		4326:      wgs84,
		4269:      nad83,
		3857:      webMerc,
		googleOld: webMerc,
	}}
	for z := 1; z <= utmZones; z++ {
		r.defs[utmNBase+z] = fmt.Sprintf(utmNorth, z)
		r.defs[utmSBase+z] = fmt.Sprintf(utmSouth, z)
	}
	return r
}

// Register adds or replaces the definition for srid.
func (r *Registry) Register(srid int, proj4 string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[srid] = proj4
}

// ProjParams returns the proj4 definition for srid, or "" when unknown.
func (r *Registry) ProjParams(srid int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[srid]
}

// SRIDs lists the registered ids in ascending order.
func (r *Registry) SRIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.defs))
	for id := range r.defs {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
