package features

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func (f Feature) Bound() (orb.Bound, bool) {
	if len(f.Geometry) == 0 || bytes.Equal(bytes.TrimSpace(f.Geometry), []byte("null")) {
		return orb.Bound{}, false
	}

	g, err := geojson.UnmarshalGeometry(f.Geometry)
	if err != nil || g == nil || g.Coordinates == nil {
		return orb.Bound{}, false
	}

	return g.Coordinates.Bound(), true
}

func (fc FeatureCollection) Bound() (orb.Bound, bool) {
	var bound orb.Bound
	found := false

	for _, f := range fc.Features {
		b, ok := f.Bound()
		if !ok {
			continue
		}
		if !found {
			bound = b
			found = true
			continue
		}
		bound = bound.Union(b)
	}

	return bound, found
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat".
func ParseBBox(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errors.New("bbox must have four comma separated values")
	}

	v := [4]float64{}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, errors.New("bbox contains an invalid number")
		}
		v[i] = f
	}

	if v[0] > v[2] || v[1] > v[3] {
		return orb.Bound{}, errors.New("bbox min must not exceed max")
	}

	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func BBox(b orb.Bound) []float64 {
	return []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
}
