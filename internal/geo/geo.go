// Package geo implements the plane-projected lng/lat geometry the
// pathfinder and the no-fly-zone checks are built on: a fixed step size,
// a 16-point compass, wrap-around longitude and clamped latitude.
//
// This mirrors the teacher's latlon.LatLonCartesian distance/bearing
// math (Δlng/Δlat treated as Cartesian, with a ±360 wrap correction)
// but trades the spherical variants (haversine, "zezo") for the single
// planar model the drone planner needs.
package geo

import (
	"errors"
	"math"
)

// Step is the fixed lng/lat delta of a single drone move.
const Step = 0.00015

// CloseThreshold is the distance under which two positions are
// considered the same point for path-termination purposes.
const CloseThreshold = 0.00015

// ErrInvalidPosition is returned whenever a Position fails validation.
var ErrInvalidPosition = errors.New("geo: invalid position")

// ErrInvalidAngle is returned when a move is requested on an angle
// outside the 16-point compass.
var ErrInvalidAngle = errors.New("geo: invalid angle")

// ErrPoleBlocked is returned when a move would cross a pole.
var ErrPoleBlocked = errors.New("geo: move blocked by pole")

// CompassAngles lists the sixteen legal move angles in degrees, east =
// 0, north = 90, counter-clockwise, in the fixed order successors are
// generated in.
var CompassAngles = [16]float64{
	0, 22.5, 45, 67.5, 90, 112.5, 135, 157.5,
	180, 202.5, 225, 247.5, 270, 292.5, 315, 337.5,
}

// Position is a (lng, lat) pair on the plane-projected grid.
type Position struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Valid reports whether p's components are finite and within range.
func (p Position) Valid() bool {
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// Equal reports structural equality.
func (p Position) Equal(o Position) bool {
	return p.Lng == o.Lng && p.Lat == o.Lat
}

// GridKey quantises p to its grid cell by rounding each coordinate to
// the nearest multiple of Step. It is used only to build transient
// visited/recency sets in the pathfinder — positions within half a step
// of the same cell collapse to the same key.
type GridKey struct {
	I int64
	J int64
}

// Quantise returns p's GridKey.
func (p Position) Quantise() GridKey {
	return GridKey{
		I: int64(math.Round(p.Lng / Step)),
		J: int64(math.Round(p.Lat / Step)),
	}
}

// Distance returns the planar Euclidean distance between two valid
// positions. Ported from the teacher's LatLonCartesian.DistanceTo: the
// longitude delta is wrapped into [-180, 180] before squaring so that
// points near the antimeridian measure correctly.
func Distance(from, to Position) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, ErrInvalidPosition
	}
	dx := to.Lng - from.Lng
	if dx > 180 {
		dx -= 360
	} else if dx < -180 {
		dx += 360
	}
	dy := to.Lat - from.Lat
	return math.Sqrt(dx*dx + dy*dy), nil
}

// IsClose reports whether from and to are within CloseThreshold of each
// other. The comparison is strict: a position exactly CloseThreshold
// away is not close.
func IsClose(from, to Position) (bool, error) {
	d, err := Distance(from, to)
	if err != nil {
		return false, err
	}
	return d < CloseThreshold, nil
}

// NextPosition moves start by one Step along angleDeg, which must be one
// of CompassAngles. Latitude leaving [-90, 90] is reported as
// ErrPoleBlocked (poles are impassable); longitude leaving [-180, 180]
// wraps modularly.
func NextPosition(start Position, angleDeg float64) (Position, error) {
	if !start.Valid() {
		return Position{}, ErrInvalidPosition
	}
	if !isLegalAngle(angleDeg) {
		return Position{}, ErrInvalidAngle
	}

	rad := angleDeg * math.Pi / 180.0
	dLng := math.Cos(rad) * Step
	dLat := math.Sin(rad) * Step

	lat := start.Lat + dLat
	if lat < -90 || lat > 90 {
		return Position{}, ErrPoleBlocked
	}

	lng := start.Lng + dLng
	if lng > 180 {
		lng = -180 + (lng - 180)
	} else if lng < -180 {
		lng = 180 + (lng + 180)
	}

	return Position{Lng: lng, Lat: lat}, nil
}

func isLegalAngle(angleDeg float64) bool {
	for _, a := range CompassAngles {
		if math.Abs(a-angleDeg) < 1e-9 {
			return true
		}
	}
	return false
}

// Region is a closed no-fly polygon: an ordered sequence of vertices
// whose first and last entries repeat.
type Region struct {
	Vertices []Position
}

// WellFormed reports whether the region has a closed ring of at least
// three distinct corners.
func (r Region) WellFormed() bool {
	n := len(r.Vertices)
	if n < 4 {
		return false
	}
	if !r.Vertices[0].Equal(r.Vertices[n-1]) {
		return false
	}
	distinct := map[GridKey]struct{}{}
	for _, v := range r.Vertices[:n-1] {
		distinct[v.Quantise()] = struct{}{}
	}
	return len(distinct) >= 3
}

const pipEpsilon = 1e-12

// PointInPolygon runs ray-casting over the closed ring described by
// vertices (vertices[0] == vertices[len-1]), with an explicit boundary
// test so points sitting on an edge are reported as inside.
func PointInPolygon(p Position, vertices []Position) bool {
	n := len(vertices)
	if n < 4 {
		return false
	}

	for i := 0; i < n-1; i++ {
		if onSegment(p, vertices[i], vertices[i+1]) {
			return true
		}
	}

	inside := false
	for i := 0; i < n-1; i++ {
		p1, p2 := vertices[i], vertices[i+1]
		y1, y2 := p1.Lat, p2.Lat
		x1, x2 := p1.Lng, p2.Lng

		crosses := math.Min(y1, y2) < p.Lat && p.Lat <= math.Max(y1, y2)
		if !crosses {
			continue
		}
		if p.Lng > math.Max(x1, x2) {
			continue
		}
		if x1 == x2 {
			inside = !inside
			continue
		}
		xAtY := x1 + (p.Lat-y1)*(x2-x1)/(y2-y1)
		if p.Lng <= xAtY {
			inside = !inside
		}
	}
	return inside
}

func onSegment(p, a, b Position) bool {
	cross := (b.Lng-a.Lng)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lng-a.Lng)
	if math.Abs(cross) > pipEpsilon {
		return false
	}
	if p.Lng < math.Min(a.Lng, b.Lng)-pipEpsilon || p.Lng > math.Max(a.Lng, b.Lng)+pipEpsilon {
		return false
	}
	if p.Lat < math.Min(a.Lat, b.Lat)-pipEpsilon || p.Lat > math.Max(a.Lat, b.Lat)+pipEpsilon {
		return false
	}
	return true
}

// sampleSteps is the number of points sampled along a candidate move
// when checking it against no-fly regions.
const sampleSteps = 100

// IsValidMove reports whether the straight segment from start to end
// avoids every well-formed region. Malformed regions are skipped.
func IsValidMove(start, end Position, regions []Region) bool {
	for _, r := range regions {
		if !r.WellFormed() {
			continue
		}
		for i := 1; i <= sampleSteps; i++ {
			t := float64(i) / float64(sampleSteps)
			sample := Position{
				Lng: start.Lng + t*(end.Lng-start.Lng),
				Lat: start.Lat + t*(end.Lat-start.Lat),
			}
			if PointInPolygon(sample, r.Vertices) {
				return false
			}
		}
	}
	return true
}
