package dispatch

import (
	"strconv"
	"strings"
)

// LineString is the GeoJSON geometry emitted by
// /calcDeliveryPathAsGeoJson. Coordinates are [lng, lat] pairs, lng
// first, per spec.md §6.
type LineString struct {
	Type        string
	Coordinates [][2]float64
}

// MarshalGeoJSON renders the literal wire format spec.md §6 requires:
// no whitespace, numbers at their natural floating-point precision.
// encoding/json would round-trip the shape correctly but does not
// guarantee the exact no-whitespace rendering the wire contract pins
// down, so the LineString is built by hand.
func (l LineString) MarshalGeoJSON() string {
	var b strings.Builder
	b.WriteString(`{"type":"LineString","coordinates":[`)
	for i, c := range l.Coordinates {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(strconv.FormatFloat(c[0], 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c[1], 'g', -1, 64))
		b.WriteByte(']')
	}
	b.WriteString(`]}`)
	return b.String()
}
