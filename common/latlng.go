package common

import "github.com/paulmach/orb"

// LatLng is a latitude-first coordinate pair as expected by the map widget. GeoJSON and orb store coordinates
// longitude-first, so every conversion from a source geometry has to go through LatLngFromPoint exactly once.
type LatLng [2]float64

func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{p.Lat(), p.Lon()}
}

func (l LatLng) Lat() float64 { return l[0] }

func (l LatLng) Lng() float64 { return l[1] }

// Reverse swaps both values. Applying it twice results in the original pair.
func (l LatLng) Reverse() LatLng {
	return LatLng{l[1], l[0]}
}

func (l LatLng) ToPoint() orb.Point {
	return orb.Point{l.Lng(), l.Lat()}
}
