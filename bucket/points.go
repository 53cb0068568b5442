package bucket

import (
	"trafficmap/feature"
	"trafficmap/marker"
)

// PointsFromMarkers returns the traffic volume of every marker with coordinates and volume.
func PointsFromMarkers(markers []marker.TrafficMarker) []Point {
	var points []Point
	for _, m := range markers {
		if m.Coordinates == nil || m.TrafficDensity == nil {
			continue
		}
		points = append(points, Point{Position: *m.Coordinates, Value: *m.TrafficDensity})
	}
	return points
}

// PointsFromPriceFeatures returns the price index of every point feature that has one.
func PointsFromPriceFeatures(features []*feature.Feature) []Point {
	var points []Point
	for _, f := range features {
		position := feature.Coordinate(f)
		priceIndex := feature.PriceIndex(f)
		if position == nil || priceIndex == nil {
			continue
		}
		points = append(points, Point{Position: *position, Value: *priceIndex})
	}
	return points
}
