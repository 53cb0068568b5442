package bucket

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// RampKind selects the color scale used for the cell averages.
type RampKind int

const (
	RampTraffic RampKind = iota
	RampPrice
)

func (r RampKind) String() string {
	switch r {
	case RampTraffic:
		return "traffic"
	case RampPrice:
		return "price"
	}
	return fmt.Sprintf("[!UNKNOWN RampKind %d]", int(r))
}

func ParseRamp(name string) (RampKind, error) {
	switch name {
	case RampTraffic.String():
		return RampTraffic, nil
	case RampPrice.String():
		return RampPrice, nil
	}
	return RampTraffic, errors.Errorf("Unknown color ramp '%s'", name)
}

const (
	// Average daily volume at which the traffic ramp reaches pure red. Half of it is yellow.
	trafficRampMax = 10000

	// Price index range of the price ramp. Indices are relative to a base of 100.
	priceRampMin = 50
	priceRampMax = 150
)

// ColorFor returns the "#rrggbb" color of the bucket's average on the given ramp. Empty buckets should not be
// rendered at all, they get the color of an average of 0.
func ColorFor(bucket Bucket, ramp RampKind) string {
	average := bucket.Average()

	var r, g, b float64
	switch ramp {
	case RampPrice:
		r, g, b = priceColor(average)
	default:
		r, g, b = trafficColor(average)
	}

	return fmt.Sprintf("#%02x%02x%02x", toChannel(r), toChannel(g), toChannel(b))
}

// trafficColor goes from green over yellow to red.
func trafficColor(average float64) (float64, float64, float64) {
	ratio := average / trafficRampMax
	red := 510 * ratio
	green := 510 * (1 - ratio)
	return red, green, 0
}

// priceColor goes from blue to purple, cheap areas keep a bit of green.
func priceColor(average float64) (float64, float64, float64) {
	ratio := (average - priceRampMin) / (priceRampMax - priceRampMin)
	red := 255 * ratio
	green := 96 * (1 - ratio)
	blue := 255 - 128*ratio
	return red, green, blue
}

func toChannel(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(255, value))))
}
