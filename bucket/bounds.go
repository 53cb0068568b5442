package bucket

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"trafficmap/common"
)

var ErrDegenerateBounds = errors.New("degenerate bounds")

// Bounds is the geographic rectangle covered by a grid.
type Bounds struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

func NewBounds(top float64, right float64, bottom float64, left float64) (Bounds, error) {
	b := Bounds{Top: top, Right: right, Bottom: bottom, Left: left}
	return b, b.Validate()
}

// Validate makes sure the bounds have a positive, finite width and height. Degenerate bounds would result in
// infinite or NaN cell sizes.
func (b Bounds) Validate() error {
	for _, value := range []float64{b.Top, b.Right, b.Bottom, b.Left} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.Wrapf(ErrDegenerateBounds, "non-finite value in %+v", b)
		}
	}
	if b.Right <= b.Left {
		return errors.Wrapf(ErrDegenerateBounds, "right %f is not greater than left %f", b.Right, b.Left)
	}
	if b.Top <= b.Bottom {
		return errors.Wrapf(ErrDegenerateBounds, "top %f is not greater than bottom %f", b.Top, b.Bottom)
	}
	if math.IsInf(b.Width(), 0) || math.IsInf(b.Height(), 0) {
		return errors.Wrapf(ErrDegenerateBounds, "span of %+v is not finite", b)
	}
	return nil
}

func (b Bounds) Width() float64 { return b.Right - b.Left }

func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Contains checks whether the position is within the bounds. Positions on the border are contained.
func (b Bounds) Contains(position common.LatLng) bool {
	return b.Left <= position.Lng() && position.Lng() <= b.Right &&
		b.Bottom <= position.Lat() && position.Lat() <= b.Top
}

func (b Bounds) ToBound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.Left, b.Bottom}, Max: orb.Point{b.Right, b.Top}}
}
