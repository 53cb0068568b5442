package bucket

import (
	"math"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"trafficmap/common"
)

const DefaultBucketsPerAxis = 20

var ErrInvalidBucketCount = errors.New("invalid bucket count")

// Bucket accumulates the values of all points within one grid cell.
type Bucket struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// Average returns the mean value of the bucket or 0 for an empty bucket.
func (b Bucket) Average() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.Sum / float64(b.Count)
}

type Options struct {
	BucketsPerAxis int
	// CheckBounds excludes points outside the bounds. Without it, such points are clamped into the nearest edge cell.
	CheckBounds bool
}

// TrafficOptions are used for traffic volumes. The count data is expected to be within the map area, points
// outside of it are not excluded.
func TrafficOptions(bucketsPerAxis int) Options {
	return Options{BucketsPerAxis: bucketsPerAxis, CheckBounds: false}
}

// PriceOptions are used for price indices, which cover a larger area than the map and have to be cut.
func PriceOptions(bucketsPerAxis int) Options {
	return Options{BucketsPerAxis: bucketsPerAxis, CheckBounds: true}
}

// Point is a value at a position, e.g. a traffic volume or a price index.
type Point struct {
	Position common.LatLng
	Value    float64
}

// Grid divides the bounds into BucketsPerAxis x BucketsPerAxis equally sized cells. X goes from left to right, Y from
// bottom to top.
type Grid struct {
	Bounds         Bounds
	BucketsPerAxis int

	checkBounds bool
	cellWidth   float64
	cellHeight  float64
	buckets     [][]Bucket
	extent      common.CellExtent

	// Extent of all cells with at least one point, nil as long as the grid is empty.
	populatedExtent *common.CellExtent
}

func NewGrid(bounds Bounds, options Options) (*Grid, error) {
	err := bounds.Validate()
	if err != nil {
		return nil, err
	}
	if options.BucketsPerAxis <= 0 {
		return nil, errors.Wrapf(ErrInvalidBucketCount, "%d buckets per axis", options.BucketsPerAxis)
	}

	buckets := make([][]Bucket, options.BucketsPerAxis)
	for x := range buckets {
		buckets[x] = make([]Bucket, options.BucketsPerAxis)
	}

	return &Grid{
		Bounds:         bounds,
		BucketsPerAxis: options.BucketsPerAxis,
		checkBounds:    options.CheckBounds,
		cellWidth:      bounds.Width() / float64(options.BucketsPerAxis),
		cellHeight:     bounds.Height() / float64(options.BucketsPerAxis),
		buckets:        buckets,
		extent:         common.CellExtent{{0, 0}, {options.BucketsPerAxis - 1, options.BucketsPerAxis - 1}},
	}, nil
}

// Build creates a new grid and adds all points to it.
func Build(points []Point, bounds Bounds, options Options) (*Grid, error) {
	grid, err := NewGrid(bounds, options)
	if err != nil {
		return nil, err
	}

	sigolo.Debugf("Aggregate %d points into %dx%d grid", len(points), grid.BucketsPerAxis, grid.BucketsPerAxis)
	aggregationStartTime := time.Now()

	added := 0
	for _, point := range points {
		if grid.Add(point) {
			added++
		}
	}

	sigolo.Debugf("Aggregated %d of %d points in %s", added, len(points), time.Since(aggregationStartTime))

	return grid, nil
}

// Add puts the point into its cell and returns true. Points with non-finite values and, when bounds are checked,
// points outside the bounds are skipped and false is returned.
func (g *Grid) Add(point Point) bool {
	if !isFinite(point.Position.Lat()) || !isFinite(point.Position.Lng()) || !isFinite(point.Value) {
		sigolo.Tracef("Skip point with non-finite data %+v", point)
		return false
	}
	if g.checkBounds && !g.Bounds.Contains(point.Position) {
		sigolo.Tracef("Skip point %+v outside of bounds", point)
		return false
	}

	// A point on the right or top border results in an index equal to the bucket count and therefore needs clamping,
	// just like points outside the bounds when they are not checked.
	cell := g.cellIndexFor(point.Position)

	bucket := &g.buckets[cell.X()][cell.Y()]
	bucket.Sum += point.Value
	bucket.Count++

	if g.populatedExtent == nil {
		g.populatedExtent = &common.CellExtent{cell, cell}
	} else {
		newExtent := g.populatedExtent.Expand(cell)
		g.populatedExtent = &newExtent
	}

	return true
}

func (g *Grid) cellIndexFor(position common.LatLng) common.CellIndex {
	return common.GetClampedCellIndexForCoordinate(position.Lng(), position.Lat(), g.Bounds.Left, g.Bounds.Bottom, g.cellWidth, g.cellHeight, g.extent)
}

// Bucket returns the bucket of the given cell. The second return value is false for cells outside the grid.
func (g *Grid) Bucket(x int, y int) (Bucket, bool) {
	if !g.extent.Contains(common.CellIndex{x, y}) {
		return Bucket{}, false
	}
	return g.buckets[x][y], true
}

// CellBound returns the geographic area of the given cell.
func (g *Grid) CellBound(cell common.CellIndex) orb.Bound {
	return cell.ToBound(g.Bounds.Left, g.Bounds.Bottom, g.cellWidth, g.cellHeight)
}

// Total returns the sum and count over all buckets.
func (g *Grid) Total() Bucket {
	total := Bucket{}
	for _, column := range g.buckets {
		for _, bucket := range column {
			total.Sum += bucket.Sum
			total.Count += bucket.Count
		}
	}
	return total
}

// Cell is a non-empty grid cell prepared for rendering.
type Cell struct {
	Index   common.CellIndex
	Bound   orb.Bound
	Bucket  Bucket
	Average float64
	Color   string
}

// Cells returns all non-empty cells with their color on the given ramp, column by column.
func (g *Grid) Cells(ramp RampKind) []Cell {
	var cells []Cell
	if g.populatedExtent == nil {
		return cells
	}

	for _, index := range g.populatedExtent.GetCellIndices() {
		bucket := g.buckets[index.X()][index.Y()]
		if bucket.Count == 0 {
			continue
		}

		cells = append(cells, Cell{
			Index:   index,
			Bound:   g.CellBound(index),
			Bucket:  bucket,
			Average: bucket.Average(),
			Color:   ColorFor(bucket, ramp),
		})
	}

	return cells
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
