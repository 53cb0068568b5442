package common

import (
	"math"

	"github.com/paulmach/orb"
)

type CellIndex [2]int

// GetCellIndexForCoordinate returns the cell containing the given coordinate in a grid whose lower left corner is at
// the given origin. The result is not clamped, use CellExtent.Clamp for that.
func GetCellIndexForCoordinate(x float64, y float64, originX float64, originY float64, cellWidth float64, cellHeight float64) CellIndex {
	return CellIndex{
		int(math.Floor((x - originX) / cellWidth)),
		int(math.Floor((y - originY) / cellHeight)),
	}
}

// GetClampedCellIndexForCoordinate works like GetCellIndexForCoordinate but moves coordinates outside the extent onto
// its nearest border cell. Clamping happens before the conversion to int, so arbitrarily far coordinates can't
// overflow.
func GetClampedCellIndexForCoordinate(x float64, y float64, originX float64, originY float64, cellWidth float64, cellHeight float64, extent CellExtent) CellIndex {
	return CellIndex{
		clampToInt(math.Floor((x-originX)/cellWidth), extent.LowerLeftCell().X(), extent.UpperRightCell().X()),
		clampToInt(math.Floor((y-originY)/cellHeight), extent.LowerLeftCell().Y(), extent.UpperRightCell().Y()),
	}
}

func clampToInt(value float64, lower int, upper int) int {
	return int(math.Min(math.Max(value, float64(lower)), float64(upper)))
}

func (c CellIndex) X() int { return c[0] }

func (c CellIndex) Y() int { return c[1] }

func (c CellIndex) isBelowOrLeftOf(other CellIndex) bool {
	return c.X() < other.X() || c.Y() < other.Y()
}

func (c CellIndex) isAboveOrRightOf(other CellIndex) bool {
	return c.X() > other.X() || c.Y() > other.Y()
}

func (c CellIndex) ToPoint(originX float64, originY float64, cellWidth float64, cellHeight float64) orb.Point {
	return orb.Point{originX + float64(c[0])*cellWidth, originY + float64(c[1])*cellHeight}
}

// ToBound returns the area covered by this cell.
func (c CellIndex) ToBound(originX float64, originY float64, cellWidth float64, cellHeight float64) orb.Bound {
	lowerLeft := c.ToPoint(originX, originY, cellWidth, cellHeight)
	upperRight := CellIndex{c.X() + 1, c.Y() + 1}.ToPoint(originX, originY, cellWidth, cellHeight)
	return orb.Bound{Min: lowerLeft, Max: upperRight}
}

// CellExtent is an inclusive range of cells given by its lower left and upper right cell.
type CellExtent [2]CellIndex

func (c CellExtent) LowerLeftCell() CellIndex { return c[0] }

func (c CellExtent) UpperRightCell() CellIndex { return c[1] }

func (c CellExtent) Expand(cell CellIndex) CellExtent {
	if c.Contains(cell) {
		return c
	}

	minX := c.LowerLeftCell().X()
	minY := c.LowerLeftCell().Y()

	maxX := c.UpperRightCell().X()
	maxY := c.UpperRightCell().Y()

	if cell.X() < minX {
		minX = cell.X()
	}
	if cell.Y() < minY {
		minY = cell.Y()
	}

	if cell.X() > maxX {
		maxX = cell.X()
	}
	if cell.Y() > maxY {
		maxY = cell.Y()
	}

	return CellExtent{
		CellIndex{minX, minY},
		CellIndex{maxX, maxY},
	}
}

func (c CellExtent) Contains(cell CellIndex) bool {
	return !cell.isAboveOrRightOf(c.UpperRightCell()) && !cell.isBelowOrLeftOf(c.LowerLeftCell())
}

// Clamp moves the given cell onto the nearest cell within this extent. Cells within the extent are returned as they
// are.
func (c CellExtent) Clamp(cell CellIndex) CellIndex {
	x := min(max(cell.X(), c.LowerLeftCell().X()), c.UpperRightCell().X())
	y := min(max(cell.Y(), c.LowerLeftCell().Y()), c.UpperRightCell().Y())
	return CellIndex{x, y}
}

// GetCellIndices returns all cells of this extent, column by column.
func (c CellExtent) GetCellIndices() []CellIndex {
	var indices []CellIndex

	for x := c.LowerLeftCell().X(); x <= c.UpperRightCell().X(); x++ {
		for y := c.LowerLeftCell().Y(); y <= c.UpperRightCell().Y(); y++ {
			indices = append(indices, CellIndex{x, y})
		}
	}

	return indices
}
