package feature

import (
	"github.com/paulmach/orb"

	"trafficmap/common"
)

const (
	bikeCountExceptType = "Bike Count"
	bikeOnlyComment     = "ONLY BIKES"
)

// Coordinate returns the latitude-first position of a point feature. Any missing part of the feature or a geometry
// other than a point results in nil.
func Coordinate(f *Feature) *common.LatLng {
	if f == nil || f.Geometry == nil {
		return nil
	}

	point, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil
	}

	latLng := common.LatLngFromPoint(point)
	return &latLng
}

// ProjectCoordinate returns the latitude-first position of the first point of the geometry's coordinate list. This
// is the first vertex of lines and multi-points and the first vertex of the first ring of polygons. Points have no
// such vertex and result in nil.
func ProjectCoordinate(f *Feature) *common.LatLng {
	if f == nil || f.Geometry == nil {
		return nil
	}

	point, ok := firstPoint(f.Geometry)
	if !ok {
		return nil
	}

	latLng := common.LatLngFromPoint(point)
	return &latLng
}

func firstPoint(geometry orb.Geometry) (orb.Point, bool) {
	switch g := geometry.(type) {
	case orb.MultiPoint:
		if len(g) > 0 {
			return g[0], true
		}
	case orb.LineString:
		if len(g) > 0 {
			return g[0], true
		}
	case orb.Ring:
		if len(g) > 0 {
			return g[0], true
		}
	case orb.MultiLineString:
		if len(g) > 0 {
			return firstPoint(g[0])
		}
	case orb.Polygon:
		if len(g) > 0 {
			return firstPoint(g[0])
		}
	case orb.MultiPolygon:
		if len(g) > 0 {
			return firstPoint(g[0])
		}
	}
	return orb.Point{}, false
}

func properties(f *Feature) *Properties {
	if f == nil {
		return nil
	}
	return f.Properties
}

func Volume(f *Feature) *float64 {
	if p := properties(f); p != nil {
		return p.Volume
	}
	return nil
}

func StartDate(f *Feature) *string {
	if p := properties(f); p != nil {
		return p.StartDate
	}
	return nil
}

func ProjectName(f *Feature) *string {
	if p := properties(f); p != nil {
		return p.ProjectName
	}
	return nil
}

func ProjectNumber(f *Feature) *string {
	if p := properties(f); p != nil {
		return p.ProjectNumber
	}
	return nil
}

func ProjectDescription(f *Feature) *string {
	if p := properties(f); p != nil {
		return p.ProjectDescription
	}
	return nil
}

func PriceIndex(f *Feature) *float64 {
	if p := properties(f); p != nil {
		return p.PriceIndex
	}
	return nil
}

// IsBike determines whether the feature is a bicycle count. Both sentinel values are compared case-sensitively as
// they appear in the count data, although their casing differs. The result is nil when the feature has no
// properties.
func IsBike(f *Feature) *bool {
	p := properties(f)
	if p == nil {
		return nil
	}

	isBike := (p.ExceptType != nil && *p.ExceptType == bikeCountExceptType) ||
		(p.Comment != nil && *p.Comment == bikeOnlyComment)
	return &isBike
}
