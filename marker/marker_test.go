package marker

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"trafficmap/common"
	"trafficmap/density"
	"trafficmap/feature"
)

func TestBuildTrafficMarkers_carAndBike(t *testing.T) {
	// Arrange
	input := `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.70, 45.44]}, "properties": {"ADTVolume": 454, "StartDate": "2016/03/01", "ExceptType": "Normal Weekday", "Comment": ""}},
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.65, 45.52]}, "properties": {"ADTVolume": 68, "StartDate": "2018/06/12", "ExceptType": "Bike Count"}}
]}`
	features, err := feature.DecodeCollection(strings.NewReader(input))
	common.AssertNil(t, err)

	// Act
	markers := BuildTrafficMarkers(features)

	// Assert
	common.AssertEqual(t, 2, len(markers))

	common.AssertFalse(t, *markers[0].IsBikeMarker)
	common.AssertTrue(t, *markers[1].IsBikeMarker)

	common.AssertEqual(t, common.LatLng{45.44, -122.70}, *markers[0].Coordinates)
	common.AssertEqual(t, common.LatLng{45.52, -122.65}, *markers[1].Coordinates)

	common.AssertEqual(t, 454.0, *markers[0].TrafficDensity)
	common.AssertEqual(t, 68.0, *markers[1].TrafficDensity)
	common.AssertEqual(t, "2016/03/01", *markers[0].StartDate)
	common.AssertEqual(t, density.Low, *markers[0].Tier())
}

func TestBuildTrafficMarkers_keepsMalformedFeatures(t *testing.T) {
	features := []*feature.Feature{
		nil,
		{Geometry: orb.Point{1, 2}},
	}

	markers := BuildTrafficMarkers(features)

	common.AssertEqual(t, 2, len(markers))
	common.AssertEqual(t, TrafficMarker{}, markers[0])
	common.AssertEqual(t, common.LatLng{2, 1}, *markers[1].Coordinates)
	common.AssertNil(t, markers[1].TrafficDensity)
	common.AssertNil(t, markers[1].IsBikeMarker)
	common.AssertNil(t, markers[1].Tier())
}

func TestBuildTrafficMarkers_nilInput(t *testing.T) {
	common.AssertNil(t, BuildTrafficMarkers(nil))
	common.AssertEqual(t, 0, len(BuildTrafficMarkers([]*feature.Feature{})))
}

func TestBuildPlanMarkers(t *testing.T) {
	// Arrange
	name := "Foster Rd Streetscape"
	number := "T00514"
	description := "Safety improvements"
	features := []*feature.Feature{
		{
			Geometry: orb.LineString{{-122.58, 45.49}, {-122.55, 45.48}},
			Properties: &feature.Properties{
				ProjectName:        &name,
				ProjectNumber:      &number,
				ProjectDescription: &description,
			},
		},
		{Geometry: orb.Point{-122.58, 45.49}},
	}

	// Act
	markers := BuildPlanMarkers(features)

	// Assert
	common.AssertEqual(t, 2, len(markers))
	common.AssertEqual(t, common.LatLng{45.49, -122.58}, *markers[0].Coordinates)
	common.AssertEqual(t, name, *markers[0].ProjectName)
	common.AssertEqual(t, number, *markers[0].ProjectID)
	common.AssertEqual(t, description, *markers[0].ProjectDesc)
	common.AssertEqual(t, PlanMarker{}, markers[1])
	common.AssertNil(t, BuildPlanMarkers(nil))
}
