package io

import (
	"bytes"
	"os"
	"path"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trafficmap/bucket"
	"trafficmap/common"
	"trafficmap/marker"
)

func TestWriteTrafficMarkersAsGeoJson(t *testing.T) {
	// Arrange
	volume := 5200.0
	startDate := "2017/09/20"
	isBike := false
	markers := []marker.TrafficMarker{
		{Coordinates: &common.LatLng{45.44, -122.70}, TrafficDensity: &volume, StartDate: &startDate, IsBikeMarker: &isBike},
		{Coordinates: &common.LatLng{45.52, -122.65}},
		{TrafficDensity: &volume},
	}
	buffer := &bytes.Buffer{}

	// Act
	err := WriteTrafficMarkersAsGeoJson(markers, buffer)

	// Assert
	common.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	common.AssertNil(t, err)
	common.AssertEqual(t, 2, len(collection.Features))

	common.AssertEqual(t, orb.Point{-122.70, 45.44}, collection.Features[0].Geometry)
	common.AssertEqual(t, 5200.0, collection.Features[0].Properties["trafficDensity"])
	common.AssertEqual(t, "High", collection.Features[0].Properties["densityTier"])
	common.AssertEqual(t, "2017/09/20", collection.Features[0].Properties["startDate"])
	common.AssertEqual(t, false, collection.Features[0].Properties["isBikeMarker"])

	common.AssertEqual(t, 0, len(collection.Features[1].Properties))
}

func TestWritePlanMarkersAsGeoJson(t *testing.T) {
	name := "Foster Rd Streetscape"
	markers := []marker.PlanMarker{
		{Coordinates: &common.LatLng{45.49, -122.58}, ProjectName: &name},
	}
	buffer := &bytes.Buffer{}

	err := WritePlanMarkersAsGeoJson(markers, buffer)

	common.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	common.AssertNil(t, err)
	common.AssertEqual(t, 1, len(collection.Features))
	common.AssertEqual(t, name, collection.Features[0].Properties["projectName"])
	common.AssertNil(t, collection.Features[0].Properties["projectID"])
}

func TestWriteCellsAsGeoJson(t *testing.T) {
	// Arrange
	bounds, err := bucket.NewBounds(1, 1, 0, 0)
	common.AssertNil(t, err)
	grid, err := bucket.Build([]bucket.Point{{Position: common.LatLng{0.25, 0.75}, Value: 10000}}, bounds, bucket.TrafficOptions(2))
	common.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	// Act
	err = WriteCellsAsGeoJson(grid.Cells(bucket.RampTraffic), buffer)

	// Assert
	common.AssertNil(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(buffer.Bytes())
	common.AssertNil(t, err)
	common.AssertEqual(t, 1, len(collection.Features))

	cellFeature := collection.Features[0]
	common.AssertEqual(t, orb.Bound{Min: orb.Point{0.5, 0}, Max: orb.Point{1, 0.5}}, cellFeature.Geometry.Bound())
	common.AssertEqual(t, "#ff0000", cellFeature.Properties["fill"])
	common.AssertEqual(t, 1.0, cellFeature.Properties["count"])
	common.AssertEqual(t, 10000.0, cellFeature.Properties["average"])
	common.AssertEqual(t, 1.0, cellFeature.Properties["x"])
	common.AssertEqual(t, 0.0, cellFeature.Properties["y"])
}

func TestReadFeatures_geoJsonFile(t *testing.T) {
	// Arrange
	filename := path.Join(t.TempDir(), "counts.geojson")
	err := os.WriteFile(filename, []byte(`{"type": "FeatureCollection", "features": [{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.7, 45.44]}, "properties": {"ADTVolume": 454}}]}`), 0644)
	common.AssertNil(t, err)

	// Act
	features, err := ReadFeatures(filename)

	// Assert
	common.AssertNil(t, err)
	common.AssertEqual(t, 1, len(features))
	common.AssertEqual(t, 454.0, *features[0].Properties.Volume)
}

func TestReadFeatures_missingFile(t *testing.T) {
	_, err := ReadFeatures(path.Join(t.TempDir(), "missing.geojson"))

	common.AssertNotNil(t, err)
}
