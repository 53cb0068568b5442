package io

import (
	"encoding/json"
	"io"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"trafficmap/bucket"
	"trafficmap/marker"
)

// WriteTrafficMarkersAsGeoJson writes all markers with coordinates as point features. Absent values are left out of
// the properties.
func WriteTrafficMarkersAsGeoJson(markers []marker.TrafficMarker, writer io.Writer) error {
	sigolo.Debugf("Write %d traffic markers to GeoJSON", len(markers))

	featureCollection := geojson.NewFeatureCollection()
	for _, m := range markers {
		if m.Coordinates == nil {
			continue
		}

		geoJsonFeature := geojson.NewFeature(m.Coordinates.ToPoint())
		if m.TrafficDensity != nil {
			geoJsonFeature.Properties["trafficDensity"] = *m.TrafficDensity
		}
		if tier := m.Tier(); tier != nil {
			geoJsonFeature.Properties["densityTier"] = tier.Name
		}
		if m.StartDate != nil {
			geoJsonFeature.Properties["startDate"] = *m.StartDate
		}
		if m.IsBikeMarker != nil {
			geoJsonFeature.Properties["isBikeMarker"] = *m.IsBikeMarker
		}

		featureCollection.Append(geoJsonFeature)
	}

	return writeFeatureCollection(featureCollection, writer)
}

// WritePlanMarkersAsGeoJson writes all project markers with coordinates as point features.
func WritePlanMarkersAsGeoJson(markers []marker.PlanMarker, writer io.Writer) error {
	sigolo.Debugf("Write %d plan markers to GeoJSON", len(markers))

	featureCollection := geojson.NewFeatureCollection()
	for _, m := range markers {
		if m.Coordinates == nil {
			continue
		}

		geoJsonFeature := geojson.NewFeature(m.Coordinates.ToPoint())
		if m.ProjectName != nil {
			geoJsonFeature.Properties["projectName"] = *m.ProjectName
		}
		if m.ProjectID != nil {
			geoJsonFeature.Properties["projectID"] = *m.ProjectID
		}
		if m.ProjectDesc != nil {
			geoJsonFeature.Properties["projectDesc"] = *m.ProjectDesc
		}

		featureCollection.Append(geoJsonFeature)
	}

	return writeFeatureCollection(featureCollection, writer)
}

// WriteCellsAsGeoJson writes the grid cells as rectangular polygons. The "fill" property holds the cell color.
func WriteCellsAsGeoJson(cells []bucket.Cell, writer io.Writer) error {
	sigolo.Debugf("Write %d grid cells to GeoJSON", len(cells))

	featureCollection := geojson.NewFeatureCollection()
	for _, cell := range cells {
		geoJsonFeature := geojson.NewFeature(cell.Bound.ToPolygon())
		geoJsonFeature.Properties["x"] = cell.Index.X()
		geoJsonFeature.Properties["y"] = cell.Index.Y()
		geoJsonFeature.Properties["sum"] = cell.Bucket.Sum
		geoJsonFeature.Properties["count"] = cell.Bucket.Count
		geoJsonFeature.Properties["average"] = cell.Average
		geoJsonFeature.Properties["fill"] = cell.Color

		featureCollection.Append(geoJsonFeature)
	}

	return writeFeatureCollection(featureCollection, writer)
}

func writeFeatureCollection(featureCollection *geojson.FeatureCollection, writer io.Writer) error {
	writeStartTime := time.Now()

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON")
	}

	sigolo.Tracef("Finished writing %d features in %s", len(featureCollection.Features), time.Since(writeStartTime))

	return nil
}

// WriteJson writes the value as indented JSON, e.g. for marker lists.
func WriteJson(value any, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return errors.Wrap(err, "Unable to write JSON")
	}
	return nil
}
