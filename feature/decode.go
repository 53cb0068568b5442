package feature

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

type rawCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type rawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// DecodeCollection reads a GeoJSON feature collection or a plain JSON array of features. Only an unreadable envelope
// results in an error, every single feature is decoded tolerantly by DecodeFeature.
func DecodeCollection(reader io.Reader) ([]*Feature, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to read feature collection")
	}

	var rawFeatures []json.RawMessage

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &rawFeatures)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse feature array")
		}
	} else {
		collection := &rawCollection{}
		err = json.Unmarshal(trimmed, collection)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse feature collection")
		}
		if collection.Type != "FeatureCollection" {
			return nil, errors.Errorf("Expected GeoJSON type 'FeatureCollection' but got '%s'", collection.Type)
		}
		rawFeatures = collection.Features
	}

	features := make([]*Feature, len(rawFeatures))
	for i, rawFeature := range rawFeatures {
		features[i] = DecodeFeature(rawFeature)
	}

	sigolo.Debugf("Decoded %d features", len(features))

	return features, nil
}

// DecodeFeature decodes a single GeoJSON feature. It never fails: JSON null results in nil and every unusable part of
// the feature is left empty.
func DecodeFeature(data []byte) *Feature {
	if isNull(data) {
		return nil
	}

	raw := &rawFeature{}
	err := json.Unmarshal(data, raw)
	if err != nil {
		sigolo.Tracef("Ignore malformed feature: %+v", err)
		return &Feature{}
	}

	f := &Feature{}

	if hasCoordinates(raw.Geometry) {
		geometry, err := geojson.UnmarshalGeometry(raw.Geometry)
		if err != nil {
			sigolo.Tracef("Ignore malformed geometry of feature: %+v", err)
		} else {
			f.Geometry = geometry.Geometry()
		}
	}

	if !isNull(raw.Properties) {
		var values map[string]any
		err = json.Unmarshal(raw.Properties, &values)
		if err != nil {
			sigolo.Tracef("Ignore malformed properties of feature: %+v", err)
		} else {
			f.Properties = NewProperties(values)
		}
	}

	return f
}

// hasCoordinates checks what the GeoJSON decoder would silently accept: a null or too short coordinate list would
// otherwise end up as a point at 0,0.
func hasCoordinates(data []byte) bool {
	if isNull(data) {
		return false
	}

	geometry := &rawGeometry{}
	err := json.Unmarshal(data, geometry)
	if err != nil || geometry.Type == "GeometryCollection" {
		return err == nil
	}
	if isNull(geometry.Coordinates) {
		return false
	}

	if geometry.Type == "Point" {
		var coordinates []float64
		err = json.Unmarshal(geometry.Coordinates, &coordinates)
		return err == nil && len(coordinates) >= 2
	}

	var coordinates []json.RawMessage
	err = json.Unmarshal(geometry.Coordinates, &coordinates)
	return err == nil && len(coordinates) > 0
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
