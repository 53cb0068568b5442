package io

import (
	"io"
	"os"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"

	"trafficmap/feature"
	"trafficmap/osm"
)

// ReadFeatures reads a GeoJSON feature collection or, for .osm and .pbf files, the relevant OSM objects.
func ReadFeatures(filename string) ([]*feature.Feature, error) {
	if osm.IsOsmFile(filename) {
		return osm.ReadFeatures(filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open feature file %s", filename)
	}
	defer func() {
		err := file.Close()
		if err != nil {
			sigolo.Errorf("Unable to close feature file %s: %+v", filename, err)
		}
	}()

	return ReadFeatureCollection(file)
}

func ReadFeatureCollection(reader io.Reader) ([]*feature.Feature, error) {
	features, err := feature.DecodeCollection(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to read GeoJSON features")
	}
	return features, nil
}
