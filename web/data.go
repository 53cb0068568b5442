package web

import (
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"

	"trafficmap/bucket"
	"trafficmap/config"
	"trafficmap/filter"
	ownIo "trafficmap/io"
	"trafficmap/marker"
)

// MapData is everything the API serves. It's loaded once and only read afterwards.
type MapData struct {
	TrafficMarkers []marker.TrafficMarker
	PlanMarkers    []marker.PlanMarker
	FilterIndex    *filter.Index
	TrafficGrid    *bucket.Grid
	PriceGrid      *bucket.Grid
}

// DataFiles are the input files of the API. Only the traffic file is required.
type DataFiles struct {
	Traffic string
	Plans   string
	Prices  string
}

// LoadMapData reads all given files and builds the filter index and grids.
func LoadMapData(files DataFiles, cfg *config.Config) (*MapData, error) {
	sigolo.Infof("Load map data")
	loadStartTime := time.Now()

	bounds, err := cfg.GridBounds()
	if err != nil {
		return nil, err
	}

	data := &MapData{}

	trafficFeatures, err := ownIo.ReadFeatures(files.Traffic)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to load traffic counts from %s", files.Traffic)
	}
	data.TrafficMarkers = marker.BuildTrafficMarkers(trafficFeatures)

	data.FilterIndex, err = filter.Build(data.TrafficMarkers, cfg.FilterFacets())
	if err != nil {
		return nil, errors.Wrap(err, "Unable to build filter index")
	}

	data.TrafficGrid, err = bucket.Build(bucket.PointsFromMarkers(data.TrafficMarkers), bounds, bucket.TrafficOptions(cfg.Grid.BucketsPerAxis))
	if err != nil {
		return nil, errors.Wrap(err, "Unable to build traffic grid")
	}

	if files.Plans != "" {
		planFeatures, err := ownIo.ReadFeatures(files.Plans)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to load capital projects from %s", files.Plans)
		}
		data.PlanMarkers = marker.BuildPlanMarkers(planFeatures)
	}

	if files.Prices != "" {
		priceFeatures, err := ownIo.ReadFeatures(files.Prices)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to load price indices from %s", files.Prices)
		}
		data.PriceGrid, err = bucket.Build(bucket.PointsFromPriceFeatures(priceFeatures), bounds, bucket.PriceOptions(cfg.Grid.BucketsPerAxis))
		if err != nil {
			return nil, errors.Wrap(err, "Unable to build price grid")
		}
	}

	sigolo.Infof("Loaded %d traffic markers and %d plan markers in %s", len(data.TrafficMarkers), len(data.PlanMarkers), time.Since(loadStartTime))

	return data, nil
}
