package marker

import (
	"github.com/hauke96/sigolo/v2"

	"trafficmap/common"
	"trafficmap/density"
	"trafficmap/feature"
)

// TrafficMarker is a traffic count location as shown on the map. Every field is nil when the source feature lacked
// the corresponding data.
type TrafficMarker struct {
	Coordinates    *common.LatLng `json:"coordinates"`
	TrafficDensity *float64       `json:"trafficDensity"`
	StartDate      *string        `json:"startDate"`
	IsBikeMarker   *bool          `json:"isBikeMarker"`
}

// Tier returns the density tier of this marker or nil when its volume is unknown.
func (m TrafficMarker) Tier() *density.Tier {
	return density.Classify(m.TrafficDensity)
}

// PlanMarker is a capital project as shown on the map.
type PlanMarker struct {
	Coordinates *common.LatLng `json:"coordinates"`
	ProjectName *string        `json:"projectName"`
	ProjectID   *string        `json:"projectID"`
	ProjectDesc *string        `json:"projectDesc"`
}

func NewTrafficMarker(f *feature.Feature) TrafficMarker {
	return TrafficMarker{
		Coordinates:    feature.Coordinate(f),
		TrafficDensity: feature.Volume(f),
		StartDate:      feature.StartDate(f),
		IsBikeMarker:   feature.IsBike(f),
	}
}

func NewPlanMarker(f *feature.Feature) PlanMarker {
	return PlanMarker{
		Coordinates: feature.ProjectCoordinate(f),
		ProjectName: feature.ProjectName(f),
		ProjectID:   feature.ProjectNumber(f),
		ProjectDesc: feature.ProjectDescription(f),
	}
}

// BuildTrafficMarkers creates one marker per feature in the same order. Malformed features result in markers with
// nil fields, they are not dropped here. A nil feature list results in a nil marker list.
func BuildTrafficMarkers(features []*feature.Feature) []TrafficMarker {
	if features == nil {
		return nil
	}

	markers := make([]TrafficMarker, len(features))
	for i, f := range features {
		markers[i] = NewTrafficMarker(f)
	}

	sigolo.Debugf("Built %d traffic markers", len(markers))
	return markers
}

// BuildPlanMarkers creates one marker per feature in the same order, just like BuildTrafficMarkers.
func BuildPlanMarkers(features []*feature.Feature) []PlanMarker {
	if features == nil {
		return nil
	}

	markers := make([]PlanMarker, len(features))
	for i, f := range features {
		markers[i] = NewPlanMarker(f)
	}

	sigolo.Debugf("Built %d plan markers", len(markers))
	return markers
}
