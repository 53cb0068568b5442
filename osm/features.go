package osm

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"

	"trafficmap/feature"
)

// FeatureCollector turns OSM objects tagged like the count and project data into features. Nodes become point
// features, ways become line features as long as their nodes carry coordinates. Untagged or unrelated objects are
// ignored.
type FeatureCollector struct {
	Features []*feature.Feature
}

func NewFeatureCollector() *FeatureCollector {
	return &FeatureCollector{}
}

func (c *FeatureCollector) Name() string {
	return "FeatureCollector"
}

func (c *FeatureCollector) Init() error {
	c.Features = []*feature.Feature{}
	return nil
}

func (c *FeatureCollector) HandleNode(node *osm.Node) error {
	if !isRelevant(node.Tags) {
		return nil
	}

	c.Features = append(c.Features, &feature.Feature{
		Geometry:   node.Point(),
		Properties: feature.NewPropertiesFromTags(node.Tags.Map()),
	})
	return nil
}

func (c *FeatureCollector) HandleWay(way *osm.Way) error {
	if !isRelevant(way.Tags) {
		return nil
	}

	for _, wayNode := range way.Nodes {
		if wayNode.Lat == 0 && wayNode.Lon == 0 {
			sigolo.Tracef("Skip way %d, its nodes have no coordinates", way.ID)
			return nil
		}
	}

	c.Features = append(c.Features, &feature.Feature{
		Geometry:   way.LineString(),
		Properties: feature.NewPropertiesFromTags(way.Tags.Map()),
	})
	return nil
}

func (c *FeatureCollector) Done() error {
	sigolo.Debugf("Collected %d features from OSM data", len(c.Features))
	return nil
}

func isRelevant(tags osm.Tags) bool {
	return tags.Find(feature.PropVolume) != "" ||
		tags.Find(feature.PropProjectName) != "" ||
		tags.Find(feature.PropPriceIndex) != ""
}

// ReadFeatures reads all relevant features of the given .osm or .pbf file.
func ReadFeatures(filename string) ([]*feature.Feature, error) {
	collector := NewFeatureCollector()
	err := NewOsmReader().Read(filename, collector)
	if err != nil {
		return nil, err
	}
	return collector.Features, nil
}
