package config

import (
	"os"
	"path"
	"testing"

	"github.com/pkg/errors"

	"trafficmap/bucket"
	"trafficmap/common"
	"trafficmap/filter"
)

func writeConfigFile(t *testing.T, content string) string {
	filename := path.Join(t.TempDir(), "trafficmap.yaml")
	err := os.WriteFile(filename, []byte(content), 0644)
	common.AssertNil(t, err)
	return filename
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load("")

	common.AssertNil(t, err)
	common.AssertEqual(t, 7, len(cfg.Facets.Areas))
	common.AssertEqual(t, "All", cfg.Facets.Areas[0].Name)
	common.AssertEqual(t, []string{"All", "Car", "Bike"}, cfg.Facets.Vehicles)
	common.AssertEqual(t, filter.AllYears, cfg.Facets.Years[0])
	common.AssertEqual(t, bucket.DefaultBucketsPerAxis, cfg.Grid.BucketsPerAxis)
	common.AssertEqual(t, "8080", cfg.Server.Port)
}

func TestLoad_fileAndEnvironment(t *testing.T) {
	// Arrange
	filename := writeConfigFile(t, `
facets:
  areas:
    - name: All
      lat: 45.5
      lng: -122.6
      zoom: 11
    - name: Downtown
      lat: 45.51
      lng: -122.67
      zoom: 15
  years: ["All", "2018", "2019"]
grid:
  buckets_per_axis: 10
`)
	t.Setenv("TRAFFICMAP_SERVER__PORT", "9090")
	t.Setenv("TRAFFICMAP_GRID__TOP", "46")

	// Act
	cfg, err := Load(filename)

	// Assert
	common.AssertNil(t, err)
	common.AssertEqual(t, 2, len(cfg.Facets.Areas))
	common.AssertEqual(t, AreaConfig{Name: "Downtown", Lat: 45.51, Lng: -122.67, Zoom: 15}, cfg.Facets.Areas[1])
	common.AssertEqual(t, []string{"All", "2018", "2019"}, cfg.Facets.Years)
	common.AssertEqual(t, []string{"High", "Medium", "Low", "All"}, cfg.Facets.Densities)
	common.AssertEqual(t, 10, cfg.Grid.BucketsPerAxis)
	common.AssertEqual(t, 46.0, cfg.Grid.Top)
	common.AssertEqual(t, "9090", cfg.Server.Port)
}

func TestLoad_invalidFacets(t *testing.T) {
	filename := writeConfigFile(t, `
facets:
  densities: ["High", "Extreme"]
`)

	_, err := Load(filename)

	common.AssertTrue(t, errors.Is(err, filter.ErrInvalidFacet))
}

func TestLoad_degenerateGrid(t *testing.T) {
	filename := writeConfigFile(t, `
grid:
  top: 45.0
  bottom: 45.5
`)

	_, err := Load(filename)

	common.AssertTrue(t, errors.Is(err, bucket.ErrDegenerateBounds))
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(path.Join(t.TempDir(), "missing.yaml"))

	common.AssertNotNil(t, err)
}

func TestConfig_filterFacets(t *testing.T) {
	cfg := defaultConfig()

	facets := cfg.FilterFacets()

	common.AssertNil(t, facets.Validate())
	area, ok := facets.Area("Downtown")
	common.AssertTrue(t, ok)
	common.AssertEqual(t, common.LatLng{45.5152, -122.6784}, area.Center)
	common.AssertEqual(t, 14, area.Zoom)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	common.AssertNil(t, cfg.Validate())
	common.AssertEqual(t, 7, len(cfg.FilterFacets().Areas))
	common.AssertEqual(t, bucket.DefaultBucketsPerAxis, cfg.Grid.BucketsPerAxis)
}
