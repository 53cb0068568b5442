package config

import (
	"os"
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"trafficmap/bucket"
	"trafficmap/common"
	"trafficmap/filter"
)

// DefaultConfigFile is used when no config file is given explicitly. It's fine when it doesn't exist.
const DefaultConfigFile = "trafficmap.yaml"

// EnvPrefix is the prefix of all environment variables overriding config values. A double underscore separates the
// levels, e.g. TRAFFICMAP_GRID__BUCKETS_PER_AXIS sets grid.buckets_per_axis.
const EnvPrefix = "TRAFFICMAP_"

type Config struct {
	Facets FacetsConfig `koanf:"facets"`
	Grid   GridConfig   `koanf:"grid"`
	Server ServerConfig `koanf:"server"`
}

type AreaConfig struct {
	Name string  `koanf:"name"`
	Lat  float64 `koanf:"lat"`
	Lng  float64 `koanf:"lng"`
	Zoom int     `koanf:"zoom"`
}

type FacetsConfig struct {
	Areas     []AreaConfig `koanf:"areas"`
	Vehicles  []string     `koanf:"vehicles"`
	Years     []string     `koanf:"years"`
	Densities []string     `koanf:"densities"`
}

type GridConfig struct {
	Top            float64 `koanf:"top"`
	Right          float64 `koanf:"right"`
	Bottom         float64 `koanf:"bottom"`
	Left           float64 `koanf:"left"`
	BucketsPerAxis int     `koanf:"buckets_per_axis"`
}

type ServerConfig struct {
	Port     string `koanf:"port"`
	CertFile string `koanf:"cert_file"`
	KeyFile  string `koanf:"key_file"`
}

func defaultConfig() *Config {
	return &Config{
		Facets: FacetsConfig{
			Areas: []AreaConfig{
				{Name: "All", Lat: 45.5231, Lng: -122.6765, Zoom: 11},
				{Name: "Downtown", Lat: 45.5152, Lng: -122.6784, Zoom: 14},
				{Name: "North", Lat: 45.5875, Lng: -122.7250, Zoom: 13},
				{Name: "Northeast", Lat: 45.5470, Lng: -122.6150, Zoom: 13},
				{Name: "Northwest", Lat: 45.5380, Lng: -122.7300, Zoom: 13},
				{Name: "Southeast", Lat: 45.4900, Lng: -122.6000, Zoom: 13},
				{Name: "Southwest", Lat: 45.4850, Lng: -122.7050, Zoom: 13},
			},
			Vehicles:  []string{"All", "Car", "Bike"},
			Years:     []string{filter.AllYears, "2010", "2011", "2012", "2013", "2014", "2015", "2016", "2017", "2018", "2019"},
			Densities: []string{"High", "Medium", "Low", "All"},
		},
		Grid: GridConfig{
			Top:            45.66,
			Right:          -122.47,
			Bottom:         45.43,
			Left:           -122.84,
			BucketsPerAxis: bucket.DefaultBucketsPerAxis,
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Defaults returns the built-in configuration without reading any file or environment variable.
func Defaults() *Config {
	return defaultConfig()
}

// Load reads the configuration in three layers: defaults, the YAML config file and environment variables. An empty
// path falls back to DefaultConfigFile if it exists.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to load default config")
	}

	if configFile == "" {
		if _, statErr := os.Stat(DefaultConfigFile); statErr == nil {
			configFile = DefaultConfigFile
		}
	}
	if configFile != "" {
		sigolo.Debugf("Load config file %s", configFile)
		err = k.Load(file.Provider(configFile), yaml.Parser())
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to load config file %s", configFile)
		}
	}

	err = k.Load(env.Provider(EnvPrefix, ".", envToKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to load config from environment")
	}

	cfg := &Config{}
	err = k.Unmarshal("", cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to unmarshal config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "Invalid config")
	}

	return cfg, nil
}

func envToKey(variable string) string {
	key := strings.ToLower(strings.TrimPrefix(variable, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func (c *Config) Validate() error {
	err := c.FilterFacets().Validate()
	if err != nil {
		return err
	}

	_, err = c.GridBounds()
	if err != nil {
		return err
	}

	if c.Grid.BucketsPerAxis <= 0 {
		return errors.Wrapf(bucket.ErrInvalidBucketCount, "%d buckets per axis", c.Grid.BucketsPerAxis)
	}

	return nil
}

func (c *Config) FilterFacets() filter.Facets {
	areas := make([]filter.Area, len(c.Facets.Areas))
	for i, area := range c.Facets.Areas {
		areas[i] = filter.Area{
			Name:   area.Name,
			Center: common.LatLng{area.Lat, area.Lng},
			Zoom:   area.Zoom,
		}
	}

	return filter.Facets{
		Areas:     areas,
		Vehicles:  c.Facets.Vehicles,
		Years:     c.Facets.Years,
		Densities: c.Facets.Densities,
	}
}

func (c *Config) GridBounds() (bucket.Bounds, error) {
	return bucket.NewBounds(c.Grid.Top, c.Grid.Right, c.Grid.Bottom, c.Grid.Left)
}
