package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"

	"trafficmap/bucket"
	"trafficmap/config"
	"trafficmap/filter"
	ownIo "trafficmap/io"
	"trafficmap/marker"
	"trafficmap/web"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Config  string      `help:"YAML config file with facets and grid settings. Defaults to ./trafficmap.yaml if present." short:"c" type:"path"`
	Version VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Markers struct {
		Input string `help:"GeoJSON, .osm or .osm.pbf file with traffic counts or capital projects." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Plans bool   `help:"Treat the input as capital projects and output plan markers." default:"false"`
	} `cmd:"" help:"Prints the markers of the given feature file as JSON."`
	Filter struct {
		Input   string `help:"GeoJSON, .osm or .osm.pbf file with traffic counts." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Area    string `help:"Area of the map." default:"All"`
		Vehicle string `help:"Vehicle type: All, Car or Bike." default:"All"`
		Year    string `help:"Year of the count or 'All'." default:"All"`
		Density string `help:"Density: High, Medium, Low or All." default:"All"`
	} `cmd:"" help:"Prints the traffic markers matching the given filter as GeoJSON."`
	Grid struct {
		Input   string `help:"GeoJSON, .osm or .osm.pbf file with traffic counts or price indices." placeholder:"<input-file>" arg:"" type:"existingfile"`
		Ramp    string `help:"Color ramp and kind of input data." enum:"traffic,price" default:"traffic"`
		Buckets int    `help:"Buckets per axis. Overrides the config value when set." default:"0"`
	} `cmd:"" help:"Aggregates the input into grid cells and prints the colored cells as GeoJSON."`
	Serve struct {
		Traffic string `help:"GeoJSON, .osm or .osm.pbf file with traffic counts." placeholder:"<input-file>" required:"" type:"existingfile"`
		Plans   string `help:"Optional file with capital projects." type:"existingfile"`
		Prices  string `help:"Optional file with price indices." type:"existingfile"`
		Port    string `help:"Port of the HTTP server. Overrides the config value when set." short:"p"`
	} `cmd:"" help:"Starts the HTTP API serving markers, filters and grid cells."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("Traffic map"),
		kong.Description("Turns traffic count and capital project data into filterable map markers and grid cells."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	cfg, err := config.Load(cli.Config)
	sigolo.FatalCheck(err)

	switch ctx.Command() {
	case "markers <input>":
		features, err := ownIo.ReadFeatures(cli.Markers.Input)
		sigolo.FatalCheck(err)

		if cli.Markers.Plans {
			err = ownIo.WriteJson(marker.BuildPlanMarkers(features), os.Stdout)
		} else {
			err = ownIo.WriteJson(marker.BuildTrafficMarkers(features), os.Stdout)
		}
		sigolo.FatalCheck(err)
	case "filter <input>":
		features, err := ownIo.ReadFeatures(cli.Filter.Input)
		sigolo.FatalCheck(err)

		index, err := filter.Build(marker.BuildTrafficMarkers(features), cfg.FilterFacets())
		sigolo.FatalCheck(err)
		if index == nil {
			sigolo.Fatalf("No traffic data in %s", cli.Filter.Input)
		}

		markers, ok := index.Lookup(cli.Filter.Area, cli.Filter.Vehicle, cli.Filter.Year, cli.Filter.Density)
		if !ok {
			sigolo.Fatalf("Invalid filter area='%s', vehicle='%s', year='%s', density='%s'", cli.Filter.Area, cli.Filter.Vehicle, cli.Filter.Year, cli.Filter.Density)
		}
		sigolo.Debugf("Found %d markers", len(markers))

		err = ownIo.WriteTrafficMarkersAsGeoJson(markers, os.Stdout)
		sigolo.FatalCheck(err)
	case "grid <input>":
		features, err := ownIo.ReadFeatures(cli.Grid.Input)
		sigolo.FatalCheck(err)

		bounds, err := cfg.GridBounds()
		sigolo.FatalCheck(err)

		bucketsPerAxis := cfg.Grid.BucketsPerAxis
		if cli.Grid.Buckets != 0 {
			bucketsPerAxis = cli.Grid.Buckets
		}

		ramp, err := bucket.ParseRamp(cli.Grid.Ramp)
		sigolo.FatalCheck(err)

		var grid *bucket.Grid
		if ramp == bucket.RampPrice {
			grid, err = bucket.Build(bucket.PointsFromPriceFeatures(features), bounds, bucket.PriceOptions(bucketsPerAxis))
		} else {
			grid, err = bucket.Build(bucket.PointsFromMarkers(marker.BuildTrafficMarkers(features)), bounds, bucket.TrafficOptions(bucketsPerAxis))
		}
		sigolo.FatalCheck(err)

		err = ownIo.WriteCellsAsGeoJson(grid.Cells(ramp), os.Stdout)
		sigolo.FatalCheck(err)
	case "serve":
		data, err := web.LoadMapData(web.DataFiles{
			Traffic: cli.Serve.Traffic,
			Plans:   cli.Serve.Plans,
			Prices:  cli.Serve.Prices,
		}, cfg)
		sigolo.FatalCheck(err)

		port := cfg.Server.Port
		if cli.Serve.Port != "" {
			port = cli.Serve.Port
		}

		if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			web.StartServerTls(port, cfg.Server.CertFile, cfg.Server.KeyFile, data)
		} else {
			web.StartServer(port, data)
		}
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}
