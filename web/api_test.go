package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"testing"

	"github.com/paulmach/orb/geojson"

	"trafficmap/common"
	"trafficmap/config"
	"trafficmap/marker"
)

const trafficData = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.70, 45.44]}, "properties": {"ADTVolume": 454, "StartDate": "2016/03/01", "ExceptType": "Normal Weekday"}},
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.65, 45.52]}, "properties": {"ADTVolume": 68, "StartDate": "2018/06/12", "ExceptType": "Bike Count"}},
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.66, 45.53]}, "properties": {"ADTVolume": 12000, "StartDate": "2018/07/02", "ExceptType": "Normal Weekday"}}
]}`

const priceData = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-122.66, 45.53]}, "properties": {"PriceIndex": 120}},
  {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-100, 40]}, "properties": {"PriceIndex": 90}}
]}`

func writeFile(t *testing.T, name string, content string) string {
	filename := path.Join(t.TempDir(), name)
	err := os.WriteFile(filename, []byte(content), 0644)
	common.AssertNil(t, err)
	return filename
}

func newTestRouter(t *testing.T) http.Handler {
	data, err := LoadMapData(DataFiles{
		Traffic: writeFile(t, "traffic.geojson", trafficData),
		Prices:  writeFile(t, "prices.geojson", priceData),
	}, config.Defaults())
	common.AssertNil(t, err)

	return initRouter(data)
}

func get(router http.Handler, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	return recorder
}

func TestApi_trafficMarkers(t *testing.T) {
	response := get(newTestRouter(t), "/markers/traffic")

	common.AssertEqual(t, http.StatusOK, response.Code)
	common.AssertEqual(t, "*", response.Header().Get("Access-Control-Allow-Origin"))

	var markers []marker.TrafficMarker
	err := json.Unmarshal(response.Body.Bytes(), &markers)
	common.AssertNil(t, err)
	common.AssertEqual(t, 3, len(markers))
	common.AssertEqual(t, common.LatLng{45.44, -122.70}, *markers[0].Coordinates)
	common.AssertTrue(t, *markers[1].IsBikeMarker)
}

func TestApi_planMarkersWithoutData(t *testing.T) {
	response := get(newTestRouter(t), "/markers/plans")

	common.AssertEqual(t, http.StatusOK, response.Code)
	common.AssertEqual(t, "[]\n", response.Body.String())
}

func TestApi_filter(t *testing.T) {
	response := get(newTestRouter(t), "/filter?area=Downtown&vehicle=Car&year=2018&density=High")

	common.AssertEqual(t, http.StatusOK, response.Code)
	common.AssertEqual(t, "45.515200,-122.678400", response.Header().Get("X-Map-Center"))
	common.AssertEqual(t, "14", response.Header().Get("X-Map-Zoom"))

	collection, err := geojson.UnmarshalFeatureCollection(response.Body.Bytes())
	common.AssertNil(t, err)
	common.AssertEqual(t, 1, len(collection.Features))
	common.AssertEqual(t, 12000.0, collection.Features[0].Properties["trafficDensity"])
}

func TestApi_filterWithInvalidFacet(t *testing.T) {
	response := get(newTestRouter(t), "/filter?area=Downtown&vehicle=Truck&year=2018&density=High")

	common.AssertEqual(t, http.StatusBadRequest, response.Code)

	errorResponse := ErrorResponse{}
	err := json.Unmarshal(response.Body.Bytes(), &errorResponse)
	common.AssertNil(t, err)
	common.AssertEqual(t, "Invalid filter 'Downtown:Truck:2018:High'", errorResponse.Error)
}

func TestApi_facets(t *testing.T) {
	response := get(newTestRouter(t), "/facets")

	common.AssertEqual(t, http.StatusOK, response.Code)

	var facets struct {
		Vehicles []string `json:"vehicles"`
	}
	err := json.Unmarshal(response.Body.Bytes(), &facets)
	common.AssertNil(t, err)
	common.AssertEqual(t, []string{"All", "Car", "Bike"}, facets.Vehicles)
}

func TestApi_grid(t *testing.T) {
	router := newTestRouter(t)

	trafficResponse := get(router, "/grid")
	priceResponse := get(router, "/grid?ramp=price")
	invalidResponse := get(router, "/grid?ramp=rainbow")

	common.AssertEqual(t, http.StatusOK, trafficResponse.Code)
	trafficCells, err := geojson.UnmarshalFeatureCollection(trafficResponse.Body.Bytes())
	common.AssertNil(t, err)
	common.AssertTrue(t, len(trafficCells.Features) > 0)

	common.AssertEqual(t, http.StatusOK, priceResponse.Code)
	priceCells, err := geojson.UnmarshalFeatureCollection(priceResponse.Body.Bytes())
	common.AssertNil(t, err)
	common.AssertEqual(t, 1, len(priceCells.Features))
	common.AssertEqual(t, 120.0, priceCells.Features[0].Properties["average"])

	common.AssertEqual(t, http.StatusBadRequest, invalidResponse.Code)
}

func TestApi_gridWithoutPriceData(t *testing.T) {
	router := initRouter(&MapData{})

	response := get(router, "/grid?ramp=price")

	common.AssertEqual(t, http.StatusNotFound, response.Code)
}
