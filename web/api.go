package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"

	"trafficmap/bucket"
	ownIo "trafficmap/io"
	"trafficmap/marker"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{
		Error: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

func StartServer(port string, data *MapData) {
	r := initRouter(data)
	sigolo.Infof("Start server without TLS support on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func StartServerTls(port string, certFile string, keyFile string, data *MapData) {
	r := initRouter(data)
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter(data *MapData) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/markers/traffic", func(writer http.ResponseWriter, request *http.Request) {
		writeJson(writer, data.TrafficMarkers)
	}).Methods(http.MethodGet)

	r.HandleFunc("/markers/plans", func(writer http.ResponseWriter, request *http.Request) {
		planMarkers := data.PlanMarkers
		if planMarkers == nil {
			planMarkers = []marker.PlanMarker{}
		}
		writeJson(writer, planMarkers)
	}).Methods(http.MethodGet)

	r.HandleFunc("/facets", func(writer http.ResponseWriter, request *http.Request) {
		if data.FilterIndex == nil {
			writeError(writer, http.StatusNotFound, NewErrorResponse("No traffic data loaded", nil))
			return
		}
		writeJson(writer, data.FilterIndex.Facets())
	}).Methods(http.MethodGet)

	r.HandleFunc("/filter", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		area := query.Get("area")
		vehicle := query.Get("vehicle")
		year := query.Get("year")
		densityName := query.Get("density")

		if data.FilterIndex == nil {
			writeError(writer, http.StatusNotFound, NewErrorResponse("No traffic data loaded", nil))
			return
		}

		markers, ok := data.FilterIndex.Lookup(area, vehicle, year, densityName)
		if !ok {
			sigolo.Debugf("Invalid filter area=%s, vehicle=%s, year=%s, density=%s", area, vehicle, year, densityName)
			writeError(writer, http.StatusBadRequest, NewErrorResponse(fmt.Sprintf("Invalid filter '%s:%s:%s:%s'", area, vehicle, year, densityName), nil))
			return
		}

		sigolo.Debugf("Found %d markers for filter area=%s, vehicle=%s, year=%s, density=%s", len(markers), area, vehicle, year, densityName)

		if center, ok := data.FilterIndex.Center(area); ok {
			writer.Header().Set("X-Map-Center", fmt.Sprintf("%f,%f", center.Center.Lat(), center.Center.Lng()))
			writer.Header().Set("X-Map-Zoom", fmt.Sprintf("%d", center.Zoom))
		}
		writer.Header().Set("Content-Type", "application/geo+json")

		err := ownIo.WriteTrafficMarkersAsGeoJson(markers, writer)
		if err != nil {
			sigolo.Errorf("Error writing filter result: %+v", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/grid", func(writer http.ResponseWriter, request *http.Request) {
		rampName := request.URL.Query().Get("ramp")
		if rampName == "" {
			rampName = bucket.RampTraffic.String()
		}

		ramp, err := bucket.ParseRamp(rampName)
		if err != nil {
			writeError(writer, http.StatusBadRequest, NewErrorResponse("Invalid ramp", err))
			return
		}

		grid := data.TrafficGrid
		if ramp == bucket.RampPrice {
			grid = data.PriceGrid
		}
		if grid == nil {
			writeError(writer, http.StatusNotFound, NewErrorResponse(fmt.Sprintf("No data loaded for ramp '%s'", ramp), nil))
			return
		}

		writer.Header().Set("Content-Type", "application/geo+json")
		err = ownIo.WriteCellsAsGeoJson(grid.Cells(ramp), writer)
		if err != nil {
			sigolo.Errorf("Error writing grid cells: %+v", err)
		}
	}).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(writer, request)
	})
}

func writeJson(writer http.ResponseWriter, value any) {
	writer.Header().Set("Content-Type", "application/json")

	err := ownIo.WriteJson(value, writer)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, status int, response ErrorResponse) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	errorResponseBytes, err := json.Marshal(response)
	if err != nil {
		sigolo.Errorf("Error creating and marshalling error response object: %+v", err)
		return
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
