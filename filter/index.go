package filter

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/hauke96/sigolo/v2"

	"trafficmap/density"
	"trafficmap/marker"
)

// Key identifies one facet combination. Its string form is "<area>:<vehicle>:<year>:<density>".
type Key string

// NewKey creates the key for the given facet values. It fails when any value is not part of its facet domain.
func NewKey(area string, vehicle string, year string, densityName string, facets Facets) (Key, bool) {
	if _, ok := facets.Area(area); !ok {
		return "", false
	}
	if _, ok := ParseVehicle(vehicle); !ok || !contains(facets.Vehicles, vehicle) {
		return "", false
	}
	if !contains(facets.Years, year) {
		return "", false
	}
	if _, ok := density.ByName(densityName); !ok || !contains(facets.Densities, densityName) {
		return "", false
	}

	return Key(strings.Join([]string{area, vehicle, year, densityName}, keySeparator)), true
}

// Split returns the four facet values of this key.
func (k Key) Split() (area string, vehicle string, year string, densityName string) {
	parts := strings.SplitN(string(k), keySeparator, 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2], parts[3]
}

// Index maps every facet combination to the markers matching it. Combinations without matches map to an empty list,
// so every valid key can be looked up.
type Index struct {
	facets  Facets
	entries map[Key][]marker.TrafficMarker
}

// Build creates the index for all combinations of the given facets. A nil marker list results in a nil index, facets
// with invalid values result in an error.
func Build(markers []marker.TrafficMarker, facets Facets) (*Index, error) {
	if markers == nil {
		return nil, nil
	}

	err := facets.Validate()
	if err != nil {
		return nil, err
	}

	sigolo.Debugf("Build filter index for %d markers and %d facet combinations", len(markers), facets.Size())
	buildStartTime := time.Now()

	index := &Index{
		facets:  facets,
		entries: make(map[Key][]marker.TrafficMarker, facets.Size()),
	}

	for _, vehicleLabel := range facets.Vehicles {
		vehicle, _ := ParseVehicle(vehicleLabel)
		for _, year := range facets.Years {
			for _, densityName := range facets.Densities {
				tier, _ := density.ByName(densityName)
				matching := filterMarkers(markers, vehicle, year, tier)

				for _, area := range facets.Areas {
					key, ok := NewKey(area.Name, vehicleLabel, year, densityName, facets)
					if !ok {
						continue
					}
					index.entries[key] = slices.Clone(matching)
				}
			}
		}
	}

	sigolo.Debugf("Built filter index with %d entries in %s", len(index.entries), time.Since(buildStartTime))

	return index, nil
}

// filterMarkers returns all markers within the tier's range, of the given vehicle type and with a start date
// containing the year. The area is not considered since markers aren't assigned to any area.
func filterMarkers(markers []marker.TrafficMarker, vehicle Vehicle, year string, tier density.Tier) []marker.TrafficMarker {
	matching := []marker.TrafficMarker{}
	for _, m := range markers {
		inRange := density.InRange(m.TrafficDensity, &tier)
		if inRange == nil || !*inRange {
			continue
		}
		if year != AllYears && (m.StartDate == nil || !strings.Contains(*m.StartDate, year)) {
			continue
		}
		if !vehicle.Matches(m.IsBikeMarker) {
			continue
		}
		matching = append(matching, m)
	}
	return matching
}

func (i *Index) Facets() Facets {
	return i.facets
}

// Get returns the markers of the given key. The second return value is false for keys not produced by NewKey.
func (i *Index) Get(key Key) ([]marker.TrafficMarker, bool) {
	markers, ok := i.entries[key]
	return markers, ok
}

// Lookup creates the key for the given facet values and returns its markers.
func (i *Index) Lookup(area string, vehicle string, year string, densityName string) ([]marker.TrafficMarker, bool) {
	key, ok := NewKey(area, vehicle, year, densityName, i.facets)
	if !ok {
		return nil, false
	}
	return i.Get(key)
}

// Center returns the configured center of the area to move the map to after an area has been selected.
func (i *Index) Center(area string) (Area, bool) {
	return i.facets.Area(area)
}

func (i *Index) Len() int {
	return len(i.entries)
}

// Keys returns all keys in lexical order.
func (i *Index) Keys() []Key {
	keys := make([]Key, 0, len(i.entries))
	for key := range i.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		return keys[a] < keys[b]
	})
	return keys
}
