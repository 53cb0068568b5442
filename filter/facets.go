package filter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"trafficmap/common"
	"trafficmap/density"
)

// AllYears is the year facet value that disables the year check.
const AllYears = "All"

const keySeparator = ":"

var ErrInvalidFacet = errors.New("invalid facet value")

// Vehicle selects markers by their bike classification.
type Vehicle int

const (
	VehicleAll Vehicle = iota
	VehicleCar
	VehicleBike
)

func (v Vehicle) String() string {
	switch v {
	case VehicleAll:
		return "All"
	case VehicleCar:
		return "Car"
	case VehicleBike:
		return "Bike"
	}
	return fmt.Sprintf("[!UNKNOWN Vehicle %d]", int(v))
}

// ParseVehicle returns the vehicle filter with exactly the given label.
func ParseVehicle(label string) (Vehicle, bool) {
	for _, v := range []Vehicle{VehicleAll, VehicleCar, VehicleBike} {
		if v.String() == label {
			return v, true
		}
	}
	return VehicleAll, false
}

// Matches checks the bike classification of a marker. A marker without classification only matches VehicleAll.
func (v Vehicle) Matches(isBike *bool) bool {
	switch v {
	case VehicleAll:
		return true
	case VehicleCar:
		return isBike != nil && !*isBike
	case VehicleBike:
		return isBike != nil && *isBike
	}
	return false
}

// Area is a selectable part of the city. It doesn't restrict the markers of an index entry, it only tells the map
// where to center.
type Area struct {
	Name   string        `json:"name"`
	Center common.LatLng `json:"center"`
	Zoom   int           `json:"zoom"`
}

// Facets contains the closed domains of all four filter dimensions. Only values listed here can be used in keys.
type Facets struct {
	Areas     []Area   `json:"areas"`
	Vehicles  []string `json:"vehicles"`
	Years     []string `json:"years"`
	Densities []string `json:"densities"`
}

// Size returns the number of all facet combinations.
func (f Facets) Size() int {
	return len(f.Areas) * len(f.Vehicles) * len(f.Years) * len(f.Densities)
}

func (f Facets) AreaNames() []string {
	names := make([]string, len(f.Areas))
	for i, area := range f.Areas {
		names[i] = area.Name
	}
	return names
}

func (f Facets) Area(name string) (Area, bool) {
	for _, area := range f.Areas {
		if area.Name == name {
			return area, true
		}
	}
	return Area{}, false
}

// Validate makes sure every facet value can be part of a key: vehicles and densities have to be known labels, all
// values have to be unique, non-empty and must not contain the key separator.
func (f Facets) Validate() error {
	err := validateValues("area", f.AreaNames())
	if err != nil {
		return err
	}
	err = validateValues("vehicle", f.Vehicles)
	if err != nil {
		return err
	}
	err = validateValues("year", f.Years)
	if err != nil {
		return err
	}
	err = validateValues("density", f.Densities)
	if err != nil {
		return err
	}

	for _, vehicle := range f.Vehicles {
		if _, ok := ParseVehicle(vehicle); !ok {
			return errors.Wrapf(ErrInvalidFacet, "unknown vehicle '%s'", vehicle)
		}
	}
	for _, densityName := range f.Densities {
		if _, ok := density.ByName(densityName); !ok {
			return errors.Wrapf(ErrInvalidFacet, "unknown density '%s'", densityName)
		}
	}

	return nil
}

func validateValues(facet string, values []string) error {
	seen := map[string]bool{}
	for _, value := range values {
		if value == "" {
			return errors.Wrapf(ErrInvalidFacet, "empty %s", facet)
		}
		if strings.Contains(value, keySeparator) {
			return errors.Wrapf(ErrInvalidFacet, "%s '%s' contains '%s'", facet, value, keySeparator)
		}
		if seen[value] {
			return errors.Wrapf(ErrInvalidFacet, "duplicate %s '%s'", facet, value)
		}
		seen[value] = true
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
