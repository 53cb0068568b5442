package feature

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Names of the properties read from the source features. They have to match exactly.
const (
	PropVolume             = "ADTVolume"
	PropStartDate          = "StartDate"
	PropExceptType         = "ExceptType"
	PropComment            = "Comment"
	PropProjectName        = "ProjectName"
	PropProjectNumber      = "ProjectNumber"
	PropProjectDescription = "ProjectDescription"
	PropPriceIndex         = "PriceIndex"
)

// Feature is one record of a traffic count or capital project feature collection. Geometry is nil when the source
// had no or a malformed geometry, Properties is nil when the source had no properties object.
type Feature struct {
	Geometry   orb.Geometry
	Properties *Properties
}

// Properties contains all known fields of a feature. A nil field means the field was absent or not usable.
type Properties struct {
	Volume             *float64
	StartDate          *string
	ExceptType         *string
	Comment            *string
	ProjectName        *string
	ProjectNumber      *string
	ProjectDescription *string
	PriceIndex         *float64
}

// NewProperties reads all known fields from the given raw property map. Values of an unexpected type are treated as
// absent, numbers given as strings are parsed and numbers used as text are formatted.
func NewProperties(values map[string]any) *Properties {
	if values == nil {
		return nil
	}

	return &Properties{
		Volume:             toFloat(values[PropVolume]),
		StartDate:          toString(values[PropStartDate]),
		ExceptType:         toString(values[PropExceptType]),
		Comment:            toString(values[PropComment]),
		ProjectName:        toString(values[PropProjectName]),
		ProjectNumber:      toString(values[PropProjectNumber]),
		ProjectDescription: toString(values[PropProjectDescription]),
		PriceIndex:         toFloat(values[PropPriceIndex]),
	}
}

// NewPropertiesFromTags is like NewProperties but for string-only tag maps, e.g. from OSM objects.
func NewPropertiesFromTags(tags map[string]string) *Properties {
	if tags == nil {
		return nil
	}

	values := make(map[string]any, len(tags))
	for k, v := range tags {
		values[k] = v
	}
	return NewProperties(values)
}

func toFloat(value any) *float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func toString(value any) *string {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case json.Number:
		s = v.String()
	default:
		return nil
	}
	return &s
}
