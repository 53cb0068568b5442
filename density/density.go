package density

// Tier is a named, inclusive range of daily traffic volumes.
type Tier struct {
	Name string
	Min  float64
	Max  float64
}

// The ranges share their boundaries. Classify resolves the overlap by checking the tiers in a fixed order.
var (
	High   = Tier{Name: "High", Min: 5000, Max: 100000}
	Medium = Tier{Name: "Medium", Min: 1000, Max: 5000}
	Low    = Tier{Name: "Low", Min: 0, Max: 1000}
	All    = Tier{Name: "All", Min: 0, Max: 100000}
)

// Tiers returns all known tiers in the order used for the filter selection.
func Tiers() []Tier {
	return []Tier{High, Medium, Low, All}
}

// ByName returns the tier with exactly the given name.
func ByName(name string) (Tier, bool) {
	for _, tier := range Tiers() {
		if tier.Name == name {
			return tier, true
		}
	}
	return Tier{}, false
}

// Contains checks whether the volume is within the tier's range, both bounds included.
func (t Tier) Contains(volume float64) bool {
	return t.Min <= volume && volume <= t.Max
}

func (t Tier) String() string {
	return t.Name
}

// Classify returns the density tier of the given volume. High is checked before Medium so that a volume of 5000 is
// High and 1000 is Medium. Everything else, including volumes beyond the High range, is Low. A nil volume results in
// a nil tier.
func Classify(volume *float64) *Tier {
	if volume == nil {
		return nil
	}

	var tier Tier
	switch {
	case High.Contains(*volume):
		tier = High
	case Medium.Contains(*volume):
		tier = Medium
	default:
		tier = Low
	}
	return &tier
}

// InRange is the nil-aware variant of Tier.Contains. The result is nil when the volume or the tier is nil.
func InRange(volume *float64, tier *Tier) *bool {
	if volume == nil || tier == nil {
		return nil
	}

	inRange := tier.Contains(*volume)
	return &inRange
}
