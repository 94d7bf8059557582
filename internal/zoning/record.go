package zoning

import "strings"

// Invalid replaces a component that was found in the right position but is
// not in its vocabulary. The raw token is kept in the matching Invalid* field.
const Invalid = "invalid"

// Strategy names how a ZoningRecord was produced.
type Strategy string

const (
	StrategyNone        Strategy = "none"
	StrategyFull        Strategy = "full"
	StrategyComponent   Strategy = "component"
	StrategySingleToken Strategy = "single-token"
	// StrategyCodebook marks records filled from the manual correction
	// codebook rather than by the parser.
	StrategyCodebook Strategy = "codebook"
)

// ZoningRecord is the structured form of a zoning string such as
// "(T)(CEC)C2-1VL-CDO-RIO".
type ZoningRecord struct {
	Qualified bool `json:"qualified"`
	Tentative bool `json:"tentative"`

	ZoneClass        string `json:"zone_class"`
	InvalidZoneClass string `json:"invalid_zone_class,omitempty"`

	HeightDistrict        string `json:"height_district"`
	InvalidHeightDistrict string `json:"invalid_height_district,omitempty"`
	HeightLimit           bool   `json:"height_limit_applies"`

	// Overlays keeps source order; unrecognized entries read Invalid and
	// their raw tokens are listed, in order, in InvalidOverlays.
	Overlays        []string `json:"overlays"`
	InvalidOverlays []string `json:"invalid_overlays,omitempty"`

	SpecificPlan        string `json:"specific_plan,omitempty"`
	InvalidSpecificPlan string `json:"invalid_specific_plan,omitempty"`

	// Unrecognized lists components the per-component fallback could not place.
	Unrecognized []string `json:"unrecognized,omitempty"`

	Strategy Strategy `json:"strategy"`
}

// Parsed reports whether the record was filled by any strategy.
func (z ZoningRecord) Parsed() bool {
	return z.Strategy != "" && z.Strategy != StrategyNone
}

// HasOverlay reports whether code is among the valid overlays.
func (z ZoningRecord) HasOverlay(code string) bool {
	for _, o := range z.Overlays {
		if o == code {
			return true
		}
	}
	return false
}

func rawValue(value, invalid string) string {
	if value == Invalid {
		return invalid
	}
	return value
}

// String renders the canonical zoning string. For records produced by the
// full grammar, parsing the result yields an identical record.
func (z ZoningRecord) String() string {
	if !z.Parsed() {
		return ""
	}
	var b strings.Builder
	if z.Qualified {
		b.WriteString("(Q)")
	}
	if z.Tentative {
		b.WriteString("(T)")
	}
	if z.SpecificPlan != "" {
		b.WriteString("(" + rawValue(z.SpecificPlan, z.InvalidSpecificPlan) + ")")
	}
	b.WriteString(rawValue(z.ZoneClass, z.InvalidZoneClass))
	if z.HeightDistrict != "" {
		b.WriteString("-" + rawValue(z.HeightDistrict, z.InvalidHeightDistrict))
		if z.HeightLimit {
			b.WriteString("D")
		}
	}
	invalid := 0
	for _, o := range z.Overlays {
		if o == Invalid && invalid < len(z.InvalidOverlays) {
			o = z.InvalidOverlays[invalid]
			invalid++
		}
		b.WriteString("-" + o)
	}
	return b.String()
}
