package registry

import (
	"fmt"
	"strings"
)

// Registry holds the reference vocabularies the parsers validate against.
// A Registry is never mutated after construction and is safe to share
// between goroutines.
type Registry struct {
	prefixes       Vocabulary
	suffixes       Vocabulary
	ambiguous      Vocabulary
	zoneClasses    Vocabulary
	heights        Vocabulary
	invalidHeights Vocabulary
	overlays       Vocabulary
	specificPlans  Vocabulary
	zoneRanks      map[string]int
}

// Sets is the raw input for building a Registry.
type Sets struct {
	Prefixes               []string
	Suffixes               []string
	Ambiguous              []string
	ZoneClasses            []string
	ZoneRanks              map[string]int
	HeightDistricts        []string
	InvalidHeightDistricts []string
	Overlays               []string
	SpecificPlans          []string
}

// Extension lists codes added on top of an existing Registry, typically
// new entitlement codes published by planning staff.
type Extension struct {
	Prefixes        []string       `yaml:"prefixes"`
	Suffixes        []string       `yaml:"suffixes"`
	ZoneClasses     []string       `yaml:"zone_classes"`
	ZoneRanks       map[string]int `yaml:"zone_ranks"`
	HeightDistricts []string       `yaml:"height_districts"`
	Overlays        []string       `yaml:"overlays"`
	SpecificPlans   []string       `yaml:"specific_plans"`
}

var defaultRegistry = mustNew(builtinSets())

// Default returns the built-in Registry.
func Default() *Registry {
	return defaultRegistry
}

func builtinSets() Sets {
	ranks := make(map[string]int, len(rankedZoneClasses))
	zones := make([]string, 0, len(rankedZoneClasses)+len(unrankedZoneClasses))
	for _, zr := range rankedZoneClasses {
		ranks[zr.code] = zr.rank
		zones = append(zones, zr.code)
	}
	zones = append(zones, unrankedZoneClasses...)

	return Sets{
		Prefixes:               casePrefixes,
		Suffixes:               caseSuffixes,
		Ambiguous:              ambiguousCodes,
		ZoneClasses:            zones,
		ZoneRanks:              ranks,
		HeightDistricts:        heightDistricts,
		InvalidHeightDistricts: invalidHeightDistricts,
		Overlays:               overlays,
		SpecificPlans:          specificPlans,
	}
}

func mustNew(s Sets) *Registry {
	r, err := New(s)
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a Registry and checks it for internal consistency.
func New(s Sets) (*Registry, error) {
	r := &Registry{
		prefixes:       NewVocabulary(s.Prefixes...),
		suffixes:       NewVocabulary(s.Suffixes...),
		ambiguous:      NewVocabulary(s.Ambiguous...),
		zoneClasses:    NewVocabulary(s.ZoneClasses...),
		heights:        NewVocabulary(s.HeightDistricts...),
		invalidHeights: NewVocabulary(s.InvalidHeightDistricts...),
		overlays:       NewVocabulary(s.Overlays...),
		specificPlans:  NewVocabulary(s.SpecificPlans...),
		zoneRanks:      make(map[string]int, len(s.ZoneRanks)),
	}
	for code, rank := range s.ZoneRanks {
		if !r.zoneClasses.Contains(code) {
			return nil, fmt.Errorf("zone rank for unknown zone class %q", code)
		}
		r.zoneRanks[code] = rank
	}
	for _, code := range r.ambiguous.codes {
		if !r.suffixes.Contains(code) {
			return nil, fmt.Errorf("ambiguous code %q is not a suffix code", code)
		}
	}
	for _, v := range []Vocabulary{r.prefixes, r.suffixes, r.zoneClasses, r.heights, r.overlays, r.specificPlans} {
		for _, code := range v.codes {
			if err := checkCode(code); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func checkCode(code string) error {
	if strings.TrimSpace(code) != code {
		return fmt.Errorf("code %q has surrounding whitespace", code)
	}
	if strings.ContainsAny(code, "-()[] ") {
		return fmt.Errorf("code %q contains a separator character", code)
	}
	return nil
}

// Extend returns a new Registry with ext's codes added. r is unchanged.
func (r *Registry) Extend(ext Extension) (*Registry, error) {
	for _, h := range ext.HeightDistricts {
		if r.invalidHeights.Contains(h) {
			return nil, fmt.Errorf("height district %q is in the exclusion set", h)
		}
	}
	ranks := make(map[string]int, len(r.zoneRanks)+len(ext.ZoneRanks))
	for k, v := range r.zoneRanks {
		ranks[k] = v
	}
	for k, v := range ext.ZoneRanks {
		ranks[k] = v
	}
	return New(Sets{
		Prefixes:               r.prefixes.With(ext.Prefixes...).codes,
		Suffixes:               r.suffixes.With(ext.Suffixes...).codes,
		Ambiguous:              r.ambiguous.codes,
		ZoneClasses:            r.zoneClasses.With(ext.ZoneClasses...).codes,
		ZoneRanks:              ranks,
		HeightDistricts:        r.heights.With(ext.HeightDistricts...).codes,
		InvalidHeightDistricts: r.invalidHeights.codes,
		Overlays:               r.overlays.With(ext.Overlays...).codes,
		SpecificPlans:          r.specificPlans.With(ext.SpecificPlans...).codes,
	})
}

func (r *Registry) IsPrefix(code string) bool       { return r.prefixes.Contains(code) }
func (r *Registry) IsSuffix(code string) bool       { return r.suffixes.Contains(code) }
func (r *Registry) IsAmbiguous(code string) bool    { return r.ambiguous.Contains(code) }
func (r *Registry) IsZoneClass(code string) bool    { return r.zoneClasses.Contains(code) }
func (r *Registry) IsOverlay(code string) bool      { return r.overlays.Contains(code) }
func (r *Registry) IsSpecificPlan(code string) bool { return r.specificPlans.Contains(code) }

// IsHeightDistrict reports whether code is a known height district and not
// in the exclusion set.
func (r *Registry) IsHeightDistrict(code string) bool {
	return r.heights.Contains(code) && !r.invalidHeights.Contains(code)
}

// ZoneClassRank returns the restrictiveness rank of a zone class (lower is
// more restrictive). ok is false for unranked or unknown classes.
func (r *Registry) ZoneClassRank(code string) (rank int, ok bool) {
	rank, ok = r.zoneRanks[code]
	return rank, ok
}

func (r *Registry) Prefixes() Vocabulary        { return r.prefixes }
func (r *Registry) Suffixes() Vocabulary        { return r.suffixes }
func (r *Registry) Ambiguous() Vocabulary       { return r.ambiguous }
func (r *Registry) ZoneClasses() Vocabulary     { return r.zoneClasses }
func (r *Registry) HeightDistricts() Vocabulary { return r.heights }
func (r *Registry) Overlays() Vocabulary        { return r.overlays }
func (r *Registry) SpecificPlans() Vocabulary   { return r.specificPlans }
