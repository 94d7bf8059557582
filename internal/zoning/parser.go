package zoning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gyeh/laplan/internal/registry"
)

// A Q/T qualifier may be parenthesized, bracketed or bare, and may combine
// both letters.
const qualifier = `[(\[]?(?P<%s>QT|TQ|Q|T)[)\]]?`

var (
	fullRE = regexp.MustCompile(`^` +
		`(?:` + fmt.Sprintf(qualifier, "q1") + `)?` +
		`(?:` + fmt.Sprintf(qualifier, "q2") + `)?` +
		`(?:\((?P<plan1>[A-Z0-9]+)\))?` +
		`(?P<zone>[A-Z0-9.]+)` +
		`(?:\((?P<plan2>[A-Z0-9]+)\))?` +
		`-(?P<height>[A-Z0-9]+)` +
		`(?P<overlays>(?:-[A-Z0-9]+)*)$`)

	// zoneOnlyRE is the full grammar without height district and overlays,
	// applied to single hyphen-separated components.
	zoneOnlyRE = regexp.MustCompile(`^` +
		`(?:` + fmt.Sprintf(qualifier, "q1") + `)?` +
		`(?:` + fmt.Sprintf(qualifier, "q2") + `)?` +
		`(?:\((?P<plan1>[A-Z0-9]+)\))?` +
		`(?P<zone>[A-Z0-9.]+)?` +
		`(?:\((?P<plan2>[A-Z0-9]+)\))?$`)
)

// zoneMatch holds the named components of a grammar match.
type zoneMatch struct {
	q1, q2       string
	plan1, plan2 string
	zone         string
	height       string
	overlays     string
}

func matchZone(re *regexp.Regexp, s string) (zoneMatch, bool) {
	sub := re.FindStringSubmatch(s)
	if sub == nil {
		return zoneMatch{}, false
	}
	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return sub[i]
		}
		return ""
	}
	return zoneMatch{
		q1:       group("q1"),
		q2:       group("q2"),
		plan1:    group("plan1"),
		plan2:    group("plan2"),
		zone:     group("zone"),
		height:   group("height"),
		overlays: group("overlays"),
	}, true
}

// strategy is one entry in the ordered fallback list.
type strategy struct {
	name  Strategy
	parse func(p *Parser, s string) (ZoningRecord, bool)
}

var strategies = []strategy{
	{name: StrategyFull, parse: (*Parser).parseFull},
	{name: StrategyComponent, parse: (*Parser).parseComponents},
	{name: StrategySingleToken, parse: (*Parser).parseSingleToken},
}

// Parser parses zoning strings against a Registry.
type Parser struct {
	reg *registry.Registry
}

// NewParser returns a Parser validating against reg.
// A nil reg uses registry.Default().
func NewParser(reg *registry.Registry) *Parser {
	if reg == nil {
		reg = registry.Default()
	}
	return &Parser{reg: reg}
}

var defaultParser = NewParser(nil)

// ParseZoningString parses raw with the default registry.
func ParseZoningString(raw string) ZoningRecord {
	return defaultParser.Parse(raw)
}

// Parse runs the strategies in order and returns the record from the first
// one that succeeds. Later strategies never see or merge into an earlier
// attempt. Malformed input yields a record with Strategy none.
func (p *Parser) Parse(raw string) ZoningRecord {
	s := strings.TrimSpace(raw)
	for _, st := range strategies {
		if rec, ok := st.parse(p, s); ok {
			rec.Strategy = st.name
			return rec
		}
	}
	return ZoningRecord{Strategy: StrategyNone}
}

func (p *Parser) parseFull(s string) (ZoningRecord, bool) {
	m, ok := matchZone(fullRE, s)
	if !ok {
		return ZoningRecord{}, false
	}
	// A plan on both sides of the zone class has no canonical form; the
	// component fallback records the second one as unrecognized.
	if m.plan1 != "" && m.plan2 != "" {
		return ZoningRecord{}, false
	}
	var rec ZoningRecord
	rec.qualify(m.q1)
	rec.qualify(m.q2)
	p.setPlan(&rec, m.plan1)
	p.setPlan(&rec, m.plan2)

	if p.reg.IsZoneClass(m.zone) {
		rec.ZoneClass = m.zone
	} else {
		rec.ZoneClass = Invalid
		rec.InvalidZoneClass = m.zone
	}

	height, limit := splitHeightLimit(m.height)
	rec.HeightLimit = limit
	if p.reg.IsHeightDistrict(height) {
		rec.HeightDistrict = height
	} else {
		rec.HeightDistrict = Invalid
		rec.InvalidHeightDistrict = height
	}

	if m.overlays != "" {
		for _, o := range strings.Split(strings.TrimPrefix(m.overlays, "-"), "-") {
			if p.reg.IsOverlay(o) {
				rec.Overlays = append(rec.Overlays, o)
			} else {
				rec.Overlays = append(rec.Overlays, Invalid)
				rec.InvalidOverlays = append(rec.InvalidOverlays, o)
			}
		}
	}
	return rec, true
}

// parseComponents handles strings the full grammar rejects, typically
// because the height district or a separator is missing. Each component
// is matched on its own and placed by registry membership. It succeeds
// only when a zone class is found.
func (p *Parser) parseComponents(s string) (ZoningRecord, bool) {
	var rec ZoningRecord
	for _, part := range strings.Split(s, "-") {
		if part == "" {
			continue
		}
		m, ok := matchZone(zoneOnlyRE, part)
		if !ok {
			rec.Unrecognized = append(rec.Unrecognized, part)
			continue
		}
		rec.qualify(m.q1)
		rec.qualify(m.q2)
		p.setPlan(&rec, m.plan1)
		p.setPlan(&rec, m.plan2)
		if m.zone != "" {
			p.place(&rec, m.zone)
		}
	}
	if rec.ZoneClass == "" {
		return ZoningRecord{}, false
	}
	return rec, true
}

// place assigns tok to the first field whose vocabulary contains it and
// that is still empty. Overlays accumulate.
func (p *Parser) place(rec *ZoningRecord, tok string) {
	if rec.ZoneClass == "" && p.reg.IsZoneClass(tok) {
		rec.ZoneClass = tok
		return
	}
	if h, limit, ok := p.heightDistrict(tok); ok && rec.HeightDistrict == "" {
		rec.HeightDistrict = h
		rec.HeightLimit = limit
		return
	}
	if p.reg.IsOverlay(tok) {
		rec.Overlays = append(rec.Overlays, tok)
		return
	}
	if rec.SpecificPlan == "" && p.reg.IsSpecificPlan(tok) {
		rec.SpecificPlan = tok
		return
	}
	rec.Unrecognized = append(rec.Unrecognized, tok)
}

func (p *Parser) parseSingleToken(s string) (ZoningRecord, bool) {
	switch {
	case p.reg.IsZoneClass(s):
		return ZoningRecord{ZoneClass: s}, true
	case p.reg.IsOverlay(s):
		return ZoningRecord{Overlays: []string{s}}, true
	case p.reg.IsSpecificPlan(s):
		return ZoningRecord{SpecificPlan: s}, true
	}
	return ZoningRecord{}, false
}

// heightDistrict resolves tok as a height district, with or without the
// trailing D limit marker.
func (p *Parser) heightDistrict(tok string) (string, bool, bool) {
	if p.reg.IsHeightDistrict(tok) {
		return tok, false, true
	}
	h, limit := splitHeightLimit(tok)
	if limit && p.reg.IsHeightDistrict(h) {
		return h, true, true
	}
	return "", false, false
}

// setPlan records a parenthesized specific plan. A second plan in the same
// string is kept as unrecognized.
func (p *Parser) setPlan(rec *ZoningRecord, plan string) {
	if plan == "" {
		return
	}
	if rec.SpecificPlan != "" {
		rec.Unrecognized = append(rec.Unrecognized, plan)
		return
	}
	if p.reg.IsSpecificPlan(plan) {
		rec.SpecificPlan = plan
	} else {
		rec.SpecificPlan = Invalid
		rec.InvalidSpecificPlan = plan
	}
}

func (z *ZoningRecord) qualify(tok string) {
	if strings.Contains(tok, "Q") {
		z.Qualified = true
	}
	if strings.Contains(tok, "T") {
		z.Tentative = true
	}
}

// splitHeightLimit strips a trailing D, which marks a development limit on
// the height district.
func splitHeightLimit(h string) (string, bool) {
	if len(h) > 1 && strings.HasSuffix(h, "D") {
		return h[:len(h)-1], true
	}
	return h, false
}
