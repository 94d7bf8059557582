package pcts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gyeh/laplan/internal/registry"
)

var (
	generalRE     = regexp.MustCompile(`^(?P<prefix>[A-Z]+)-(?P<year>[0-9X]{4})-(?P<seq>[0-9]+)(?P<suffix>(?:-[A-Z0-9]+)*)$`)
	missingYearRE = regexp.MustCompile(`^(?P<prefix>[A-Z]+)-(?P<seq>[0-9]+)(?P<suffix>(?:-[A-Z0-9]+)*)$`)
)

// caseMatch holds the named components of a grammar match.
type caseMatch struct {
	prefix string
	year   string
	seq    string
	suffix string
}

// strategy is one grammar in the ordered fallback list.
type strategy struct {
	name Strategy
	re   *regexp.Regexp
}

var strategies = []strategy{
	{name: StrategyGeneral, re: generalRE},
	{name: StrategyMissingYear, re: missingYearRE},
}

// Parser parses PCTS case numbers against a Registry.
type Parser struct {
	reg *registry.Registry
}

// NewParser returns a Parser validating prefixes against reg.
// A nil reg uses registry.Default().
func NewParser(reg *registry.Registry) *Parser {
	if reg == nil {
		reg = registry.Default()
	}
	return &Parser{reg: reg}
}

var defaultParser = NewParser(nil)

// ParseCaseNumber parses raw with the default registry.
func ParseCaseNumber(raw string) CaseIdentifier {
	return defaultParser.Parse(raw)
}

// Parse tries each grammar in order and returns the first match. It never
// fails: an unparseable string yields a CaseIdentifier with Strategy none.
func (p *Parser) Parse(raw string) CaseIdentifier {
	s := strings.TrimSpace(raw)
	for _, st := range strategies {
		m, ok := matchCase(st.re, s)
		if !ok {
			continue
		}
		if c, ok := p.build(st.name, m); ok {
			return c
		}
	}
	return CaseIdentifier{Strategy: StrategyNone}
}

func matchCase(re *regexp.Regexp, s string) (caseMatch, bool) {
	sub := re.FindStringSubmatch(s)
	if sub == nil {
		return caseMatch{}, false
	}
	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return sub[i]
		}
		return ""
	}
	return caseMatch{
		prefix: group("prefix"),
		year:   group("year"),
		seq:    group("seq"),
		suffix: group("suffix"),
	}, true
}

func (p *Parser) build(name Strategy, m caseMatch) (CaseIdentifier, bool) {
	c := CaseIdentifier{Strategy: name}
	if seq, err := strconv.Atoi(m.seq); err == nil {
		c.SequenceID = &seq
	} else {
		// too long for int; keep the digits so String round-trips
		c.overflowSeq = m.seq
	}

	if p.reg.IsPrefix(m.prefix) {
		c.Prefix = m.prefix
		c.PrefixValid = true
	} else {
		c.Prefix = Invalid
		c.InvalidPrefix = m.prefix
	}

	if m.year != "" {
		if strings.Contains(m.year, "X") {
			c.YearPlaceholder = m.year
		} else {
			y, err := strconv.Atoi(m.year)
			if err != nil {
				return CaseIdentifier{}, false
			}
			c.Year = &y
		}
	}

	if m.suffix != "" {
		c.Suffixes = strings.Split(strings.TrimPrefix(m.suffix, "-"), "-")
	}
	return c, true
}
