package pcts

import (
	"fmt"
	"strconv"
	"strings"
)

// Invalid is stored in place of a prefix that is not in the vocabulary.
const Invalid = "invalid"

// Strategy names the grammar that produced a CaseIdentifier.
type Strategy string

const (
	StrategyNone        Strategy = "none"
	StrategyGeneral     Strategy = "general"
	StrategyMissingYear Strategy = "missing-year"
)

// CaseIdentifier is the structured form of a PCTS case number such as
// "CPC-2015-1234-CU-SPR". A zero CaseIdentifier (Strategy none) means the
// string matched no grammar.
type CaseIdentifier struct {
	Prefix        string `json:"prefix"`
	PrefixValid   bool   `json:"prefix_valid"`
	InvalidPrefix string `json:"invalid_prefix,omitempty"`

	// Year is nil for missing-year case numbers and for the legacy X
	// placeholder, which is kept in YearPlaceholder.
	Year            *int   `json:"year"`
	YearPlaceholder string `json:"year_placeholder,omitempty"`

	// SequenceID is nil when the sequence digits overflow int.
	SequenceID *int     `json:"sequence_id"`
	Suffixes   []string `json:"suffixes"`
	Strategy   Strategy `json:"strategy"`

	// overflowSeq holds the raw sequence digits when SequenceID is nil.
	overflowSeq string
}

// Parsed reports whether any grammar matched.
func (c CaseIdentifier) Parsed() bool {
	return c.Strategy != "" && c.Strategy != StrategyNone
}

// RawPrefix returns the prefix token as it appeared in the source string.
func (c CaseIdentifier) RawPrefix() string {
	if c.PrefixValid {
		return c.Prefix
	}
	return c.InvalidPrefix
}

// HasSuffix reports whether code appears anywhere in the suffix list.
func (c CaseIdentifier) HasSuffix(code string) bool {
	for _, s := range c.Suffixes {
		if s == code {
			return true
		}
	}
	return false
}

// String renders the canonical case number. Parsing the result yields an
// identical CaseIdentifier.
func (c CaseIdentifier) String() string {
	if !c.Parsed() {
		return ""
	}
	parts := []string{c.RawPrefix()}
	switch {
	case c.Year != nil:
		parts = append(parts, fmt.Sprintf("%04d", *c.Year))
	case c.YearPlaceholder != "":
		parts = append(parts, c.YearPlaceholder)
	}
	switch {
	case c.SequenceID != nil:
		parts = append(parts, strconv.Itoa(*c.SequenceID))
	case c.overflowSeq != "":
		parts = append(parts, c.overflowSeq)
	}
	parts = append(parts, c.Suffixes...)
	return strings.Join(parts, "-")
}
