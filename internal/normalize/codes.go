package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace      = regexp.MustCompile(`\s+`)
	spacedHyphen    = regexp.MustCompile(`\s*-\s*`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// CleanIdentifier trims, uppercases, collapses runs of whitespace and drops
// whitespace around hyphens, so " cpc-2015 - 1234 " becomes "CPC-2015-1234".
// The parsers do not do this themselves; callers opt in.
func CleanIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	s = multiSpace.ReplaceAllString(s, " ")
	return spacedHyphen.ReplaceAllString(s, "-")
}

// ColumnName builds the indicator column name for a vocabulary code,
// e.g. ("suffix", "CU") -> "suffix_cu" and ("overlay", "C1.5") -> "overlay_c1_5".
func ColumnName(kind, code string) string {
	c := nonAlphanumeric.ReplaceAllString(strings.ToLower(code), "_")
	return strings.ToLower(kind) + "_" + strings.Trim(c, "_")
}
