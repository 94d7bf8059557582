package classify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gyeh/laplan/internal/model"
	"github.com/gyeh/laplan/internal/normalize"
	"github.com/gyeh/laplan/internal/registry"
)

// Filter subsets a classified case table. Zero-valued fields do not filter.
type Filter struct {
	// StartDate and EndDate bound file_date, inclusive. Rows without a
	// parseable file date are dropped when either bound is set.
	StartDate *time.Time
	EndDate   *time.Time
	// Prefixes keeps only cases whose valid prefix is listed.
	Prefixes []string
	// Suffixes drops every case holding a known suffix code that is not
	// listed. Unknown suffix tokens never exclude a case.
	Suffixes []string
	// Distinct drops repeated source rows, keeping the first.
	Distinct bool
}

// Validate checks the listed codes against reg.
func (f Filter) Validate(reg *registry.Registry) error {
	for _, p := range f.Prefixes {
		if !reg.IsPrefix(p) {
			return fmt.Errorf("filter: unknown prefix %q", p)
		}
	}
	for _, s := range f.Suffixes {
		if !reg.IsSuffix(s) {
			return fmt.Errorf("filter: unknown suffix %q", s)
		}
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return fmt.Errorf("filter: end date %s before start date %s",
			f.EndDate.Format("2006-01-02"), f.StartDate.Format("2006-01-02"))
	}
	return nil
}

// IsZero reports whether the filter keeps every row.
func (f Filter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil && f.Prefixes == nil && f.Suffixes == nil && !f.Distinct
}

// Apply returns a new table with the rows f keeps, in their original order.
// The indicator schema is unchanged. Date and distinct filtering need
// source rows; Apply fails on a table built from bare strings.
func (f Filter) Apply(reg *registry.Registry, t *CaseTable) (*CaseTable, error) {
	needRows := f.StartDate != nil || f.EndDate != nil || f.Distinct
	if needRows && t.Rows == nil {
		return nil, fmt.Errorf("filter: date and distinct filters need source rows")
	}

	var allowPrefix map[string]bool
	if f.Prefixes != nil {
		allowPrefix = make(map[string]bool, len(f.Prefixes))
		for _, p := range f.Prefixes {
			allowPrefix[p] = true
		}
	}
	var excludeSuffix map[string]bool
	if f.Suffixes != nil {
		keep := registry.NewVocabulary(f.Suffixes...)
		excludeSuffix = make(map[string]bool)
		for _, s := range reg.Suffixes().Without(keep).Codes() {
			excludeSuffix[s] = true
		}
	}

	seen := make(map[string]bool)
	idx := make([]int, 0, t.Len())
	for i, rec := range t.Records {
		if needRows && !f.keepRow(t.Rows[i], seen) {
			continue
		}
		if allowPrefix != nil && !(rec.PrefixValid && allowPrefix[rec.Prefix]) {
			continue
		}
		if excludeSuffix != nil && holdsAny(rec.Suffixes, excludeSuffix) {
			continue
		}
		idx = append(idx, i)
	}
	return t.subset(idx), nil
}

func (f Filter) keepRow(row model.CaseRow, seen map[string]bool) bool {
	if f.StartDate != nil || f.EndDate != nil {
		d := normalize.ParseDatePtr(row.FileDate)
		if d == nil {
			return false
		}
		if f.StartDate != nil && d.Before(*f.StartDate) {
			return false
		}
		if f.EndDate != nil && d.After(*f.EndDate) {
			return false
		}
	}
	if f.Distinct {
		key := rowKey(row)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func holdsAny(codes []string, set map[string]bool) bool {
	for _, c := range codes {
		if set[c] {
			return true
		}
	}
	return false
}

func rowKey(r model.CaseRow) string {
	parent := ""
	if r.ParentCaseID != nil {
		parent = strconv.FormatInt(*r.ParentCaseID, 10)
	}
	return strings.Join([]string{
		strconv.FormatInt(r.CaseID, 10),
		r.CaseNumber,
		parent,
		deref(r.FileDate),
		deref(r.AIN),
		deref(r.Address),
	}, "\x00")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
