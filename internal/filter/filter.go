// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects experts, publications, and opportunities that
// satisfy a criteria value. Every function preserves input order, never
// modifies its input, and returns an empty (non-nil) slice when nothing
// matches.
package filter

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/pdiddy/research-directory/internal/citation"
	"github.com/pdiddy/research-directory/pkg/types"
)

// Default publication year bounds used when a criteria value leaves them
// unset.
const (
	DefaultStartYear = 1900
	DefaultEndYear   = 2100
)

// ExpertCriteria selects experts. The zero value matches every expert.
type ExpertCriteria struct {
	Search       string
	Colleges     []string
	Departments  []string
	Degrees      []string
	MinCitations int

	// RecencyYear is the citation window cutoff; values at or below
	// citation.AllTimeYear count lifetime citations.
	RecencyYear int
}

// PublicationCriteria selects publications within one expert profile.
type PublicationCriteria struct {
	Search       string
	MinCitations int
	RecencyYear  int

	// StartYear and EndYear bound the publication year inclusively. Zero
	// means DefaultStartYear and DefaultEndYear.
	StartYear int
	EndYear   int
}

// OpportunityCriteria selects opportunities. Closed opportunities are
// always excluded.
type OpportunityCriteria struct {
	Search string

	// Now is the instant open status is evaluated at.
	Now time.Time

	// FundingMin and FundingMax are inclusive bounds; nil means unbounded.
	FundingMin *float64
	FundingMax *float64

	// AgencyScope is the set of permitted agency ids, usually from
	// agency.Index.Scope. Nil matches every agency.
	AgencyScope map[string]struct{}

	// Eligibility, when non-empty, requires at least one shared applicant
	// type name.
	Eligibility []string
}

type matcher struct {
	needle string
	caser  cases.Caser
}

func newMatcher(search string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.needle = m.caser.String(strings.TrimSpace(search))
	return m
}

// match reports whether any field contains the needle, ignoring case.
func (m *matcher) match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(m.caser.String(f), m.needle) {
			return true
		}
	}
	return false
}

type set map[string]struct{}

func newSet(values []string) set {
	if len(values) == 0 {
		return nil
	}
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// allows is vacuously true for an empty set.
func (s set) allows(v string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[v]
	return ok
}

// Experts returns the experts matching c.
func Experts(records []types.Expert, c ExpertCriteria) []types.Expert {
	m := newMatcher(c.Search)
	colleges, departments, degrees := newSet(c.Colleges), newSet(c.Departments), newSet(c.Degrees)

	out := make([]types.Expert, 0, len(records))
	for _, e := range records {
		if !m.match(e.Name) ||
			!colleges.allows(e.College) ||
			!departments.allows(e.Department) ||
			!degrees.allows(e.Degree) ||
			citation.Since(e, c.RecencyYear) < c.MinCitations {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Publications returns the publications matching c.
func Publications(records []types.Publication, c PublicationCriteria) []types.Publication {
	m := newMatcher(c.Search)
	start, end := c.StartYear, c.EndYear
	if start == 0 {
		start = DefaultStartYear
	}
	if end == 0 {
		end = DefaultEndYear
	}

	out := make([]types.Publication, 0, len(records))
	for _, p := range records {
		if !m.match(p.Title) || citation.Since(p, c.RecencyYear) < c.MinCitations {
			continue
		}
		if y := PublicationYear(p.PublicationDate); y < start || y > end {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PublicationYear reads the year from the first four characters of an ISO
// date. It returns 0 when the date is absent or unparseable.
func PublicationYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// Open returns the opportunities that accept applications at now.
func Open(records []types.Opportunity, now time.Time) []types.Opportunity {
	out := make([]types.Opportunity, 0, len(records))
	for _, o := range records {
		if o.IsOpen(now) {
			out = append(out, o)
		}
	}
	return out
}

// Opportunities returns the open opportunities matching c.
func Opportunities(records []types.Opportunity, c OpportunityCriteria) []types.Opportunity {
	m := newMatcher(c.Search)
	eligible := newSet(c.Eligibility)

	out := make([]types.Opportunity, 0, len(records))
	for _, o := range records {
		if !o.IsOpen(c.Now) ||
			!InFundingRange(o, c.FundingMin, c.FundingMax) ||
			!inScope(o.AgencyID, c.AgencyScope) ||
			!sharesEligibility(o.Eligibility, eligible) ||
			!m.match(o.Title, o.Number) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// InFundingRange reports whether o's funding value lies within the
// inclusive bounds. With both bounds nil every record matches; otherwise a
// record without a finite funding value fails.
func InFundingRange(o types.Opportunity, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	v, ok := o.FundingValue()
	if !ok {
		return false
	}
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func inScope(agencyID string, scope map[string]struct{}) bool {
	if scope == nil {
		return true
	}
	_, ok := scope[agencyID]
	return ok
}

func sharesEligibility(names []string, want set) bool {
	if len(want) == 0 {
		return true
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			return true
		}
	}
	return false
}
