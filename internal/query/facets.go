// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"slices"
	"time"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/internal/filter"
	"github.com/pdiddy/research-directory/pkg/types"
)

// College is a college with the departments that appear under it.
type College struct {
	Name        string   `json:"name" yaml:"name"`
	Departments []string `json:"departments" yaml:"departments"`
}

// ExpertFacets lists the values available to the expert categorical
// filters.
type ExpertFacets struct {
	Colleges []College `json:"colleges" yaml:"colleges"`
	Degrees  []string  `json:"degrees" yaml:"degrees"`
}

// ExpertFacetsOf collects colleges (with departments) and degrees, each
// sorted and deduplicated. Blank values are skipped.
func ExpertFacetsOf(experts []types.Expert) ExpertFacets {
	colleges := map[string]map[string]struct{}{}
	degrees := map[string]struct{}{}
	for _, e := range experts {
		if e.College != "" {
			depts, ok := colleges[e.College]
			if !ok {
				depts = map[string]struct{}{}
				colleges[e.College] = depts
			}
			if e.Department != "" {
				depts[e.Department] = struct{}{}
			}
		}
		if e.Degree != "" {
			degrees[e.Degree] = struct{}{}
		}
	}

	f := ExpertFacets{Colleges: []College{}, Degrees: sortedKeys(degrees)}
	for _, name := range sortedKeys(colleges) {
		f.Colleges = append(f.Colleges, College{Name: name, Departments: sortedKeys(colleges[name])})
	}
	return f
}

// OpportunityFacets describes the open opportunities available to the
// funding and agency filters.
type OpportunityFacets struct {
	Open     int                  `json:"open" yaml:"open"`
	Funding  []filter.BucketCount `json:"funding" yaml:"funding"`
	Agencies []agency.Node        `json:"agencies" yaml:"agencies"`
}

// OpportunityFacetsOf counts open opportunities per funding bucket and per
// agency, aggregating agency counts up the hierarchy.
func OpportunityFacetsOf(st *State, now time.Time) OpportunityFacets {
	open := filter.Open(st.Snapshot.Opportunities, now)
	tree := st.Agencies.Tree(DirectCounts(open))
	if tree == nil {
		tree = []agency.Node{}
	}
	return OpportunityFacets{
		Open:     len(open),
		Funding:  filter.BucketCounts(open, now),
		Agencies: tree,
	}
}

// DirectCounts counts opportunities per agency id. Records without an
// agency are not counted.
func DirectCounts(opps []types.Opportunity) map[string]int {
	counts := make(map[string]int)
	for _, o := range opps {
		if o.AgencyID != "" {
			counts[o.AgencyID]++
		}
	}
	return counts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
