// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/pkg/types"
)

func ids(experts []types.Expert) []string {
	out := make([]string, len(experts))
	for i, e := range experts {
		out[i] = e.ID
	}
	return out
}

func oppIDs(opps []types.Opportunity) []string {
	out := make([]string, len(opps))
	for i, o := range opps {
		out[i] = o.OppID
	}
	return out
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func money(v float64) *float64 { return &v }

func experts() []types.Expert {
	return []types.Expert{
		{ID: "a", Name: "Ann", College: "Medicine", Department: "Oncology", Degree: "MD", TotalCitations: 10,
			CitationsPerYear: types.CitationHistory{{Year: 2020, Citations: 4}, {Year: 2021, Citations: 6}}},
		{ID: "b", Name: "Ben", College: "Engineering", Department: "EE", Degree: "PhD", TotalCitations: 5},
		{ID: "c", Name: "Annika", College: "Engineering", Department: "CS", Degree: "PhD", TotalCitations: 1},
	}
}

func TestExpertsCitationWindow(t *testing.T) {
	in := experts()[:2]
	got := Experts(in, ExpertCriteria{RecencyYear: 2021, MinCitations: 5})
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestExperts(t *testing.T) {
	tests := []struct {
		name string
		c    ExpertCriteria
		want []string
	}{
		{"zero criteria", ExpertCriteria{}, []string{"a", "b", "c"}},
		{"search is case-insensitive", ExpertCriteria{Search: " ANN "}, []string{"a", "c"}},
		{"college set", ExpertCriteria{Colleges: []string{"Engineering"}}, []string{"b", "c"}},
		{"sets combine", ExpertCriteria{Colleges: []string{"Engineering"}, Departments: []string{"CS", "Oncology"}}, []string{"c"}},
		{"degree set", ExpertCriteria{Degrees: []string{"MD"}}, []string{"a"}},
		{"all time threshold", ExpertCriteria{RecencyYear: 1999, MinCitations: 5}, []string{"a", "b"}},
		{"no match", ExpertCriteria{Search: "zed"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Experts(experts(), tt.c)))
		})
	}
}

func TestExpertsDoesNotMutate(t *testing.T) {
	in := experts()
	before := append([]types.Expert(nil), in...)
	_ = Experts(in, ExpertCriteria{Search: "ann"})
	assert.Equal(t, before, in)
}

func TestEmptyInputs(t *testing.T) {
	assert.NotNil(t, Experts(nil, ExpertCriteria{}))
	assert.Empty(t, Experts(nil, ExpertCriteria{}))
	assert.Empty(t, Publications(nil, PublicationCriteria{}))
	assert.Empty(t, Opportunities(nil, OpportunityCriteria{}))
}

func TestPublications(t *testing.T) {
	pubs := []types.Publication{
		{Title: "Deep Tumors", PublicationDate: "2019-04-01", TotalCitations: 3},
		{Title: "Shallow Water", PublicationDate: "2022-01-01", TotalCitations: 8,
			CitationsPerYear: types.CitationHistory{{Year: 2023, Citations: 8}}},
		{Title: "Undated", TotalCitations: 1},
	}
	titles := func(ps []types.Publication) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Title
		}
		return out
	}

	tests := []struct {
		name string
		c    PublicationCriteria
		want []string
	}{
		{"defaults exclude undated", PublicationCriteria{}, []string{"Deep Tumors", "Shallow Water"}},
		{"explicit zero start keeps undated", PublicationCriteria{StartYear: -1}, []string{"Deep Tumors", "Shallow Water", "Undated"}},
		{"year range", PublicationCriteria{StartYear: 2020, EndYear: 2022}, []string{"Shallow Water"}},
		{"search", PublicationCriteria{Search: "tumor"}, []string{"Deep Tumors"}},
		{"windowed citations", PublicationCriteria{RecencyYear: 2023, MinCitations: 1}, []string{"Shallow Water"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Publications(pubs, tt.c)))
		})
	}
}

func TestPublicationYear(t *testing.T) {
	assert.Equal(t, 2021, PublicationYear("2021-06-01"))
	assert.Equal(t, 2021, PublicationYear("2021"))
	assert.Equal(t, 0, PublicationYear("21"))
	assert.Equal(t, 0, PublicationYear("June 2021"))
	assert.Equal(t, 0, PublicationYear(""))
}

func TestOpenFilter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opps := []types.Opportunity{
		{OppID: "1", DueDate: day("2020-01-01")},
		{OppID: "2"},
	}
	assert.Equal(t, []string{"2"}, oppIDs(Open(opps, now)))
	assert.Equal(t, []string{"2"}, oppIDs(Opportunities(opps, OpportunityCriteria{Now: now})))
}

func TestOpenIncludesDueNow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opps := []types.Opportunity{{OppID: "1", DueDate: &now}}
	assert.Len(t, Open(opps, now), 1)
}

func TestFundingRange(t *testing.T) {
	opps := []types.Opportunity{
		{OppID: "ceiling", AwardCeiling: money(50000), EstimatedFunding: money(5e6)},
		{OppID: "estimated", EstimatedFunding: money(2e6)},
		{OppID: "none"},
		{OppID: "edge", AwardCeiling: money(999999)},
	}

	tests := []struct {
		name   string
		lo, hi *float64
		want   []string
	}{
		{"unbounded keeps missing", nil, nil, []string{"ceiling", "estimated", "none", "edge"}},
		{"ceiling wins over estimate", nil, money(99999), []string{"ceiling"}},
		{"estimate fallback", money(1e6), nil, []string{"estimated"}},
		{"inclusive bounds", money(100000), money(999999), []string{"edge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Opportunities(opps, OpportunityCriteria{FundingMin: tt.lo, FundingMax: tt.hi})
			assert.Equal(t, tt.want, oppIDs(got))
		})
	}
}

func TestAgencyScope(t *testing.T) {
	idx := agency.New([]types.Agency{
		{ID: "1"},
		{ID: "2", ParentID: "1"},
		{ID: "3", ParentID: "2"},
	})
	opps := []types.Opportunity{
		{OppID: "a", AgencyID: "1"},
		{OppID: "b", AgencyID: "3"},
		{OppID: "c", AgencyID: "4"},
		{OppID: "d", AgencyID: "2"},
	}

	got := Opportunities(opps, OpportunityCriteria{AgencyScope: idx.Scope("1")})
	assert.Equal(t, []string{"a", "b", "d"}, oppIDs(got))

	got = Opportunities(opps, OpportunityCriteria{AgencyScope: idx.Scope("")})
	assert.Len(t, got, 4)
}

func TestOpportunitySearchAndEligibility(t *testing.T) {
	opps := []types.Opportunity{
		{OppID: "1", Title: "Cancer Moonshot", Number: "RFA-CA-1", Eligibility: []string{"Nonprofits"}},
		{OppID: "2", Title: "Rural Health", Number: "HRSA-25-7", Eligibility: []string{}},
	}

	assert.Equal(t, []string{"2"}, oppIDs(Opportunities(opps, OpportunityCriteria{Search: "hrsa"})))
	assert.Equal(t, []string{"1"}, oppIDs(Opportunities(opps, OpportunityCriteria{Search: "moon"})))
	assert.Equal(t, []string{"1"}, oppIDs(Opportunities(opps, OpportunityCriteria{Eligibility: []string{"Nonprofits"}})))
}

func TestBucketCounts(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	opps := []types.Opportunity{
		{OppID: "1", AwardCeiling: money(50000)},
		{OppID: "2", AwardCeiling: money(100000)},
		{OppID: "3", EstimatedFunding: money(2e7)},
		{OppID: "4"},
		{OppID: "closed", AwardCeiling: money(50000), DueDate: day("2020-01-01")},
	}

	counts := BucketCounts(opps, now)
	require.Len(t, counts, len(FundingBuckets))
	got := make([]int, len(counts))
	for i, c := range counts {
		got[i] = c.Count
	}
	assert.Equal(t, []int{4, 1, 1, 0, 1}, got)

	b, ok := Bucket(2)
	require.True(t, ok)
	assert.Equal(t, 100000.0, *b.Min)
	_, ok = Bucket(9)
	assert.False(t, ok)
}
