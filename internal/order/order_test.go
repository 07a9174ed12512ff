// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/research-directory/pkg/types"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func expertIDs(es []types.Expert) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func oppIDs(os []types.Opportunity) []string {
	out := make([]string, len(os))
	for i, o := range os {
		out[i] = o.OppID
	}
	return out
}

func pubTitles(ps []types.Publication) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestExpertsByName(t *testing.T) {
	in := []types.Expert{
		{ID: "1", Name: "bob"},
		{ID: "2", Name: "Ángel"},
		{ID: "3", Name: "Alice"},
		{ID: "4", Name: "Carol"},
	}
	got := Experts(in, NameAsc, 0)
	assert.Equal(t, []string{"3", "2", "1", "4"}, expertIDs(got))
	assert.Equal(t, "1", in[0].ID, "input is not reordered")

	assert.Equal(t, expertIDs(got), expertIDs(Experts(in, "bogus", 0)), "unknown key falls back to name")
}

func TestExpertsCitationsStable(t *testing.T) {
	in := []types.Expert{
		{ID: "a", TotalCitations: 5},
		{ID: "b", TotalCitations: 5},
		{ID: "c", TotalCitations: 5},
	}
	assert.Equal(t, []string{"a", "b", "c"}, expertIDs(Experts(in, Citations, 0)))
}

func TestExpertsCitationsWindowed(t *testing.T) {
	in := []types.Expert{
		{ID: "old", TotalCitations: 100, CitationsPerYear: types.CitationHistory{{Year: 2005, Citations: 100}}},
		{ID: "new", TotalCitations: 10, CitationsPerYear: types.CitationHistory{{Year: 2023, Citations: 10}}},
	}
	assert.Equal(t, []string{"old", "new"}, expertIDs(Experts(in, Citations, 1999)))
	assert.Equal(t, []string{"new", "old"}, expertIDs(Experts(in, Citations, 2020)))
}

func TestExpertsByCounts(t *testing.T) {
	in := []types.Expert{
		{ID: "a", PublicationCount: 1, KeywordCount: 9},
		{ID: "b", PublicationCount: 3, KeywordCount: 2},
	}
	assert.Equal(t, []string{"b", "a"}, expertIDs(Experts(in, MostPubs, 0)))
	assert.Equal(t, []string{"a", "b"}, expertIDs(Experts(in, MostKeywords, 0)))
}

func TestPublicationsByYear(t *testing.T) {
	in := []types.Publication{
		{Title: "none"},
		{Title: "2019", PublicationDate: "2019-01-01"},
		{Title: "bad", PublicationDate: "someday"},
		{Title: "2022", PublicationDate: "2022-06-30"},
		{Title: "2020", PublicationDate: "2020"},
		{Title: "2021-05", PublicationDate: "2021-05"},
	}
	assert.Equal(t, []string{"2022", "2021-05", "2020", "2019", "none", "bad"}, pubTitles(Publications(in, YearDesc, 0)))
	assert.Equal(t, []string{"2019", "2020", "2021-05", "2022", "none", "bad"}, pubTitles(Publications(in, YearAsc, 0)))
}

func TestPublicationsByTitle(t *testing.T) {
	in := []types.Publication{{Title: "beta"}, {Title: "Alpha"}, {Title: "gamma"}}
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, pubTitles(Publications(in, TitleAsc, 0)))
	assert.Equal(t, []string{"gamma", "beta", "Alpha"}, pubTitles(Publications(in, TitleDesc, 0)))
}

func TestOpportunitiesMissingDatesLast(t *testing.T) {
	in := []types.Opportunity{
		{OppID: "nil1"},
		{OppID: "mar", DueDate: day("2025-03-01"), PostDate: day("2024-03-01")},
		{OppID: "nil2"},
		{OppID: "jan", DueDate: day("2025-01-01"), PostDate: day("2024-01-01")},
	}

	tests := []struct {
		key  string
		want []string
	}{
		{DueAsc, []string{"jan", "mar", "nil1", "nil2"}},
		{DueDesc, []string{"mar", "jan", "nil1", "nil2"}},
		{PostedAsc, []string{"jan", "mar", "nil1", "nil2"}},
		{PostedDesc, []string{"mar", "jan", "nil1", "nil2"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, oppIDs(Opportunities(in, tt.key)))
		})
	}
}

func TestOpportunitiesByTitle(t *testing.T) {
	in := []types.Opportunity{{OppID: "1", Title: "b"}, {OppID: "2", Title: "A"}, {OppID: "3", Title: ""}}
	assert.Equal(t, []string{"3", "2", "1"}, oppIDs(Opportunities(in, TitleAsc)))
	assert.Equal(t, []string{"1", "2", "3"}, oppIDs(Opportunities(in, TitleDesc)))
	assert.Equal(t, []string{"3", "2", "1"}, oppIDs(Opportunities(in, "")))
}

func TestEmpty(t *testing.T) {
	assert.Empty(t, Experts(nil, NameAsc, 0))
	assert.Empty(t, Opportunities(nil, DueAsc))
	assert.Empty(t, Publications(nil, YearDesc, 0))
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(OpportunityKeys, DueDesc))
	assert.False(t, Known(ExpertKeys, DueDesc))
}
