// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/pkg/types"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  ", ""},
		{"plain", "Plain text.", "Plain text."},
		{"block boundaries", "<p>First</p><p>Second</p>", "First Second"},
		{"line breaks", "one<br>two<br/>three", "one two three"},
		{"entities", "R&amp;D &lt;funds&gt;", "R&D <funds>"},
		{"jammed sentences", "<div>Due this year.Next cycle opens!Apply</div>", "Due this year. Next cycle opens! Apply"},
		{"script dropped", "<p>Keep</p><script>var x = 1;</script><style>p{}</style>", "Keep"},
		{"whitespace collapsed", "<ul><li>a\n\n</li><li>  b</li></ul>", "a b"},
		{"inline tags join", "<b>bold</b>face", "boldface"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.in))
		})
	}
}

func TestMoney(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	assert.Equal(t, "N/A", Money(nil))
	assert.Equal(t, "$0", Money(v(0)))
	assert.Equal(t, "$1,500,000", Money(v(1500000)))
	assert.Equal(t, "$1,000", Money(v(999.6)))
	assert.Equal(t, "-$2,500", Money(v(-2500)))
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 15, 2025", Date(&d))
	assert.Equal(t, "N/A", Date(nil))
}

func TestExpertsTable(t *testing.T) {
	var buf bytes.Buffer
	ExpertsTable([]types.Expert{
		{ID: "a", Name: "Ann", College: "Medicine", TotalCitations: 10,
			CitationsPerYear: types.CitationHistory{{Year: 2021, Citations: 6}}},
	}, 3, 2021, &buf)

	out := buf.String()
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Citations")
	assert.Contains(t, out, "1 of 3 experts")
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[2], " "), "6     0"), "windowed citations shown: %q", lines[2])

	buf.Reset()
	ExpertsTable(nil, 0, 0, &buf)
	assert.Equal(t, "No experts match your filters.\n", buf.String())
}

func TestOpportunitiesTable(t *testing.T) {
	ceiling := 250000.0
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	OpportunitiesTable([]types.Opportunity{
		{OppID: "7", Title: "Cancer Research", AgencyID: "2", DueDate: &due, AwardCeiling: &ceiling},
		{OppID: "8", Title: "Unknown agency", AgencyID: "99"},
	}, 2, func(id string) string {
		if id == "2" {
			return "NIH"
		}
		return ""
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "NIH")
	assert.Contains(t, out, "99")
	assert.Contains(t, out, "Jul 1, 2025")
	assert.Contains(t, out, "$250,000")
	assert.Contains(t, out, "2 of 2 open opportunities\n")
}

func TestAgencyTree(t *testing.T) {
	var buf bytes.Buffer
	AgencyTree([]agency.Node{
		{ID: "1", Name: "HHS", Aggregate: 3, Children: []agency.Node{{ID: "2", Name: "NIH", Aggregate: 2}}},
	}, &buf)
	assert.Equal(t, "HHS (3)\n  NIH (2)\n", buf.String())
}

func TestOpportunityText(t *testing.T) {
	desc := "<p>Supports labs.</p><p>Apply early.</p>"
	url := "https://example.org/7"
	var buf bytes.Buffer
	OpportunityText(types.Opportunity{
		Title: "Cancer Research", Number: "RFA-1", AgencyID: "2",
		Eligibility: []string{"Nonprofits", "Universities"},
		Description: &desc, URL: &url,
	}, "NIH", &buf)

	out := buf.String()
	assert.Contains(t, out, "Agency:      NIH")
	assert.Contains(t, out, "Eligibility: Nonprofits; Universities")
	assert.Contains(t, out, "Due:         N/A")
	assert.Contains(t, out, "\nSupports labs. Apply early.\n")
}

func TestStructured(t *testing.T) {
	v := map[string]int{"a": 1}

	var buf bytes.Buffer
	require.NoError(t, Structured(JSON, v, &buf))
	assert.JSONEq(t, `{"a":1}`, buf.String())

	buf.Reset()
	require.NoError(t, Structured(YAML, v, &buf))
	assert.Equal(t, "a: 1\n", buf.String())

	assert.Error(t, Structured("xml", v, &buf))
}

func TestWriteCSL(t *testing.T) {
	pubs := []types.Publication{
		{
			Title:           "Tumor Growth",
			PublicationDate: "2021-05-04",
			Link:            "https://doi.org/10.1000/xyz",
			AuthorsDisplay:  "Ann Lee, Ben Park, Plato",
			PublishedIn:     "Cancer Cell",
		},
		{Title: "Undated"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSL("a", pubs, &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "a-1", first.ID)
	assert.Equal(t, "article-journal", first.Type)
	assert.Equal(t, "Cancer Cell", first.ContainerTitle)
	assert.Equal(t, "10.1000/xyz", first.DOI)
	require.NotNil(t, first.Issued)
	assert.Equal(t, [][]int{{2021, 5, 4}}, first.Issued.DateParts)
	assert.Equal(t, []CSLName{
		{Given: "Ann", Family: "Lee"},
		{Given: "Ben", Family: "Park"},
		{Literal: "Plato"},
	}, first.Author)

	assert.Nil(t, items[1].Issued)
	assert.Empty(t, items[1].Author)
}

func TestSplitAuthorsSemicolons(t *testing.T) {
	assert.Equal(t, []string{"Lee, Ann", "Park, Ben"}, splitAuthors("Lee, Ann; and Park, Ben"))
	assert.Nil(t, splitAuthors(" "))
}
