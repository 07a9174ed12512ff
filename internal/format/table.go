// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/internal/citation"
	"github.com/pdiddy/research-directory/pkg/types"
)

func footer(w io.Writer, shown, total int, noun string) {
	fmt.Fprintf(w, "\n%d of %d %s", shown, total, noun)
	if shown < total {
		fmt.Fprint(w, " (use --limit or --offset for more)")
	}
	fmt.Fprintln(w)
}

// ExpertsTable writes experts as a table. Citations are counted from
// recencyYear.
func ExpertsTable(experts []types.Expert, total, recencyYear int, w io.Writer) {
	if len(experts) == 0 {
		fmt.Fprintln(w, "No experts match your filters.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-28s  %-24s  %-24s  %-6s  %9s  %4s\n",
		"ID", "Name", "College", "Department", "Degree", "Citations", "Pubs")
	fmt.Fprintln(w, strings.Repeat("-", 117))
	for _, e := range experts {
		fmt.Fprintf(w, "%-10s  %-28s  %-24s  %-24s  %-6s  %9d  %4d\n",
			truncate(e.ID, 10), truncate(e.Name, 28), truncate(e.College, 24),
			truncate(e.Department, 24), truncate(e.Degree, 6),
			citation.Since(e, recencyYear), e.PublicationCount)
	}
	footer(w, len(experts), total, "experts")
}

// PublicationsTable writes publications as a table.
func PublicationsTable(pubs []types.Publication, total, recencyYear int, w io.Writer) {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "No publications match your filters.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-60s  %-24s  %9s\n", "Date", "Title", "Venue", "Citations")
	fmt.Fprintln(w, strings.Repeat("-", 109))
	for _, p := range pubs {
		date := p.PublicationDate
		if len(date) > 10 {
			date = date[:10]
		}
		fmt.Fprintf(w, "%-10s  %-60s  %-24s  %9d\n",
			date, truncate(p.Title, 60), truncate(p.PublishedIn, 24), citation.Since(p, recencyYear))
	}
	footer(w, len(pubs), total, "publications")
}

// OpportunitiesTable writes opportunities as a table. names maps agency ids
// to display names; unknown ids are shown as-is.
func OpportunitiesTable(opps []types.Opportunity, total int, names func(string) string, w io.Writer) {
	if len(opps) == 0 {
		fmt.Fprintln(w, "No opportunities match your filters.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-50s  %-20s  %-12s  %-12s  %14s\n",
		"ID", "Title", "Agency", "Posted", "Due", "Award Ceiling")
	fmt.Fprintln(w, strings.Repeat("-", 128))
	for _, o := range opps {
		ag := o.AgencyID
		if names != nil {
			if n := names(o.AgencyID); n != "" {
				ag = n
			}
		}
		fmt.Fprintf(w, "%-8s  %-50s  %-20s  %-12s  %-12s  %14s\n",
			truncate(o.OppID, 8), truncate(o.Title, 50), truncate(ag, 20),
			Date(o.PostDate), Date(o.DueDate), Money(o.AwardCeiling))
	}
	footer(w, len(opps), total, "open opportunities")
}

// AgencyTree writes the agency forest as an indented outline with
// aggregate counts.
func AgencyTree(nodes []agency.Node, w io.Writer) {
	if len(nodes) == 0 {
		fmt.Fprintln(w, "No agencies.")
		return
	}
	var walk func(ns []agency.Node, depth int)
	walk = func(ns []agency.Node, depth int) {
		for _, n := range ns {
			fmt.Fprintf(w, "%s%s (%d)\n", strings.Repeat("  ", depth), n.Name, n.Aggregate)
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
}

// ProfileText writes an expert profile header followed by expertise and
// keywords.
func ProfileText(p types.ExpertProfile, recencyYear int, w io.Writer) {
	fmt.Fprintf(w, "%s\n", p.Name)
	for _, line := range []struct{ label, value string }{
		{"Title", p.Title},
		{"College", p.College},
		{"Department", p.Department},
		{"Degree", p.Degree},
	} {
		if line.value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", line.label+":", line.value)
		}
	}
	fmt.Fprintf(w, "  %-12s %d\n", "Citations:", citation.Since(p, recencyYear))
	fmt.Fprintf(w, "  %-12s %d\n", "Publications:", len(p.Publications))
	if len(p.Expertise) > 0 {
		fmt.Fprintf(w, "  %-12s %s\n", "Expertise:", strings.Join(p.Expertise, ", "))
	}
	if len(p.Keywords) > 0 {
		fmt.Fprintf(w, "  %-12s %s\n", "Keywords:", strings.Join(p.Keywords, ", "))
	}
	if len(p.SimilarIDs) > 0 {
		fmt.Fprintf(w, "  %-12s %s\n", "Similar:", strings.Join(p.SimilarIDs, ", "))
	}
}

// OpportunityText writes a merged opportunity as labeled lines with the
// description flattened to plain text.
func OpportunityText(o types.Opportunity, agencyName string, w io.Writer) {
	fmt.Fprintf(w, "%s\n", o.Title)
	if agencyName == "" {
		agencyName = o.AgencyID
	}
	rows := []struct{ label, value string }{
		{"Number", o.Number},
		{"Agency", agencyName},
		{"Posted", Date(o.PostDate)},
		{"Due", Date(o.DueDate)},
		{"Ceiling", Money(o.AwardCeiling)},
		{"Floor", Money(o.AwardFloor)},
		{"Estimated", Money(o.EstimatedFunding)},
	}
	if len(o.Eligibility) > 0 {
		rows = append(rows, struct{ label, value string }{"Eligibility", strings.Join(o.Eligibility, "; ")})
	}
	if o.URL != nil {
		rows = append(rows, struct{ label, value string }{"URL", *o.URL})
	}
	for _, r := range rows {
		if r.value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", r.label+":", r.value)
		}
	}
	if o.Description != nil {
		if text := Description(*o.Description); text != "" {
			fmt.Fprintf(w, "\n%s\n", text)
		}
	}
}
