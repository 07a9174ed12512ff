// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package order sorts experts, publications, and opportunities by a named
// key. Sorts are stable and always return a new slice. An unrecognized key
// falls back to ascending name (or title) order.
package order

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pdiddy/research-directory/internal/citation"
	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/pkg/types"
)

// Sort keys.
const (
	NameAsc      = "name_asc"
	Citations    = "citations"
	YearDesc     = "year_desc"
	YearAsc      = "year_asc"
	MostPubs     = "publications"
	MostKeywords = "keywords"
	DueAsc       = "due_asc"
	DueDesc      = "due_desc"
	PostedAsc    = "posted_asc"
	PostedDesc   = "posted_desc"
	TitleAsc     = "title_asc"
	TitleDesc    = "title_desc"
)

// ExpertKeys, PublicationKeys and OpportunityKeys list the keys each sort
// recognizes, in the order they are offered to users.
var (
	ExpertKeys      = []string{NameAsc, Citations, MostPubs, MostKeywords}
	PublicationKeys = []string{YearDesc, YearAsc, Citations, TitleAsc, TitleDesc}
	OpportunityKeys = []string{DueAsc, DueDesc, PostedDesc, PostedAsc, TitleAsc, TitleDesc}
)

// newCollator returns an English, case-insensitive collator. Collators are
// not safe for concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// Experts returns records sorted by key. recencyYear sets the citation
// window for the citations key.
func Experts(records []types.Expert, key string, recencyYear int) []types.Expert {
	out := slices.Clone(records)
	switch key {
	case Citations:
		slices.SortStableFunc(out, func(a, b types.Expert) int {
			return cmp.Compare(citation.Since(b, recencyYear), citation.Since(a, recencyYear))
		})
	case MostPubs:
		slices.SortStableFunc(out, func(a, b types.Expert) int {
			return cmp.Compare(b.PublicationCount, a.PublicationCount)
		})
	case MostKeywords:
		slices.SortStableFunc(out, func(a, b types.Expert) int {
			return cmp.Compare(b.KeywordCount, a.KeywordCount)
		})
	default:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b types.Expert) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// Publications returns records sorted by key.
func Publications(records []types.Publication, key string, recencyYear int) []types.Publication {
	out := slices.Clone(records)
	switch key {
	case Citations:
		slices.SortStableFunc(out, func(a, b types.Publication) int {
			return cmp.Compare(citation.Since(b, recencyYear), citation.Since(a, recencyYear))
		})
	case YearDesc, YearAsc:
		desc := key == YearDesc
		slices.SortStableFunc(out, func(a, b types.Publication) int {
			return compareDates(ingest.ParseDate(a.PublicationDate), ingest.ParseDate(b.PublicationDate), desc)
		})
	case TitleDesc:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b types.Publication) int {
			return c.CompareString(b.Title, a.Title)
		})
	default:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b types.Publication) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
	return out
}

// Opportunities returns records sorted by key. Records without the sorted
// date come last in both directions.
func Opportunities(records []types.Opportunity, key string) []types.Opportunity {
	out := slices.Clone(records)
	switch key {
	case DueAsc, DueDesc:
		desc := key == DueDesc
		slices.SortStableFunc(out, func(a, b types.Opportunity) int {
			return compareDates(a.DueDate, b.DueDate, desc)
		})
	case PostedAsc, PostedDesc:
		desc := key == PostedDesc
		slices.SortStableFunc(out, func(a, b types.Opportunity) int {
			return compareDates(a.PostDate, b.PostDate, desc)
		})
	case TitleDesc:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b types.Opportunity) int {
			return c.CompareString(b.Title, a.Title)
		})
	default:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b types.Opportunity) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
	return out
}

// compareDates orders present dates by direction and places nil after
// every present date. Two nils compare equal.
func compareDates(a, b *time.Time, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return b.Compare(*a)
	default:
		return a.Compare(*b)
	}
}

// Known reports whether key is one of keys.
func Known(keys []string, key string) bool {
	return slices.Contains(keys, key)
}
