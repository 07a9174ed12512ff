// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the canonical records shared by the directory's
// ingest, filter, sort, and query stages. Upstream field-name variants are
// resolved by internal/ingest before any value reaches these types.
package types

// YearCount is the number of citations a record received in one year.
type YearCount struct {
	Year      int `json:"year" yaml:"year"`
	Citations int `json:"citations" yaml:"citations"`
}

// CitationHistory is a year-keyed citation breakdown. Order is not
// significant; the sum need not equal the lifetime total because upstream
// data may be incomplete.
type CitationHistory []YearCount

// Expert is the lightweight list record used for browsing and filtering.
type Expert struct {
	// ID is the researcher identifier (employee auid).
	ID string `json:"id" yaml:"id"`

	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title" yaml:"title"`
	College    string `json:"college" yaml:"college"`
	Department string `json:"department" yaml:"department"`
	Degree     string `json:"degree" yaml:"degree"`

	// TotalCitations is the lifetime citation count.
	TotalCitations int `json:"totalCitations" yaml:"total_citations"`

	// CitationsPerYear holds the per-year breakdown, possibly incomplete.
	CitationsPerYear CitationHistory `json:"citationsPerYear" yaml:"citations_per_year"`

	PublicationCount int `json:"publicationCount" yaml:"publication_count"`
	KeywordCount     int `json:"keywordCount" yaml:"keyword_count"`
}

// LifetimeCitations returns the lifetime citation total.
func (e Expert) LifetimeCitations() int { return e.TotalCitations }

// YearlyCitations returns the per-year citation breakdown.
func (e Expert) YearlyCitations() CitationHistory { return e.CitationsPerYear }

// Publication is a paper attached to an expert's detail record.
type Publication struct {
	Title string `json:"title" yaml:"title"`

	// PublicationDate is an ISO date string (YYYY-MM-DD). Empty when unknown.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Link is the external URL. Empty when unknown.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	TotalCitations   int             `json:"total_citations" yaml:"total_citations"`
	CitationsPerYear CitationHistory `json:"citation_per_year" yaml:"citation_per_year"`

	// AuthorsDisplay is the display-formatted author string.
	AuthorsDisplay string `json:"authors_display,omitempty" yaml:"authors_display,omitempty"`

	// PublishedIn is the venue or journal name.
	PublishedIn string `json:"published_in,omitempty" yaml:"published_in,omitempty"`
}

// LifetimeCitations returns the lifetime citation total.
func (p Publication) LifetimeCitations() int { return p.TotalCitations }

// YearlyCitations returns the per-year citation breakdown.
func (p Publication) YearlyCitations() CitationHistory { return p.CitationsPerYear }

// ExpertProfile is an expert list record merged with its detail record.
type ExpertProfile struct {
	Expert

	Expertise    []string      `json:"expertise" yaml:"expertise"`
	Keywords     []string      `json:"keywords" yaml:"keywords"`
	Publications []Publication `json:"publications" yaml:"publications"`

	// SimilarIDs lists researcher ids with similar profiles.
	SimilarIDs []string `json:"similar,omitempty" yaml:"similar,omitempty"`
}
