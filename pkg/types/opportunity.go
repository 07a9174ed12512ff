// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Opportunity is a funding opportunity list record. Optional numeric and
// date fields are nil when the upstream value is absent or malformed.
type Opportunity struct {
	OppID  string `json:"opp_id" yaml:"opp_id"`
	Title  string `json:"title" yaml:"title"`
	Number string `json:"number,omitempty" yaml:"number,omitempty"`

	PostDate *time.Time `json:"post_date,omitempty" yaml:"post_date,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`

	AwardCeiling     *float64 `json:"award_ceiling,omitempty" yaml:"award_ceiling,omitempty"`
	AwardFloor       *float64 `json:"award_floor,omitempty" yaml:"award_floor,omitempty"`
	EstimatedFunding *float64 `json:"estimated_funding,omitempty" yaml:"estimated_funding,omitempty"`

	AgencyID   string `json:"agency_id,omitempty" yaml:"agency_id,omitempty"`
	CategoryID string `json:"category_id,omitempty" yaml:"category_id,omitempty"`

	// Eligibility lists applicant type names. Empty when the upstream
	// value is missing or cannot be parsed.
	Eligibility []string `json:"eligibility" yaml:"eligibility"`

	// Description and URL come from the detail document and are only
	// populated on a merged record.
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         *string `json:"url,omitempty" yaml:"url,omitempty"`
}

// FundingValue returns the value compared against funding bounds: the
// award ceiling, falling back to estimated funding.
func (o Opportunity) FundingValue() (float64, bool) {
	if o.AwardCeiling != nil {
		return *o.AwardCeiling, true
	}
	if o.EstimatedFunding != nil {
		return *o.EstimatedFunding, true
	}
	return 0, false
}

// IsOpen reports whether the opportunity accepts applications at now.
// An opportunity without a due date is always open.
func (o Opportunity) IsOpen(now time.Time) bool {
	return o.DueDate == nil || !o.DueDate.Before(now)
}

// Agency is a node in the funding-agency forest. ParentID is empty for
// roots.
type Agency struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
}
