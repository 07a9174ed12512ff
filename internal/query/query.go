// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query runs the filter-then-sort-then-window pipeline over a
// snapshot and resolves single-record detail views by merging list and
// detail records on demand.
package query

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/internal/filter"
	"github.com/pdiddy/research-directory/internal/ingest"
	"github.com/pdiddy/research-directory/internal/merge"
	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/pkg/types"
)

// DefaultLimit is the "load more" window size.
const DefaultLimit = 24

// ErrNotFound is returned when a detail view names an unknown id.
var ErrNotFound = errors.New("record not found")

// Window selects a slice of a sorted result. A zero Limit means
// DefaultLimit; "load more" grows Limit by one page.
type Window struct {
	Offset int `json:"offset" yaml:"offset"`
	Limit  int `json:"limit" yaml:"limit"`
}

// Result is one windowed page of a query.
type Result[T any] struct {
	// Total counts every match before windowing.
	Total   int  `json:"total" yaml:"total"`
	Items   []T  `json:"items" yaml:"items"`
	HasMore bool `json:"has_more" yaml:"has_more"`
}

func window[T any](all []T, w Window) Result[T] {
	limit := w.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	start := min(max(w.Offset, 0), len(all))
	end := len(all)
	if limit < end-start {
		end = start + limit
	}
	return Result[T]{
		Total:   len(all),
		Items:   all[start:end:end],
		HasMore: end < len(all),
	}
}

// ExpertRequest is a browse query over experts.
type ExpertRequest struct {
	filter.ExpertCriteria
	Sort string
	Window
}

// Experts filters, sorts, and windows the snapshot's experts. The default
// sort is by name.
func Experts(snap *types.Snapshot, req ExpertRequest) Result[types.Expert] {
	if snap == nil {
		return window([]types.Expert{}, req.Window)
	}
	matched := filter.Experts(snap.Experts, req.ExpertCriteria)
	return window(order.Experts(matched, req.Sort, req.RecencyYear), req.Window)
}

// PublicationRequest is a query over one expert's publications.
type PublicationRequest struct {
	filter.PublicationCriteria
	Sort string
	Window
}

// Publications filters, sorts, and windows a profile's publications. The
// default sort is newest first.
func Publications(profile types.ExpertProfile, req PublicationRequest) Result[types.Publication] {
	key := req.Sort
	if key == "" {
		key = order.YearDesc
	}
	matched := filter.Publications(profile.Publications, req.PublicationCriteria)
	return window(order.Publications(matched, key, req.RecencyYear), req.Window)
}

// OpportunityRequest is a browse query over open opportunities. Agency
// selects an agency and all of its descendants; Bucket, when non-zero,
// replaces the funding bounds with a preset from filter.FundingBuckets.
type OpportunityRequest struct {
	filter.OpportunityCriteria
	Agency string
	Bucket int
	Sort   string
	Window
}

// Opportunities filters, sorts, and windows open opportunities. The
// default sort is soonest due first. idx may be nil, in which case an
// agency selection matches that agency id alone.
func Opportunities(snap *types.Snapshot, idx *agency.Index, req OpportunityRequest) Result[types.Opportunity] {
	if snap == nil {
		return window([]types.Opportunity{}, req.Window)
	}
	c := req.OpportunityCriteria
	if req.Agency != "" {
		if idx != nil {
			c.AgencyScope = idx.Scope(req.Agency)
		} else {
			c.AgencyScope = map[string]struct{}{req.Agency: {}}
		}
	}
	if b, ok := filter.Bucket(req.Bucket); ok && req.Bucket > 0 {
		c.FundingMin, c.FundingMax = b.Min, b.Max
	}
	key := req.Sort
	if key == "" {
		key = order.DueAsc
	}
	return window(order.Opportunities(filter.Opportunities(snap.Opportunities, c), key), req.Window)
}

// OpportunityDetail returns the opportunity list record merged with its
// detail record. Only this record is merged.
func OpportunityDetail(snap *types.Snapshot, id string) (types.Opportunity, error) {
	if snap == nil {
		return types.Opportunity{}, ErrNotFound
	}
	key := merge.NormalizeKey(id)
	list, ok := snap.OpportunityRaw[key]
	if !ok {
		return types.Opportunity{}, ErrNotFound
	}
	merged := merge.Lookup(list, snap.OpportunityDetails, key)
	o := ingest.DecodeOpportunity(gjson.ParseBytes(merged))
	if o.OppID == "" {
		o.OppID = key
	}
	return o, nil
}

// ExpertProfile returns the expert list record merged with its detail
// record and the ids of similar researchers that exist in the snapshot.
func ExpertProfile(snap *types.Snapshot, id string) (types.ExpertProfile, error) {
	if snap == nil {
		return types.ExpertProfile{}, ErrNotFound
	}
	key := merge.NormalizeKey(id)
	list, ok := snap.ExpertRaw[key]
	if !ok {
		return types.ExpertProfile{}, ErrNotFound
	}
	prof := ingest.DecodeExpertProfile(merge.Lookup(list, snap.ExpertDetails, key), key)

	seen := map[string]struct{}{prof.ID: {}}
	for _, sid := range snap.Similar[key] {
		if _, dup := seen[sid]; dup {
			continue
		}
		seen[sid] = struct{}{}
		if _, known := snap.ExpertRaw[sid]; known {
			prof.SimilarIDs = append(prof.SimilarIDs, sid)
		}
	}
	return prof, nil
}
