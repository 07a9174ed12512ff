// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"github.com/tidwall/gjson"

	"github.com/pdiddy/research-directory/internal/merge"
	"github.com/pdiddy/research-directory/pkg/types"
)

// DecodeExpert converts a raw expert object into the canonical shape,
// resolving legacy field names.
func DecodeExpert(obj gjson.Result) types.Expert {
	return types.Expert{
		ID:               key(first(obj, "id", "auid", "employee_id")),
		Name:             str(obj.Get("name")),
		Title:            str(obj.Get("title")),
		College:          str(obj.Get("college")),
		Department:       str(obj.Get("department")),
		Degree:           str(obj.Get("degree")),
		TotalCitations:   count(first(obj, "totalCitations", "total_citations")),
		CitationsPerYear: history(first(obj, "citationsPerYear", "citation_per_year")),
		PublicationCount: count(first(obj, "publicationCount", "publication_count")),
		KeywordCount:     count(first(obj, "keywordCount", "keyword_count")),
	}
}

// DecodePublication converts a raw publication object.
func DecodePublication(obj gjson.Result) types.Publication {
	return types.Publication{
		Title:            str(obj.Get("title")),
		PublicationDate:  str(obj.Get("publication_date")),
		Link:             str(obj.Get("link")),
		TotalCitations:   count(first(obj, "total_citations", "totalCitations")),
		CitationsPerYear: history(first(obj, "citation_per_year", "citationsPerYear")),
		AuthorsDisplay:   str(obj.Get("authors_display")),
		PublishedIn:      str(obj.Get("published_in")),
	}
}

// DecodeExpertProfile converts a merged expert object (list record overlaid
// with its detail record). id is used when the merged object has none,
// since detail documents are keyed externally.
func DecodeExpertProfile(raw []byte, id string) types.ExpertProfile {
	obj := gjson.ParseBytes(raw)
	prof := types.ExpertProfile{
		Expert:       DecodeExpert(obj),
		Expertise:    strs(obj.Get("expertise")),
		Keywords:     strs(obj.Get("keywords")),
		Publications: []types.Publication{},
	}
	if prof.ID == "" {
		prof.ID = merge.NormalizeKey(id)
	}
	obj.Get("publications").ForEach(func(_, p gjson.Result) bool {
		if p.IsObject() {
			prof.Publications = append(prof.Publications, DecodePublication(p))
		}
		return true
	})
	return prof
}

// DecodeOpportunity converts a raw opportunity object. Description and URL
// are populated only when the object carries them, which is the case for
// merged records.
func DecodeOpportunity(obj gjson.Result) types.Opportunity {
	o := types.Opportunity{
		OppID:            key(first(obj, "opp_id", "id")),
		Title:            str(obj.Get("title")),
		Number:           str(obj.Get("number")),
		PostDate:         date(obj.Get("post_date")),
		DueDate:          date(obj.Get("due_date")),
		AwardCeiling:     floatPtr(obj.Get("award_ceiling")),
		AwardFloor:       floatPtr(obj.Get("award_floor")),
		EstimatedFunding: floatPtr(obj.Get("estimated_funding")),
		AgencyID:         key(obj.Get("agency_id")),
		CategoryID:       key(obj.Get("category_id")),
		Eligibility:      eligibility(obj.Get("eligibility")),
	}
	if d := obj.Get("description"); present(d) {
		s := d.String()
		o.Description = &s
	}
	if u := str(obj.Get("url")); u != "" {
		o.URL = &u
	}
	return o
}

// DecodeAgency converts a raw agency node.
func DecodeAgency(obj gjson.Result) types.Agency {
	return types.Agency{
		ID:       key(obj.Get("id")),
		Name:     str(obj.Get("name")),
		ParentID: key(obj.Get("parent_id")),
	}
}
