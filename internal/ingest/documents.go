// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/research-directory/internal/merge"
	"github.com/pdiddy/research-directory/pkg/types"
)

var (
	// ErrNotArray is returned when a list document is not a JSON array.
	ErrNotArray = errors.New("document must be a JSON array")

	// ErrNotObject is returned when a keyed document is not a JSON object.
	ErrNotObject = errors.New("document must be a JSON object")

	// ErrInvalidJSON is returned when a document does not parse as JSON.
	ErrInvalidJSON = errors.New("document is not valid JSON")
)

func parseRoot(doc []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(doc) {
		return gjson.Result{}, ErrInvalidJSON
	}
	return gjson.ParseBytes(doc), nil
}

// ParseExperts decodes the experts list document. It also returns each
// element's raw object keyed by id for later merging. Elements that are
// not objects are skipped.
func ParseExperts(doc []byte) ([]types.Expert, map[string]json.RawMessage, error) {
	root, err := parseRoot(doc)
	if err != nil {
		return nil, nil, err
	}
	if !root.IsArray() {
		return nil, nil, ErrNotArray
	}

	var experts []types.Expert
	raw := make(map[string]json.RawMessage)
	root.ForEach(func(_, elem gjson.Result) bool {
		if !elem.IsObject() {
			return true
		}
		e := DecodeExpert(elem)
		experts = append(experts, e)
		if e.ID != "" {
			raw[e.ID] = json.RawMessage(elem.Raw)
		}
		return true
	})
	return experts, raw, nil
}

// ParseOpportunities decodes the opportunities list document, returning
// raw objects keyed by opp_id alongside the canonical records.
func ParseOpportunities(doc []byte) ([]types.Opportunity, map[string]json.RawMessage, error) {
	root, err := parseRoot(doc)
	if err != nil {
		return nil, nil, err
	}
	if !root.IsArray() {
		return nil, nil, ErrNotArray
	}

	var opps []types.Opportunity
	raw := make(map[string]json.RawMessage)
	root.ForEach(func(_, elem gjson.Result) bool {
		if !elem.IsObject() {
			return true
		}
		o := DecodeOpportunity(elem)
		opps = append(opps, o)
		if o.OppID != "" {
			raw[o.OppID] = json.RawMessage(elem.Raw)
		}
		return true
	})
	return opps, raw, nil
}

// ParseAgencies decodes the agency node list.
func ParseAgencies(doc []byte) ([]types.Agency, error) {
	root, err := parseRoot(doc)
	if err != nil {
		return nil, err
	}
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	var agencies []types.Agency
	root.ForEach(func(_, elem gjson.Result) bool {
		if elem.IsObject() {
			if a := DecodeAgency(elem); a.ID != "" {
				agencies = append(agencies, a)
			}
		}
		return true
	})
	return agencies, nil
}

// ParseSimilar decodes the similar-profiles document: an object mapping an
// expert id to an array of similar expert ids.
func ParseSimilar(doc []byte) (map[string][]string, error) {
	root, err := parseRoot(doc)
	if err != nil {
		return nil, err
	}
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	similar := make(map[string][]string)
	root.ForEach(func(k, v gjson.Result) bool {
		id := merge.NormalizeKey(k.String())
		if ids := strs(v); id != "" && len(ids) > 0 {
			similar[id] = ids
		}
		return true
	})
	return similar, nil
}

// ParseDetails indexes a detail document (array or keyed object) by the
// normalized value of keyField.
func ParseDetails(doc []byte, keyField string) (map[string]json.RawMessage, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}
	return merge.NewIndex(doc, keyField)
}
