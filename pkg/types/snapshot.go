// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"time"
)

// Snapshot is one complete, immutable load of the data directory. It is
// replaced wholesale on reload and never mutated after construction.
type Snapshot struct {
	Experts       []Expert
	Opportunities []Opportunity
	Agencies      []Agency

	// Similar maps an expert id to the ids of similar researchers.
	Similar map[string][]string

	// ExpertRaw and OpportunityRaw hold each list record's original JSON
	// object keyed by normalized id; merge overlays detail objects onto
	// them.
	ExpertRaw      map[string]json.RawMessage
	OpportunityRaw map[string]json.RawMessage

	// ExpertDetails and OpportunityDetails hold raw detail objects keyed
	// by normalized id.
	ExpertDetails      map[string]json.RawMessage
	OpportunityDetails map[string]json.RawMessage

	LoadedAt time.Time
}

// Empty returns a snapshot with no records.
func Empty() *Snapshot {
	return &Snapshot{
		Similar:            map[string][]string{},
		ExpertRaw:          map[string]json.RawMessage{},
		OpportunityRaw:     map[string]json.RawMessage{},
		ExpertDetails:      map[string]json.RawMessage{},
		OpportunityDetails: map[string]json.RawMessage{},
	}
}
