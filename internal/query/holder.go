// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"sync/atomic"

	"github.com/pdiddy/research-directory/internal/agency"
	"github.com/pdiddy/research-directory/pkg/types"
)

// State is a snapshot together with the agency index built from it.
type State struct {
	Snapshot *types.Snapshot
	Agencies *agency.Index
}

// NewState indexes snap's agencies. A nil snap is treated as empty.
func NewState(snap *types.Snapshot) *State {
	if snap == nil {
		snap = types.Empty()
	}
	return &State{Snapshot: snap, Agencies: agency.New(snap.Agencies)}
}

// Holder owns the current state. Readers call Load once per query and use
// the returned value throughout; a reload replaces it with Swap.
type Holder struct {
	cur atomic.Pointer[State]
}

// NewHolder returns a holder publishing snap.
func NewHolder(snap *types.Snapshot) *Holder {
	h := &Holder{}
	h.cur.Store(NewState(snap))
	return h
}

// Load returns the current state.
func (h *Holder) Load() *State { return h.cur.Load() }

// Swap publishes snap and returns the state it replaced.
func (h *Holder) Swap(snap *types.Snapshot) *State {
	return h.cur.Swap(NewState(snap))
}
