// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agency indexes the funding-agency forest and answers subtree
// queries used to scope opportunity filtering and aggregate sidebar counts.
package agency

import (
	"sort"
	"sync"

	"github.com/pdiddy/research-directory/pkg/types"
)

// Index is a parent/child adjacency structure over agency nodes. It is
// immutable after New except for the descendant cache, which is safe for
// concurrent use.
type Index struct {
	nodes    map[string]types.Agency
	order    []string
	parent   map[string]string
	children map[string][]string

	mu    sync.RWMutex
	cache map[string]map[string]struct{}
}

// New builds an Index from a flat node list. A node whose parent id is
// empty or refers to an unknown node is a root. Duplicate ids keep the
// first occurrence.
func New(agencies []types.Agency) *Index {
	idx := &Index{
		nodes:    make(map[string]types.Agency, len(agencies)),
		parent:   make(map[string]string),
		children: make(map[string][]string),
		cache:    make(map[string]map[string]struct{}),
	}
	for _, a := range agencies {
		if a.ID == "" {
			continue
		}
		if _, dup := idx.nodes[a.ID]; dup {
			continue
		}
		idx.nodes[a.ID] = a
		idx.order = append(idx.order, a.ID)
	}
	for _, id := range idx.order {
		p := idx.nodes[id].ParentID
		if p == "" || p == id {
			continue
		}
		if _, ok := idx.nodes[p]; !ok {
			continue
		}
		idx.parent[id] = p
		idx.children[p] = append(idx.children[p], id)
	}
	return idx
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int { return len(x.order) }

// Name returns the display name of id, or "" if unknown.
func (x *Index) Name(id string) string { return x.nodes[id].Name }

// Has reports whether id is an indexed node.
func (x *Index) Has(id string) bool {
	_, ok := x.nodes[id]
	return ok
}

// ParentOf returns the direct parent of id. The second result is false
// for roots and unknown ids.
func (x *Index) ParentOf(id string) (string, bool) {
	p, ok := x.parent[id]
	return p, ok
}

// ChildrenOf returns the direct children of id.
func (x *Index) ChildrenOf(id string) []string {
	return append([]string(nil), x.children[id]...)
}

// Roots returns every node without a known parent, in input order.
func (x *Index) Roots() []string {
	var roots []string
	for _, id := range x.order {
		if _, ok := x.parent[id]; !ok {
			roots = append(roots, id)
		}
	}
	return roots
}

// DescendantsInclusive returns id plus every node reachable through
// ChildrenOf. Each node appears once even if the input contains a cycle.
// The returned set is shared with the cache and must not be modified.
func (x *Index) DescendantsInclusive(id string) map[string]struct{} {
	x.mu.RLock()
	set, ok := x.cache[id]
	x.mu.RUnlock()
	if ok {
		return set
	}

	set = map[string]struct{}{id: {}}
	stack := []string{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range x.children[n] {
			if _, seen := set[c]; seen {
				continue
			}
			set[c] = struct{}{}
			stack = append(stack, c)
		}
	}

	x.mu.Lock()
	x.cache[id] = set
	x.mu.Unlock()
	return set
}

// Scope returns the agency ids an opportunity must belong to when id is
// selected. An empty id means no agency constraint and yields nil.
func (x *Index) Scope(id string) map[string]struct{} {
	if id == "" {
		return nil
	}
	return x.DescendantsInclusive(id)
}

// AggregateCount sums direct[n] over every n in DescendantsInclusive(id).
func (x *Index) AggregateCount(id string, direct map[string]int) int {
	total := 0
	for n := range x.DescendantsInclusive(id) {
		total += direct[n]
	}
	return total
}

// Node is one entry of the agency tree with direct and subtree counts.
type Node struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Direct    int    `json:"direct" yaml:"direct"`
	Aggregate int    `json:"aggregate" yaml:"aggregate"`
	Children  []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree returns the forest annotated with counts from direct. Ids that
// appear in direct but not in the index become leaf roots named by their
// id, so opportunities load correctly before agency names are known.
// Siblings are ordered by aggregate count descending, then name.
func (x *Index) Tree(direct map[string]int) []Node {
	seen := make(map[string]struct{}, len(x.order))
	var roots []Node
	for _, id := range x.Roots() {
		roots = append(roots, x.buildNode(id, direct, seen))
	}
	// Nodes only reachable through a cycle have no root; surface them.
	for _, id := range x.order {
		if _, ok := seen[id]; !ok {
			roots = append(roots, x.buildNode(id, direct, seen))
		}
	}
	for id, n := range direct {
		if _, ok := x.nodes[id]; ok || id == "" {
			continue
		}
		roots = append(roots, Node{ID: id, Name: id, Direct: n, Aggregate: n})
	}
	sortNodes(roots)
	return roots
}

func (x *Index) buildNode(id string, direct map[string]int, seen map[string]struct{}) Node {
	seen[id] = struct{}{}
	n := Node{
		ID:        id,
		Name:      x.nodes[id].Name,
		Direct:    direct[id],
		Aggregate: x.AggregateCount(id, direct),
	}
	if n.Name == "" {
		n.Name = id
	}
	for _, c := range x.children[id] {
		if _, ok := seen[c]; ok {
			continue
		}
		n.Children = append(n.Children, x.buildNode(c, direct, seen))
	}
	sortNodes(n.Children)
	return n
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Aggregate != nodes[j].Aggregate {
			return nodes[i].Aggregate > nodes[j].Aggregate
		}
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
}
