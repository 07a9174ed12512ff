// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-directory/pkg/types"
)

func chain() []types.Agency {
	return []types.Agency{
		{ID: "1", Name: "HHS"},
		{ID: "2", Name: "NIH", ParentID: "1"},
		{ID: "3", Name: "NCI", ParentID: "2"},
	}
}

func set(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestDescendantsInclusive(t *testing.T) {
	idx := New(chain())

	assert.Equal(t, set("1", "2", "3"), idx.DescendantsInclusive("1"))
	assert.Equal(t, set("2", "3"), idx.DescendantsInclusive("2"))
	assert.Equal(t, set("3"), idx.DescendantsInclusive("3"), "leaf yields only itself")
	assert.Equal(t, set("99"), idx.DescendantsInclusive("99"), "unknown id yields only itself")
}

func TestDescendantsInclusiveCycle(t *testing.T) {
	idx := New([]types.Agency{
		{ID: "a", ParentID: "c"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
		{ID: "d", ParentID: "d"},
	})

	assert.Equal(t, set("a", "b", "c"), idx.DescendantsInclusive("a"))
	assert.Equal(t, set("d"), idx.DescendantsInclusive("d"), "self parent is ignored")
}

func TestParentAndChildren(t *testing.T) {
	idx := New(append(chain(), types.Agency{ID: "4", Name: "Orphan", ParentID: "missing"}))

	p, ok := idx.ParentOf("3")
	assert.True(t, ok)
	assert.Equal(t, "2", p)

	_, ok = idx.ParentOf("1")
	assert.False(t, ok, "root has no parent")

	_, ok = idx.ParentOf("4")
	assert.False(t, ok, "dangling parent makes a root")

	_, ok = idx.ParentOf("unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"2"}, idx.ChildrenOf("1"))
	assert.Empty(t, idx.ChildrenOf("3"))
	assert.Equal(t, []string{"1", "4"}, idx.Roots())
}

func TestScope(t *testing.T) {
	idx := New(chain())
	assert.Nil(t, idx.Scope(""))
	assert.Equal(t, set("1", "2", "3"), idx.Scope("1"))
}

func TestAggregateCount(t *testing.T) {
	idx := New(chain())
	direct := map[string]int{"1": 1, "2": 2, "3": 4, "other": 8}

	assert.Equal(t, 7, idx.AggregateCount("1", direct))
	assert.Equal(t, 6, idx.AggregateCount("2", direct))
	assert.Equal(t, 4, idx.AggregateCount("3", direct))
}

func TestDescendantsCachedConcurrently(t *testing.T) {
	idx := New(chain())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, idx.DescendantsInclusive("1"), 3)
		}()
	}
	wg.Wait()
}

func TestTree(t *testing.T) {
	idx := New(append(chain(),
		types.Agency{ID: "5", Name: "NSF"},
		types.Agency{ID: "6", Name: "NIMH", ParentID: "2"},
	))
	direct := map[string]int{"3": 2, "6": 5, "5": 1, "77": 3}

	tree := idx.Tree(direct)
	require.Len(t, tree, 3)

	assert.Equal(t, "1", tree[0].ID)
	assert.Equal(t, 7, tree[0].Aggregate)
	require.Len(t, tree[0].Children, 1)
	nih := tree[0].Children[0]
	assert.Equal(t, "NIH", nih.Name)
	require.Len(t, nih.Children, 2)
	assert.Equal(t, "NIMH", nih.Children[0].Name, "larger subtree first")

	assert.Equal(t, "77", tree[1].ID, "unknown agency id becomes a named-by-id root")
	assert.Equal(t, "77", tree[1].Name)
	assert.Equal(t, "5", tree[2].ID)
}

func TestTreeCycleTerminates(t *testing.T) {
	idx := New([]types.Agency{{ID: "a", ParentID: "b"}, {ID: "b", ParentID: "a"}})
	tree := idx.Tree(map[string]int{"a": 1, "b": 1})

	count := 0
	var walk func([]Node)
	walk = func(ns []Node) {
		for _, n := range ns {
			count++
			walk(n.Children)
		}
	}
	walk(tree)
	assert.Equal(t, 2, count)
}
