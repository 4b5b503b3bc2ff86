package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"element-inspector/internal/domain/entity"
	"element-inspector/internal/infrastructure/tree/memory"
)

func roles(entries []entity.AncestorEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Facts.Role.OrZero())
	}
	return out
}

func TestWalkAncestors_StopsAtDocumentBoundary(t *testing.T) {
	_, walker := newPipeline(listTree())

	got := walker.WalkAncestors(context.Background(), "span", 10)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"listitem", "list"}, roles(got))
	assert.Equal(t, 1, got[0].Depth)
	assert.Equal(t, 2, got[1].Depth)
}

func TestWalkAncestors_MaxDepth(t *testing.T) {
	tree := memory.New()
	tree.Add("", &memory.Node{Ref: "n0", Role: entity.Some("group")})
	parent := entity.NodeRef("n0")
	for _, ref := range []entity.NodeRef{"n1", "n2", "n3", "n4", "n5"} {
		tree.Add(parent, &memory.Node{Ref: ref, Role: entity.Some("group")})
		parent = ref
	}
	_, walker := newPipeline(tree)

	for maxDepth := 0; maxDepth <= 7; maxDepth++ {
		got := walker.WalkAncestors(context.Background(), "n5", maxDepth)
		assert.LessOrEqual(t, len(got), maxDepth)
		for i, e := range got {
			assert.Equal(t, i+1, e.Depth)
		}
	}

	got := walker.WalkAncestors(context.Background(), "n5", 3)
	require.Len(t, got, 3)
	assert.Equal(t, entity.NodeRef("n4"), got[0].Facts.Ref)
	assert.Equal(t, entity.NodeRef("n2"), got[2].Facts.Ref)

	all := walker.WalkAncestors(context.Background(), "n5", 100)
	assert.Len(t, all, 5)
}

func TestWalkAncestors_DetachedNode(t *testing.T) {
	tree := memory.New()
	tree.Add("", &memory.Node{Ref: "alone", Role: entity.Some("button")})
	_, walker := newPipeline(tree)

	got := walker.WalkAncestors(context.Background(), "alone", 10)

	assert.Empty(t, got)
}

func TestWalkAncestors_CycleStops(t *testing.T) {
	tree := memory.New()
	tree.Add("", &memory.Node{Ref: "a", Role: entity.Some("group")})
	tree.Add("a", &memory.Node{Ref: "b", Role: entity.Some("group")})
	tree.Add("b", &memory.Node{Ref: "c", Role: entity.Some("button")})
	tree.Add("c", &memory.Node{Ref: "a", Role: entity.Some("group")})
	_, walker := newPipeline(tree)

	got := walker.WalkAncestors(context.Background(), "c", 50)

	require.Len(t, got, 2)
	assert.Equal(t, entity.NodeRef("b"), got[0].Facts.Ref)
	assert.Equal(t, entity.NodeRef("a"), got[1].Facts.Ref)
}

func TestWalkAncestors_StaleAncestorBecomesUnavailableEntry(t *testing.T) {
	tree := listTree()
	tree.OnRead = func(op string, ref entity.NodeRef) {
		if op == memory.OpBoundary && ref == "item" {
			tree.Remove("item")
		}
	}
	_, walker := newPipeline(tree)

	got := walker.WalkAncestors(context.Background(), "span", 10)

	require.Len(t, got, 1)
	assert.True(t, got[0].Facts.Unavailable)
	assert.Equal(t, entity.NodeRef("item"), got[0].Facts.Ref)
}

func TestWalkAncestors_ParentQueryFails(t *testing.T) {
	tree := listTree()
	tree.Add("", &memory.Node{
		Ref:  "broken",
		Role: entity.Some("button"),
		Fail: map[string]error{memory.OpParent: entity.ErrNotAvailable},
	})
	_, walker := newPipeline(tree)

	assert.Empty(t, walker.WalkAncestors(context.Background(), "broken", 10))
}

func TestWalkDescendants_BreadthFirstBounded(t *testing.T) {
	tree := memory.New()
	tree.Add("", &memory.Node{Ref: "list", Role: entity.Some("list")})
	tree.Add("list", &memory.Node{Ref: "i1", Role: entity.Some("listitem")})
	tree.Add("list", &memory.Node{Ref: "i2", Role: entity.Some("listitem")})
	tree.Add("i1", &memory.Node{Ref: "i1a", Role: entity.Some("link")})
	tree.Add("i1a", &memory.Node{Ref: "deep", Role: entity.Some("image")})
	_, walker := newPipeline(tree)

	got, truncated := walker.WalkDescendants(context.Background(), "list", 10, 2)

	assert.False(t, truncated)
	require.Len(t, got, 3)
	assert.Equal(t, entity.NodeRef("i1"), got[0].Facts.Ref)
	assert.Equal(t, entity.NodeRef("i2"), got[1].Facts.Ref)
	assert.Equal(t, entity.NodeRef("i1a"), got[2].Facts.Ref)
	assert.Equal(t, 2, got[2].Depth)

	limited, truncated := walker.WalkDescendants(context.Background(), "list", 2, 3)
	assert.True(t, truncated)
	assert.Len(t, limited, 2)
}

func TestWalkDescendants_NoChildren(t *testing.T) {
	tree := memory.New()
	tree.Add("", &memory.Node{Ref: "leaf", Role: entity.Some("button")})
	_, walker := newPipeline(tree)

	got, truncated := walker.WalkDescendants(context.Background(), "leaf", 10, 3)
	assert.Empty(t, got)
	assert.False(t, truncated)
}
