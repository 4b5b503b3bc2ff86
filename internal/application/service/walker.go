package service

import (
	"context"
	"errors"

	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
)

const (
	DefaultMaxAncestorDepth   = 10
	DefaultMaxDescendants     = 40
	DefaultMaxDescendantDepth = 3
)

// AncestorWalker идёт по родителям вверх и читает каждый узел через SnapshotReader.
type AncestorWalker struct {
	tree   output.AccessibleTreePort
	reader *SnapshotReader
	logger output.LoggerPort
}

func NewAncestorWalker(tree output.AccessibleTreePort, reader *SnapshotReader, logger output.LoggerPort) *AncestorWalker {
	return &AncestorWalker{
		tree:   tree,
		reader: reader,
		logger: logger,
	}
}

// WalkAncestors returns at most maxDepth entries, nearest first. The walk stops
// at a missing parent, a structural boundary (not included) or a revisited node.
func (w *AncestorWalker) WalkAncestors(ctx context.Context, ref entity.NodeRef, maxDepth int) []entity.AncestorEntry {
	var result []entity.AncestorEntry
	if maxDepth <= 0 || ref == "" {
		return result
	}

	visited := map[entity.NodeRef]bool{ref: true}
	cur := ref

	for len(result) < maxDepth {
		parent, err := query(ctx, cur, "parent", w.tree.Parent)
		if err != nil {
			if !errors.Is(err, entity.ErrNoParent) {
				w.logger.Debug("Ancestor walk stopped", "node", cur.String(), "error", err)
			}
			break
		}
		if parent == "" || visited[parent] {
			if parent != "" {
				w.logger.Warn("Cycle in parent chain", "node", parent.String())
			}
			break
		}
		visited[parent] = true

		boundary, err := query(ctx, parent, "boundary", w.tree.IsBoundary)
		if err != nil && errors.Is(err, entity.ErrStaleNode) {
			result = append(result, entity.AncestorEntry{
				Depth: len(result) + 1,
				Facts: entity.UnavailableFacts(parent),
			})
			cur = parent
			continue
		}
		if boundary {
			break
		}

		result = append(result, entity.AncestorEntry{
			Depth: len(result) + 1,
			Facts: w.reader.ReadFacts(ctx, parent),
		})
		cur = parent
	}

	return result
}

type walkItem struct {
	ref   entity.NodeRef
	depth int
}

// WalkDescendants: ограниченный обход потомков в ширину.
// truncated=true, если лимит узлов был достигнут раньше, чем закончилась очередь.
func (w *AncestorWalker) WalkDescendants(ctx context.Context, ref entity.NodeRef, maxNodes, maxDepth int) (entries []entity.DescendantEntry, truncated bool) {
	if maxNodes <= 0 || maxDepth <= 0 || ref == "" {
		return nil, false
	}

	visited := map[entity.NodeRef]bool{ref: true}
	queue := w.children(ctx, ref, 1, visited)

	for len(queue) > 0 {
		if len(entries) >= maxNodes {
			return entries, true
		}
		cur := queue[0]
		queue = queue[1:]

		entries = append(entries, entity.DescendantEntry{
			Depth: cur.depth,
			Facts: w.reader.ReadFacts(ctx, cur.ref),
		})

		if cur.depth < maxDepth {
			queue = append(queue, w.children(ctx, cur.ref, cur.depth+1, visited)...)
		}
	}
	return entries, false
}

func (w *AncestorWalker) children(ctx context.Context, ref entity.NodeRef, depth int, visited map[entity.NodeRef]bool) []walkItem {
	kids, err := query(ctx, ref, "children", w.tree.Children)
	if err != nil {
		w.logger.Debug("Children not available", "node", ref.String(), "error", err)
		return nil
	}

	items := make([]walkItem, 0, len(kids))
	for _, k := range kids {
		if k == "" || visited[k] {
			continue
		}
		visited[k] = true
		items = append(items, walkItem{ref: k, depth: depth})
	}
	return items
}
