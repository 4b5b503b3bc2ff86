package service

import (
	"element-inspector/internal/domain/entity"
	"element-inspector/internal/infrastructure/logger"
	"element-inspector/internal/infrastructure/tree/memory"
)

// listTree: root(#document) > list > listitem > span(focused).
func listTree() *memory.Tree {
	t := memory.New()
	t.Add("", &memory.Node{
		Ref:      "root",
		Role:     entity.Some("RootWebArea"),
		Tag:      entity.Some("#document"),
		Boundary: true,
	})
	t.Add("root", &memory.Node{
		Ref:  "list",
		Role: entity.Some("list"),
		Tag:  entity.Some("ul"),
	})
	t.Add("list", &memory.Node{
		Ref:         "item",
		Role:        entity.Some("listitem"),
		Tag:         entity.Some("li"),
		Name:        entity.Some("First"),
		SetPosition: entity.SetPosition{PosInSet: entity.Some(1), SetSize: entity.Some(3)},
	})
	t.Add("item", &memory.Node{
		Ref:    "span",
		Role:   entity.Some("generic"),
		Tag:    entity.Some("span"),
		States: entity.Some([]string{"focused", "focusable"}),
	})
	t.Focus("span")
	return t
}

func newPipeline(tree *memory.Tree) (*SnapshotReader, *AncestorWalker) {
	log := logger.NewNop()
	reader := NewSnapshotReader(tree, log)
	return reader, NewAncestorWalker(tree, reader, log)
}
