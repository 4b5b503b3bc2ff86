package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"element-inspector/internal/application/port/output"
	"element-inspector/internal/domain/entity"
)

// SnapshotReader собирает ElementFacts одного узла. Ни один отказ отдельного
// запроса не прерывает чтение: поле просто остаётся отсутствующим.
type SnapshotReader struct {
	tree   output.AccessibleTreePort
	logger output.LoggerPort
}

func NewSnapshotReader(tree output.AccessibleTreePort, logger output.LoggerPort) *SnapshotReader {
	return &SnapshotReader{
		tree:   tree,
		logger: logger,
	}
}

func (r *SnapshotReader) ReadFacts(ctx context.Context, ref entity.NodeRef) entity.ElementFacts {
	if ref == "" {
		return entity.UnavailableFacts(ref)
	}

	log := r.logger.WithField("node", ref.String())
	facts := entity.ElementFacts{Ref: ref}
	stale := false

	record := func(field Field, err error) bool {
		if err == nil {
			return true
		}
		switch {
		case errors.Is(err, entity.ErrStaleNode):
			stale = true
			log.Warn("Node became stale during read", "field", string(field))
		case errors.Is(err, entity.ErrNotAvailable):
			log.Debug("Field not available", "field", string(field))
		default:
			log.Warn("Field query failed", "field", string(field), "error", err)
		}
		return false
	}

	if v, err := query(ctx, ref, FieldRole, r.tree.Role); record(FieldRole, err) {
		if role := normalizeToken(v); role != "" {
			facts.Role = entity.Some(role)
		}
	}
	if stale {
		return entity.UnavailableFacts(ref)
	}

	if v, err := query(ctx, ref, FieldTag, r.tree.Tag); record(FieldTag, err) {
		if tag := normalizeToken(v); tag != "" {
			facts.Tag = entity.Some(tag)
		}
	}
	if v, err := query(ctx, ref, FieldStates, r.tree.States); record(FieldStates, err) {
		facts.States = entity.Some(entity.NormalizeSet(lowerAll(v)))
	}
	if v, err := query(ctx, ref, FieldName, r.tree.Name); record(FieldName, err) {
		facts.Name = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldValue, r.tree.Value); record(FieldValue, err) {
		facts.Value = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldDescription, r.tree.Description); record(FieldDescription, err) {
		facts.Description = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldXMLRoles, r.tree.XMLRoles); record(FieldXMLRoles, err) {
		facts.XMLRoles = entity.Some(entity.NormalizeSet(lowerAll(v)))
	}
	if v, err := query(ctx, ref, FieldID, r.tree.ID); record(FieldID, err) {
		facts.ID = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldClasses, r.tree.Classes); record(FieldClasses, err) {
		// классы регистрозависимы, поэтому без lowerAll
		facts.Classes = entity.Some(entity.NormalizeSet(v))
	}
	if v, err := query(ctx, ref, FieldInputType, r.tree.InputType); record(FieldInputType, err) {
		if typ := normalizeToken(v); typ != "" {
			facts.InputType = entity.Some(typ)
		}
	}
	if v, err := query(ctx, ref, FieldURL, r.tree.URL); record(FieldURL, err) {
		facts.URL = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldLevel, r.tree.Level); record(FieldLevel, err) {
		facts.Level = entity.Some(v)
	}
	if v, err := query(ctx, ref, FieldRelationships, r.tree.Relationships); record(FieldRelationships, err) {
		facts.Relationships = entity.Some(entity.NormalizeRelationships(v))
	}
	if v, err := query(ctx, ref, FieldSetPosition, r.tree.SetPosition); record(FieldSetPosition, err) {
		facts.SetPosition = v
	}
	if v, err := query(ctx, ref, FieldTabIndex, r.tree.TabIndex); record(FieldTabIndex, err) {
		facts.TabIndex = v
	}

	if stale {
		return entity.UnavailableFacts(ref)
	}
	return facts
}

// query вызывает одну операцию хоста; паника адаптера превращается в ErrNotAvailable.
func query[T any](ctx context.Context, ref entity.NodeRef, field Field, fn func(context.Context, entity.NodeRef) (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			v = zero
			err = fmt.Errorf("%s query panicked: %v: %w", field, rec, entity.ErrNotAvailable)
		}
	}()
	return fn(ctx, ref)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, normalizeToken(v))
	}
	return out
}
