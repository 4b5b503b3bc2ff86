package service

import (
	"sort"

	"element-inspector/internal/application/port/input"
	"element-inspector/internal/domain/entity"
)

type TriggerRegistry struct {
	triggers map[entity.Gesture]input.Trigger
}

func NewTriggerRegistry() *TriggerRegistry {
	return &TriggerRegistry{
		triggers: make(map[entity.Gesture]input.Trigger),
	}
}

func (r *TriggerRegistry) Register(trigger input.Trigger) {
	r.triggers[trigger.Gesture()] = trigger
}

func (r *TriggerRegistry) Get(gesture entity.Gesture) (input.Trigger, bool) {
	trigger, ok := r.triggers[gesture]
	return trigger, ok
}

// All возвращает команды, отсортированные по жесту, чтобы справка была стабильной.
func (r *TriggerRegistry) All() []input.Trigger {
	result := make([]input.Trigger, 0, len(r.triggers))
	for _, trigger := range r.triggers {
		result = append(result, trigger)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Gesture() < result[j].Gesture()
	})
	return result
}
