package service

import "element-inspector/internal/domain/entity"

// Field: факт, который может попасть в отчёт.
type Field string

const (
	FieldRole          Field = "role"
	FieldTag           Field = "tag"
	FieldName          Field = "name"
	FieldValue         Field = "value"
	FieldDescription   Field = "description"
	FieldStates        Field = "states"
	FieldXMLRoles      Field = "xmlRoles"
	FieldID            Field = "id"
	FieldClasses       Field = "classes"
	FieldInputType     Field = "inputType"
	FieldURL           Field = "url"
	FieldLevel         Field = "level"
	FieldSetPosition   Field = "setPosition"
	FieldTabIndex      Field = "tabIndex"
	FieldRelationships Field = "relationships"
)

var AllFields = []Field{
	FieldRole,
	FieldTag,
	FieldName,
	FieldValue,
	FieldDescription,
	FieldStates,
	FieldXMLRoles,
	FieldID,
	FieldClasses,
	FieldInputType,
	FieldURL,
	FieldLevel,
	FieldSetPosition,
	FieldTabIndex,
	FieldRelationships,
}

type inclusionRule func(f entity.ElementFacts) bool

// presenceRules: факт выводится только если хост его явно отдал.
var presenceRules = map[Field]inclusionRule{
	FieldRole:        func(f entity.ElementFacts) bool { return f.Role.IsSet() },
	FieldTag:         func(f entity.ElementFacts) bool { return f.Tag.IsSet() },
	FieldName:        func(f entity.ElementFacts) bool { return f.Name.IsSet() },
	FieldValue:       func(f entity.ElementFacts) bool { return f.Value.IsSet() },
	FieldDescription: func(f entity.ElementFacts) bool { return f.Description.IsSet() },
	FieldStates:      func(f entity.ElementFacts) bool { return len(f.States.OrZero()) > 0 },
	FieldXMLRoles:    func(f entity.ElementFacts) bool { return len(f.XMLRoles.OrZero()) > 0 },
	FieldID:          func(f entity.ElementFacts) bool { return f.ID.IsSet() },
	FieldClasses:     func(f entity.ElementFacts) bool { return len(f.Classes.OrZero()) > 0 },
	FieldInputType:   func(f entity.ElementFacts) bool { return f.InputType.IsSet() },
	FieldURL:         func(f entity.ElementFacts) bool { return f.URL.IsSet() },
	FieldLevel:       func(f entity.ElementFacts) bool { return f.Level.IsSet() },
	FieldSetPosition: func(f entity.ElementFacts) bool {
		return f.SetPosition.PosInSet.IsSet() && f.SetPosition.SetSize.IsSet()
	},
	FieldTabIndex:      func(f entity.ElementFacts) bool { return f.TabIndex.Exposed() },
	FieldRelationships: func(f entity.ElementFacts) bool { return len(f.Relationships.OrZero()) > 0 },
}

type roleOverride struct {
	field Field
	role  string
	rule  inclusionRule
}

// roleOverrides are checked before presenceRules.
var roleOverrides = []roleOverride{
	// Roving tabindex on tabs is rarely exposed as an attribute.
	{field: FieldTabIndex, role: "tab", rule: func(f entity.ElementFacts) bool { return f.TabIndex.Determinable() }},
}

// Include decides whether field of facts is emitted. Pure and stateless.
func Include(field Field, facts entity.ElementFacts) bool {
	if facts.Unavailable {
		return false
	}
	for _, o := range roleOverrides {
		if o.field == field && facts.RoleIs(o.role) {
			return o.rule(facts)
		}
	}
	rule, ok := presenceRules[field]
	if !ok {
		return false
	}
	return rule(facts)
}
