package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"element-inspector/internal/domain/entity"
)

var policyRoles = []string{"", "tab", "button", "listitem", "link", "tabpanel"}

// allAbsent: все поля отсутствуют, кроме роли.
func allAbsent(role string) entity.ElementFacts {
	f := entity.ElementFacts{Ref: "n"}
	if role != "" {
		f.Role = entity.Some(role)
	}
	return f
}

func allPresent(role string) entity.ElementFacts {
	f := entity.ElementFacts{
		Ref:         "n",
		States:      entity.Some([]string{"focused"}),
		Name:        entity.Some("name"),
		Value:       entity.Some("value"),
		Description: entity.Some("desc"),
		Tag:         entity.Some("div"),
		XMLRoles:    entity.Some([]string{"tab"}),
		ID:          entity.Some("n1"),
		Classes:     entity.Some([]string{"primary"}),
		InputType:   entity.Some("text"),
		URL:         entity.Some("https://example.com/"),
		Level:       entity.Some(2),
		Relationships: entity.Some([]entity.Relationship{
			{Kind: entity.RelOwns, Targets: []string{"x"}},
		}),
		SetPosition: entity.SetPosition{PosInSet: entity.Some(1), SetSize: entity.Some(3)},
		TabIndex:    entity.ExposedTabIndex(0),
	}
	if role != "" {
		f.Role = entity.Some(role)
	}
	return f
}

func TestInclude_AbsentFieldsAcrossRoles(t *testing.T) {
	for _, role := range policyRoles {
		for _, field := range AllFields {
			facts := allAbsent(role)
			got := Include(field, facts)

			want := field == FieldRole && role != ""
			assert.Equalf(t, want, got, "field=%s role=%q", field, role)
		}
	}
}

func TestInclude_PresentFieldsAcrossRoles(t *testing.T) {
	for _, role := range policyRoles {
		for _, field := range AllFields {
			facts := allPresent(role)
			if field == FieldRole && role == "" {
				assert.False(t, Include(field, facts))
				continue
			}
			assert.Truef(t, Include(field, facts), "field=%s role=%q", field, role)
		}
	}
}

func TestInclude_DerivedTabIndexOnlyForTab(t *testing.T) {
	for _, role := range policyRoles {
		facts := allAbsent(role)
		facts.TabIndex = entity.DerivedTabIndex(0)

		assert.Equalf(t, role == "tab", Include(FieldTabIndex, facts), "role=%q", role)
	}
}

func TestInclude_TabWithoutAnyTabIndex(t *testing.T) {
	assert.False(t, Include(FieldTabIndex, allAbsent("tab")))
}

func TestInclude_SetPositionNeedsBoth(t *testing.T) {
	f := allAbsent("listitem")
	f.SetPosition.SetSize = entity.Some(5)
	assert.False(t, Include(FieldSetPosition, f))

	f.SetPosition = entity.SetPosition{PosInSet: entity.Some(2)}
	assert.False(t, Include(FieldSetPosition, f))

	f.SetPosition.SetSize = entity.Some(5)
	assert.True(t, Include(FieldSetPosition, f))
}

func TestInclude_ExplicitEmptyStringIsPresent(t *testing.T) {
	f := allAbsent("button")
	f.Name = entity.Some("")
	assert.True(t, Include(FieldName, f))
}

func TestInclude_EmptyCollectionsAreSuppressed(t *testing.T) {
	f := allAbsent("button")
	f.States = entity.Some([]string{})
	f.XMLRoles = entity.Some([]string{})
	f.Relationships = entity.Some([]entity.Relationship{})

	assert.False(t, Include(FieldStates, f))
	assert.False(t, Include(FieldXMLRoles, f))
	assert.False(t, Include(FieldRelationships, f))
}

func TestInclude_ExplicitAttributes(t *testing.T) {
	f := allAbsent("heading")
	f.Level = entity.Some(0)
	f.ID = entity.Some("")
	assert.True(t, Include(FieldLevel, f), "present zero level is still exposed")
	assert.True(t, Include(FieldID, f))

	f.Classes = entity.Some([]string{})
	assert.False(t, Include(FieldClasses, f))
	assert.False(t, Include(FieldURL, f))
	assert.False(t, Include(FieldInputType, f))
}

func TestInclude_UnavailableFactsEmitNothing(t *testing.T) {
	f := entity.UnavailableFacts("gone")
	for _, field := range AllFields {
		assert.False(t, Include(field, f), "field=%s", field)
	}
}

func TestInclude_UnknownField(t *testing.T) {
	assert.False(t, Include(Field("rowIndex"), allPresent("heading")))
}
