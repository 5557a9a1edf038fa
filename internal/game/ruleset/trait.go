// Package ruleset defines the static reference entities a character is built
// from: attributes, abilities, advantages, merits, flaws, roads, weaknesses,
// clans and generations.
package ruleset

import "github.com/cory-johannsen/vampire/internal/game/entity"

// AttributeType groups the nine attributes.
type AttributeType string

const (
	AttributePhysical AttributeType = "physical"
	AttributeSocial   AttributeType = "social"
	AttributeMental   AttributeType = "mental"
)

// AttributeTypes lists attribute categories in sheet order.
var AttributeTypes = []AttributeType{AttributePhysical, AttributeSocial, AttributeMental}

// Valid reports whether t is a known attribute category.
func (t AttributeType) Valid() bool {
	switch t {
	case AttributePhysical, AttributeSocial, AttributeMental:
		return true
	}
	return false
}

// AbilityType groups the thirty abilities.
type AbilityType string

const (
	AbilityTalent    AbilityType = "talent"
	AbilitySkill     AbilityType = "skill"
	AbilityKnowledge AbilityType = "knowledge"
)

// AbilityTypes lists ability categories in sheet order.
var AbilityTypes = []AbilityType{AbilityTalent, AbilitySkill, AbilityKnowledge}

// Valid reports whether t is a known ability category.
func (t AbilityType) Valid() bool {
	switch t {
	case AbilityTalent, AbilitySkill, AbilityKnowledge:
		return true
	}
	return false
}

// AdvantageType groups advantages.
type AdvantageType string

const (
	AdvantageBackground AdvantageType = "background"
	AdvantageDiscipline AdvantageType = "discipline"
	AdvantageVirtue     AdvantageType = "virtue"
)

// AdvantageTypes lists advantage categories in sheet order.
var AdvantageTypes = []AdvantageType{AdvantageBackground, AdvantageDiscipline, AdvantageVirtue}

// Valid reports whether t is a known advantage category.
func (t AdvantageType) Valid() bool {
	switch t {
	case AdvantageBackground, AdvantageDiscipline, AdvantageVirtue:
		return true
	}
	return false
}

// QualityType groups merits and flaws.
type QualityType string

const (
	QualityPhysical     QualityType = "physical"
	QualityMental       QualityType = "mental"
	QualitySocial       QualityType = "social"
	QualitySupernatural QualityType = "supernatural"
)

// Valid reports whether t is a known merit or flaw category.
func (t QualityType) Valid() bool {
	switch t {
	case QualityPhysical, QualityMental, QualitySocial, QualitySupernatural:
		return true
	}
	return false
}

// Attribute is one of the nine innate traits.
type Attribute = entity.Typed[AttributeType]

// Ability is one of the thirty learned traits.
type Ability = entity.Typed[AbilityType]

// Advantage is a background, discipline or virtue.
type Advantage = entity.Typed[AdvantageType]

// Merit is a purchasable beneficial quality.
type Merit = entity.Typed[QualityType]

// Flaw is a detrimental quality.
type Flaw = entity.Typed[QualityType]

// NewAttributeBuilder returns an empty Attribute builder.
func NewAttributeBuilder() *entity.TypedBuilder[AttributeType] {
	return entity.NewTypedBuilder[AttributeType]("attribute")
}

// NewAbilityBuilder returns an empty Ability builder.
func NewAbilityBuilder() *entity.TypedBuilder[AbilityType] {
	return entity.NewTypedBuilder[AbilityType]("ability")
}

// NewAdvantageBuilder returns an empty Advantage builder.
func NewAdvantageBuilder() *entity.TypedBuilder[AdvantageType] {
	return entity.NewTypedBuilder[AdvantageType]("advantage")
}

// NewMeritBuilder returns an empty Merit builder.
func NewMeritBuilder() *entity.TypedBuilder[QualityType] {
	return entity.NewTypedBuilder[QualityType]("merit")
}

// NewFlawBuilder returns an empty Flaw builder.
func NewFlawBuilder() *entity.TypedBuilder[QualityType] {
	return entity.NewTypedBuilder[QualityType]("flaw")
}

// TranslationKey returns the i18n message key for the category label.
func (t AttributeType) TranslationKey() string { return "type." + string(t) }

// TranslationKey returns the i18n message key for the category label.
func (t AbilityType) TranslationKey() string { return "type." + string(t) }

// TranslationKey returns the i18n message key for the category label.
func (t AdvantageType) TranslationKey() string { return "type." + string(t) }

// TranslationKey returns the i18n message key for the category label.
func (t QualityType) TranslationKey() string { return "type." + string(t) }
