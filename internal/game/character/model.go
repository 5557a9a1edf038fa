// Package character defines the character aggregate and the builder that is
// the only way to create or change one.
package character

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

const (
	// AttributeCount is the exact number of attributes a character carries.
	AttributeCount = 9
	// AbilityCount is the exact number of abilities a character carries.
	AbilityCount = 30
	// MinAdvantages is the fewest advantages a character may carry.
	MinAdvantages = 6
)

// Sex is the character's sex as stored in character files.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// Valid reports whether s is a known value. The empty value means unset.
func (s Sex) Valid() bool {
	return s == "" || s == SexMale || s == SexFemale
}

// TranslationKey returns the i18n message key for the label of s.
func (s Sex) TranslationKey() string {
	return "sex." + string(s)
}

// Rated attaches a per-character dot value to a shared reference trait.
type Rated[T any] struct {
	Trait T
	Dots  int
}

// Rate pairs trait with dots.
func Rate[T any](trait T, dots int) Rated[T] {
	return Rated[T]{Trait: trait, Dots: dots}
}

// Character is an immutable, validated player character. Obtain one from
// Builder.Build; change one by building a new Character with From.
type Character struct {
	id         uuid.UUID
	name       string
	clan       *ruleset.Clan
	generation *ruleset.Generation

	chronicle  string
	experience int
	nature     string
	hideout    string
	player     string
	demeanor   string
	concept    string
	sire       string
	sect       string

	attributes []Rated[ruleset.Attribute]
	abilities  []Rated[ruleset.Ability]
	advantages []Rated[ruleset.Advantage]
	merits     []ruleset.Merit
	flaws      []ruleset.Flaw
	road       Rated[ruleset.Road]

	willpower     int
	usedWillpower int
	bloodStock    int
	age           int
	apparentAge   int

	dayOfBirth  time.Time
	dayOfDeath  time.Time
	hairColor   string
	eyeColor    string
	skinColor   string
	nationality string
	height      int
	weight      int
	sex         Sex

	story       string
	description string
}

// clone returns a deep copy of c: no slice, map or reference entity is shared.
func (c Character) clone() Character {
	c.clan = c.clan.Clone()
	c.generation = c.generation.Clone()
	c.attributes = cloneRated(c.attributes, ruleset.Attribute.Clone)
	c.abilities = cloneRated(c.abilities, ruleset.Ability.Clone)
	c.advantages = cloneRated(c.advantages, ruleset.Advantage.Clone)
	c.merits = cloneAll(c.merits, ruleset.Merit.Clone)
	c.flaws = cloneAll(c.flaws, ruleset.Flaw.Clone)
	c.road.Trait = c.road.Trait.Clone()
	return c
}

func cloneAll[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}

func cloneRated[T any](s []Rated[T], clone func(T) T) []Rated[T] {
	return cloneAll(s, func(r Rated[T]) Rated[T] { return Rated[T]{Trait: clone(r.Trait), Dots: r.Dots} })
}

func (c *Character) ID() uuid.UUID { return c.id }
func (c *Character) Name() string { return c.name }
func (c *Character) Clan() *ruleset.Clan { return c.clan.Clone() }
func (c *Character) Generation() *ruleset.Generation { return c.generation.Clone() }
func (c *Character) Chronicle() string { return c.chronicle }
func (c *Character) Experience() int { return c.experience }
func (c *Character) Nature() string { return c.nature }
func (c *Character) Hideout() string { return c.hideout }
func (c *Character) Player() string { return c.player }
func (c *Character) Demeanor() string { return c.demeanor }
func (c *Character) Concept() string { return c.concept }
func (c *Character) Sire() string { return c.sire }
func (c *Character) Sect() string { return c.sect }
func (c *Character) Road() Rated[ruleset.Road] { return Rate(c.road.Trait.Clone(), c.road.Dots) }
func (c *Character) Willpower() int { return c.willpower }
func (c *Character) UsedWillpower() int { return c.usedWillpower }
func (c *Character) BloodStock() int { return c.bloodStock }
func (c *Character) Age() int { return c.age }
func (c *Character) ApparentAge() int { return c.apparentAge }
func (c *Character) HairColor() string { return c.hairColor }
func (c *Character) EyeColor() string { return c.eyeColor }
func (c *Character) SkinColor() string { return c.skinColor }
func (c *Character) Nationality() string { return c.nationality }
func (c *Character) Height() int { return c.height }
func (c *Character) Weight() int { return c.weight }
func (c *Character) Sex() Sex { return c.sex }
func (c *Character) Story() string { return c.story }
func (c *Character) Description() string { return c.description }

// DayOfBirth returns the mortal birth date; the zero time means unknown.
func (c *Character) DayOfBirth() time.Time { return c.dayOfBirth }

// DayOfDeath returns the date of the Embrace; the zero time means unknown.
func (c *Character) DayOfDeath() time.Time { return c.dayOfDeath }

// Attributes returns a deep copy of the rated attributes.
func (c *Character) Attributes() []Rated[ruleset.Attribute] { return cloneRated(c.attributes, ruleset.Attribute.Clone) }

// Abilities returns a copy of the rated abilities.
func (c *Character) Abilities() []Rated[ruleset.Ability] { return cloneRated(c.abilities, ruleset.Ability.Clone) }

// Advantages returns a copy of the rated advantages.
func (c *Character) Advantages() []Rated[ruleset.Advantage] { return cloneRated(c.advantages, ruleset.Advantage.Clone) }

// Merits returns a copy of the owned merits.
func (c *Character) Merits() []ruleset.Merit { return cloneAll(c.merits, ruleset.Merit.Clone) }

// Flaws returns a copy of the owned flaws.
func (c *Character) Flaws() []ruleset.Flaw { return cloneAll(c.flaws, ruleset.Flaw.Clone) }

// AttributesOf returns the rated attributes of category t in sheet order.
func (c *Character) AttributesOf(t ruleset.AttributeType) []Rated[ruleset.Attribute] {
	var out []Rated[ruleset.Attribute]
	for _, a := range c.attributes {
		if a.Trait.Type == t {
			out = append(out, Rate(a.Trait.Clone(), a.Dots))
		}
	}
	return out
}

// AbilitiesOf returns the rated abilities of category t in sheet order.
func (c *Character) AbilitiesOf(t ruleset.AbilityType) []Rated[ruleset.Ability] {
	var out []Rated[ruleset.Ability]
	for _, a := range c.abilities {
		if a.Trait.Type == t {
			out = append(out, Rate(a.Trait.Clone(), a.Dots))
		}
	}
	return out
}

// AdvantagesOf returns the rated advantages of category t in sheet order.
func (c *Character) AdvantagesOf(t ruleset.AdvantageType) []Rated[ruleset.Advantage] {
	var out []Rated[ruleset.Advantage]
	for _, a := range c.advantages {
		if a.Trait.Type == t {
			out = append(out, Rate(a.Trait.Clone(), a.Dots))
		}
	}
	return out
}
