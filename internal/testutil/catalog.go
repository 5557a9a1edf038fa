// Package testutil provides test helpers: a small in-memory reference catalog
// and character builders that satisfy every validation rule.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/vampire/internal/game/character"
	"github.com/cory-johannsen/vampire/internal/game/entity"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

var (
	attributeKeys = map[ruleset.AttributeType][]string{
		ruleset.AttributePhysical: {"strength", "dexterity", "stamina"},
		ruleset.AttributeSocial:   {"charisma", "manipulation", "appearance"},
		ruleset.AttributeMental:   {"perception", "intelligence", "wits"},
	}
	abilityKeys = map[ruleset.AbilityType][]string{
		ruleset.AbilityTalent:    {"alertness", "athletics", "awareness", "brawl", "dodge", "empathy", "expression", "intimidation", "leadership", "subterfuge"},
		ruleset.AbilitySkill:     {"animal_ken", "archery", "crafts", "etiquette", "herbalism", "melee", "music", "ride", "stealth", "survival"},
		ruleset.AbilityKnowledge: {"academics", "hearth_wisdom", "investigation", "law", "linguistics", "medicine", "occult", "politics", "seneschal", "theology"},
	}
	advantageKeys = map[ruleset.AdvantageType][]string{
		ruleset.AdvantageBackground: {"allies", "generation", "resources", "retainers"},
		ruleset.AdvantageDiscipline: {"auspex", "celerity", "potence", "presence"},
		ruleset.AdvantageVirtue:     {"conscience", "self_control", "courage"},
	}
)

// NewCatalog returns a catalog holding the full set of nine attributes and
// thirty abilities, eleven advantages, two merits, two flaws, two roads, one
// weakness, the Brujah clan and generations 12 and 13.
//
// Postcondition: Returns a catalog for which Check returns nil. Panics on a
// builder failure, which would be a bug in this fixture.
func NewCatalog() *ruleset.Catalog {
	cat := ruleset.NewCatalog()
	for _, typ := range ruleset.AttributeTypes {
		for _, k := range attributeKeys[typ] {
			must(cat.RegisterAttribute(must1(ruleset.NewAttributeBuilder().WithKey(k).WithType(typ).WithNames(names(k)).Build())))
		}
	}
	for _, typ := range ruleset.AbilityTypes {
		for _, k := range abilityKeys[typ] {
			must(cat.RegisterAbility(must1(ruleset.NewAbilityBuilder().WithKey(k).WithType(typ).WithNames(names(k)).Build())))
		}
	}
	for _, typ := range ruleset.AdvantageTypes {
		for _, k := range advantageKeys[typ] {
			must(cat.RegisterAdvantage(must1(ruleset.NewAdvantageBuilder().WithKey(k).WithType(typ).WithNames(names(k)).Build())))
		}
	}
	must(cat.RegisterMerit(must1(ruleset.NewMeritBuilder().WithKey("eat_food").WithType(ruleset.QualitySupernatural).WithNames(names("eat_food")).Build())))
	must(cat.RegisterMerit(must1(ruleset.NewMeritBuilder().WithKey("common_sense").WithType(ruleset.QualityMental).WithNames(names("common_sense")).Build())))
	must(cat.RegisterFlaw(must1(ruleset.NewFlawBuilder().WithKey("nightmares").WithType(ruleset.QualityMental).WithNames(names("nightmares")).Build())))
	must(cat.RegisterFlaw(must1(ruleset.NewFlawBuilder().WithKey("infamous_sire").WithType(ruleset.QualitySocial).WithNames(names("infamous_sire")).Build())))
	must(cat.RegisterRoad(must1(ruleset.NewRoadBuilder().WithKey("humanity").WithName(entity.English, "Road of Humanity").WithName(entity.German, "Pfad der Menschlichkeit").Build())))
	must(cat.RegisterRoad(must1(ruleset.NewRoadBuilder().WithKey("kings").WithName(entity.English, "Road of Kings").Build())))
	must(cat.RegisterWeakness(must1(ruleset.NewWeaknessBuilder().WithKey("brujah_frenzy").WithName(entity.English, "Prone to frenzy").Build())))
	must(cat.RegisterClan(must1(ruleset.NewClanBuilder().
		WithKey("brujah").
		WithName(entity.English, "Brujah").
		WithAdvantages("celerity", "potence", "presence").
		WithWeaknesses("brujah_frenzy").
		Build())))
	must(cat.RegisterGeneration(must1(ruleset.NewGenerationBuilder().WithValue(12).WithMaxTrait(5).WithMaxBloodPool(11).WithBloodPerTurn(1).Build())))
	must(cat.RegisterGeneration(must1(ruleset.NewGenerationBuilder().WithValue(13).WithMaxTrait(5).WithMaxBloodPool(10).WithBloodPerTurn(1).Build())))
	must(cat.Check())
	return cat
}

// ValidBuilder returns a character builder populated from cat with every
// field set so that Build succeeds.
//
// Precondition: cat must contain at least 9 attributes, 30 abilities, 6
// advantages, one clan, generation 13, the "humanity" road, one merit and one flaw.
func ValidBuilder(cat *ruleset.Catalog) *character.Builder {
	clan := cat.Clans()[0]
	gen, ok := cat.Generation(13)
	if !ok {
		panic("testutil: catalog has no generation 13")
	}
	road, ok := cat.Road("humanity")
	if !ok {
		panic("testutil: catalog has no humanity road")
	}
	return character.NewBuilder().
		WithID(uuid.MustParse("6f1c2f0e-9a43-4a55-8a6e-2d3b1c4e5f60")).
		WithName("Lucien de Montfort").
		WithClan(clan).
		WithGeneration(gen).
		WithChronicle("Paris by Night").
		WithExperience(12).
		WithNature("Architect").
		WithHideout("Catacombs beneath Saint-Denis").
		WithPlayer("Marie").
		WithDemeanor("Gallant").
		WithConcept("Disgraced knight").
		WithSire("Etienne").
		WithSect("Camarilla").
		WithAttributes(RatedAttributes(cat, 9)).
		WithAbilities(RatedAbilities(cat, 30)).
		WithAdvantages(RatedAdvantages(cat, 6)).
		WithMerits(cat.Merits()[:1]).
		WithFlaws(cat.Flaws()[:1]).
		WithRoad(character.Rate(road, 7)).
		WithWillpower(6).
		WithUsedWillpower(1).
		WithBloodStock(10).
		WithAge(212).
		WithApparentAge(34).
		WithDayOfBirth(time.Date(1156, time.March, 14, 0, 0, 0, 0, time.UTC)).
		WithHairColor("black").
		WithEyeColor("grey").
		WithSkinColor("pale").
		WithNationality("French").
		WithHeight(182).
		WithWeight(80).
		WithSex(character.SexMale).
		WithStory("Fell at Acre.").
		WithDescription("Scarred, soft-spoken.")
}

// RatedAttributes returns the first n catalog attributes rated 1..5 in turn.
// n may exceed the catalog size; keys then repeat.
func RatedAttributes(cat *ruleset.Catalog, n int) []character.Rated[ruleset.Attribute] {
	return rated(cat.Attributes(), n)
}

// RatedAbilities returns the first n catalog abilities rated 0..4 in turn.
func RatedAbilities(cat *ruleset.Catalog, n int) []character.Rated[ruleset.Ability] {
	out := rated(cat.Abilities(), n)
	for i := range out {
		out[i].Dots--
	}
	return out
}

// RatedAdvantages returns the first n catalog advantages rated 1..5 in turn.
func RatedAdvantages(cat *ruleset.Catalog, n int) []character.Rated[ruleset.Advantage] {
	return rated(cat.Advantages(), n)
}

func rated[T any](all []T, n int) []character.Rated[T] {
	out := make([]character.Rated[T], 0, n)
	for i := 0; i < n; i++ {
		out = append(out, character.Rate(all[i%len(all)], i%5+1))
	}
	return out
}

// MustBuild builds b or fails the test.
func MustBuild(t testing.TB, b *character.Builder) *character.Character {
	t.Helper()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("building character: %v", err)
	}
	return c
}

func names(key string) entity.Names {
	return entity.Names{entity.English: key, entity.German: fmt.Sprintf("de:%s", key)}
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
}

func must1[T any](v T, err error) T {
	must(err)
	return v
}
