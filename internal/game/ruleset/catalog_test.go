package ruleset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vampire/internal/game/entity"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

func mustAdvantage(t *testing.T, key string, typ ruleset.AdvantageType) ruleset.Advantage {
	t.Helper()
	a, err := ruleset.NewAdvantageBuilder().WithKey(key).WithType(typ).WithName(entity.English, key).Build()
	require.NoError(t, err)
	return a
}

func TestCatalog_Clan_NotFound(t *testing.T) {
	cat := ruleset.NewCatalog()
	cl, ok := cat.Clan("tzimisce")
	assert.False(t, ok)
	assert.Nil(t, cl)
}

func TestCatalog_Attribute_NotFound(t *testing.T) {
	cat := ruleset.NewCatalog()
	_, ok := cat.Attribute("strength")
	assert.False(t, ok)
}

func TestCatalog_RegisterDuplicateKey(t *testing.T) {
	cat := ruleset.NewCatalog()
	require.NoError(t, cat.RegisterAdvantage(mustAdvantage(t, "celerity", ruleset.AdvantageDiscipline)))
	err := cat.RegisterAdvantage(mustAdvantage(t, "celerity", ruleset.AdvantageDiscipline))
	assert.Error(t, err)
	assert.Len(t, cat.Advantages(), 1)
}

func TestCatalog_RegisterEmptyKey(t *testing.T) {
	cat := ruleset.NewCatalog()
	assert.Error(t, cat.RegisterRoad(ruleset.Road{}))
}

func TestCatalog_PreservesRegistrationOrder(t *testing.T) {
	cat := ruleset.NewCatalog()
	for _, k := range []string{"courage", "conscience", "allies"} {
		require.NoError(t, cat.RegisterAdvantage(mustAdvantage(t, k, ruleset.AdvantageVirtue)))
	}
	var keys []string
	for _, a := range cat.Advantages() {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"courage", "conscience", "allies"}, keys)
}

func TestCatalog_Generations_SortedAndDuplicateRejected(t *testing.T) {
	cat := ruleset.NewCatalog()
	for _, n := range []int{13, 4, 8} {
		g, err := ruleset.NewGenerationBuilder().WithValue(n).WithMaxTrait(5).WithMaxBloodPool(10).WithBloodPerTurn(1).Build()
		require.NoError(t, err)
		require.NoError(t, cat.RegisterGeneration(g))
	}
	gens := cat.Generations()
	require.Len(t, gens, 3)
	assert.Equal(t, 4, gens[0].Value)
	assert.Equal(t, 13, gens[2].Value)

	dup, err := ruleset.NewGenerationBuilder().WithValue(8).WithMaxTrait(5).WithMaxBloodPool(15).WithBloodPerTurn(3).Build()
	require.NoError(t, err)
	assert.Error(t, cat.RegisterGeneration(dup))

	g, ok := cat.Generation(8)
	require.True(t, ok)
	assert.Equal(t, "8", g.String())
	_, ok = cat.Generation(2)
	assert.False(t, ok)
}

func TestCatalog_ClanReferences(t *testing.T) {
	cat := ruleset.NewCatalog()
	require.NoError(t, cat.RegisterAdvantage(mustAdvantage(t, "potence", ruleset.AdvantageDiscipline)))
	w, err := ruleset.NewWeaknessBuilder().WithKey("frenzy").WithName(entity.English, "Quick to frenzy").Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterWeakness(w))

	cl, err := ruleset.NewClanBuilder().
		WithKey("brujah").
		WithName(entity.English, "Brujah").
		WithAdvantages("potence").
		WithWeaknesses("frenzy").
		Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterClan(cl))
	require.NoError(t, cat.Check())

	advs, err := cat.ClanAdvantages(cl)
	require.NoError(t, err)
	require.Len(t, advs, 1)
	assert.Equal(t, "potence", advs[0].Key)

	bad, err := ruleset.NewClanBuilder().
		WithKey("gangrel").
		WithName(entity.English, "Gangrel").
		WithAdvantages("protean").
		Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterClan(bad))
	err = cat.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown advantage "protean"`)
}

func TestCatalog_HandsOutCopies(t *testing.T) {
	cat := ruleset.NewCatalog()
	adv := mustAdvantage(t, "potence", ruleset.AdvantageDiscipline)
	require.NoError(t, cat.RegisterAdvantage(adv))
	adv.Names[entity.English] = "changed after registration"

	cl, err := ruleset.NewClanBuilder().WithKey("brujah").WithName(entity.English, "Brujah").WithAdvantages("potence").Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterClan(cl))
	cl.Advantages[0] = "changed after registration"

	g, err := ruleset.NewGenerationBuilder().WithValue(13).WithMaxTrait(5).WithMaxBloodPool(10).WithBloodPerTurn(1).Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterGeneration(g))

	got, _ := cat.Clan("brujah")
	got.Advantages[0] = "dominate"
	got.Names[entity.English] = "Renamed"
	cat.Clans()[0].Weaknesses = append(cat.Clans()[0].Weaknesses, "frenzy")
	a, _ := cat.Advantage("potence")
	a.Names[entity.English] = "Renamed"
	cat.Advantages()[0].Names[entity.German] = "Umbenannt"
	gen, _ := cat.Generation(13)
	gen.MaxTrait = 99
	cat.Generations()[0].MaxBloodPool = 99

	clan, _ := cat.Clan("brujah")
	assert.Equal(t, []string{"potence"}, clan.Advantages)
	assert.Empty(t, clan.Weaknesses)
	assert.Equal(t, "Brujah", clan.DisplayName(entity.English))
	potence, _ := cat.Advantage("potence")
	assert.Equal(t, entity.Names{entity.English: "potence"}, potence.Names)
	thirteenth, _ := cat.Generation(13)
	assert.Equal(t, 5, thirteenth.MaxTrait)
	assert.Equal(t, 10, thirteenth.MaxBloodPool)
}

func TestClanBuilder_Validation(t *testing.T) {
	_, err := ruleset.NewClanBuilder().WithName(entity.English, "Brujah").Build()
	assert.Equal(t, "Missing key", entity.ReasonOf(err))

	_, err = ruleset.NewClanBuilder().WithKey("brujah").WithName(entity.English, "Brujah").WithAdvantages("").Build()
	assert.Equal(t, "Empty advantage key", entity.ReasonOf(err))
}

func TestClanBuilderFrom_Isolated(t *testing.T) {
	cl, err := ruleset.NewClanBuilder().WithKey("brujah").WithName(entity.English, "Brujah").WithAdvantages("potence").Build()
	require.NoError(t, err)
	copied, err := ruleset.ClanBuilderFrom(cl).WithAdvantages("celerity", "potence").Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"potence"}, cl.Advantages)
	assert.Equal(t, []string{"celerity", "potence"}, copied.Advantages)
	assert.Equal(t, "Brujah", copied.DisplayName(entity.German))
}

func TestGenerationBuilder_Validation(t *testing.T) {
	cases := map[string]*ruleset.GenerationBuilder{
		"Missing generation value":      ruleset.NewGenerationBuilder().WithMaxTrait(5).WithMaxBloodPool(10).WithBloodPerTurn(1),
		"Missing maximum trait rating":  ruleset.NewGenerationBuilder().WithValue(13).WithMaxBloodPool(10).WithBloodPerTurn(1),
		"Missing maximum blood pool":    ruleset.NewGenerationBuilder().WithValue(13).WithMaxTrait(5).WithBloodPerTurn(1),
		"Missing blood per turn":        ruleset.NewGenerationBuilder().WithValue(13).WithMaxTrait(5).WithMaxBloodPool(10),
		"Generation value out of range": ruleset.NewGenerationBuilder().WithValue(math.MaxInt32 + 1).WithMaxTrait(5).WithMaxBloodPool(10).WithBloodPerTurn(1),
	}
	for reason, b := range cases {
		t.Run(reason, func(t *testing.T) {
			g, err := b.Build()
			assert.Nil(t, g)
			assert.Equal(t, reason, entity.ReasonOf(err))
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, typ := range ruleset.AttributeTypes {
		assert.True(t, typ.Valid())
	}
	for _, typ := range ruleset.AbilityTypes {
		assert.True(t, typ.Valid())
	}
	for _, typ := range ruleset.AdvantageTypes {
		assert.True(t, typ.Valid())
	}
	assert.False(t, ruleset.AttributeType("spiritual").Valid())
	assert.False(t, ruleset.QualityType("").Valid())
	assert.True(t, ruleset.QualitySupernatural.Valid())
}

func TestWeighting_Points(t *testing.T) {
	assert.Equal(t, 7, ruleset.WeightingPrimary.AttributePoints())
	assert.Equal(t, 5, ruleset.WeightingSecondary.AttributePoints())
	assert.Equal(t, 3, ruleset.WeightingTertiary.AttributePoints())
	assert.Equal(t, 13, ruleset.WeightingPrimary.AbilityPoints())
	assert.Equal(t, 9, ruleset.WeightingSecondary.AbilityPoints())
	assert.Equal(t, 5, ruleset.WeightingTertiary.AbilityPoints())
	assert.Equal(t, 0, ruleset.Weighting("none").AbilityPoints())
	assert.Equal(t, "weighting.primary", ruleset.WeightingPrimary.TranslationKey())
}

// Property: a registered attribute is always retrievable by its key.
func TestProperty_Catalog_RegisteredAttributeRetrievable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		key := rapid.StringMatching(`[a-z_]{1,16}`).Draw(rt, "key")
		typ := rapid.SampledFrom(ruleset.AttributeTypes).Draw(rt, "type")
		a, err := ruleset.NewAttributeBuilder().WithKey(key).WithType(typ).WithName(entity.English, key).Build()
		if err != nil {
			rt.Fatal(err)
		}
		cat := ruleset.NewCatalog()
		if err := cat.RegisterAttribute(a); err != nil {
			rt.Fatal(err)
		}
		got, ok := cat.Attribute(key)
		if !ok || got.Key != key || got.Type != typ {
			rt.Fatalf("Attribute(%q) = %+v, %v", key, got, ok)
		}
	})
}
