package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vampire/internal/game/dice"
	"github.com/cory-johannsen/vampire/internal/testutil"
)

// sequenceSource returns faces-1 for each queued face, cycling when exhausted.
type sequenceSource struct {
	faces []int
	next  int
}

func (s *sequenceSource) Intn(n int) int {
	f := s.faces[s.next%len(s.faces)]
	s.next++
	return f - 1
}

func TestResult_Successes(t *testing.T) {
	cases := []struct {
		name      string
		dice      []int
		successes int
		botch     bool
	}{
		{"hits only", []int{6, 7, 10, 2}, 3, false},
		{"ones cancel hits", []int{1, 7, 9, 3, 6}, 2, false},
		{"ones exceed hits", []int{1, 1, 1, 8}, 0, false},
		{"botch", []int{1, 3, 5}, 0, true},
		{"plain failure", []int{2, 3, 5}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := dice.Result{Expression: "x", Difficulty: 6, Dice: tc.dice}
			assert.Equal(t, tc.successes, r.Successes())
			assert.Equal(t, tc.botch, r.Botch())
		})
	}
}

func TestResult_String(t *testing.T) {
	r := dice.Result{Expression: "dexterity+brawl@6", Difficulty: 6, Dice: []int{1, 7, 9, 3, 6}}
	assert.Equal(t, "dexterity+brawl@6 → [1 7 9 3 6] = 2", r.String())

	r.Dice = []int{1, 2}
	assert.Equal(t, "dexterity+brawl@6 → [1 2] = botch", r.String())
}

func TestResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.Result{Dice: []int{4}, Difficulty: 6}
	assert.Panics(t, func() { _ = r.String() })
}

func TestParse(t *testing.T) {
	e, err := dice.Parse("Dexterity+Brawl")
	require.NoError(t, err)
	assert.Equal(t, []string{"dexterity", "brawl"}, e.Traits)
	assert.Equal(t, 0, e.Modifier)
	assert.Equal(t, dice.DefaultDifficulty, e.Difficulty)
	assert.Equal(t, "Dexterity+Brawl", e.Raw)

	e, err = dice.Parse("strength+potence+2-1@5")
	require.NoError(t, err)
	assert.Equal(t, []string{"strength", "potence"}, e.Traits)
	assert.Equal(t, 1, e.Modifier)
	assert.Equal(t, 5, e.Difficulty)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"":                 "empty expression",
		"dexterity@x":      "invalid difficulty",
		"dexterity@11":     "must be between 2 and 10",
		"dexterity@1":      "must be between 2 and 10",
		"dexterity++brawl": "empty term",
		"dexterity+":       "empty term",
		"dexterity-brawl":  "cannot be subtracted",
		"3":                "no traits",
	}
	for expr, want := range cases {
		t.Run(expr, func(t *testing.T) {
			_, err := dice.Parse(expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("@7") })
	assert.NotPanics(t, func() { dice.MustParse("wits+alertness") })
}

func TestPoolFor_SumsDots(t *testing.T) {
	cat := testutil.NewCatalog()
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat))

	// dexterity is rated 2 and brawl 3 by the fixture.
	p, err := dice.PoolFor(c, dice.MustParse("dexterity+brawl+1@7"))
	require.NoError(t, err)
	assert.Equal(t, 6, p.Size)
	assert.Equal(t, 7, p.Difficulty)
	assert.Equal(t, "dexterity+brawl+1@7", p.Expression)
}

func TestPoolFor_Errors(t *testing.T) {
	cat := testutil.NewCatalog()
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat))

	_, err := dice.PoolFor(c, dice.MustParse("strength+thaumaturgy"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no trait "thaumaturgy"`)

	_, err = dice.PoolFor(c, dice.MustParse("strength-5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leaves -4 dice")
}

func TestRoll_UsesSource(t *testing.T) {
	src := &sequenceSource{faces: []int{10, 1, 6, 5}}
	r, err := dice.Roll(dice.Pool{Expression: "p", Size: 4, Difficulty: 6}, src)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 1, 6, 5}, r.Dice)
	assert.Equal(t, 1, r.Successes())
}

func TestRoll_RejectsInvalidPool(t *testing.T) {
	src := dice.NewCryptoSource()
	_, err := dice.Roll(dice.Pool{Size: 0, Difficulty: 6}, src)
	assert.Error(t, err)
	_, err = dice.Roll(dice.Pool{Size: 3, Difficulty: 11}, src)
	assert.Error(t, err)
}

func TestLoggedRoller_LogsRoll(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewLoggedRoller(&sequenceSource{faces: []int{8}}, zap.New(core))
	c := testutil.MustBuild(t, testutil.ValidBuilder(testutil.NewCatalog()))

	r, err := roller.RollFor(c, "dexterity+brawl")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Successes())

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "dexterity+brawl", fields["expression"])
	assert.Equal(t, int64(5), fields["successes"])
	assert.Equal(t, false, fields["botch"])
}

func TestLoggedRoller_PropagatesErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.New(core))
	c := testutil.MustBuild(t, testutil.ValidBuilder(testutil.NewCatalog()))

	_, err := roller.RollFor(c, "obfuscate")
	assert.Error(t, err)
	assert.Zero(t, logs.Len())
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(dice.Sides)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, dice.Sides)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestPropertyRollFacesInRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 20).Draw(rt, "size")
		difficulty := rapid.IntRange(2, dice.Sides).Draw(rt, "difficulty")
		r, err := dice.Roll(dice.Pool{Expression: "p", Size: size, Difficulty: difficulty}, src)
		if err != nil {
			rt.Fatalf("roll: %v", err)
		}
		if len(r.Dice) != size {
			rt.Fatalf("rolled %d dice, want %d", len(r.Dice), size)
		}
		for _, d := range r.Dice {
			if d < 1 || d > dice.Sides {
				rt.Fatalf("face %d out of range", d)
			}
		}
	})
}

func TestPropertySuccessesBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		faces := rapid.SliceOfN(rapid.IntRange(1, dice.Sides), 1, 15).Draw(rt, "dice")
		r := dice.Result{
			Expression: "p",
			Difficulty: rapid.IntRange(2, dice.Sides).Draw(rt, "difficulty"),
			Dice:       faces,
		}
		if s := r.Successes(); s < 0 || s > r.Hits() {
			rt.Fatalf("successes %d outside [0, %d]", s, r.Hits())
		}
		if r.Botch() && r.Successes() != 0 {
			rt.Fatalf("botch with %d successes", r.Successes())
		}
		if !strings.Contains(r.String(), fmt.Sprint(r.Dice)) {
			rt.Fatalf("String() %q lacks dice", r.String())
		}
	})
}
