package sheet_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/vampire/internal/game/character"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
	"github.com/cory-johannsen/vampire/internal/i18n"
	"github.com/cory-johannsen/vampire/internal/sheet"
	"github.com/cory-johannsen/vampire/internal/testutil"
)

func newRenderer(t *testing.T, lang string, color bool) (*sheet.Renderer, *ruleset.Catalog) {
	t.Helper()
	b, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	cat := testutil.NewCatalog()
	return sheet.NewRenderer(b.Translator(lang), cat, color), cat
}

func TestRenderCharacter_English(t *testing.T) {
	r, cat := newRenderer(t, "en", false)
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat))
	out := r.Character(c)

	assert.True(t, strings.HasPrefix(out, "Lucien de Montfort\n"))
	assert.Contains(t, out, "Clan:")
	assert.Contains(t, out, "Brujah")
	assert.Contains(t, out, "Demeanor:")
	assert.Contains(t, out, "Gallant")
	assert.Contains(t, out, "Generation:    13")
	assert.Contains(t, out, "Sex:")
	assert.Contains(t, out, "Male")
	assert.Contains(t, out, "Physical")
	assert.Contains(t, out, "Knowledges")
	assert.Contains(t, out, "Road of Humanity ●●●●●●●○○○")
	assert.Contains(t, out, "Blood pool:")
	assert.Contains(t, out, "10/10")
	assert.Contains(t, out, "Prone to frenzy")
	assert.NotContains(t, out, "\033[")
}

func TestRenderCharacter_German(t *testing.T) {
	r, cat := newRenderer(t, "de-AT", false)
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat))
	out := r.Character(c)

	assert.Contains(t, out, "Pfad der Menschlichkeit")
	assert.Contains(t, out, "Disziplinen")
	assert.Contains(t, out, "de:strength")
	// Names missing in German fall back to English.
	assert.Contains(t, out, "Prone to frenzy")
}

func TestRenderCharacter_OmitsEmptyFields(t *testing.T) {
	r, cat := newRenderer(t, "en", false)
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat).
		WithSire("").
		WithSex("").
		WithRoad(character.Rated[ruleset.Road]{}))
	out := r.Character(c)
	assert.NotContains(t, out, "Sire:")
	assert.NotContains(t, out, "Sex:")
	assert.NotContains(t, out, "Road:")
}

func TestRenderCharacter_Color(t *testing.T) {
	r, cat := newRenderer(t, "en", true)
	c := testutil.MustBuild(t, testutil.ValidBuilder(cat))
	out := r.Character(c)
	assert.True(t, strings.HasPrefix(out, sheet.BrightYellow+"Lucien de Montfort"+sheet.Reset))

	plain, _ := newRenderer(t, "en", false)
	assert.Equal(t, plain.Character(c), sheet.StripANSI(out))
}

func TestRenderCatalog(t *testing.T) {
	r, _ := newRenderer(t, "en", false)
	out, err := r.Catalog()
	require.NoError(t, err)
	assert.Contains(t, out, "Brujah\n")
	assert.Contains(t, out, "celerity, potence, presence")
	assert.Contains(t, out, "Generation 12: max trait 5, blood pool 11, 1 per turn")
	assert.Less(t, strings.Index(out, "Generation 12"), strings.Index(out, "Generation 13"))
}

func TestRenderCatalog_DanglingReference(t *testing.T) {
	b, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	cat := ruleset.NewCatalog()
	cl, err := ruleset.NewClanBuilder().WithKey("baali").WithName("en", "Baali").WithAdvantages("daimoinon").Build()
	require.NoError(t, err)
	require.NoError(t, cat.RegisterClan(cl))

	_, err = sheet.NewRenderer(b.Translator("en"), cat, false).Catalog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daimoinon")
}

func TestDots(t *testing.T) {
	assert.Equal(t, "●●●○○", sheet.Dots(3, 5))
	assert.Equal(t, "○○○○○", sheet.Dots(0, 5))
	assert.Equal(t, "●●●●●●", sheet.Dots(6, 5))
	assert.Equal(t, "○○", sheet.Dots(-1, 2))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mfrenzy\033[0m", sheet.Colorize(sheet.Red, "frenzy"))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "red normal dim", sheet.StripANSI("\033[31mred\033[0m normal \033[2mdim\033[0m"))
	assert.Equal(t, "plain text", sheet.StripANSI("plain text"))
	assert.Equal(t, "", sheet.StripANSI(""))
}

// Property: StripANSI(Colorize(color, text)) == text for any ASCII text.
func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{sheet.Red, sheet.Cyan, sheet.Dim, sheet.BrightYellow}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		color := rapid.SampledFrom(colors).Draw(t, "color")
		if got := sheet.StripANSI(sheet.Colorize(color, text)); got != text {
			t.Fatalf("StripANSI(Colorize(%q)) = %q", text, got)
		}
	})
}

// Property: Dots always has max(n, max) runes with n filled.
func TestPropertyDotsWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		max := rapid.IntRange(0, 12).Draw(t, "max")
		d := sheet.Dots(n, max)
		want := max
		if n > max {
			want = n
		}
		if utf8.RuneCountInString(d) != want || strings.Count(d, "●") != n {
			t.Fatalf("Dots(%d, %d) = %q", n, max, d)
		}
	})
}
