// Package sheet renders characters and reference data as terminal text.
package sheet

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/vampire/internal/game/character"
	"github.com/cory-johannsen/vampire/internal/game/entity"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
	"github.com/cory-johannsen/vampire/internal/i18n"
)

const (
	defaultMaxTrait = 5
	maxRoad         = 10
)

// Renderer formats characters and catalog entries in one language.
type Renderer struct {
	tr    *i18n.Translator
	cat   *ruleset.Catalog
	color bool
}

// NewRenderer returns a Renderer. When color is false all output is plain text.
//
// Precondition: tr and cat must be non-nil.
func NewRenderer(tr *i18n.Translator, cat *ruleset.Catalog, color bool) *Renderer {
	return &Renderer{tr: tr, cat: cat, color: color}
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return Colorize(color, text)
}

func (r *Renderer) name(t entity.Translated) string {
	return t.DisplayName(r.tr.Language())
}

// Dots renders a rating as filled and empty circles. The scale grows to fit
// ratings above max.
//
// Postcondition: The result has max(n, max) runes; n of them are filled.
func Dots(n, max int) string {
	if n < 0 {
		n = 0
	}
	if max < n {
		max = n
	}
	return strings.Repeat("●", n) + strings.Repeat("○", max-n)
}

func (r *Renderer) field(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %-14s %s\n", r.tr.Text(key)+":", value)
}

func (r *Renderer) heading(b *strings.Builder, key string) {
	b.WriteString("\n")
	b.WriteString(r.paint(Cyan, r.tr.Text(key)))
	b.WriteString("\n")
}

func ratedGroup[T any](r *Renderer, b *strings.Builder, label string, items []character.Rated[T], name func(T) string, max int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", r.paint(Dim, label))
	for _, it := range items {
		fmt.Fprintf(b, "    %-22s %s\n", name(it.Trait), Dots(it.Dots, max))
	}
}

// Character renders the sheet of c.
//
// Precondition: c must be a built Character.
func (r *Renderer) Character(c *character.Character) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightYellow, c.Name()))
	b.WriteString("\n")

	maxTrait := defaultMaxTrait
	generation := ""
	if g := c.Generation(); g != nil {
		maxTrait = g.MaxTrait
		generation = g.String()
	}
	clan := ""
	if cl := c.Clan(); cl != nil {
		clan = r.name(cl.Translated)
	}
	r.field(&b, "sheet.player", c.Player())
	r.field(&b, "sheet.chronicle", c.Chronicle())
	r.field(&b, "sheet.nature", c.Nature())
	r.field(&b, "sheet.demeanor", c.Demeanor())
	r.field(&b, "sheet.concept", c.Concept())
	r.field(&b, "sheet.clan", clan)
	r.field(&b, "sheet.generation", generation)
	r.field(&b, "sheet.sire", c.Sire())
	r.field(&b, "sheet.sect", c.Sect())
	if c.Sex() != "" {
		r.field(&b, "sheet.sex", r.tr.Label(c.Sex()))
	}

	r.heading(&b, "sheet.attributes")
	for _, typ := range ruleset.AttributeTypes {
		ratedGroup(r, &b, r.tr.Label(typ), c.AttributesOf(typ), func(a ruleset.Attribute) string { return r.name(a.Translated) }, maxTrait)
	}
	r.heading(&b, "sheet.abilities")
	for _, typ := range ruleset.AbilityTypes {
		ratedGroup(r, &b, r.tr.Label(typ), c.AbilitiesOf(typ), func(a ruleset.Ability) string { return r.name(a.Translated) }, maxTrait)
	}
	r.heading(&b, "sheet.advantages")
	for _, typ := range ruleset.AdvantageTypes {
		ratedGroup(r, &b, r.tr.Label(typ), c.AdvantagesOf(typ), func(a ruleset.Advantage) string { return r.name(a.Translated) }, maxTrait)
	}

	b.WriteString("\n")
	r.field(&b, "sheet.merits", r.qualities(c.Merits()))
	r.field(&b, "sheet.flaws", r.qualities(c.Flaws()))
	if road := c.Road(); road.Trait.Key != "" {
		r.field(&b, "sheet.road", fmt.Sprintf("%s %s", r.name(road.Trait.Translated), Dots(road.Dots, maxRoad)))
	}
	r.field(&b, "sheet.willpower", fmt.Sprintf("%s %d/%d", Dots(c.Willpower()-c.UsedWillpower(), c.Willpower()), c.Willpower()-c.UsedWillpower(), c.Willpower()))
	if g := c.Generation(); g != nil {
		r.field(&b, "sheet.blood", fmt.Sprintf("%d/%d", c.BloodStock(), g.MaxBloodPool))
	}
	if cl := c.Clan(); cl != nil {
		if weaknesses, err := r.cat.ClanWeaknesses(cl); err == nil {
			names := make([]string, 0, len(weaknesses))
			for _, w := range weaknesses {
				names = append(names, r.name(w.Translated))
			}
			r.field(&b, "sheet.weaknesses", r.paint(Red, strings.Join(names, ", ")))
		}
	}
	return b.String()
}

func (r *Renderer) qualities(items []ruleset.Merit) string {
	names := make([]string, 0, len(items))
	for _, q := range items {
		names = append(names, r.name(q.Translated))
	}
	return strings.Join(names, ", ")
}

// Catalog renders every clan with its advantages and weaknesses, followed by
// the generation table.
//
// Postcondition: Returns the text, or an error naming the first dangling clan reference.
func (r *Renderer) Catalog() (string, error) {
	var b strings.Builder
	for _, cl := range r.cat.Clans() {
		advantages, err := r.cat.ClanAdvantages(cl)
		if err != nil {
			return "", err
		}
		weaknesses, err := r.cat.ClanWeaknesses(cl)
		if err != nil {
			return "", err
		}
		b.WriteString(r.paint(BrightYellow, r.name(cl.Translated)))
		b.WriteString("\n")
		names := make([]string, 0, len(advantages))
		for _, a := range advantages {
			names = append(names, r.name(a.Translated))
		}
		r.field(&b, "sheet.advantages", strings.Join(names, ", "))
		names = names[:0]
		for _, w := range weaknesses {
			names = append(names, r.name(w.Translated))
		}
		r.field(&b, "sheet.weaknesses", strings.Join(names, ", "))
	}
	r.heading(&b, "sheet.generation")
	for _, g := range r.cat.Generations() {
		fmt.Fprintf(&b, "  %s\n", r.tr.Text("catalog.generation", g.Value, g.MaxTrait, g.MaxBloodPool, g.BloodPerTurn))
	}
	return b.String(), nil
}
