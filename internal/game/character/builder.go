package character

import (
	"fmt"
	"math"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cory-johannsen/vampire/internal/game/entity"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

const entityName = "character"

// Builder accumulates character fields and validates them once in Build.
// Setters may be called any number of times; the last write wins.
type Builder struct {
	c Character
}

// NewBuilder returns a builder with empty trait collections.
func NewBuilder() *Builder {
	return &Builder{c: Character{
		attributes: []Rated[ruleset.Attribute]{},
		abilities:  []Rated[ruleset.Ability]{},
		advantages: []Rated[ruleset.Advantage]{},
		merits:     []ruleset.Merit{},
		flaws:      []ruleset.Flaw{},
	}}
}

// From returns a builder holding every field of c, ready for overrides.
//
// Precondition: c must not be nil.
func From(c *Character) *Builder {
	return &Builder{c: c.clone()}
}

func (b *Builder) WithID(id uuid.UUID) *Builder { b.c.id = id; return b }
func (b *Builder) WithName(s string) *Builder { b.c.name = s; return b }
func (b *Builder) WithClan(cl *ruleset.Clan) *Builder { b.c.clan = cl; return b }
func (b *Builder) WithGeneration(g *ruleset.Generation) *Builder { b.c.generation = g; return b }
func (b *Builder) WithChronicle(s string) *Builder { b.c.chronicle = s; return b }
func (b *Builder) WithExperience(n int) *Builder { b.c.experience = n; return b }
func (b *Builder) WithNature(s string) *Builder { b.c.nature = s; return b }
func (b *Builder) WithHideout(s string) *Builder { b.c.hideout = s; return b }
func (b *Builder) WithPlayer(s string) *Builder { b.c.player = s; return b }
func (b *Builder) WithDemeanor(s string) *Builder { b.c.demeanor = s; return b }
func (b *Builder) WithConcept(s string) *Builder { b.c.concept = s; return b }
func (b *Builder) WithSire(s string) *Builder { b.c.sire = s; return b }
func (b *Builder) WithSect(s string) *Builder { b.c.sect = s; return b }
func (b *Builder) WithRoad(r Rated[ruleset.Road]) *Builder { b.c.road = r; return b }
func (b *Builder) WithWillpower(n int) *Builder { b.c.willpower = n; return b }
func (b *Builder) WithUsedWillpower(n int) *Builder { b.c.usedWillpower = n; return b }
func (b *Builder) WithBloodStock(n int) *Builder { b.c.bloodStock = n; return b }
func (b *Builder) WithAge(n int) *Builder { b.c.age = n; return b }
func (b *Builder) WithApparentAge(n int) *Builder { b.c.apparentAge = n; return b }

// WithDayOfBirth sets the birth date. Build keeps only the calendar date of t
// in its own location, as midnight UTC.
func (b *Builder) WithDayOfBirth(t time.Time) *Builder { b.c.dayOfBirth = t; return b }

// WithDayOfDeath sets the date of the Embrace, normalised like WithDayOfBirth.
func (b *Builder) WithDayOfDeath(t time.Time) *Builder { b.c.dayOfDeath = t; return b }

func (b *Builder) WithHairColor(s string) *Builder { b.c.hairColor = s; return b }
func (b *Builder) WithEyeColor(s string) *Builder { b.c.eyeColor = s; return b }
func (b *Builder) WithSkinColor(s string) *Builder { b.c.skinColor = s; return b }
func (b *Builder) WithNationality(s string) *Builder { b.c.nationality = s; return b }
func (b *Builder) WithHeight(n int) *Builder { b.c.height = n; return b }
func (b *Builder) WithWeight(n int) *Builder { b.c.weight = n; return b }
func (b *Builder) WithSex(s Sex) *Builder { b.c.sex = s; return b }
func (b *Builder) WithStory(s string) *Builder { b.c.story = s; return b }
func (b *Builder) WithDescription(s string) *Builder { b.c.description = s; return b }

// WithMerits replaces the owned merits. A nil slice means none.
func (b *Builder) WithMerits(m []ruleset.Merit) *Builder {
	b.c.merits = append([]ruleset.Merit{}, m...)
	return b
}

// WithFlaws replaces the owned flaws. A nil slice means none.
func (b *Builder) WithFlaws(f []ruleset.Flaw) *Builder {
	b.c.flaws = append([]ruleset.Flaw{}, f...)
	return b
}

// WithAttributes replaces the rated attributes. A nil slice marks them absent.
func (b *Builder) WithAttributes(a []Rated[ruleset.Attribute]) *Builder {
	b.c.attributes = slices.Clone(a)
	return b
}

// WithAbilities replaces the rated abilities. A nil slice marks them absent.
func (b *Builder) WithAbilities(a []Rated[ruleset.Ability]) *Builder {
	b.c.abilities = slices.Clone(a)
	return b
}

// WithAdvantages replaces the rated advantages. A nil slice marks them absent.
func (b *Builder) WithAdvantages(a []Rated[ruleset.Advantage]) *Builder {
	b.c.advantages = slices.Clone(a)
	return b
}

// Build validates the accumulated fields and returns a new Character.
// A missing id is replaced with a fresh random one and dates are reduced to
// their calendar day.
//
// Postcondition: Returns a valid Character, or a *entity.ValidationError
// describing the first violated rule. No partial Character is returned.
func (b *Builder) Build() (*Character, error) {
	c := b.c.clone()
	if c.id == uuid.Nil {
		c.id = uuid.New()
	}
	c.dayOfBirth = calendarDay(c.dayOfBirth)
	c.dayOfDeath = calendarDay(c.dayOfDeath)
	if err := check(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func check(c *Character) error {
	if err := entity.RequireString(entityName, "name", c.name); err != nil {
		return err
	}
	if c.clan == nil {
		return entity.Invalid(entityName, "Missing clan")
	}
	if c.generation == nil {
		return entity.Invalid(entityName, "Missing generation")
	}
	for _, f := range []struct{ field, value string }{
		{"nature", c.nature},
		{"demeanor", c.demeanor},
		{"concept", c.concept},
	} {
		if err := entity.RequireString(entityName, f.field, f.value); err != nil {
			return err
		}
	}
	if err := checkCount("attributes", "Attributes", c.attributes == nil, len(c.attributes), AttributeCount, true); err != nil {
		return err
	}
	if err := checkCount("abilities", "Abilities", c.abilities == nil, len(c.abilities), AbilityCount, true); err != nil {
		return err
	}
	if err := checkCount("advantages", "Advantages", c.advantages == nil, len(c.advantages), MinAdvantages, false); err != nil {
		return err
	}
	if !c.sex.Valid() {
		return entity.Invalid(entityName, fmt.Sprintf("Unknown sex %q", string(c.sex)))
	}
	if err := checkText(c); err != nil {
		return err
	}
	if err := checkRanges(c); err != nil {
		return err
	}
	for _, d := range []struct {
		field string
		t     time.Time
	}{
		{"Day of birth", c.dayOfBirth},
		{"Day of death", c.dayOfDeath},
	} {
		if !d.t.IsZero() && (d.t.Year() < 1 || d.t.Year() > 9999) {
			return entity.Invalid(entityName, d.field+" out of range")
		}
	}
	return nil
}

// checkText rejects strings that an XML document cannot carry.
func checkText(c *Character) error {
	for _, f := range []struct{ field, value string }{
		{"name", c.name},
		{"chronicle", c.chronicle},
		{"nature", c.nature},
		{"hideout", c.hideout},
		{"player", c.player},
		{"demeanor", c.demeanor},
		{"concept", c.concept},
		{"sire", c.sire},
		{"sect", c.sect},
		{"hair color", c.hairColor},
		{"eye color", c.eyeColor},
		{"skin color", c.skinColor},
		{"nationality", c.nationality},
		{"story", c.story},
		{"description", c.description},
	} {
		if !isXMLText(f.value) {
			return entity.Invalid(entityName, "Invalid characters in "+f.field)
		}
	}
	return nil
}

// isXMLText reports whether s is valid UTF-8 made only of characters allowed
// in XML 1.0 documents.
func isXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x09, r == 0x0A, r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

// checkRanges keeps every number within the 32-bit range of character files.
func checkRanges(c *Character) error {
	for _, f := range []struct {
		field string
		n     int
	}{
		{"Experience", c.experience},
		{"Willpower", c.willpower},
		{"Used willpower", c.usedWillpower},
		{"Blood stock", c.bloodStock},
		{"Age", c.age},
		{"Apparent age", c.apparentAge},
		{"Height", c.height},
		{"Weight", c.weight},
		{"Road rating", c.road.Dots},
	} {
		if !inRange(f.n) {
			return entity.Invalid(entityName, f.field+" out of range")
		}
	}
	for _, a := range c.attributes {
		if !inRange(a.Dots) {
			return entity.Invalid(entityName, fmt.Sprintf("Rating of attribute %q out of range", a.Trait.Key))
		}
	}
	for _, a := range c.abilities {
		if !inRange(a.Dots) {
			return entity.Invalid(entityName, fmt.Sprintf("Rating of ability %q out of range", a.Trait.Key))
		}
	}
	for _, a := range c.advantages {
		if !inRange(a.Dots) {
			return entity.Invalid(entityName, fmt.Sprintf("Rating of advantage %q out of range", a.Trait.Key))
		}
	}
	return nil
}

func inRange(n int) bool {
	return int64(n) >= math.MinInt32 && int64(n) <= math.MaxInt32
}

// calendarDay returns midnight UTC of the date t shows in its own location.
// The zero time stays zero.
func calendarDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// checkCount enforces a collection's cardinality. exact requires len == want;
// otherwise len >= want.
func checkCount(lower, title string, absent bool, n, want int, exact bool) error {
	switch {
	case absent:
		return entity.Invalid(entityName, "Missing "+lower)
	case n == 0:
		return entity.Invalid(entityName, title+" are empty")
	case n < want:
		return entity.Invalid(entityName, "Missing "+lower)
	case exact && n > want:
		return entity.Invalid(entityName, "Too many "+lower)
	}
	return nil
}
