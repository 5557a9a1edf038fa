package xmlstore

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/vampire/internal/game/character"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
)

// ratedElement is a reference key with a dot value as text content.
type ratedElement struct {
	Key   string `xml:"key,attr"`
	Value int    `xml:",chardata"`
}

// characterDocument is the on-disk layout of a character file. Field order
// is element order.
type characterDocument struct {
	XMLName       xml.Name       `xml:"character"`
	XSI           string         `xml:"xmlns:xsi,attr,omitempty"`
	ID            string         `xml:"id,attr,omitempty"`
	Name          string         `xml:"name"`
	Clan          string         `xml:"clan"`
	Generation    int            `xml:"generation"`
	Chronicle     string         `xml:"chronicle"`
	Experience    int            `xml:"experience"`
	Nature        string         `xml:"nature"`
	Hideout       string         `xml:"hideout"`
	Player        string         `xml:"player"`
	Behaviour     string         `xml:"behaviour"`
	Concept       string         `xml:"concept"`
	Sire          string         `xml:"sire"`
	Sect          string         `xml:"sect"`
	Attributes    []ratedElement `xml:"attributes>attribute"`
	Abilities     []ratedElement `xml:"abilities>ability"`
	Advantages    []ratedElement `xml:"advantages>advantage"`
	Merits        []string       `xml:"merits>merit"`
	Flaws         []string       `xml:"flaws>flaw"`
	Road          *ratedElement  `xml:"road,omitempty"`
	Willpower     int            `xml:"willpower"`
	UsedWillpower int            `xml:"usedWillpower"`
	BloodStock    int            `xml:"bloodStock"`
	Age           int            `xml:"age"`
	LooksLikeAge  int            `xml:"looksLikeAge"`
	DayOfBirth    nilDate        `xml:"dayOfBirth"`
	DayOfDeath    nilDate        `xml:"dayOfDeath"`
	HairColor     string         `xml:"hairColor"`
	EyeColor      string         `xml:"eyeColor"`
	SkinColor     string         `xml:"skinColor"`
	Nationality   string         `xml:"nationality"`
	Size          int            `xml:"size"`
	Weight        int            `xml:"weight"`
	Sex           string         `xml:"sex,omitempty"`
	Story         string         `xml:"story"`
	Description   string         `xml:"description"`
}

// nilDate is a calendar date written as YYYY-MM-DD, or as an empty element
// marked xsi:nil="true" when zero.
type nilDate struct {
	time.Time
}

func (d nilDate) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if d.IsZero() {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xsi:nil"}, Value: "true"})
		return e.EncodeElement("", start)
	}
	return e.EncodeElement(d.Format(dateLayout), start)
}

func (d *nilDate) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	for _, a := range start.Attr {
		if a.Name.Local != "nil" || (a.Name.Space != xsiNamespace && a.Name.Space != "xsi") {
			continue
		}
		if isNil, _ := strconv.ParseBool(strings.TrimSpace(a.Value)); isNil {
			d.Time = time.Time{}
			return nil
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("element <%s>: %w", start.Name.Local, err)
	}
	d.Time = t
	return nil
}

func rated[T any](items []character.Rated[T], key func(T) string) []ratedElement {
	out := make([]ratedElement, 0, len(items))
	for _, r := range items {
		out = append(out, ratedElement{Key: key(r.Trait), Value: r.Dots})
	}
	return out
}

func attributeKey(a ruleset.Attribute) string { return a.Key }
func abilityKey(a ruleset.Ability) string { return a.Key }
func advantageKey(a ruleset.Advantage) string { return a.Key }
func qualityKey(q ruleset.Merit) string { return q.Key }

func keys[T any](items []T, key func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, key(v))
	}
	return out
}

// toDocument flattens c into its file layout, replacing every reference by
// its key.
func toDocument(c *character.Character) *characterDocument {
	doc := &characterDocument{
		XSI:           xsiNamespace,
		Name:          c.Name(),
		Chronicle:     c.Chronicle(),
		Experience:    c.Experience(),
		Nature:        c.Nature(),
		Hideout:       c.Hideout(),
		Player:        c.Player(),
		Behaviour:     c.Demeanor(),
		Concept:       c.Concept(),
		Sire:          c.Sire(),
		Sect:          c.Sect(),
		Attributes:    rated(c.Attributes(), attributeKey),
		Abilities:     rated(c.Abilities(), abilityKey),
		Advantages:    rated(c.Advantages(), advantageKey),
		Merits:        keys(c.Merits(), qualityKey),
		Flaws:         keys(c.Flaws(), qualityKey),
		Willpower:     c.Willpower(),
		UsedWillpower: c.UsedWillpower(),
		BloodStock:    c.BloodStock(),
		Age:           c.Age(),
		LooksLikeAge:  c.ApparentAge(),
		DayOfBirth:    nilDate{c.DayOfBirth()},
		DayOfDeath:    nilDate{c.DayOfDeath()},
		HairColor:     c.HairColor(),
		EyeColor:      c.EyeColor(),
		SkinColor:     c.SkinColor(),
		Nationality:   c.Nationality(),
		Size:          c.Height(),
		Weight:        c.Weight(),
		Sex:           string(c.Sex()),
		Story:         c.Story(),
		Description:   c.Description(),
	}
	if c.ID() != uuid.Nil {
		doc.ID = c.ID().String()
	}
	if cl := c.Clan(); cl != nil {
		doc.Clan = cl.Key
	}
	if g := c.Generation(); g != nil {
		doc.Generation = g.Value
	}
	if r := c.Road(); r.Trait.Key != "" {
		doc.Road = &ratedElement{Key: r.Trait.Key, Value: r.Dots}
	}
	return doc
}

func resolveRated[T any](kind string, elems []ratedElement, lookup func(string) (T, bool)) ([]character.Rated[T], error) {
	out := make([]character.Rated[T], 0, len(elems))
	for _, e := range elems {
		v, ok := lookup(e.Key)
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, e.Key)
		}
		out = append(out, character.Rate(v, e.Value))
	}
	return out, nil
}

func resolveKeys[T any](kind string, ks []string, lookup func(string) (T, bool)) ([]T, error) {
	out := make([]T, 0, len(ks))
	for _, k := range ks {
		v, ok := lookup(strings.TrimSpace(k))
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, k)
		}
		out = append(out, v)
	}
	return out, nil
}

// fromDocument resolves every key in doc against cat and builds the
// character, re-running all character validation.
//
// Postcondition: Returns a valid Character or a non-nil error; never a partially built Character.
func fromDocument(doc *characterDocument, cat *ruleset.Catalog) (*character.Character, error) {
	b := character.NewBuilder().
		WithName(doc.Name).
		WithChronicle(doc.Chronicle).
		WithExperience(doc.Experience).
		WithNature(doc.Nature).
		WithHideout(doc.Hideout).
		WithPlayer(doc.Player).
		WithDemeanor(doc.Behaviour).
		WithConcept(doc.Concept).
		WithSire(doc.Sire).
		WithSect(doc.Sect).
		WithWillpower(doc.Willpower).
		WithUsedWillpower(doc.UsedWillpower).
		WithBloodStock(doc.BloodStock).
		WithAge(doc.Age).
		WithApparentAge(doc.LooksLikeAge).
		WithDayOfBirth(doc.DayOfBirth.Time).
		WithDayOfDeath(doc.DayOfDeath.Time).
		WithHairColor(doc.HairColor).
		WithEyeColor(doc.EyeColor).
		WithSkinColor(doc.SkinColor).
		WithNationality(doc.Nationality).
		WithHeight(doc.Size).
		WithWeight(doc.Weight).
		WithSex(character.Sex(doc.Sex)).
		WithStory(doc.Story).
		WithDescription(doc.Description)

	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", doc.ID, err)
		}
		b.WithID(id)
	}
	if doc.Clan != "" {
		cl, ok := cat.Clan(doc.Clan)
		if !ok {
			return nil, fmt.Errorf("unknown clan %q", doc.Clan)
		}
		b.WithClan(cl)
	}
	if doc.Generation != 0 {
		g, ok := cat.Generation(doc.Generation)
		if !ok {
			return nil, fmt.Errorf("unknown generation %d", doc.Generation)
		}
		b.WithGeneration(g)
	}
	attributes, err := resolveRated("attribute", doc.Attributes, cat.Attribute)
	if err != nil {
		return nil, err
	}
	abilities, err := resolveRated("ability", doc.Abilities, cat.Ability)
	if err != nil {
		return nil, err
	}
	advantages, err := resolveRated("advantage", doc.Advantages, cat.Advantage)
	if err != nil {
		return nil, err
	}
	merits, err := resolveKeys("merit", doc.Merits, cat.Merit)
	if err != nil {
		return nil, err
	}
	flaws, err := resolveKeys("flaw", doc.Flaws, cat.Flaw)
	if err != nil {
		return nil, err
	}
	b.WithAttributes(attributes).
		WithAbilities(abilities).
		WithAdvantages(advantages).
		WithMerits(merits).
		WithFlaws(flaws)
	if doc.Road != nil {
		road, ok := cat.Road(doc.Road.Key)
		if !ok {
			return nil, fmt.Errorf("unknown road %q", doc.Road.Key)
		}
		b.WithRoad(character.Rate(road, doc.Road.Value))
	}
	return b.Build()
}
