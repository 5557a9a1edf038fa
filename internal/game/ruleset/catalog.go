package ruleset

import (
	"errors"
	"fmt"
	"sort"
)

// table is an insertion-ordered keyed collection. Values are cloned on the
// way in and on the way out so callers never share stored state.
type table[T any] struct {
	kind  string
	clone func(T) T
	byKey map[string]T
	order []string
}

func newTable[T any](kind string, clone func(T) T) table[T] {
	return table[T]{kind: kind, clone: clone, byKey: make(map[string]T)}
}

func (t *table[T]) add(key string, v T) error {
	if key == "" {
		return fmt.Errorf("ruleset: Catalog: %s key must not be empty", t.kind)
	}
	if _, exists := t.byKey[key]; exists {
		return fmt.Errorf("ruleset: Catalog: %s key %q already registered", t.kind, key)
	}
	t.byKey[key] = t.clone(v)
	t.order = append(t.order, key)
	return nil
}

func (t *table[T]) get(key string) (T, bool) {
	v, ok := t.byKey[key]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.clone(t.byKey[k]))
	}
	return out
}

// Catalog holds every reference entity loaded at startup, keyed by its stable
// key (or generation number). Lists are returned in registration order, which
// is the order of the bundled data files. Every value handed out is a copy.
//
// A Catalog is populated once and read afterwards; it is not safe for
// concurrent registration.
type Catalog struct {
	attributes  table[Attribute]
	abilities   table[Ability]
	advantages  table[Advantage]
	merits      table[Merit]
	flaws       table[Flaw]
	roads       table[Road]
	weaknesses  table[Weakness]
	clans       table[*Clan]
	generations map[int]*Generation
}

// NewCatalog returns an empty Catalog.
//
// Postcondition: all internal maps are initialised.
func NewCatalog() *Catalog {
	return &Catalog{
		attributes:  newTable("attribute", Attribute.Clone),
		abilities:   newTable("ability", Ability.Clone),
		advantages:  newTable("advantage", Advantage.Clone),
		merits:      newTable("merit", Merit.Clone),
		flaws:       newTable("flaw", Flaw.Clone),
		roads:       newTable("road", Road.Clone),
		weaknesses:  newTable("weakness", Weakness.Clone),
		clans:       newTable("clan", (*Clan).Clone),
		generations: make(map[int]*Generation),
	}
}

// RegisterAttribute adds a to the catalog.
//
// Postcondition: Attribute(a.Key) returns a; returns error if a.Key is already registered.
func (c *Catalog) RegisterAttribute(a Attribute) error { return c.attributes.add(a.Key, a) }

// RegisterAbility adds a to the catalog.
func (c *Catalog) RegisterAbility(a Ability) error { return c.abilities.add(a.Key, a) }

// RegisterAdvantage adds a to the catalog.
func (c *Catalog) RegisterAdvantage(a Advantage) error { return c.advantages.add(a.Key, a) }

// RegisterMerit adds m to the catalog.
func (c *Catalog) RegisterMerit(m Merit) error { return c.merits.add(m.Key, m) }

// RegisterFlaw adds f to the catalog.
func (c *Catalog) RegisterFlaw(f Flaw) error { return c.flaws.add(f.Key, f) }

// RegisterRoad adds r to the catalog.
func (c *Catalog) RegisterRoad(r Road) error { return c.roads.add(r.Key, r) }

// RegisterWeakness adds w to the catalog.
func (c *Catalog) RegisterWeakness(w Weakness) error { return c.weaknesses.add(w.Key, w) }

// RegisterClan adds cl to the catalog.
//
// Precondition: cl must not be nil.
func (c *Catalog) RegisterClan(cl *Clan) error { return c.clans.add(cl.Key, cl) }

// RegisterGeneration adds g to the catalog.
//
// Precondition: g must not be nil.
// Postcondition: Generation(g.Value) returns g; returns error if g.Value is already registered.
func (c *Catalog) RegisterGeneration(g *Generation) error {
	if _, exists := c.generations[g.Value]; exists {
		return fmt.Errorf("ruleset: Catalog: generation %d already registered", g.Value)
	}
	c.generations[g.Value] = g.Clone()
	return nil
}

// Attribute returns the attribute for key and whether it was found.
func (c *Catalog) Attribute(key string) (Attribute, bool) { return c.attributes.get(key) }

// Ability returns the ability for key and whether it was found.
func (c *Catalog) Ability(key string) (Ability, bool) { return c.abilities.get(key) }

// Advantage returns the advantage for key and whether it was found.
func (c *Catalog) Advantage(key string) (Advantage, bool) { return c.advantages.get(key) }

// Merit returns the merit for key and whether it was found.
func (c *Catalog) Merit(key string) (Merit, bool) { return c.merits.get(key) }

// Flaw returns the flaw for key and whether it was found.
func (c *Catalog) Flaw(key string) (Flaw, bool) { return c.flaws.get(key) }

// Road returns the road for key and whether it was found.
func (c *Catalog) Road(key string) (Road, bool) { return c.roads.get(key) }

// Weakness returns the weakness for key and whether it was found.
func (c *Catalog) Weakness(key string) (Weakness, bool) { return c.weaknesses.get(key) }

// Clan returns the clan for key, or (nil, false) if not found.
func (c *Catalog) Clan(key string) (*Clan, bool) { return c.clans.get(key) }

// Generation returns the generation numbered n, or (nil, false) if not found.
func (c *Catalog) Generation(n int) (*Generation, bool) {
	g, ok := c.generations[n]
	return g.Clone(), ok
}

// Attributes returns all attributes in registration order.
func (c *Catalog) Attributes() []Attribute { return c.attributes.all() }

// Abilities returns all abilities in registration order.
func (c *Catalog) Abilities() []Ability { return c.abilities.all() }

// Advantages returns all advantages in registration order.
func (c *Catalog) Advantages() []Advantage { return c.advantages.all() }

// Merits returns all merits in registration order.
func (c *Catalog) Merits() []Merit { return c.merits.all() }

// Flaws returns all flaws in registration order.
func (c *Catalog) Flaws() []Flaw { return c.flaws.all() }

// Roads returns all roads in registration order.
func (c *Catalog) Roads() []Road { return c.roads.all() }

// Weaknesses returns all weaknesses in registration order.
func (c *Catalog) Weaknesses() []Weakness { return c.weaknesses.all() }

// Clans returns all clans in registration order.
func (c *Catalog) Clans() []*Clan { return c.clans.all() }

// Generations returns all generations, lowest number (most potent) first.
func (c *Catalog) Generations() []*Generation {
	out := make([]*Generation, 0, len(c.generations))
	for _, g := range c.generations {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// ClanAdvantages resolves the advantages granted by cl.
//
// Postcondition: Returns advantages in the clan's order, or an error naming the first unknown key.
func (c *Catalog) ClanAdvantages(cl *Clan) ([]Advantage, error) {
	out := make([]Advantage, 0, len(cl.Advantages))
	for _, k := range cl.Advantages {
		a, ok := c.Advantage(k)
		if !ok {
			return nil, fmt.Errorf("clan %q: unknown advantage %q", cl.Key, k)
		}
		out = append(out, a)
	}
	return out, nil
}

// ClanWeaknesses resolves the weaknesses of cl.
//
// Postcondition: Returns weaknesses in the clan's order, or an error naming the first unknown key.
func (c *Catalog) ClanWeaknesses(cl *Clan) ([]Weakness, error) {
	out := make([]Weakness, 0, len(cl.Weaknesses))
	for _, k := range cl.Weaknesses {
		w, ok := c.Weakness(k)
		if !ok {
			return nil, fmt.Errorf("clan %q: unknown weakness %q", cl.Key, k)
		}
		out = append(out, w)
	}
	return out, nil
}

// Check verifies cross references between entities: every clan's advantage
// and weakness keys must be registered.
//
// Postcondition: Returns nil, or an error joining every dangling reference.
func (c *Catalog) Check() error {
	var errs []error
	for _, cl := range c.Clans() {
		if _, err := c.ClanAdvantages(cl); err != nil {
			errs = append(errs, err)
		}
		if _, err := c.ClanWeaknesses(cl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
