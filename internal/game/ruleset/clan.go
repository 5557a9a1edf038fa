package ruleset

import (
	"slices"

	"github.com/cory-johannsen/vampire/internal/game/entity"
)

// Clan is a vampire lineage. Advantages and Weaknesses hold the ordered keys
// of the disciplines and drawbacks the clan grants.
type Clan struct {
	entity.Translated
	Advantages []string
	Weaknesses []string
}

// Clone returns a copy of c that shares no slice or map with it. Clone of a
// nil Clan is nil.
func (c *Clan) Clone() *Clan {
	if c == nil {
		return nil
	}
	return &Clan{
		Translated: c.Translated.Clone(),
		Advantages: slices.Clone(c.Advantages),
		Weaknesses: slices.Clone(c.Weaknesses),
	}
}

// ClanBuilder accumulates the fields of a Clan.
type ClanBuilder struct {
	t          *entity.TranslatedBuilder
	advantages []string
	weaknesses []string
}

// NewClanBuilder returns an empty Clan builder.
func NewClanBuilder() *ClanBuilder {
	return &ClanBuilder{t: entity.NewTranslatedBuilder("clan")}
}

// ClanBuilderFrom returns a builder pre-populated from c.
func ClanBuilderFrom(c *Clan) *ClanBuilder {
	return &ClanBuilder{
		t:          entity.TranslatedBuilderFrom("clan", c.Translated),
		advantages: slices.Clone(c.Advantages),
		weaknesses: slices.Clone(c.Weaknesses),
	}
}

// WithKey sets the key.
func (b *ClanBuilder) WithKey(key string) *ClanBuilder {
	b.t.WithKey(key)
	return b
}

// WithName sets the display name for one language.
func (b *ClanBuilder) WithName(lang entity.Language, name string) *ClanBuilder {
	b.t.WithName(lang, name)
	return b
}

// WithAdvantages replaces the granted advantage keys.
func (b *ClanBuilder) WithAdvantages(keys ...string) *ClanBuilder {
	b.advantages = slices.Clone(keys)
	return b
}

// WithWeaknesses replaces the granted weakness keys.
func (b *ClanBuilder) WithWeaknesses(keys ...string) *ClanBuilder {
	b.weaknesses = slices.Clone(keys)
	return b
}

// Build validates and returns the Clan.
//
// Postcondition: Returns a non-nil Clan or a *entity.ValidationError.
func (b *ClanBuilder) Build() (*Clan, error) {
	for _, k := range b.advantages {
		if k == "" {
			return nil, entity.Invalid("clan", "Empty advantage key")
		}
	}
	for _, k := range b.weaknesses {
		if k == "" {
			return nil, entity.Invalid("clan", "Empty weakness key")
		}
	}
	t, err := b.t.Build()
	if err != nil {
		return nil, err
	}
	return &Clan{
		Translated: t,
		Advantages: slices.Clone(b.advantages),
		Weaknesses: slices.Clone(b.weaknesses),
	}, nil
}
