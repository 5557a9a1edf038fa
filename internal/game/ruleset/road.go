package ruleset

import "github.com/cory-johannsen/vampire/internal/game/entity"

// Road is a moral path a vampire follows in place of lost humanity.
type Road struct {
	entity.Translated
}

// Clone returns a copy of r that shares no map with it.
func (r Road) Clone() Road { return Road{Translated: r.Translated.Clone()} }

// Weakness is a clan-specific drawback.
type Weakness struct {
	entity.Translated
}

// Clone returns a copy of w that shares no map with it.
func (w Weakness) Clone() Weakness { return Weakness{Translated: w.Translated.Clone()} }

// RoadBuilder accumulates the fields of a Road.
type RoadBuilder struct {
	t *entity.TranslatedBuilder
}

// NewRoadBuilder returns an empty Road builder.
func NewRoadBuilder() *RoadBuilder {
	return &RoadBuilder{t: entity.NewTranslatedBuilder("road")}
}

// WithKey sets the key.
func (b *RoadBuilder) WithKey(key string) *RoadBuilder {
	b.t.WithKey(key)
	return b
}

// WithName sets the display name for one language.
func (b *RoadBuilder) WithName(lang entity.Language, name string) *RoadBuilder {
	b.t.WithName(lang, name)
	return b
}

// Build validates and returns the Road.
func (b *RoadBuilder) Build() (Road, error) {
	t, err := b.t.Build()
	if err != nil {
		return Road{}, err
	}
	return Road{Translated: t}, nil
}

// WeaknessBuilder accumulates the fields of a Weakness.
type WeaknessBuilder struct {
	t *entity.TranslatedBuilder
}

// NewWeaknessBuilder returns an empty Weakness builder.
func NewWeaknessBuilder() *WeaknessBuilder {
	return &WeaknessBuilder{t: entity.NewTranslatedBuilder("weakness")}
}

// WithKey sets the key.
func (b *WeaknessBuilder) WithKey(key string) *WeaknessBuilder {
	b.t.WithKey(key)
	return b
}

// WithName sets the display name for one language.
func (b *WeaknessBuilder) WithName(lang entity.Language, name string) *WeaknessBuilder {
	b.t.WithName(lang, name)
	return b
}

// Build validates and returns the Weakness.
func (b *WeaknessBuilder) Build() (Weakness, error) {
	t, err := b.t.Build()
	if err != nil {
		return Weakness{}, err
	}
	return Weakness{Translated: t}, nil
}
