package ruleset

import (
	"math"
	"strconv"

	"github.com/cory-johannsen/vampire/internal/game/entity"
)

// Generation is a vampire's distance from Caine and the caps that follow
// from it.
type Generation struct {
	// Value is the generation number, e.g. 13.
	Value int
	// MaxTrait is the highest dot rating any trait may reach.
	MaxTrait int
	// MaxBloodPool is the largest blood pool the vampire can hold.
	MaxBloodPool int
	// BloodPerTurn is how many blood points may be spent in one turn.
	BloodPerTurn int
}

// String returns the generation number as it is written to character files.
func (g *Generation) String() string {
	return strconv.Itoa(g.Value)
}

// Clone returns a copy of g. Clone of a nil Generation is nil.
func (g *Generation) Clone() *Generation {
	if g == nil {
		return nil
	}
	out := *g
	return &out
}

// GenerationBuilder accumulates the fields of a Generation.
type GenerationBuilder struct {
	v Generation
}

// NewGenerationBuilder returns an empty Generation builder.
func NewGenerationBuilder() *GenerationBuilder {
	return &GenerationBuilder{}
}

// WithValue sets the generation number.
func (b *GenerationBuilder) WithValue(n int) *GenerationBuilder {
	b.v.Value = n
	return b
}

// WithMaxTrait sets the maximum trait rating.
func (b *GenerationBuilder) WithMaxTrait(n int) *GenerationBuilder {
	b.v.MaxTrait = n
	return b
}

// WithMaxBloodPool sets the maximum blood pool.
func (b *GenerationBuilder) WithMaxBloodPool(n int) *GenerationBuilder {
	b.v.MaxBloodPool = n
	return b
}

// WithBloodPerTurn sets the blood spend rate.
func (b *GenerationBuilder) WithBloodPerTurn(n int) *GenerationBuilder {
	b.v.BloodPerTurn = n
	return b
}

// Build validates and returns the Generation.
//
// Postcondition: All numeric fields are positive and Value fits in 32 bits,
// or a *entity.ValidationError is returned.
func (b *GenerationBuilder) Build() (*Generation, error) {
	switch {
	case b.v.Value < 1:
		return nil, entity.Invalid("generation", "Missing generation value")
	case int64(b.v.Value) > math.MaxInt32:
		return nil, entity.Invalid("generation", "Generation value out of range")
	case b.v.MaxTrait < 1:
		return nil, entity.Invalid("generation", "Missing maximum trait rating")
	case b.v.MaxBloodPool < 1:
		return nil, entity.Invalid("generation", "Missing maximum blood pool")
	case b.v.BloodPerTurn < 1:
		return nil, entity.Invalid("generation", "Missing blood per turn")
	}
	g := b.v
	return &g, nil
}
