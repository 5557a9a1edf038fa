package dice

import (
	"fmt"

	"github.com/cory-johannsen/vampire/internal/game/character"
)

// Pool is a number of dice and the difficulty they are rolled against.
type Pool struct {
	Expression string
	Size       int
	Difficulty int
}

// PoolFor sums the dots c has in each trait named by expr, plus its modifier.
// Traits are looked up among attributes, abilities and advantages in that order.
//
// Precondition: expr must come from Parse; c must be non-nil.
// Postcondition: Returns a Pool with Size >= 1, or an error naming the
// unknown trait or the empty pool.
func PoolFor(c *character.Character, expr Expression) (Pool, error) {
	dots := make(map[string]int)
	for _, a := range c.Advantages() {
		dots[a.Trait.Key] = a.Dots
	}
	for _, a := range c.Abilities() {
		dots[a.Trait.Key] = a.Dots
	}
	for _, a := range c.Attributes() {
		dots[a.Trait.Key] = a.Dots
	}

	size := expr.Modifier
	for _, key := range expr.Traits {
		n, ok := dots[key]
		if !ok {
			return Pool{}, fmt.Errorf("dice: %s has no trait %q", c.Name(), key)
		}
		size += n
	}
	if size < 1 {
		return Pool{}, fmt.Errorf("dice: %q leaves %d dice to roll", expr.Raw, size)
	}
	return Pool{Expression: expr.Raw, Size: size, Difficulty: expr.Difficulty}, nil
}

// Roll rolls p using the given Source and returns a Result.
//
// Precondition: p.Size >= 1 and 2 <= p.Difficulty <= Sides; src must be non-nil.
// Postcondition: len(result.Dice) == p.Size.
func Roll(p Pool, src Source) (Result, error) {
	if p.Size < 1 {
		return Result{}, fmt.Errorf("dice: pool size %d must be >= 1", p.Size)
	}
	if p.Difficulty < 2 || p.Difficulty > Sides {
		return Result{}, fmt.Errorf("dice: difficulty %d must be between 2 and %d", p.Difficulty, Sides)
	}
	rolled := make([]int, p.Size)
	for i := range rolled {
		rolled[i] = src.Intn(Sides) + 1
	}
	return Result{
		Expression: p.Expression,
		Difficulty: p.Difficulty,
		Dice:       rolled,
	}, nil
}

// RollFor parses expr, resolves it against c and rolls it using src in a single call.
//
// Postcondition: Returns a Result or a parse, resolve or roll error.
func RollFor(c *character.Character, expr string, src Source) (Result, error) {
	e, err := Parse(expr)
	if err != nil {
		return Result{}, err
	}
	p, err := PoolFor(c, e)
	if err != nil {
		return Result{}, err
	}
	return Roll(p, src)
}
