package dice

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/vampire/internal/game/character"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with the character, pool and outcome.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollFor resolves expr against c, rolls it and logs the result at debug level.
//
// Postcondition: result logged; returns a Result or a parse, resolve or roll error.
func (r *Roller) RollFor(c *character.Character, expr string) (Result, error) {
	result, err := RollFor(c, expr, r.src)
	if err != nil {
		return Result{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("character", c.ID().String()),
		zap.String("expression", result.Expression),
		zap.Int("difficulty", result.Difficulty),
		zap.Ints("dice", result.Dice),
		zap.Int("successes", result.Successes()),
		zap.Bool("botch", result.Botch()),
	)
	return result, nil
}
