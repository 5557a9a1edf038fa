package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultDifficulty applies when an expression names no difficulty.
const DefaultDifficulty = 6

// Expression is a parsed pool expression ready to be resolved against a
// character.
// Precondition: len(Traits) >= 1 and 2 <= Difficulty <= Sides after a successful Parse.
type Expression struct {
	Raw        string   // original input string
	Traits     []string // trait keys whose dots are summed
	Modifier   int      // dice added or removed after summing
	Difficulty int      // target number for each die
}

// Parse parses a pool expression string into an Expression.
// Supported forms: "dexterity+brawl", "wits+alertness@7", "strength+potence+2@5",
// "stamina-1". Trait keys are matched case-insensitively.
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	difficulty := DefaultDifficulty
	if at := strings.LastIndex(s, "@"); at >= 0 {
		d, err := strconv.Atoi(s[at+1:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid difficulty in %q: %w", raw, err)
		}
		if d < 2 || d > Sides {
			return Expression{}, fmt.Errorf("dice: difficulty %d in %q must be between 2 and %d", d, raw, Sides)
		}
		difficulty = d
		s = s[:at]
	}

	var traits []string
	modifier := 0
	for s != "" {
		sign := 1
		switch s[0] {
		case '+':
			s = s[1:]
		case '-':
			sign = -1
			s = s[1:]
		}
		end := strings.IndexAny(s, "+-")
		if end < 0 {
			end = len(s)
		}
		term := strings.TrimSpace(s[:end])
		s = s[end:]
		if term == "" {
			return Expression{}, fmt.Errorf("dice: empty term in %q", raw)
		}

		if n, err := strconv.Atoi(term); err == nil {
			modifier += sign * n
			continue
		}
		if sign < 0 {
			return Expression{}, fmt.Errorf("dice: trait %q cannot be subtracted in %q", term, raw)
		}
		traits = append(traits, term)
	}
	if len(traits) == 0 {
		return Expression{}, fmt.Errorf("dice: no traits in %q", raw)
	}

	return Expression{
		Raw:        raw,
		Traits:     traits,
		Modifier:   modifier,
		Difficulty: difficulty,
	}, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid pool expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
