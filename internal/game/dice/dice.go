// Package dice rolls pools of ten-sided dice against a difficulty and counts
// successes the way the storyteller rules do.
package dice

import "fmt"

// Sides is the number of faces on every die in a pool.
const Sides = 10

// Result holds the full audit trail for a single pool roll.
//
// Postcondition: Every element of Dice is in [1, Sides].
type Result struct {
	Expression string // pool expression as written, e.g. "dexterity+brawl@6"
	Difficulty int    // lowest face that counts as a success
	Dice       []int  // individual die results in roll order
}

// Hits returns the number of dice showing Difficulty or more.
func (r Result) Hits() int {
	n := 0
	for _, d := range r.Dice {
		if d >= r.Difficulty {
			n++
		}
	}
	return n
}

// Ones returns the number of dice showing 1.
func (r Result) Ones() int {
	n := 0
	for _, d := range r.Dice {
		if d == 1 {
			n++
		}
	}
	return n
}

// Successes returns the hits left after each 1 cancels one of them.
//
// Postcondition: 0 <= Successes() <= Hits().
func (r Result) Successes() int {
	return max(r.Hits()-r.Ones(), 0)
}

// Botch reports a roll with no hits and at least one 1.
func (r Result) Botch() bool {
	return r.Hits() == 0 && r.Ones() > 0
}

// String returns a human-readable audit string in the format:
//
//	"dexterity+brawl@6 → [1 7 9 3 6] = 2"
//
// A botch is written as "botch" in place of the success count.
//
// Precondition: r.Expression is non-empty.
func (r Result) String() string {
	if r.Expression == "" {
		panic("dice: Result.String() precondition violated: Expression must be non-empty")
	}
	outcome := fmt.Sprintf("%d", r.Successes())
	if r.Botch() {
		outcome = "botch"
	}
	return fmt.Sprintf("%s → %v = %s", r.Expression, r.Dice, outcome)
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
