package dice

import (
	"crypto/rand"
	"math/big"
)

// faceSource draws die faces from crypto/rand.
type faceSource struct{}

// NewCryptoSource returns the Source the CLI rolls pools with.
//
// Postcondition: Intn(Sides) yields every face index in [0, Sides) with equal
// probability.
func NewCryptoSource() Source {
	return faceSource{}
}

// Intn returns a uniformly distributed face index in [0, n).
//
// Precondition: n > 0. Panics if n <= 0 or the generator fails.
func (faceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading random face: " + err.Error())
	}
	return int(v.Int64())
}
