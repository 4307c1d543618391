// Package rng provides the shared randomness abstraction for game systems.
package rng

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is the randomness provider for encounter rolls and loot drops.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// float64Bits is the number of random bits used to build a Float64 value.
// 53 bits matches the precision of a float64 mantissa.
const float64Bits = 53

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values are uniformly distributed over their range.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float in [0.0, 1.0).
func (c *cryptoSource) Float64() float64 {
	val, err := crand.Int(crand.Reader, big.NewInt(1<<float64Bits))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return float64(val.Int64()) / (1 << float64Bits)
}

// pseudoSource implements Source using a seeded math/rand generator.
// Not safe for concurrent use; intended for tests and offline tooling
// where reproducible sequences matter.
type pseudoSource struct {
	r *mrand.Rand
}

// NewPseudo returns a deterministic Source seeded with seed.
func NewPseudo(seed int64) Source {
	return &pseudoSource{r: mrand.New(mrand.NewSource(seed))}
}

func (p *pseudoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return p.r.Intn(n)
}

func (p *pseudoSource) Float64() float64 {
	return p.r.Float64()
}
