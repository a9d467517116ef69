package deck

import (
	"encoding/binary"
	"math/rand"

	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// NewSeededRand returns a deterministic generator for reproducible games and tests.
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewCryptoRand returns a generator seeded from the suite's cryptographic
// random stream.
func NewCryptoRand() *rand.Rand {
	return NewSeededRand(CryptoSeed())
}

// CryptoSeed draws a 64-bit seed from the suite's random stream.
func CryptoSeed() int64 {
	buf := make([]byte, 8)
	suite.RandomStream().XORKeyStream(buf, buf)
	return int64(binary.LittleEndian.Uint64(buf) &^ (1 << 63))
}
