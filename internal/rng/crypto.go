package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Crypto draws from crypto/rand
// This is the generator live games use
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
func (Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}

	return int(b.Int64())
}

// Shuffle performs a Fisher-Yates shuffle of n items using gen
func Shuffle(gen Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		i := gen.Intn(j + 1)
		swap(i, j)
	}
}
