package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Shuffle performs a cryptographically secure Fisher-Yates shuffle of the slice.
func Shuffle[T any](slice []T) error {
	n := len(slice)
	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to generate random number: %w", err)
		}
		j := int(jBig.Int64())
		slice[i], slice[j] = slice[j], slice[i]
	}
	return nil
}

// Shuffled returns a shuffled copy and leaves the input untouched.
func Shuffled[T any](slice []T) ([]T, error) {
	out := make([]T, len(slice))
	copy(out, slice)
	if err := Shuffle(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Jitter returns a uniformly random duration in [0, base).
func Jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(base)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}

// Int returns a uniformly random int in [0, n).
func Int(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
