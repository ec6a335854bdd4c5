package index

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch indicates two vectors of different dimensions were
// compared. This is a programming error, never silently scored.
var ErrLengthMismatch = errors.New("vector length mismatch")

// Cosine returns the cosine similarity between two equal-length vectors:
// dot(a,b) / (|a|*|b|). When either vector has zero norm the similarity
// is defined as exactly 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
