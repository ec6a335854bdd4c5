package embedding

import (
	"context"
	"errors"
	"math"
	"unicode/utf8"
)

// ErrEmptyInput is returned when asked to embed an empty string.
var ErrEmptyInput = errors.New("cannot embed empty text")

// FallbackEmbedder derives a vector from the text itself via a
// hash-and-trig transform. It needs no network access and is a pure
// function of its input: identical text always yields an identical
// vector. Used when no provider credential is configured and when the
// remote provider fails.
type FallbackEmbedder struct {
	dimension int
}

func NewFallbackEmbedder(dimension int) *FallbackEmbedder {
	if dimension <= 0 {
		dimension = 1536
	}
	return &FallbackEmbedder{dimension: dimension}
}

func (e *FallbackEmbedder) Embed(_ context.Context, text string) ([]float64, int, error) {
	if text == "" {
		return nil, 0, ErrEmptyInput
	}

	// 32-bit wrapping hash over the runes of the input.
	var hash int32
	for _, r := range text {
		hash = hash*31 + int32(r)
	}

	vec := make([]float64, e.dimension)
	var norm float64
	for i := range vec {
		seed := float64(hash + int32(i))
		vec[i] = math.Mod(math.Sin(seed)*10000, 1)
		norm += vec[i] * vec[i]
	}

	// L2 normalize; a zero-norm vector is left as is to avoid dividing
	// by zero.
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}

	tokens := (utf8.RuneCountInString(text) + 3) / 4
	return vec, tokens, nil
}

func (e *FallbackEmbedder) Dimension() int {
	return e.dimension
}

func (e *FallbackEmbedder) ModelName() string {
	return "fallback-hash"
}
