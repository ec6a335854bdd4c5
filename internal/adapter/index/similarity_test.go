package index

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSelfSimilarity(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.001}

	sim, err := Cosine(v, v)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sim-1) > 1e-12 {
		t.Errorf("expected self-similarity 1, got %v", sim)
	}
}

func TestCosineSymmetry(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-4, 0.5, 2}

	ab, err := Cosine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Cosine(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Errorf("cosine not symmetric: %v vs %v", ab, ba)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	sim, err := Cosine([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if sim != 0 {
		t.Errorf("orthogonal vectors should score 0, got %v", sim)
	}
}

func TestCosineZeroNorm(t *testing.T) {
	sim, err := Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if sim != 0 {
		t.Errorf("zero-norm vector should score exactly 0, got %v", sim)
	}
}

func TestCosineLengthMismatch(t *testing.T) {
	_, err := Cosine([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestCosineHighDimensionStability(t *testing.T) {
	a := make([]float64, 4096)
	for i := range a {
		a[i] = 1e-3
	}

	sim, err := Cosine(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sim-1) > 1e-9 {
		t.Errorf("expected 1 within tolerance, got %v", sim)
	}
}
