package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestFallbackDeterministic(t *testing.T) {
	e := NewFallbackEmbedder(1536)
	ctx := context.Background()

	a, _, err := e.Embed(ctx, "How do I deploy a smart contract?")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := e.Embed(ctx, "How do I deploy a smart contract?")
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 1536 || len(b) != 1536 {
		t.Fatalf("expected 1536 dimensions, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFallbackDistinctInputs(t *testing.T) {
	e := NewFallbackEmbedder(64)
	ctx := context.Background()

	a, _, _ := e.Embed(ctx, "subnets")
	b, _, _ := e.Embed(ctx, "validators")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different inputs produced identical vectors")
	}
}

func TestFallbackUnitNorm(t *testing.T) {
	e := NewFallbackEmbedder(1536)

	vec, _, err := e.Embed(context.Background(), "avalanche consensus")
	if err != nil {
		t.Fatal(err)
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("expected unit norm, got %v", norm)
	}
}

func TestFallbackTokenEstimate(t *testing.T) {
	e := NewFallbackEmbedder(16)

	_, tokens, err := e.Embed(context.Background(), "abcdefgh")
	if err != nil {
		t.Fatal(err)
	}
	if tokens != 2 {
		t.Errorf("expected ceil(8/4)=2 tokens, got %d", tokens)
	}

	_, tokens, _ = e.Embed(context.Background(), "abcde")
	if tokens != 2 {
		t.Errorf("expected ceil(5/4)=2 tokens, got %d", tokens)
	}
}

func TestFallbackEmptyInput(t *testing.T) {
	e := NewFallbackEmbedder(16)

	_, _, err := e.Embed(context.Background(), "")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

type failingEmbedder struct {
	dim int
}

func (failingEmbedder) Embed(context.Context, string) ([]float64, int, error) {
	return nil, 0, errors.New("provider down")
}
func (e failingEmbedder) Dimension() int  { return e.dim }
func (failingEmbedder) ModelName() string { return "failing" }

func TestResilientDegradesToFallback(t *testing.T) {
	e := NewResilient(failingEmbedder{dim: 16})

	vec, tokens, err := e.Embed(context.Background(), "some query")
	if err != nil {
		t.Fatalf("provider failure should not propagate, got %v", err)
	}
	if len(vec) != 16 {
		t.Errorf("expected fallback vector of 16 dims, got %d", len(vec))
	}
	if tokens == 0 {
		t.Error("expected a token estimate from the fallback")
	}
}

// A primary that fails once and then recovers, like a transient provider
// error during warm-up.
type flakyEmbedder struct {
	inner  *FallbackEmbedder
	failed bool
}

func (e *flakyEmbedder) Embed(ctx context.Context, text string) ([]float64, int, error) {
	if !e.failed {
		e.failed = true
		return nil, 0, errors.New("rate limited")
	}
	return e.inner.Embed(ctx, text)
}
func (e *flakyEmbedder) Dimension() int    { return e.inner.Dimension() }
func (e *flakyEmbedder) ModelName() string { return "flaky" }

func TestResilientFallbackMatchesPrimaryDimension(t *testing.T) {
	e := NewResilient(&flakyEmbedder{inner: NewFallbackEmbedder(3072)})

	degraded, _, err := e.Embed(context.Background(), "embedded during the outage")
	if err != nil {
		t.Fatal(err)
	}
	healthy, _, err := e.Embed(context.Background(), "embedded after recovery")
	if err != nil {
		t.Fatal(err)
	}

	if len(degraded) != e.Dimension() {
		t.Errorf("fallback vector has %d dims, embedder reports %d", len(degraded), e.Dimension())
	}
	if len(degraded) != len(healthy) {
		t.Errorf("degraded and healthy vectors differ in length: %d vs %d", len(degraded), len(healthy))
	}
}
