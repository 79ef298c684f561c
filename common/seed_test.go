package common

import "testing"

func TestSeededRNG_Deterministic(t *testing.T) {
	a := NewSeededRNG(1234)
	b := NewSeededRNG(1234)

	for i := 0; i < 100; i++ {
		if a.Random() != b.Random() {
			t.Fatalf("Sequences diverged at step %d", i)
		}
	}
}

func TestSeededRNG_Reset(t *testing.T) {
	r := NewSeededRNG(42)
	first := r.Random()
	for i := 0; i < 10; i++ {
		r.Random()
	}
	r.Reset()
	if got := r.Random(); got != first {
		t.Errorf("Expected %f after reset, got %f", first, got)
	}
}

func TestSeededRNG_RandomRange(t *testing.T) {
	r := NewSeededRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Random()
		if v < 0 || v >= 1 {
			t.Fatalf("Random() out of [0,1): %f", v)
		}
		n := r.RandomInt(3, 9)
		if n < 3 || n >= 9 {
			t.Fatalf("RandomInt(3,9) out of range: %d", n)
		}
		f := r.RandomFloat(-2, 2)
		if f < -2 || f >= 2 {
			t.Fatalf("RandomFloat(-2,2) out of range: %f", f)
		}
	}
}

func TestStageSeed_StableAndDistinct(t *testing.T) {
	if StageSeed("practice") != StageSeed("practice") {
		t.Error("StageSeed should be deterministic for the same name")
	}
	if StageSeed("practice") == StageSeed("warmup") {
		t.Error("Different names should produce different seeds")
	}
}
