package common

import (
	"math"
	"testing"
)

func TestLiteralPoolInternString(t *testing.T) {
	pool := NewLiteralPool()

	first := pool.InternString("hi")
	second := pool.InternString("bye")
	again := pool.InternString("hi")

	if first != "str_0" || second != "str_1" {
		t.Errorf("labels = %q, %q, want str_0, str_1", first, second)
	}
	if again != first {
		t.Errorf("InternString(hi) again = %q, want %q", again, first)
	}
	if len(pool.Strings()) != 2 {
		t.Errorf("len(Strings()) = %d, want 2", len(pool.Strings()))
	}
}

func TestLiteralPoolStringsAreNotNormalized(t *testing.T) {
	pool := NewLiteralPool()
	a := pool.InternString("hi")
	b := pool.InternString("hi ")
	c := pool.InternString("\"hi\"")
	if a == b || a == c || b == c {
		t.Errorf("textually distinct strings share a label: %q %q %q", a, b, c)
	}
}

func TestLiteralPoolInternReal(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []string
		size     int
	}{
		{
			name:     "same value collapses",
			values:   []float64{1.0, 1.00, 2.5},
			expected: []string{"real_0", "real_0", "real_1"},
			size:     2,
		},
		{
			name:     "signed zeros differ",
			values:   []float64{0.0, math.Copysign(0, -1)},
			expected: []string{"real_0", "real_1"},
			size:     2,
		},
		{
			name:     "nearby values differ",
			values:   []float64{0.1, 0.1 + 1e-16, 0.1},
			expected: []string{"real_0", "real_1", "real_0"},
			size:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewLiteralPool()
			for i, v := range tt.values {
				if got := pool.InternReal(v); got != tt.expected[i] {
					t.Errorf("InternReal(%v) = %q, want %q", v, got, tt.expected[i])
				}
			}
			if len(pool.Reals()) != tt.size {
				t.Errorf("len(Reals()) = %d, want %d", len(pool.Reals()), tt.size)
			}
		})
	}
}

func TestLiteralPoolGrowsOncePerPayload(t *testing.T) {
	pool := NewLiteralPool()
	payloads := []string{"a", "b", "a", "c", "b", "a"}
	for _, p := range payloads {
		before := pool.Len()
		pool.InternString(p)
		if pool.Len()-before > 1 {
			t.Fatalf("pool grew by more than one for %q", p)
		}
	}
	if pool.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pool.Len())
	}
}
