package classifier

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	c := NewTokenClassifier(Weights{"w[0]=John": 2.0, "w[0]=ran": -1.0, "zero": 0})

	tests := []struct {
		features []string
		want     float64
	}{
		{nil, 0},
		{[]string{}, 0},
		{[]string{"w[0]=John"}, 2.0},
		{[]string{"w[0]=John", "w[0]=ran"}, 1.0},
		{[]string{"unknown"}, 0},
		{[]string{"unknown", "w[0]=ran"}, -1.0},
	}
	for _, tt := range tests {
		if got := c.Score(tt.features); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Score(%v) = %v, want %v", tt.features, got, tt.want)
		}
	}
	if c.Intercept() != 0 {
		t.Errorf("Intercept = %v, want 0", c.Intercept())
	}
	if c.Size() != 2 {
		t.Errorf("Size = %d, want 2", c.Size())
	}
}

func TestEmptyClassifier(t *testing.T) {
	c := NewTokenClassifier(nil)
	if c.Score([]string{"a", "b"}) != 0 {
		t.Error("empty classifier should score 0")
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d, want 0", c.Size())
	}
}

func TestDeriveSampled(t *testing.T) {
	w := Weights{"a": 0.5, "b": -3.0, "c": 2.0, "d": -0.1, "e": 1.0}
	c := NewTokenClassifier(w)

	top2 := c.DeriveSampled(2)
	if top2.Size() != 2 {
		t.Fatalf("Size = %d, want 2", top2.Size())
	}
	got := top2.Weights()
	if got["b"] != -3.0 || got["c"] != 2.0 {
		t.Errorf("DeriveSampled(2) kept %v, want b and c", got)
	}

	if s := c.DeriveSampled(0); s.Size() != 0 {
		t.Errorf("DeriveSampled(0).Size = %d", s.Size())
	}
	if s := c.DeriveSampled(-1); s.Size() != 0 {
		t.Errorf("DeriveSampled(-1).Size = %d", s.Size())
	}
}

func TestDeriveSampledFullCopy(t *testing.T) {
	w := Weights{"a": 0.5, "b": -3.0, "c": 2.0}
	c := NewTokenClassifier(w)

	for _, k := range []int{3, 4, 100} {
		s := c.DeriveSampled(k)
		for _, fv := range [][]string{{"a"}, {"b", "c"}, {"a", "b", "c"}, {}} {
			if math.Abs(s.Score(fv)-c.Score(fv)) > 1e-9 {
				t.Errorf("k=%d: Score(%v) = %v, want %v", k, fv, s.Score(fv), c.Score(fv))
			}
		}
	}

	// mutating the source weights leaves the copy alone
	full := c.DeriveSampled(10)
	w["a"] = 100
	if full.Score([]string{"a"}) != 0.5 {
		t.Error("DeriveSampled should copy weights")
	}
}

func TestTopTies(t *testing.T) {
	c := NewTokenClassifier(Weights{"x": 1, "b": -1, "a": 1, "big": 5})
	got := c.Top(3)
	want := []string{"big", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Top(3) = %v", got)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("Top(3)[%d] = %s, want %s", i, got[i].Name, want[i])
		}
	}
}
