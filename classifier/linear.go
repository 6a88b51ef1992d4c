// Package classifier scores tokens with a sparse linear model.
package classifier

import (
	"container/heap"
	"math"
	"sort"
)

// Weights maps feature names to weights. A missing feature has weight 0.
type Weights map[string]float64

// WeightedFeature is a single feature and its weight.
type WeightedFeature struct {
	Name   string
	Weight float64
}

// TokenClassifier scores a token as the sum of its feature weights.
// It has no bias term.
type TokenClassifier struct {
	weights Weights
}

// NewTokenClassifier wraps w. The classifier owns w from then on.
func NewTokenClassifier(w Weights) *TokenClassifier {
	if w == nil {
		w = Weights{}
	}
	return &TokenClassifier{weights: w}
}

// Score sums the weights of features. Unknown features count as 0.
func (c *TokenClassifier) Score(features []string) float64 {
	pred := 0.0
	for _, f := range features {
		pred += c.weights[f]
	}
	return pred
}

// Intercept is always 0.
func (c *TokenClassifier) Intercept() float64 {
	return 0
}

// Size returns the number of features with a non-zero weight.
func (c *TokenClassifier) Size() int {
	n := 0
	for _, w := range c.weights {
		if w != 0 {
			n++
		}
	}
	return n
}

// Weights returns a copy of the weight map.
func (c *TokenClassifier) Weights() Weights {
	out := make(Weights, len(c.weights))
	for f, w := range c.weights {
		out[f] = w
	}
	return out
}

// DeriveSampled returns a classifier that keeps only the k features with the
// largest absolute weight.
func (c *TokenClassifier) DeriveSampled(k int) *TokenClassifier {
	if k >= len(c.weights) {
		return NewTokenClassifier(c.Weights())
	}
	out := make(Weights, max(k, 0))
	for _, f := range c.Top(k) {
		out[f.Name] = f.Weight
	}
	return NewTokenClassifier(out)
}

// Top returns the k heaviest features by absolute weight, heaviest first.
// Equal magnitudes are ordered by name.
func (c *TokenClassifier) Top(k int) []WeightedFeature {
	if k <= 0 {
		return nil
	}
	h := &minHeap{}
	for name, w := range c.weights {
		f := WeightedFeature{Name: name, Weight: w}
		if h.Len() < k {
			heap.Push(h, f)
		} else if lighter((*h)[0], f) {
			(*h)[0] = f
			heap.Fix(h, 0)
		}
	}
	out := []WeightedFeature(*h)
	sort.Slice(out, func(i, j int) bool { return lighter(out[j], out[i]) })
	return out
}

// lighter orders features by |weight|, then by name descending so that
// earlier names win ties.
func lighter(a, b WeightedFeature) bool {
	wa, wb := math.Abs(a.Weight), math.Abs(b.Weight)
	if wa != wb {
		return wa < wb
	}
	return a.Name > b.Name
}

// minHeap keeps the lightest retained feature at the root.
type minHeap []WeightedFeature

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return lighter(h[i], h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(WeightedFeature)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
