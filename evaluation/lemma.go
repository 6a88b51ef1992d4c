package evaluation

import "math"

// LemmaAggregate accumulates the scores of every occurrence of one lemma.
type LemmaAggregate struct {
	Lemma    string
	Best     float64
	NumTrue  int
	NumTotal int
}

// NewLemmaAggregate starts an empty aggregate.
func NewLemmaAggregate(lemma string) *LemmaAggregate {
	return &LemmaAggregate{Lemma: lemma, Best: math.Inf(-1)}
}

// Add records one occurrence.
func (a *LemmaAggregate) Add(score float64, truth bool) {
	if score > a.Best {
		a.Best = score
	}
	if truth {
		a.NumTrue++
	}
	a.NumTotal++
}

// FractionTrue is the share of occurrences labelled with the target class,
// NaN before the first occurrence.
func (a *LemmaAggregate) FractionTrue() float64 {
	return ratio(a.NumTrue, a.NumTotal)
}

// Example turns the aggregate into one entry of the unique ranking: true if
// any occurrence was true, scored by its best occurrence.
func (a *LemmaAggregate) Example() ScoredExample {
	return ScoredExample{Truth: a.FractionTrue() > 0, Score: a.Best}
}
