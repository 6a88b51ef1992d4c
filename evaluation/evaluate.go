// Package evaluation scores held-out tokens and computes ranking and
// classification measures over the per-token ranking and over the
// best-score-per-lemma ranking.
package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/happyhackingspace/nerprobe/corpus"
)

// Cutoffs are the depths reported as P<k>.
var Cutoffs = []int{10, 100, 1000}

// UniquePrefix marks measures computed on the unique-lemma ranking.
const UniquePrefix = "u"

// Scorer scores a token's feature set. Intercept is the decision threshold.
type Scorer interface {
	Score(features []string) float64
	Intercept() float64
}

// Measures maps measure names (AUC, AP, P10, F1, uAUC, ...) to values.
// Undefined measures are NaN.
type Measures map[string]float64

// Keys returns the measure names in sorted order.
func (m Measures) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON writes NaN measures as null.
func (m Measures) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) {
			out[k] = nil
			continue
		}
		out[k] = &v
	}
	return json.Marshal(out)
}

// Evaluator evaluates a scorer against a labelled corpus.
type Evaluator struct {
	// LemmaKey normalises lemmas before grouping. Nil groups on the surface
	// string.
	LemmaKey func(string) string
}

// Evaluate runs the default evaluator.
func Evaluate(s Scorer, c corpus.Corpus, target string) Measures {
	return Evaluator{}.Evaluate(s, c, target)
}

// Evaluate scores every token of c and returns the measures of the raw
// ranking and, prefixed with UniquePrefix, of the unique-lemma ranking.
func (e Evaluator) Evaluate(s Scorer, c corpus.Corpus, target string) Measures {
	ranked, unique := e.Rankings(s, c, target)
	threshold := s.Intercept()

	m := make(Measures, 26)
	m.add("", ranked, threshold)
	m.add(UniquePrefix, unique, threshold)
	return m
}

// Rankings builds the per-token ranking and the unique-lemma ranking. The
// unique ranking is ordered by lemma.
func (e Evaluator) Rankings(s Scorer, c corpus.Corpus, target string) (ranked, unique Ranking) {
	byLemma := make(map[string]*LemmaAggregate)
	for _, sent := range c {
		for _, tok := range sent {
			truth := tok.Label == target
			score := s.Score(tok.Features)
			ranked = append(ranked, ScoredExample{Truth: truth, Score: score})

			key := tok.Lemma
			if e.LemmaKey != nil {
				key = e.LemmaKey(key)
			}
			agg, ok := byLemma[key]
			if !ok {
				agg = NewLemmaAggregate(key)
				byLemma[key] = agg
			}
			agg.Add(score, truth)
		}
	}

	lemmas := make([]string, 0, len(byLemma))
	for l := range byLemma {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)
	unique = make(Ranking, len(lemmas))
	for i, l := range lemmas {
		unique[i] = byLemma[l].Example()
	}
	return ranked, unique
}

func (m Measures) add(prefix string, r Ranking, threshold float64) {
	m[prefix+"AUC"] = AUC(r)
	for _, k := range Cutoffs {
		m[fmt.Sprintf("%sP%d", prefix, k)] = PrecisionAt(r, k)
	}
	m[prefix+"AP"] = AveragePrecision(r)

	info := NewBinaryInfo(r, threshold)
	m[prefix+"P"] = info.Precision()
	m[prefix+"R"] = info.Recall()
	m[prefix+"F1"] = info.F1()
	m[prefix+"Accuracy"] = info.Accuracy()
	m[prefix+"TP"] = float64(info.TP)
	m[prefix+"FP"] = float64(info.FP)
	m[prefix+"TN"] = float64(info.TN)
	m[prefix+"FN"] = float64(info.FN)
}
