package evaluation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/nerprobe/classifier"
	"github.com/happyhackingspace/nerprobe/corpus"
)

func endToEndCorpus() corpus.Corpus {
	return corpus.Corpus{
		{
			corpus.NewToken("PER", "John", []string{"w[0]=John"}),
			corpus.NewToken("O", "ran", []string{"w[0]=ran"}),
		},
		{
			corpus.NewToken("PER", "Mary", []string{"w[0]=Mary"}),
		},
	}
}

func endToEndScorer() *classifier.TokenClassifier {
	return classifier.NewTokenClassifier(classifier.Weights{
		"w[0]=John": 2.0,
		"w[0]=Mary": 1.0,
		"w[0]=ran":  -1.0,
	})
}

func TestEndToEnd(t *testing.T) {
	ranked, _ := Evaluator{}.Rankings(endToEndScorer(), endToEndCorpus(), "PER")
	require.Len(t, ranked, 3)
	assert.Equal(t, Ranking{{true, 2.0}, {false, -1.0}, {true, 1.0}}, ranked)

	m := Evaluate(endToEndScorer(), endToEndCorpus(), "PER")
	assert.InDelta(t, 1.0, m["AUC"], 1e-12)
	assert.InDelta(t, 1.0, m["AP"], 1e-12)
	assert.InDelta(t, 2.0/10, m["P10"], 1e-12)
	assert.Equal(t, 2.0, m["TP"])
	assert.Equal(t, 0.0, m["FP"])
	assert.Equal(t, 1.0, m["TN"])
	assert.Equal(t, 0.0, m["FN"])
	assert.InDelta(t, 1.0, m["P"], 1e-12)
	assert.InDelta(t, 1.0, m["R"], 1e-12)
	assert.InDelta(t, 1.0, m["F1"], 1e-12)
	assert.InDelta(t, 1.0, m["Accuracy"], 1e-12)
	assert.InDelta(t, 1.0, m["uAUC"], 1e-12)
}

func TestMeasureNames(t *testing.T) {
	m := Evaluate(endToEndScorer(), endToEndCorpus(), "PER")
	names := []string{"AUC", "P10", "P100", "P1000", "AP", "P", "R", "F1", "Accuracy", "TP", "FP", "TN", "FN"}
	for _, n := range names {
		assert.Contains(t, m, n)
		assert.Contains(t, m, "u"+n)
	}
	assert.Len(t, m, 2*len(names))
}

func TestEvaluateIdempotent(t *testing.T) {
	c, err := corpus.Load(strings.NewReader(
		"PER\tParis\ta\nO\tthe\tb\nLOC\tParis\tc\n\nO\tthe\ta\nPER\tAnn\tb\tc\n"))
	require.NoError(t, err)
	s := classifier.NewTokenClassifier(classifier.Weights{"a": 1, "b": 1, "c": -0.5})

	first := Evaluate(s, c, "PER")
	second := Evaluate(s, c, "PER")
	require.Equal(t, len(first), len(second))
	for k, v := range first {
		if math.IsNaN(v) {
			assert.True(t, math.IsNaN(second[k]), k)
			continue
		}
		assert.Equal(t, v, second[k], k)
	}
}

type fixedScorer map[string]float64

func (f fixedScorer) Score(features []string) float64 {
	sum := 0.0
	for _, x := range features {
		sum += f[x]
	}
	return sum
}

func (f fixedScorer) Intercept() float64 { return 0 }

func TestLemmaAggregation(t *testing.T) {
	c := corpus.Corpus{{
		corpus.NewToken("O", "Paris", []string{"one"}),
		corpus.NewToken("LOC", "Paris", []string{"five"}),
		corpus.NewToken("O", "Paris", []string{"two"}),
	}}
	s := fixedScorer{"one": 1.0, "five": 5.0, "two": 2.0}

	ranked, unique := Evaluator{}.Rankings(s, c, "LOC")
	assert.Len(t, ranked, 3)
	require.Len(t, unique, 1)
	assert.Equal(t, ScoredExample{Truth: true, Score: 5.0}, unique[0])
}

func TestLemmaKey(t *testing.T) {
	c := corpus.Corpus{{
		corpus.NewToken("PER", "John", []string{"a"}),
		corpus.NewToken("O", "JOHN", []string{"b"}),
		corpus.NewToken("O", "ran", []string{"b"}),
	}}
	s := classifier.NewTokenClassifier(classifier.Weights{"a": 1, "b": 3})

	_, unique := Evaluator{}.Rankings(s, c, "PER")
	assert.Len(t, unique, 3)

	_, unique = Evaluator{LemmaKey: strings.ToLower}.Rankings(s, c, "PER")
	require.Len(t, unique, 2)
	// sorted by key: "john", "ran"
	assert.Equal(t, ScoredExample{Truth: true, Score: 3}, unique[0])
	assert.Equal(t, ScoredExample{Truth: false, Score: 3}, unique[1])
}

func TestEmptyCorpus(t *testing.T) {
	m := Evaluate(endToEndScorer(), nil, "PER")
	for _, k := range []string{"AUC", "AP", "P10", "P100", "P1000", "P", "R", "F1", "Accuracy", "uAUC", "uAP", "uP10"} {
		assert.True(t, math.IsNaN(m[k]), "%s = %v, want NaN", k, m[k])
	}
	assert.Equal(t, 0.0, m["TP"])
	assert.Equal(t, 0.0, m["uFN"])
}

func TestNoPositives(t *testing.T) {
	m := Evaluate(endToEndScorer(), endToEndCorpus(), "LOC")
	assert.True(t, math.IsNaN(m["AUC"]))
	assert.True(t, math.IsNaN(m["AP"]))
	assert.Equal(t, 0.0, m["P10"])
	assert.Equal(t, 2.0, m["FP"])
}

func TestAUC(t *testing.T) {
	tests := []struct {
		name string
		r    Ranking
		want float64
	}{
		{"perfect", Ranking{{true, 3}, {false, 1}, {true, 2}}, 1.0},
		{"inverted", Ranking{{false, 3}, {true, 1}}, 0.0},
		{"tie", Ranking{{true, 1}, {false, 1}}, 0.5},
		{"gonum example", Ranking{{false, 0}, {true, 3}, {false, 5}, {true, 6}, {true, 7.5}, {true, 8}}, 0.875},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, AUC(tt.r), 1e-12, tt.name)
	}
	assert.True(t, math.IsNaN(AUC(nil)))
	assert.True(t, math.IsNaN(AUC(Ranking{{true, 1}, {true, 2}})))
	assert.True(t, math.IsNaN(AUC(Ranking{{false, 1}})))
}

func TestAveragePrecision(t *testing.T) {
	// ranks of positives: 1, 3 -> (1/1 + 2/3) / 2
	r := Ranking{{false, 2}, {true, 3}, {false, 0.5}, {true, 1}}
	assert.InDelta(t, (1.0+2.0/3.0)/2, AveragePrecision(r), 1e-12)
	assert.True(t, math.IsNaN(AveragePrecision(Ranking{{false, 1}})))
	assert.True(t, math.IsNaN(AveragePrecision(nil)))
}

func TestPrecisionAt(t *testing.T) {
	r := Ranking{{false, 2}, {true, 3}, {false, 0.5}, {true, 1}}
	assert.InDelta(t, 1.0, PrecisionAt(r, 1), 1e-12)
	assert.InDelta(t, 0.5, PrecisionAt(r, 2), 1e-12)
	assert.InDelta(t, 2.0/10, PrecisionAt(r, 10), 1e-12)
	assert.True(t, math.IsNaN(PrecisionAt(nil, 10)))
	assert.True(t, math.IsNaN(PrecisionAt(r, 0)))
}

func TestBinaryInfo(t *testing.T) {
	r := Ranking{{true, 1}, {true, -1}, {false, 2}, {false, 0}, {false, -3}, {true, 0}}
	b := NewBinaryInfo(r, 0)
	assert.Equal(t, BinaryInfo{TP: 1, FP: 1, TN: 2, FN: 2}, b)
	assert.InDelta(t, 0.5, b.Precision(), 1e-12)
	assert.InDelta(t, 1.0/3, b.Recall(), 1e-12)
	assert.InDelta(t, 0.4, b.F1(), 1e-12)
	assert.InDelta(t, 0.5, b.Accuracy(), 1e-12)

	none := NewBinaryInfo(Ranking{{true, -1}, {false, -2}}, 0)
	assert.True(t, math.IsNaN(none.Precision()))
	assert.Equal(t, 0.0, none.Recall())
	assert.Equal(t, 0.0, none.F1())
}

func TestLemmaAggregate(t *testing.T) {
	a := NewLemmaAggregate("Paris")
	assert.True(t, math.IsNaN(a.FractionTrue()))
	a.Add(1, false)
	a.Add(-2, true)
	assert.Equal(t, 1.0, a.Best)
	assert.Equal(t, 1, a.NumTrue)
	assert.Equal(t, 2, a.NumTotal)
	assert.InDelta(t, 0.5, a.FractionTrue(), 1e-12)
}

func TestMeasuresJSON(t *testing.T) {
	m := Measures{"AUC": math.NaN(), "TP": 3}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"AUC": null, "TP": 3}`, string(data))
	assert.Equal(t, []string{"AUC", "TP"}, m.Keys())
}
