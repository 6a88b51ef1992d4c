package evaluation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ScoredExample is one ranked item: its ground truth and its score.
type ScoredExample struct {
	Truth bool
	Score float64
}

// Ranking is an unordered list of scored examples. Metrics sort a copy by
// descending score; equal scores keep their input order.
type Ranking []ScoredExample

// Positives counts examples with a true label.
func (r Ranking) Positives() int {
	n := 0
	for _, ex := range r {
		if ex.Truth {
			n++
		}
	}
	return n
}

func (r Ranking) sortedDesc() Ranking {
	out := make(Ranking, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// AUC returns the area under the ROC curve, giving tied scores half credit.
// It is NaN unless the ranking holds both positives and negatives.
func AUC(r Ranking) float64 {
	pos := r.Positives()
	if pos == 0 || pos == len(r) {
		return math.NaN()
	}

	y := make([]float64, len(r))
	classes := make([]bool, len(r))
	for i, ex := range r {
		y[i] = ex.Score
		classes[i] = ex.Truth
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// AveragePrecision is the mean of the precision at the rank of every
// positive. It is NaN when the ranking has no positives.
func AveragePrecision(r Ranking) float64 {
	total := r.Positives()
	if total == 0 {
		return math.NaN()
	}
	sum := 0.0
	hits := 0
	for i, ex := range r.sortedDesc() {
		if ex.Truth {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	return sum / float64(total)
}

// PrecisionAt returns the fraction of the top k that are positive. Rankings
// shorter than k are not padded out: the denominator stays k. It is NaN for
// an empty ranking or k <= 0.
func PrecisionAt(r Ranking, k int) float64 {
	if len(r) == 0 || k <= 0 {
		return math.NaN()
	}
	correct := 0
	for i, ex := range r.sortedDesc() {
		if i >= k {
			break
		}
		if ex.Truth {
			correct++
		}
	}
	return float64(correct) / float64(k)
}
