package evaluation

import "math"

// BinaryInfo holds the confusion counts of thresholded predictions.
type BinaryInfo struct {
	TP, FP, TN, FN int
}

// NewBinaryInfo predicts positive for every example scoring strictly above
// threshold and tallies the outcomes.
func NewBinaryInfo(r Ranking, threshold float64) BinaryInfo {
	var b BinaryInfo
	for _, ex := range r {
		pred := ex.Score > threshold
		switch {
		case pred && ex.Truth:
			b.TP++
		case pred && !ex.Truth:
			b.FP++
		case !pred && ex.Truth:
			b.FN++
		default:
			b.TN++
		}
	}
	return b
}

// All returns the number of examples counted.
func (b BinaryInfo) All() int {
	return b.TP + b.FP + b.TN + b.FN
}

// Precision is TP / (TP + FP).
func (b BinaryInfo) Precision() float64 {
	return ratio(b.TP, b.TP+b.FP)
}

// Recall is TP / (TP + FN).
func (b BinaryInfo) Recall() float64 {
	return ratio(b.TP, b.TP+b.FN)
}

// F1 is the harmonic mean of precision and recall, 2TP / (2TP + FP + FN).
func (b BinaryInfo) F1() float64 {
	return ratio(2*b.TP, 2*b.TP+b.FP+b.FN)
}

// Accuracy is (TP + TN) / all.
func (b BinaryInfo) Accuracy() float64 {
	return ratio(b.TP+b.TN, b.All())
}

// ratio returns NaN for 0/0.
func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}
