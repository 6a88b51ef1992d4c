// Package corpus reads and writes the tab-separated token feature format
// consumed by CRFsuite.
//
// Each non-blank line is one token:
//
//	<label>\t<lemma>\t<feature_1>\t...\t<feature_n>
//
// and a blank line ends a sentence. The lemma is also a feature.
package corpus

import "sort"

// Background is the label given to every token outside the target class.
const Background = "O"

// Token is a single labelled token. Tokens are built once and never mutated.
type Token struct {
	Label    string
	Lemma    string
	Features []string // sorted, unique
}

// NewToken builds a token. The lemma is always one of its features and
// duplicate features collapse.
func NewToken(label, lemma string, features []string) Token {
	return Token{
		Label:    label,
		Lemma:    lemma,
		Features: featureSet(lemma, features),
	}
}

func featureSet(lemma string, features []string) []string {
	out := make([]string, 0, len(features)+1)
	out = append(out, lemma)
	out = append(out, features...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// Sentence is an ordered run of tokens.
type Sentence []Token

// HasLabel reports whether any token in the sentence carries label.
func (s Sentence) HasLabel(label string) bool {
	for _, tok := range s {
		if tok.Label == label {
			return true
		}
	}
	return false
}

// Corpus is an ordered list of sentences.
type Corpus []Sentence

// NumTokens returns the total number of tokens.
func (c Corpus) NumTokens() int {
	n := 0
	for _, s := range c {
		n += len(s)
	}
	return n
}

// SplitByLabel separates sentences that contain at least one token labelled
// label from those that do not. Order is preserved in both halves.
func (c Corpus) SplitByLabel(label string) (positives, negatives Corpus) {
	for _, s := range c {
		if s.HasLabel(label) {
			positives = append(positives, s)
		} else {
			negatives = append(negatives, s)
		}
	}
	return positives, negatives
}

// BinaryRelabel returns a relabel function that keeps target and maps every
// other label to Background.
func BinaryRelabel(target string) func(string) string {
	return func(label string) string {
		if label == target {
			return target
		}
		return Background
	}
}
