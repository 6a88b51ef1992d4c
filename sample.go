package nerprobe

import (
	"math/rand/v2"

	"github.com/happyhackingspace/nerprobe/corpus"
)

// Sample draws n sentences uniformly without replacement from c using
// reservoir sampling. When n >= len(c) every sentence is returned in order.
func Sample(rng *rand.Rand, n int, c corpus.Corpus) corpus.Corpus {
	if n <= 0 {
		return nil
	}
	if n >= len(c) {
		return append(corpus.Corpus(nil), c...)
	}

	reservoir := make(corpus.Corpus, n)
	copy(reservoir, c[:n])
	for i := n; i < len(c); i++ {
		if j := rng.IntN(i + 1); j < n {
			reservoir[j] = c[i]
		}
	}
	return reservoir
}
