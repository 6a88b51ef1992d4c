// Package lemma normalises surface forms before unique-lemma grouping.
package lemma

import (
	"fmt"
	"sync"

	"github.com/tebeka/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stemmer lower-cases and stems words with a Snowball stemmer.
// It is safe for concurrent use.
type Stemmer struct {
	mu      sync.Mutex
	lower   cases.Caser
	stemmer *snowball.Stemmer
}

// NewStemmer creates a stemmer for lang ("english", "german", ...).
func NewStemmer(lang string) (*Stemmer, error) {
	s, err := snowball.New(lang)
	if err != nil {
		return nil, fmt.Errorf("snowball %s: %w", lang, err)
	}
	return &Stemmer{lower: cases.Lower(tagFor(lang)), stemmer: s}, nil
}

// tags maps Snowball language names to the tags used for case mapping.
var tags = map[string]language.Tag{
	"danish":     language.Danish,
	"dutch":      language.Dutch,
	"english":    language.English,
	"finnish":    language.Finnish,
	"french":     language.French,
	"german":     language.German,
	"hungarian":  language.Hungarian,
	"italian":    language.Italian,
	"norwegian":  language.Norwegian,
	"portuguese": language.Portuguese,
	"romanian":   language.Romanian,
	"russian":    language.Russian,
	"spanish":    language.Spanish,
	"swedish":    language.Swedish,
	"turkish":    language.Turkish,
}

func tagFor(lang string) language.Tag {
	if tag, ok := tags[lang]; ok {
		return tag
	}
	return language.Und
}

// Key returns the grouping key of a lemma.
func (s *Stemmer) Key(lemma string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stemmer.Stem(s.lower.String(lemma))
}

// Close releases the underlying stemmer.
func (s *Stemmer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stemmer.Close()
}
