// Package fields folds Stanford NER style feature names (for example
// "Paris-WORD|C") into short field buckets ("w[0]" -> "Paris") so that a
// token's features can be read as a handful of named fields.
package fields

import (
	"sort"
	"strings"
)

// clusterSuffix marks distributional-similarity cluster conjunctions, which
// are never mapped.
const clusterSuffix = "|CpC"

// Parser recognises one surface pattern and extracts its value.
type Parser struct {
	Key   string
	Value func(feature string) (string, bool)
}

func suffix(key, query string) Parser {
	return Parser{Key: key, Value: func(s string) (string, bool) {
		return strings.CutSuffix(s, query)
	}}
}

func exact(key, query, value string) Parser {
	return Parser{Key: key, Value: func(s string) (string, bool) {
		if s == query {
			return value, true
		}
		return "", false
	}}
}

// Parsers is tried in order and the first match wins. The patterns overlap
// ("###|C" is also an n-gram feature), so the order decides the field and
// must not be changed.
var Parsers = []Parser{
	exact("cl", "###|C", "#"),
	{Key: "ng", Value: func(s string) (string, bool) {
		ng, ok := strings.CutSuffix(s, "#|C")
		if !ok || !strings.HasPrefix(ng, "#") {
			return "", false
		}
		return ng[1:], true
	}},
	suffix("w[R]", "-DISJN|C"),
	suffix("w[L]", "-DISJP|C"),
	suffix("w[-1]", "-PW|C"),
	suffix("p[1]", "-NTAG|C"),
	suffix("sh[-1,0,1]", "-PCNTYPE|C"),
	suffix("sh[-1,0]", "-PCTYPE|C"),
	suffix("w[0]", "-WORD|C"),
	suffix("c[1]", "-NDISTSIM|C"),
	suffix("sh[0]w[-2]", "-PPW_CTYPE|C"),
	suffix("w[0]p[-1]", "-W-PT|C"),
	suffix("sh[0,1]", "-CNTYPE|C"),
	suffix("sh[0]", "-TYPE|C"),
	suffix("w[0]p[1]", "-W-NT|C"),
	{Key: "ocp", Value: func(s string) (string, bool) {
		if !strings.Contains(s, "OCCURRENCE") {
			return "", false
		}
		if strings.HasPrefix(s, "NO-OCCURRENCE-PATTERN") {
			return "NO-OCCURRENCE-PATTERN", true
		}
		for _, end := range []string{"-X|C", "-XY|C", "-YX|C", "-Y|C"} {
			if strings.HasSuffix(s, end) {
				return strings.TrimSuffix(s, "|C"), true
			}
		}
		return "", false
	}},
	suffix("w[1]", "-NW|C"),
	suffix("sh[0]w[-1]", "-PW_CTYPE|C"),
	exact("ti", "IS_TITLE|C", "TITLE"),
	suffix("sh[0]w[2]", "-NNW_CTYPE|C"),
	suffix("c[0]", "-DISTSIM|C"),
	suffix("c[-1]", "-PDISTSIM|C"),
	suffix("p[0]", "-TAG|C"),
	suffix("sh[0]w[1]", "-NW_CTYPE|C"),
	suffix("sh[-1]", "-PTYPE|C"),
	suffix("sh[1]", "-NTYPE|C"),
	suffix("w[0]p[0]", "-W-T|C"),
	suffix("p[-1]", "-PTAG|C"),
}

// Parse returns the field key and value of the first parser that accepts
// feature.
func Parse(feature string) (key, value string, ok bool) {
	if strings.HasSuffix(feature, clusterSuffix) {
		return "", "", false
	}
	for _, p := range Parsers {
		if v, ok := p.Value(feature); ok {
			return p.Key, v, true
		}
	}
	return "", "", false
}

// ParseAll maps every recognised feature to "key=value" and returns the
// sorted set.
func ParseAll(features []string) []string {
	set := make(map[string]struct{})
	for _, f := range features {
		if key, val, ok := Parse(f); ok {
			set[key+"="+val] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ToFieldFeatures groups recognised features by field. Unlike Parse, every
// parser that accepts a feature gets its value, so "###|C" fills both cl and
// ng. Each field's values are sorted, de-duplicated and joined with a space.
func ToFieldFeatures(features []string) map[string]string {
	buckets := make(map[string]map[string]struct{})
	for _, f := range features {
		if strings.HasSuffix(f, clusterSuffix) {
			continue
		}
		for _, p := range Parsers {
			val, ok := p.Value(f)
			if !ok {
				continue
			}
			if buckets[p.Key] == nil {
				buckets[p.Key] = make(map[string]struct{})
			}
			buckets[p.Key][val] = struct{}{}
		}
	}

	out := make(map[string]string, len(buckets))
	for key, vals := range buckets {
		out[key] = strings.Join(sortedKeys(vals), " ")
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
