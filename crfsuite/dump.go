// Package crfsuite drives the external CRFsuite trainer and reads back the
// linear state-feature weights of the models it produces.
package crfsuite

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/happyhackingspace/nerprobe/classifier"
	"github.com/happyhackingspace/nerprobe/corpus"
)

// StateFeature is one attribute-to-label weight of a dumped model.
type StateFeature struct {
	Attribute string
	Label     string
	Weight    float64
}

// Transition is one label-to-label weight of a dumped model.
type Transition struct {
	From   string
	To     string
	Weight float64
}

// Dump is the parsed text output of `crfsuite dump`.
type Dump struct {
	Labels      *Alphabet
	Attributes  *Alphabet
	Transitions []Transition
	States      []StateFeature
}

type section int

const (
	sectionNone section = iota
	sectionHeader
	sectionLabels
	sectionAttributes
	sectionTransitions
	sectionStates
)

var sectionHeaders = []struct {
	prefix string
	sec    section
}{
	{"FILEHEADER", sectionHeader},
	{"LABELS", sectionLabels},
	{"ATTRIBUTES", sectionAttributes},
	{"TRANSITIONS", sectionTransitions},
	{"STATE_FEATURES", sectionStates},
}

// ParseDump reads a model dump. Only STATE_FEATURES entries are required to
// be well formed; malformed lines in the other sections are skipped.
func ParseDump(r io.Reader) (*Dump, error) {
	d := &Dump{
		Labels:     NewAlphabet(),
		Attributes: NewAlphabet(),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	cur := sectionNone
	lineNo := 0
lines:
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		for _, h := range sectionHeaders {
			if strings.HasPrefix(line, h.prefix) {
				cur = h.sec
				continue lines
			}
		}
		if strings.HasPrefix(strings.TrimSpace(line), "}") {
			cur = sectionNone
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch cur {
		case sectionLabels:
			if id, name, ok := parseEntry(line); ok {
				d.Labels.Set(id, name)
			}
		case sectionAttributes:
			if id, name, ok := parseEntry(line); ok {
				d.Attributes.Set(id, name)
			}
		case sectionTransitions:
			if from, to, w, err := parseArrow(line, "(1) "); err == nil {
				d.Transitions = append(d.Transitions, Transition{From: from, To: to, Weight: w})
			}
		case sectionStates:
			attr, label, w, err := parseArrow(line, "(0) ")
			if err != nil {
				return nil, &MalformedDumpError{Line: lineNo, Text: line, Reason: err.Error()}
			}
			d.States = append(d.States, StateFeature{Attribute: attr, Label: label, Weight: w})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return d, nil
}

// parseEntry splits an "<id>: <name>" line.
func parseEntry(line string) (int, string, bool) {
	idStr, name, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return 0, "", false
	}
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		return 0, "", false
	}
	return id, strings.TrimSpace(name), true
}

// parseArrow parses "<marker><lhs> --> <rhs>: <weight>". The weight follows
// the last colon and rhs follows the last arrow, so attribute names may
// themselves contain colons.
func parseArrow(line, marker string) (lhs, rhs string, weight float64, err error) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", "", 0, fmt.Errorf("missing %q marker", strings.TrimSpace(marker))
	}
	mapping := line[idx+len(marker):]

	spl := strings.LastIndex(mapping, ":")
	if spl < 0 {
		return "", "", 0, fmt.Errorf("missing ':' before weight")
	}
	weight, err = strconv.ParseFloat(strings.TrimSpace(mapping[spl+1:]), 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("bad weight: %w", err)
	}

	names := mapping[:spl]
	arrow := strings.LastIndex(names, "-->")
	if arrow < 0 {
		return "", "", 0, fmt.Errorf("missing '-->'")
	}
	return strings.TrimSpace(names[:arrow]), strings.TrimSpace(names[arrow+3:]), weight, nil
}

// StateWeights returns the state-feature weights for one label.
func (d *Dump) StateWeights(label string) classifier.Weights {
	out := make(classifier.Weights)
	for _, sf := range d.States {
		if sf.Label == label {
			out[sf.Attribute] = sf.Weight
		}
	}
	return out
}

// FeatureWeights flattens the model for target against the background label.
func (d *Dump) FeatureWeights(target string) classifier.Weights {
	return Flatten(d.StateWeights(target), d.StateWeights(corpus.Background))
}

// Flatten returns positive - negative over the union of their features.
func Flatten(positive, negative classifier.Weights) classifier.Weights {
	out := make(classifier.Weights, len(positive)+len(negative))
	for f, w := range positive {
		out[f] += w
	}
	for f, w := range negative {
		out[f] -= w
	}
	return out
}

// ParseFeatureWeights parses a dump and flattens it for target.
func ParseFeatureWeights(r io.Reader, target string) (classifier.Weights, error) {
	d, err := ParseDump(r)
	if err != nil {
		return nil, err
	}
	return d.FeatureWeights(target), nil
}
