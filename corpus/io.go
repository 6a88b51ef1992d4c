package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineSize = 16 * 1024 * 1024

// ErrMalformedRecord is matched by every *MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a non-blank line with fewer than two fields.
type MalformedRecordError struct {
	Line int
	Text string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: expected <label>\\t<lemma>[\\t<feature>...], got %q", e.Line, e.Text)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// LoadFile reads a corpus from the file at path.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads a corpus. Every blank line closes the pending sentence if it has
// tokens, so runs of blank lines never yield empty sentences.
func Load(r io.Reader) (Corpus, error) {
	var (
		out Corpus
		cur Sentence
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}

		data := strings.Split(line, "\t")
		if len(data) < 2 {
			return nil, &MalformedRecordError{Line: lineNo, Text: line}
		}
		cur = append(cur, NewToken(data[0], data[1], data[2:]))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out, nil
}

// Write serializes c in the format Load reads: label, lemma, then the other
// features in sorted order, with a blank line after each sentence. When
// relabel is non-nil it rewrites every label on the way out.
func Write(w io.Writer, c Corpus, relabel func(string) string) error {
	bw := bufio.NewWriter(w)
	for _, sent := range c {
		for _, tok := range sent {
			label := tok.Label
			if relabel != nil {
				label = relabel(label)
			}
			bw.WriteString(label)
			bw.WriteByte('\t')
			bw.WriteString(tok.Lemma)
			for _, f := range tok.Features {
				if f == tok.Lemma {
					continue
				}
				bw.WriteByte('\t')
				bw.WriteString(f)
			}
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes c to path, creating or truncating it.
func WriteFile(path string, c Corpus, relabel func(string) string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, c, relabel); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
