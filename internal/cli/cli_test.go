package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `FILEHEADER = {
  magic: lCRF
}

LABELS = {
  0: PER
  1: O
}

STATE_FEATURES = {
  (0) w[0]=John --> PER: 2.000000
  (0) w[0]=Mary --> PER: 1.000000
  (0) w[0]=ran --> O: 1.000000
}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var out bytes.Buffer
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(&out)
	c.rootCmd.SetArgs(append([]string{"-s"}, args...))
	err := c.Run()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func TestCommandsRegistered(t *testing.T) {
	c := New("test")
	var names []string
	for _, cmd := range c.rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"run", "sweep", "dump", "fields", "up"} {
		assert.Contains(t, names, want)
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeFile(t, "model.txt", sampleDump, 0644)

	out, err := execute(t, "dump", path, "--class", "PER", "--top", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "labels: PER O", lines[0])
	assert.Equal(t, "PER: 3 features", lines[1])
	assert.Equal(t, "+2.000000\tw[0]=John", lines[2])
	assert.Equal(t, "+1.000000\tw[0]=Mary", lines[3])
}

func TestDumpCommandMalformed(t *testing.T) {
	path := writeFile(t, "bad.txt", "STATE_FEATURES = {\n  garbage\n}\n", 0644)
	_, err := execute(t, "dump", path)
	assert.Error(t, err)
}

func TestFieldsCommand(t *testing.T) {
	path := writeFile(t, "corpus.txt",
		"LOC\tParis\tParis-WORD|C\tin-PW|C\tNNP-TAG|C\n\nO\tthe\tthe-WORD|C\n", 0644)

	out, err := execute(t, "fields", path)
	require.NoError(t, err)
	assert.Equal(t,
		"LOC\tParis\tp[0]=NNP\tw[-1]=in\tw[0]=Paris\nO\tthe\tw[0]=the\n", out)

	out, err = execute(t, "fields", path, "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestRunCommandJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	script := "#!/bin/sh\ncase \"$1\" in\nlearn) exit 0 ;;\ndump) cat \"" +
		writeFile(t, "dump.txt", sampleDump, 0644) + "\" ;;\nesac\n"
	binary := writeFile(t, "crfsuite", script, 0755)
	corpusPath := writeFile(t, "corpus.txt",
		"PER\tJohn\tw[0]=John\nO\tran\tw[0]=ran\n\nPER\tMary\tw[0]=Mary\n", 0644)

	out, err := execute(t, "run",
		"--train", corpusPath, "--input", corpusPath, "--crfsuite", binary,
		"--tmp", t.TempDir(), "--seed", "1", "--json")
	require.NoError(t, err)

	var res struct {
		Class             string              `json:"class"`
		TrainingSentences int                 `json:"training_sentences"`
		Features          int                 `json:"features"`
		Measures          map[string]*float64 `json:"measures"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "PER", res.Class)
	assert.Equal(t, 2, res.TrainingSentences)
	assert.Equal(t, 3, res.Features)
	require.NotNil(t, res.Measures["AUC"])
	assert.Equal(t, 1.0, *res.Measures["AUC"])
}

func TestRunCommandText(t *testing.T) {
	corpusPath := writeFile(t, "corpus.txt", "O\tthe\tw[0]=the\n", 0644)

	// no PER sentences, so crfsuite is never started
	out, err := execute(t, "run", "--train", corpusPath, "--input", corpusPath,
		"--crfsuite", filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, "PER\t0\nAP: NaN\nuAP: NaN\nF1: NaN\n", out)
}

func TestComparableVersion(t *testing.T) {
	assert.Equal(t, "0.0.0", comparableVersion("dev"))
	assert.Equal(t, "0.0.0", comparableVersion(""))
	assert.Equal(t, "v1.2.0", comparableVersion("v1.2.0"))
}
