// Package testutil provides shared test helpers for nlisp Go tests.
package testutil

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConformanceDir is the relative path from the module root to the transcripts.
const ConformanceDir = "testdata/conformance"

// Case is one input line of a transcript together with its expectation.
//
// A transcript is a text file of input lines. An input line may be followed
// by an expectation line:
//
//	;=>text     the line prints text (readable mode)
//	;/CODE      the line fails with diagnostic code CODE
//
// Lines starting with ";;" and blank lines are ignored. Input lines with no
// expectation are run for their effect only, but must not fail.
type Case struct {
	Line    int
	Input   string
	Want    string
	WantErr string
}

// Expects reports whether the case carries an expectation line.
func (c Case) Expects() bool {
	return c.Want != "" || c.WantErr != ""
}

// LoadTranscript parses a transcript file.
func LoadTranscript(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []Case
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, ";;"):
			continue
		case strings.HasPrefix(trimmed, ";=>"):
			if len(cases) == 0 || cases[len(cases)-1].Expects() {
				return nil, fmt.Errorf("%s:%d: expectation without input", path, lineNo)
			}
			cases[len(cases)-1].Want = strings.TrimPrefix(trimmed, ";=>")
		case strings.HasPrefix(trimmed, ";/"):
			if len(cases) == 0 || cases[len(cases)-1].Expects() {
				return nil, fmt.Errorf("%s:%d: expectation without input", path, lineNo)
			}
			cases[len(cases)-1].WantErr = strings.TrimPrefix(trimmed, ";/")
		default:
			cases = append(cases, Case{Line: lineNo, Input: line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// ListTranscripts returns all *.mal files under root, sorted by name.
func ListTranscripts(root string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.mal"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
