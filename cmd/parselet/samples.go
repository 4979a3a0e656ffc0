package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava12/parselet/source"
)

var errNoSeparator = errors.New("separator line is empty")

// splitSamples treats content as a sequence of samples if multi is set or content starts with prefix.
// The first line defines separator: its leading run of non-spacing characters.
func splitSamples(name, content string, multi bool, prefix string) ([]*source.Source, error) {
	if prefix != "" && strings.HasPrefix(content, prefix) {
		multi = true
	}
	if !multi {
		return []*source.Source{source.New(name, content)}, nil
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, nil
	}

	separator := linePrefix(lines[0])
	if separator == "" {
		return nil, fmt.Errorf("%s: %w", name, errNoSeparator)
	}

	var res []*source.Source
	first := 1
	for i := 1; i <= len(lines); i++ {
		if i < len(lines) && !strings.HasPrefix(lines[i], separator) {
			continue
		}
		if i == len(lines) && first >= i {
			break
		}

		sample := strings.TrimSuffix(strings.Join(lines[first:i], ""), "\n")
		sampleName := fmt.Sprintf("%s #%d (lines %d-%d)", name, len(res)+1, first+1, i)
		res = append(res, source.New(sampleName, sample))
		first = i + 1
	}
	return res, nil
}

func linePrefix(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] <= ' ' {
			return line[:i]
		}
	}
	return line
}
