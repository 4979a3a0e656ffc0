package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSamples(t *testing.T) {
	type sample struct {
		name, content string
	}

	samples := []struct {
		title, content string
		multi          bool
		prefix         string
		expected       []sample
	}{
		{"single", "a\nb\n", false, "", []sample{{"f", "a\nb\n"}}},
		{"no prefix", "a\n--- b\n", false, "---", []sample{{"f", "a\n--- b\n"}}},
		{"multi", "--- comment\na\n--- one more\nb\nc\n", true, "", []sample{
			{"f #1 (lines 2-2)", "a"},
			{"f #2 (lines 4-5)", "b\nc"},
		}},
		{"prefix", "## first\nx\n##\n\n", false, "##", []sample{
			{"f #1 (lines 2-2)", "x"},
			{"f #2 (lines 4-4)", ""},
		}},
		{"trailing separator", "--\na\n--\n", true, "", []sample{{"f #1 (lines 2-2)", "a"}}},
		{"empty samples", "--\n--\n--\n", true, "", []sample{
			{"f #1 (lines 2-1)", ""},
			{"f #2 (lines 3-2)", ""},
		}},
		{"kept trailing LF", "--\na\n\n--\nb", true, "", []sample{
			{"f #1 (lines 2-3)", "a\n"},
			{"f #2 (lines 5-5)", "b"},
		}},
	}

	for _, s := range samples {
		t.Run(s.title, func(t *testing.T) {
			srcs, err := splitSamples("f", s.content, s.multi, s.prefix)
			require.NoError(t, err)
			actual := make([]sample, len(srcs))
			for i, src := range srcs {
				actual[i] = sample{src.Name(), src.Content()}
			}
			assert.Equal(t, s.expected, actual)
		})
	}
}

func TestEmptySeparator(t *testing.T) {
	_, err := splitSamples("f", "\na\n", true, "")
	assert.ErrorIs(t, err, errNoSeparator)
}
