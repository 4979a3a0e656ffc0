package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		source := New("", text)
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			assert.Equal(t, res.line, l, "sample %q, pos %d", text, res.pos)
			assert.Equal(t, res.col, c, "sample %q, pos %d", text, res.pos)
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		" ": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
		},
		"\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 2, 2},
			{1, 3, 1},
		},
		"hello\nworld\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 3, 2},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", text)
		for _, res := range results {
			assert.Equal(t, res.pos, source.Pos(res.line, res.col), "sample %q, line %d col %d", text, res.line, res.col)
		}
	}
}

func TestMultibyteColumns(t *testing.T) {
	src := New("utf", "héllo\nмир")
	l, c := src.LineCol(3)
	assert.Equal(t, 1, l)
	assert.Equal(t, 3, c)
	l, c = src.LineCol(len("héllo\nми"))
	assert.Equal(t, 2, l)
	assert.Equal(t, 3, c)
}

func TestNewPos(t *testing.T) {
	src := New("name", "ab\ncd")
	p := NewPos(src, 4)
	assert.Equal(t, "name", p.SourceName())
	assert.Equal(t, 4, p.Offset())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Same(t, src, p.Source())

	p = NewPos(nil, 3)
	assert.Equal(t, "", p.SourceName())
	assert.Equal(t, 0, p.Line())
}
