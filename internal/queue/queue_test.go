package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSize(t *testing.T) {
	for i := 0; i <= 33; i++ {
		t.Run(fmt.Sprintf("%d elements", i), func(t *testing.T) {
			size := computeSize(i)
			assert.GreaterOrEqual(t, size, minSize)
			assert.Zero(t, size&(size+1), "expecting 2^n - 1, got %b", size)
			assert.GreaterOrEqual(t, size, i)
			if size > minSize {
				assert.Less(t, size>>1, i)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
	assert.Len(t, q.items, minSize+1)

	_, ok := q.First()
	assert.False(t, ok)
}

func TestPrefilled(t *testing.T) {
	items := make([]int, minSize+1)
	for i := range items {
		items[i] = i
	}

	q := New(items[:minSize]...)
	assert.Equal(t, minSize, q.size)
	assert.Equal(t, minSize, q.Len())

	q = New(items...)
	assert.Equal(t, (minSize<<1)+1, q.size)
	assert.Equal(t, minSize+1, q.Len())
	for i := range items {
		item, ok := q.First()
		require.True(t, ok)
		assert.Equal(t, i, item)
	}
	assert.True(t, q.IsEmpty())
}

func TestGrow(t *testing.T) {
	q := New(make([]int, minSize)...)
	assert.Equal(t, minSize, q.size)
	q.Append(1)
	newSize := (minSize << 1) + 1
	assert.Equal(t, newSize, q.size)
	for i := 0; i < minSize; i++ {
		q.Append(i)
		assert.Equal(t, newSize, q.size)
	}
	q.Append(1)
	assert.Equal(t, (newSize<<1)+1, q.size)
	assert.Equal(t, newSize+1, q.Len())
}

func TestWrapAround(t *testing.T) {
	q := New[int]()
	next := 0
	expected := 0
	for round := 0; round < 10; round++ {
		q.Append(next, next+1)
		next += 2
		item, ok := q.First()
		require.True(t, ok)
		assert.Equal(t, expected, item)
		expected++
	}

	assert.Equal(t, 10, q.Len())
	for !q.IsEmpty() {
		item, _ := q.First()
		assert.Equal(t, expected, item)
		expected++
	}
	assert.Equal(t, next, expected)
}

func TestClear(t *testing.T) {
	q := New(1, 2, 3)
	q.First()
	q.Append(4, 5)
	q.Clear()
	assert.True(t, q.IsEmpty())
	q.Append(6)
	item, ok := q.First()
	assert.True(t, ok)
	assert.Equal(t, 6, item)
}
