package rectpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeSpace_Reset(t *testing.T) {
	var fs freeSpace
	fs.reset(30, 40)

	assert.Equal(t, []Rect{NewRect(0, 0, 30, 40)}, fs.freeRects)
	assert.Empty(t, fs.usedRects)
	assert.Equal(t, 0.0, fs.occupancy())
}

func TestFreeSpace_SplitFourWays(t *testing.T) {
	var fs freeSpace
	fs.reset(10, 10)
	fs.place(NewRect(2, 2, 3, 3))

	expected := []Rect{
		NewRect(0, 0, 10, 2), // above
		NewRect(0, 5, 10, 5), // below
		NewRect(0, 0, 2, 10), // left
		NewRect(5, 0, 5, 10), // right
	}
	assert.Equal(t, expected, fs.freeRects)
	assert.Equal(t, []Rect{NewRect(2, 2, 3, 3)}, fs.usedRects)
	assert.InDelta(t, 9.0/100.0, fs.occupancy(), 1e-12)
}

func TestFreeSpace_SplitCorner(t *testing.T) {
	var fs freeSpace
	fs.reset(10, 10)
	fs.place(NewRect(0, 0, 4, 4))

	assert.Equal(t, []Rect{NewRect(0, 4, 10, 6), NewRect(4, 0, 6, 10)}, fs.freeRects)
}

func TestFreeSpace_SplitEveryIntersectingRect(t *testing.T) {
	var fs freeSpace
	fs.reset(10, 10)
	fs.place(NewRect(0, 0, 4, 4))
	// (4,4) sits inside both overlapping free rectangles
	fs.place(NewRect(4, 4, 2, 2))

	for _, free := range fs.freeRects {
		for _, used := range fs.usedRects {
			require.False(t, free.Intersects(used), "free %s overlaps used %s", free, used)
		}
	}
	assert.Contains(t, fs.freeRects, NewRect(0, 6, 10, 4))
	assert.Contains(t, fs.freeRects, NewRect(6, 0, 4, 10))
	assert.Contains(t, fs.freeRects, NewRect(0, 4, 4, 6))
	assert.Contains(t, fs.freeRects, NewRect(4, 0, 6, 4))
	assert.Len(t, fs.freeRects, 4)
}

func TestFreeSpace_Prune(t *testing.T) {
	testCases := []struct {
		name     string
		input    []Rect
		expected []Rect
	}{
		{"Disjoint", []Rect{NewRect(0, 0, 2, 2), NewRect(5, 5, 2, 2)}, []Rect{NewRect(0, 0, 2, 2), NewRect(5, 5, 2, 2)}},
		{"Overlapping", []Rect{NewRect(0, 0, 6, 2), NewRect(0, 0, 2, 6)}, []Rect{NewRect(0, 0, 6, 2), NewRect(0, 0, 2, 6)}},
		{"ContainedFirst", []Rect{NewRect(1, 1, 2, 2), NewRect(0, 0, 5, 5)}, []Rect{NewRect(0, 0, 5, 5)}},
		{"ContainedLast", []Rect{NewRect(0, 0, 5, 5), NewRect(1, 1, 2, 2)}, []Rect{NewRect(0, 0, 5, 5)}},
		{"Identical", []Rect{NewRect(0, 0, 3, 3), NewRect(0, 0, 3, 3)}, []Rect{NewRect(0, 0, 3, 3)}},
		{"Chain", []Rect{NewRect(0, 0, 5, 5), NewRect(0, 0, 10, 10), NewRect(0, 0, 10, 10), NewRect(20, 20, 1, 1)}, []Rect{NewRect(0, 0, 10, 10), NewRect(20, 20, 1, 1)}},
		{"Empty", []Rect{}, []Rect{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fs := freeSpace{freeRects: testCase.input}
			fs.prune()

			assert.Equal(t, testCase.expected, fs.freeRects)
		})
	}
}

func TestFreeSpace_AppendRemaindersSkipsEmpty(t *testing.T) {
	free := NewRect(0, 0, 10, 10)

	assert.Empty(t, appendRemainders(nil, free, NewRect(0, 0, 10, 10)))
	assert.Equal(t, []Rect{NewRect(0, 5, 10, 5)}, appendRemainders(nil, free, NewRect(0, 0, 10, 5)))
	// the placement may stick out of the free rectangle
	assert.Equal(t, []Rect{NewRect(0, 0, 10, 2), NewRect(0, 0, 8, 10)}, appendRemainders(nil, free, NewRect(8, 2, 5, 20)))
}
