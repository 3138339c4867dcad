package rectpack

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomSize returns a size within the given minimum and maximum sizes.
func randomSize(r *rand.Rand, id int, minSize, maxSize Size) Item {
	w := r.Intn(maxSize.Width-minSize.Width) + minSize.Width
	h := r.Intn(maxSize.Height-minSize.Height) + minSize.Height
	return NewItem(id, w, h)
}

func TestNewPacker(t *testing.T) {
	_, err := NewPacker(0, 10, BestAreaFit)
	assert.ErrorIs(t, err, ErrInvalidBinSize)

	_, err = NewPacker(10, 10, Heuristic(77))
	assert.ErrorIs(t, err, ErrUnknownHeuristic)

	p := NewDefaultPacker()
	assert.Equal(t, NewSize(DefaultSize, DefaultSize), p.MaxSize())
	assert.Equal(t, BestShortSideFit, p.Heuristic())
}

func TestPacker_Random(t *testing.T) {
	const (
		count       = 512
		atlasWidth  = 1024
		atlasHeight = 1024
	)
	r := rand.New(rand.NewSource(0x5eed))
	minSize := NewSize(8, 8)
	maxSize := NewSize(96, 96)

	sizes := make([]Item, count)
	for i := 0; i < count; i++ {
		sizes[i] = randomSize(r, i, minSize, maxSize)
	}

	packer, err := NewPacker(atlasWidth, atlasHeight, BestShortSideFit)
	require.NoError(t, err)
	packer.AllowRotate(true)
	packer.Padding = 2
	packer.Sorter(SortArea, false)
	_, err = packer.Insert(sizes...)
	require.NoError(t, err)

	_, err = packer.Pack()
	require.NoError(t, err)
	rects := packer.Rects()
	assert.Equal(t, count, len(rects)+len(packer.Unpacked()))

	// padded neighbours never touch
	for i := 0; i < len(rects)-1; i++ {
		a := rects[i]
		a.Width += packer.Padding
		a.Height += packer.Padding
		for j := i + 1; j < len(rects); j++ {
			b := rects[j]
			b.Width += packer.Padding
			b.Height += packer.Padding
			require.False(t, a.Intersects(b), "%s and %s intersect", rects[i], rects[j])
		}
	}

	byID := make(map[int]Item, count)
	for _, item := range sizes {
		byID[item.ID] = item
	}
	for _, rect := range rects {
		item := byID[rect.ID]
		if rect.Rotated {
			assert.Equal(t, NewSize(item.Height, item.Width), NewSize(rect.Width, rect.Height))
		} else {
			assert.Equal(t, NewSize(item.Width, item.Height), NewSize(rect.Width, rect.Height))
		}
	}
	for _, item := range packer.Unpacked() {
		assert.Equal(t, byID[item.ID], item, "unplaced items come back without padding")
	}
}

func TestPacker_Padding(t *testing.T) {
	p, err := NewPacker(100, 100, BestAreaFit)
	require.NoError(t, err)
	p.Padding = 2

	_, err = p.Insert(NewItem(5, 10, 10), NewItem(6, 20, 4))
	require.NoError(t, err)
	ok, err := p.Pack()
	require.NoError(t, err)
	require.True(t, ok)

	mapping := p.Map()
	require.Len(t, mapping, 2)
	assert.Equal(t, NewSize(10, 10), NewSize(mapping[5].Width, mapping[5].Height))
	assert.Equal(t, NewSize(20, 4), NewSize(mapping[6].Width, mapping[6].Height))

	size := p.Size()
	for _, rect := range p.Rects() {
		assert.LessOrEqual(t, rect.Right()+2, size.Width)
		assert.LessOrEqual(t, rect.Bottom()+2, size.Height)
	}
}

func TestPacker_Online(t *testing.T) {
	p, err := NewPacker(10, 20, BestShortSideFit)
	require.NoError(t, err)
	p.AllowRotate(true)
	p.Online = true

	ok, err := p.InsertSize(1, 20, 10)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, p.Rects(), 1)
	assert.True(t, p.Rects()[0].Rotated)
	assert.Equal(t, 1.0, p.Used(false))
	assert.Equal(t, 1.0, p.Used(true))

	ok, err = p.InsertSize(2, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []Item{NewItem(2, 1, 1)}, p.Unpacked())

	_, err = p.InsertSize(3, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestPacker_OfflineDefersPlacement(t *testing.T) {
	p, err := NewPacker(50, 50, BestAreaFit)
	require.NoError(t, err)

	pending, err := p.Insert(NewItem(0, 10, 10), NewItem(1, 40, 40))
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Empty(t, p.Rects())
	assert.Equal(t, 0.0, p.Used(false))

	ok, err := p.Pack()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, p.Unpacked())
	assert.Len(t, p.Rects(), 2)

	_, err = p.Insert(NewItem(2, -1, 1))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestPacker_PartialAndRepack(t *testing.T) {
	p, err := NewPacker(30, 30, BestShortSideFit)
	require.NoError(t, err)

	_, err = p.Insert(NewItem(0, 20, 20), NewItem(1, 20, 20), NewItem(2, 10, 10))
	require.NoError(t, err)
	ok, err := p.Pack()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, p.Rects(), 2)
	assert.Equal(t, []Item{NewItem(1, 20, 20)}, p.Unpacked())

	ok, err = p.RepackAll()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, len(p.Rects())+len(p.Unpacked()))

	p.Clear()
	assert.Empty(t, p.Rects())
	assert.Empty(t, p.Unpacked())
	assert.Equal(t, 0.0, p.Used(true))
}

func TestPacker_Sorter(t *testing.T) {
	items := []Item{NewItem(0, 1, 1), NewItem(1, 5, 5), NewItem(2, 3, 3), NewItem(3, 9, 1)}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, SortArea)
	assert.Equal(t, []int{1, 2, 3, 0}, ids(sorted))

	slices.SortStableFunc(sorted, SortMaxSide)
	assert.Equal(t, []int{3, 1, 2, 0}, ids(sorted))

	slices.SortStableFunc(sorted, SortID)
	assert.Equal(t, []int{0, 1, 2, 3}, ids(sorted))

	slices.SortStableFunc(sorted, SortDiff)
	assert.Equal(t, 3, sorted[0].ID)

	fn, err := ParseSortFunc("none")
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = ParseSortFunc("Perimeter")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = ParseSortFunc("ratio")
	assert.Error(t, err)
}

func ids(items []Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
