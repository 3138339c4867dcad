package rectpack

import (
	"fmt"
	"slices"
)

// DefaultSize 定义了默认的箱子宽度/高度，
// 基于现代GPU的最大纹理尺寸。如果不是用于创建纹理图集，这个值只是一个合理的起点。
const DefaultSize = 4096

// Packer 是 MaxRects 之上的便捷封装，增加了间距、排序以及在线/离线两种插入方式。
type Packer struct {
	bin       MaxRects
	heuristic Heuristic

	// unpacked 包含尚未包装或无法包装的项
	unpacked []Item

	// packed 是移除间距后的已包装矩形
	packed []Rect

	// sortFunc 定义离线打包前用于排序的函数，nil 表示保持插入顺序
	//
	// 默认值：SortArea
	sortFunc SortFunc

	// sortRev 表示是否反向排序
	sortRev bool

	// Padding 定义矩形右侧和下方预留的空隙。0 或负数表示紧密排列。
	//
	// 默认值：0
	Padding int

	// Online 表示插入时立即逐个放置（在线模式），还是先暂存，由 Pack 统一放置（离线模式）。
	//
	// 离线模式每一轮都在所有剩余项中选择全局最优的放置，结果通常更好但更慢。
	//
	// 默认值：false
	Online bool
}

// NewPacker 创建一个 maxWidth x maxHeight 的包装器，heuristic 为放置规则。
func NewPacker(maxWidth, maxHeight int, heuristic Heuristic) (*Packer, error) {
	if !heuristic.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHeuristic, uint8(heuristic))
	}
	p := &Packer{
		heuristic: heuristic,
		sortFunc:  SortArea,
	}
	if err := p.bin.Init(maxWidth, maxHeight, false); err != nil {
		return nil, err
	}
	return p, nil
}

// NewDefaultPacker 创建 DefaultSize x DefaultSize、BestShortSideFit 的包装器。
func NewDefaultPacker() *Packer {
	p, _ := NewPacker(DefaultSize, DefaultSize, BestShortSideFit)
	return p
}

// Heuristic 返回当前使用的放置规则。
func (p *Packer) Heuristic() Heuristic {
	return p.heuristic
}

// MaxSize 返回箱子的尺寸。
func (p *Packer) MaxSize() Size {
	return NewSize(p.bin.Width(), p.bin.Height())
}

// AllowRotate 设置是否允许旋转。旋转标记在箱子初始化时固定，因此这会清空所有已包装的矩形，
// 暂存的项保留。
//
// 默认值: false
func (p *Packer) AllowRotate(enabled bool) {
	p.bin.Init(p.bin.Width(), p.bin.Height(), enabled)
	p.packed = p.packed[:0]
}

// Sorter 设置离线打包时的排序函数和排序方向。compare 为 nil 时保持插入顺序。
func (p *Packer) Sorter(compare SortFunc, reverse bool) {
	p.sortFunc = compare
	p.sortRev = reverse
}

// Insert 添加待包装的项。在线模式下立即逐个放置，返回本次无法放置的项；
// 离线模式下只是暂存，返回当前全部暂存项。
func (p *Packer) Insert(items ...Item) ([]Item, error) {
	if !p.Online {
		for _, item := range items {
			if !item.valid() {
				return p.unpacked, fmt.Errorf("%w (item %d given %dx%d)", ErrInvalidSize, item.ID, item.Width, item.Height)
			}
		}
		p.unpacked = append(p.unpacked, items...)
		return p.unpacked, nil
	}
	var failed []Item
	for _, item := range items {
		if !item.valid() {
			return failed, fmt.Errorf("%w (item %d given %dx%d)", ErrInvalidSize, item.ID, item.Width, item.Height)
		}
		rect, err := p.bin.InsertItem(p.pad(item), p.heuristic)
		if err != nil {
			return failed, err
		}
		if rect.IsEmpty() {
			failed = append(failed, item)
			continue
		}
		p.commit(rect)
	}
	p.unpacked = append(p.unpacked, failed...)
	return failed, nil
}

// InsertSize 插入一个指定 ID 和尺寸的项。在线模式下返回是否放置成功，离线模式下总是 true。
func (p *Packer) InsertSize(id, width, height int) (bool, error) {
	failed, err := p.Insert(NewItem(id, width, height))
	if err != nil {
		return false, err
	}
	return !p.Online || len(failed) == 0, nil
}

// Pack 放置所有暂存的项。全部放置成功时返回 true，否则失败的项可以通过 Unpacked 获取。
func (p *Packer) Pack() (bool, error) {
	if len(p.unpacked) == 0 {
		return true, nil
	}
	if p.sortFunc != nil {
		if p.sortRev {
			slices.SortStableFunc(p.unpacked, func(a, b Item) int {
				return p.sortFunc(b, a)
			})
		} else {
			slices.SortStableFunc(p.unpacked, p.sortFunc)
		}
	} else if p.sortRev {
		slices.Reverse(p.unpacked)
	}

	padded := make([]Item, len(p.unpacked))
	for i, item := range p.unpacked {
		padded[i] = p.pad(item)
	}
	result, err := p.bin.InsertBatch(padded, p.heuristic)
	if err != nil {
		return false, err
	}
	for _, rect := range result.Placed {
		p.commit(rect)
	}
	failed := make([]Item, 0, len(result.Unplaced))
	for _, item := range result.Unplaced {
		failed = append(failed, p.unpad(item))
	}
	p.unpacked = failed
	return len(failed) == 0, nil
}

// RepackAll 清空箱子，把已包装的矩形和暂存项一起重新打包。
func (p *Packer) RepackAll() (bool, error) {
	items := make([]Item, 0, len(p.packed)+len(p.unpacked))
	for _, rect := range p.packed {
		size := rect.Size
		if rect.Rotated {
			size = size.Rotate()
		}
		items = append(items, NewItem(size.ID, size.Width, size.Height))
	}
	items = append(items, p.unpacked...)
	p.Clear()
	p.unpacked = items
	return p.Pack()
}

// Clear 清空所有已包装和暂存的矩形，保留配置。
func (p *Packer) Clear() {
	p.bin.Init(p.bin.Width(), p.bin.Height(), p.bin.AllowRotation())
	p.packed = p.packed[:0]
	p.unpacked = p.unpacked[:0]
}

// Rects 返回已包装的矩形（已移除间距，由内部管理，如需修改请复制）。
func (p *Packer) Rects() []Rect {
	return p.packed
}

// Unpacked 返回暂存或无法包装的项。
func (p *Packer) Unpacked() []Item {
	return p.unpacked
}

// Size 返回容纳所有已包装矩形（含间距）所需的最小尺寸。
func (p *Packer) Size() Size {
	var size Size
	for _, rect := range p.packed {
		size.Width = max(size.Width, rect.Right()+max(p.Padding, 0))
		size.Height = max(size.Height, rect.Bottom()+max(p.Padding, 0))
	}
	return size
}

// Used 返回空间利用率。current 为 true 时按 Size 计算，否则按整个箱子计算。
func (p *Packer) Used(current bool) float64 {
	if !current {
		return p.bin.Occupancy()
	}
	size := p.Size()
	if size.Area() == 0 {
		return 0
	}
	return float64(p.bin.UsedArea()) / float64(size.Area())
}

// Map 返回 ID 到已包装矩形的映射。
func (p *Packer) Map() map[int]Rect {
	mapping := make(map[int]Rect, len(p.packed))
	for _, rect := range p.packed {
		mapping[rect.ID] = rect
	}
	return mapping
}

func (p *Packer) pad(item Item) Item {
	size := item.Size()
	padSize(&size, p.Padding)
	return NewItem(size.ID, size.Width, size.Height)
}

func (p *Packer) unpad(item Item) Item {
	if p.Padding > 0 {
		item.Width -= p.Padding
		item.Height -= p.Padding
	}
	return item
}

func (p *Packer) commit(rect Rect) {
	unpadRect(&rect, p.Padding)
	p.packed = append(p.packed, rect)
}
