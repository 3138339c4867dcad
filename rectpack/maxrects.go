package rectpack

import (
	"fmt"
	"slices"
)

// MaxRects 是最大矩形（MaxRects）在线装箱器。
//
// 它用一组可能互相重叠的空闲矩形描述剩余空间，每次插入时在所有空闲矩形上按启发式规则评分，
// 选出最佳位置后切分受影响的空闲矩形并删除冗余项。
//
// 零值处于未初始化状态，必须先调用 Init。MaxRects 不是并发安全的，每个箱子使用独立的实例，
// 或者由调用方在外部加锁。
type MaxRects struct {
	space       freeSpace
	allowRotate bool
	ready       bool
}

// BatchResult 是批量插入的结果。Placed 与 Unplaced 的数量之和等于输入数量。
type BatchResult struct {
	// Placed 按放置的先后顺序排列，每个矩形带有原始 ID。
	Placed []Rect
	// Unplaced 保留无法放置的项，顺序与输入一致。
	Unplaced []Item
}

// New 创建并初始化一个 width x height 的箱子。
func New(width, height int, allowRotate bool) (*MaxRects, error) {
	var p MaxRects
	if err := p.Init(width, height, allowRotate); err != nil {
		return nil, err
	}
	return &p, nil
}

// Init 重新开始：丢弃所有已放置的矩形，把整个箱子作为唯一空闲区域。
// 宽或高小于 1 时返回 ErrInvalidBinSize，原有状态保持不变。
func (p *MaxRects) Init(width, height int, allowRotate bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w (given %dx%d)", ErrInvalidBinSize, width, height)
	}
	p.space.reset(width, height)
	p.allowRotate = allowRotate
	p.ready = true
	return nil
}

// Ready 报告 Init 是否已被成功调用。
func (p *MaxRects) Ready() bool {
	return p.ready
}

// Width 返回箱子宽度。
func (p *MaxRects) Width() int {
	return p.space.width
}

// Height 返回箱子高度。
func (p *MaxRects) Height() int {
	return p.space.height
}

// AllowRotation 报告是否允许旋转 90 度放置。
func (p *MaxRects) AllowRotation() bool {
	return p.allowRotate
}

// Insert 放置一个 width x height 的矩形并返回它的位置。
//
// 没有任何空闲矩形能容纳它时返回哨兵矩形（IsEmpty 为 true）和 nil 错误，状态保持不变。
// 返回的错误只表示前置条件被违反。
func (p *MaxRects) Insert(width, height int, h Heuristic) (Rect, error) {
	return p.InsertItem(Item{Width: width, Height: height}, h)
}

// InsertItem 与 Insert 相同，返回的矩形带有 item.ID。
func (p *MaxRects) InsertItem(item Item, h Heuristic) (Rect, error) {
	if err := p.check(h); err != nil {
		return Rect{}, err
	}
	if !item.valid() {
		return Rect{}, fmt.Errorf("%w (given %dx%d)", ErrInvalidSize, item.Width, item.Height)
	}
	ctx := p.space.context()
	best := ctx.findPosition(p.space.freeRects, item.Size(), h, p.allowRotate)
	if !best.found() {
		return Rect{}, nil
	}
	p.space.place(best.rect)
	return best.rect, nil
}

// InsertBatch 放置一组矩形。每一轮为所有剩余项重新评分，只放置全局得分最好的那一项，
// 而不是按输入顺序逐个放置；得分相同时靠前的项优先。没有剩余项或剩余项都放不下时停止。
//
// items 不会被修改。任何一项尺寸非法时不做任何放置，直接返回 ErrInvalidSize。
func (p *MaxRects) InsertBatch(items []Item, h Heuristic) (BatchResult, error) {
	if err := p.check(h); err != nil {
		return BatchResult{}, err
	}
	for _, item := range items {
		if !item.valid() {
			return BatchResult{}, fmt.Errorf("%w (item %d given %dx%d)", ErrInvalidSize, item.ID, item.Width, item.Height)
		}
	}

	remaining := slices.Clone(items)
	placed := make([]Rect, 0, len(items))
	for len(remaining) > 0 {
		ctx := p.space.context()
		best := placement{score: worstScore, freeIndex: -1}
		bestItem := -1
		for i, item := range remaining {
			candidate := ctx.findPosition(p.space.freeRects, item.Size(), h, p.allowRotate)
			if !candidate.found() {
				continue
			}
			if bestItem < 0 || candidate.score.better(best.score) {
				best = candidate
				bestItem = i
			}
		}
		if bestItem < 0 {
			break
		}
		p.space.place(best.rect)
		placed = append(placed, best.rect)
		remaining = slices.Delete(remaining, bestItem, bestItem+1)
	}
	return BatchResult{Placed: placed, Unplaced: remaining}, nil
}

func (p *MaxRects) check(h Heuristic) error {
	if !p.ready {
		return ErrNotInitialized
	}
	if !h.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownHeuristic, uint8(h))
	}
	return nil
}

// Occupancy 返回已用面积占箱子面积的比例，范围 [0, 1]。未初始化时为 0。
func (p *MaxRects) Occupancy() float64 {
	return p.space.occupancy()
}

// UsedArea 返回已放置矩形的面积之和。
func (p *MaxRects) UsedArea() int {
	return p.space.usedArea()
}

// UsedRects 返回已放置矩形的副本，按放置顺序排列。
func (p *MaxRects) UsedRects() []Rect {
	return slices.Clone(p.space.usedRects)
}

// FreeRects 返回当前空闲矩形列表的副本。
func (p *MaxRects) FreeRects() []Rect {
	return slices.Clone(p.space.freeRects)
}
