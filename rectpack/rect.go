package rectpack

import "fmt"

// Point 描述矩形左上角在箱子中的整数坐标。
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size 描述一个宽高对。ID 用于在批量插入时把输入和输出对应起来。
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	ID     int `json:"-" yaml:"-"`
}

// NewSize 创建指定宽高的尺寸。
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Area 返回 宽 * 高。
func (sz Size) Area() int {
	return sz.Width * sz.Height
}

// Perimeter 返回周长。
func (sz Size) Perimeter() int {
	return (sz.Width + sz.Height) << 1
}

// MaxSide 返回较长边。
func (sz Size) MaxSide() int {
	return max(sz.Width, sz.Height)
}

// MinSide 返回较短边。
func (sz Size) MinSide() int {
	return min(sz.Width, sz.Height)
}

// Rotate 返回宽高互换后的尺寸，ID 保持不变。
func (sz Size) Rotate() Size {
	return Size{Width: sz.Height, Height: sz.Width, ID: sz.ID}
}

func (sz Size) String() string {
	return fmt.Sprintf("%dx%d", sz.Width, sz.Height)
}

// Item 是一个尚未放置的请求，只有尺寸没有位置。
type Item struct {
	ID     int `json:"id" yaml:"id"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// NewItem 创建带标识符的待放置项。
func NewItem(id, width, height int) Item {
	return Item{ID: id, Width: width, Height: height}
}

// Size 返回该项的尺寸（带 ID）。
func (it Item) Size() Size {
	return Size{Width: it.Width, Height: it.Height, ID: it.ID}
}

func (it Item) valid() bool {
	return it.Width > 0 && it.Height > 0
}

// Rect 描述箱子中的一个矩形：已放置的矩形或者空闲候选区域。
//
// 宽或高为 0 的 Rect 是保留的"未放置"哨兵值，成功放置的矩形永远不会是它。
type Rect struct {
	Point
	Size
	// Rotated 表示放置时宽高被互换。
	Rotated bool `json:"rotated,omitempty" yaml:"rotated,omitempty"`
}

// NewRect 用左上角坐标和宽高创建矩形。
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Point: Point{X: x, Y: y},
		Size:  Size{Width: w, Height: h},
	}
}

// String 返回 [x, y, w, h] 形式的描述。
func (r Rect) String() string {
	return fmt.Sprintf("[%v, %v, %v, %v]", r.X, r.Y, r.Width, r.Height)
}

// Right 返回右边缘的 x 坐标（不包含）。
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom 返回下边缘的 y 坐标（不包含）。
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty 判断是否为哨兵矩形（宽或高小于 1）。
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ContainsRect 判断 rect 是否完全落在 r 内部，边界重合也算包含。
func (r Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X &&
		rect.Right() <= r.Right() &&
		r.Y <= rect.Y &&
		rect.Bottom() <= r.Bottom()
}

// Intersects 判断两个矩形的内部是否有公共面积。只共享边不算相交。
func (r Rect) Intersects(rect Rect) bool {
	return rect.X < r.Right() &&
		r.X < rect.Right() &&
		rect.Y < r.Bottom() &&
		r.Y < rect.Bottom()
}

// Equal 比较位置和尺寸，忽略 ID 和旋转标记。
func (r Rect) Equal(rect Rect) bool {
	return r.X == rect.X && r.Y == rect.Y && r.Width == rect.Width && r.Height == rect.Height
}

// commonIntervalLength 返回区间 [i1start, i1end) 与 [i2start, i2end) 的重叠长度，不相交时为 0。
func commonIntervalLength(i1start, i1end, i2start, i2end int) int {
	if i1end < i2start || i2end < i1start {
		return 0
	}
	return min(i1end, i2end) - max(i1start, i2start)
}

// padSize 在尺寸上加上间距
func padSize(size *Size, padding int) {
	if padding <= 0 {
		return
	}
	size.Width += padding
	size.Height += padding
}

// unpadRect 从已放置的矩形中移除间距，间距留在矩形的右侧和下方。
func unpadRect(rect *Rect, padding int) {
	if padding <= 0 {
		return
	}
	rect.Width -= padding
	rect.Height -= padding
}
