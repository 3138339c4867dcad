package rectpack

import "slices"

// freeSpace 维护箱子的空闲矩形列表和已用矩形列表。
//
// 空闲矩形之间允许重叠，每一个都是一块独立可用的最大区域；已用矩形之间永远不重叠。
type freeSpace struct {
	width     int
	height    int
	freeRects []Rect
	usedRects []Rect
	splits    []Rect
}

// reset 清空已用矩形，并把整个箱子作为唯一的空闲矩形。
func (fs *freeSpace) reset(width, height int) {
	fs.width = width
	fs.height = height
	fs.usedRects = fs.usedRects[:0]
	fs.freeRects = append(fs.freeRects[:0], NewRect(0, 0, width, height))
	fs.splits = fs.splits[:0]
}

func (fs *freeSpace) context() binContext {
	return binContext{width: fs.width, height: fs.height, used: fs.usedRects}
}

// place 提交一个已经选定的位置：记录为已用，切分所有与之相交的空闲矩形，再去掉被包含的空闲矩形。
func (fs *freeSpace) place(node Rect) {
	fs.usedRects = append(fs.usedRects, node)
	fs.split(node)
	fs.prune()
}

// split 对每个与 used 相交的空闲矩形，移除它并生成上、下、左、右最多四个剩余区域。
// 不相交的空闲矩形保持原有相对顺序，新区域按生成顺序追加到末尾。
func (fs *freeSpace) split(used Rect) {
	fs.splits = fs.splits[:0]
	kept := fs.freeRects[:0]
	for _, free := range fs.freeRects {
		if !free.Intersects(used) {
			kept = append(kept, free)
			continue
		}
		fs.splits = appendRemainders(fs.splits, free, used)
	}
	fs.freeRects = append(kept, fs.splits...)
}

// appendRemainders 把 free 去掉 used 之后的最大剩余矩形追加到 dst。两者必须相交。
func appendRemainders(dst []Rect, free, used Rect) []Rect {
	// 上方
	if used.Y > free.Y {
		node := free
		node.Height = used.Y - free.Y
		dst = append(dst, node)
	}
	// 下方
	if used.Bottom() < free.Bottom() {
		node := free
		node.Y = used.Bottom()
		node.Height = free.Bottom() - used.Bottom()
		dst = append(dst, node)
	}
	// 左侧
	if used.X > free.X {
		node := free
		node.Width = used.X - free.X
		dst = append(dst, node)
	}
	// 右侧
	if used.Right() < free.Right() {
		node := free
		node.X = used.Right()
		node.Width = free.Right() - used.Right()
		dst = append(dst, node)
	}
	return dst
}

// prune 两两比较整个空闲列表，删除被其他空闲矩形完全包含的项。两个完全相同的矩形只保留后一个。
func (fs *freeSpace) prune() {
	for i := 0; i < len(fs.freeRects); i++ {
		for j := i + 1; j < len(fs.freeRects); {
			if fs.freeRects[j].ContainsRect(fs.freeRects[i]) {
				fs.freeRects = slices.Delete(fs.freeRects, i, i+1)
				i--
				break
			}
			if fs.freeRects[i].ContainsRect(fs.freeRects[j]) {
				fs.freeRects = slices.Delete(fs.freeRects, j, j+1)
				continue
			}
			j++
		}
	}
}

// usedArea 返回所有已用矩形面积之和。
func (fs *freeSpace) usedArea() int {
	area := 0
	for _, r := range fs.usedRects {
		area += r.Area()
	}
	return area
}

// occupancy 返回已用面积占箱子面积的比例，范围 [0, 1]。
func (fs *freeSpace) occupancy() float64 {
	if fs.width <= 0 || fs.height <= 0 {
		return 0
	}
	return float64(fs.usedArea()) / float64(fs.width*fs.height)
}
