package rectpack

import "math"

// score 是候选位置的评分，先比较 primary，相等时比较 secondary，越小越好。
type score struct {
	primary   int
	secondary int
}

var worstScore = score{primary: math.MaxInt, secondary: math.MaxInt}

// better 判断 s 是否严格优于 other。相等时返回 false，保证先遇到的候选胜出。
func (s score) better(other score) bool {
	return s.primary < other.primary || (s.primary == other.primary && s.secondary < other.secondary)
}

// binContext 是评分时只读的箱子信息，接触点规则需要箱子尺寸和已放置的矩形。
type binContext struct {
	width  int
	height int
	used   []Rect
}

// leftover 返回把 width x height 放入 free 后两个方向剩余的长度。
func leftover(free Rect, width, height int) (int, int) {
	return free.Width - width, free.Height - height
}

func scoreBestShortSideFit(free Rect, width, height int) score {
	horiz, vert := leftover(free, width, height)
	return score{primary: min(horiz, vert), secondary: max(horiz, vert)}
}

func scoreBestLongSideFit(free Rect, width, height int) score {
	horiz, vert := leftover(free, width, height)
	return score{primary: max(horiz, vert), secondary: min(horiz, vert)}
}

func scoreBestAreaFit(free Rect, width, height int) score {
	horiz, vert := leftover(free, width, height)
	return score{primary: free.Area() - width*height, secondary: min(horiz, vert)}
}

func scoreBottomLeft(free Rect, width, height int) score {
	return score{primary: free.Y + height, secondary: free.X}
}

// contactLength 计算矩形放在 (x, y) 时与箱子边界和已放置矩形接触的边长总和。
func (c *binContext) contactLength(x, y, width, height int) int {
	length := 0
	if x == 0 {
		length += height
	}
	if x+width == c.width {
		length += height
	}
	if y == 0 {
		length += width
	}
	if y+height == c.height {
		length += width
	}
	for _, used := range c.used {
		if used.X == x+width || used.Right() == x {
			length += commonIntervalLength(used.Y, used.Bottom(), y, y+height)
		}
		if used.Y == y+height || used.Bottom() == y {
			length += commonIntervalLength(used.X, used.Right(), x, x+width)
		}
	}
	return length
}

// scoreContactPoint 取接触长度的相反数，使所有规则都可以按"越小越好"比较。
func (c *binContext) scoreContactPoint(free Rect, width, height int) score {
	return score{primary: -c.contactLength(free.X, free.Y, width, height)}
}

// scoreFor 按启发式规则给一个可行的候选位置评分。调用方保证 width x height 能放入 free。
func (c *binContext) scoreFor(h Heuristic, free Rect, width, height int) score {
	switch h {
	case BestLongSideFit:
		return scoreBestLongSideFit(free, width, height)
	case BestAreaFit:
		return scoreBestAreaFit(free, width, height)
	case BottomLeftRule:
		return scoreBottomLeft(free, width, height)
	case ContactPointRule:
		return c.scoreContactPoint(free, width, height)
	default:
		return scoreBestShortSideFit(free, width, height)
	}
}

// placement 是一次候选搜索的结果。
type placement struct {
	rect      Rect
	score     score
	freeIndex int
}

func (p placement) found() bool {
	return p.freeIndex >= 0
}

// findPosition 在所有空闲矩形中寻找 size 的最佳位置。
//
// 空闲矩形按列表顺序遍历，每个矩形先尝试原方向再尝试旋转方向；只有严格更优的候选才会替换当前最佳，
// 所以平分时靠前的空闲矩形和不旋转的方向优先。没有可行位置时 freeIndex 为 -1，rect 为哨兵值。
func (c *binContext) findPosition(freeRects []Rect, size Size, h Heuristic, allowRotate bool) placement {
	best := placement{score: worstScore, freeIndex: -1}
	for i, free := range freeRects {
		if free.Width >= size.Width && free.Height >= size.Height {
			s := c.scoreFor(h, free, size.Width, size.Height)
			if best.freeIndex < 0 || s.better(best.score) {
				best = placement{
					rect:      Rect{Point: free.Point, Size: Size{Width: size.Width, Height: size.Height, ID: size.ID}},
					score:     s,
					freeIndex: i,
				}
			}
		}
		if allowRotate && size.Width != size.Height && free.Width >= size.Height && free.Height >= size.Width {
			s := c.scoreFor(h, free, size.Height, size.Width)
			if best.freeIndex < 0 || s.better(best.score) {
				best = placement{
					rect:      Rect{Point: free.Point, Size: Size{Width: size.Height, Height: size.Width, ID: size.ID}, Rotated: true},
					score:     s,
					freeIndex: i,
				}
			}
		}
	}
	return best
}
