package rectpack

import (
	"cmp"
	"fmt"
	"strings"
)

// SortFunc 定义待包装项的比较函数
// 返回值:
//
//	负数: a 排在 b 前面
//	0:    顺序不变
//	正数: a 排在 b 后面
type SortFunc func(a, b Item) int

func itemSize(it Item) Size {
	return it.Size()
}

// SortArea 按面积降序排序(从大到小)
func SortArea(a, b Item) int {
	return cmp.Compare(itemSize(b).Area(), itemSize(a).Area())
}

// SortPerimeter 按周长降序排序
func SortPerimeter(a, b Item) int {
	return cmp.Compare(itemSize(b).Perimeter(), itemSize(a).Perimeter())
}

// SortDiff 按宽高差降序排序
func SortDiff(a, b Item) int {
	return cmp.Compare(abs(b.Width-b.Height), abs(a.Width-a.Height))
}

// SortMinSide 按最短边降序排序
func SortMinSide(a, b Item) int {
	return cmp.Compare(itemSize(b).MinSide(), itemSize(a).MinSide())
}

// SortMaxSide 按最长边降序排序
func SortMaxSide(a, b Item) int {
	return cmp.Compare(itemSize(b).MaxSide(), itemSize(a).MaxSide())
}

// SortID 按 ID 升序排序
func SortID(a, b Item) int {
	return cmp.Compare(a.ID, b.ID)
}

func abs(x int) int {
	if x >= 0 {
		return x
	}
	return -x
}

var sortFuncs = map[string]SortFunc{
	"area":      SortArea,
	"perimeter": SortPerimeter,
	"diff":      SortDiff,
	"minside":   SortMinSide,
	"maxside":   SortMaxSide,
	"id":        SortID,
}

// ParseSortFunc 按名称返回排序函数。"none" 或空字符串返回 nil，表示保持输入顺序。
func ParseSortFunc(name string) (SortFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "none" {
		return nil, nil
	}
	if fn, ok := sortFuncs[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown sort order %q", name)
}
