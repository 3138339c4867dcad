package rectpack

import "errors"

// 以下错误表示调用方违反了前置条件，与放置失败（哨兵矩形）不同，不应被重试。
var (
	ErrInvalidBinSize   = errors.New("rectpack: bin width and height must be greater than 0")
	ErrInvalidSize      = errors.New("rectpack: rectangle width and height must be greater than 0")
	ErrNotInitialized   = errors.New("rectpack: bin used before Init")
	ErrUnknownHeuristic = errors.New("rectpack: unknown heuristic")
)
