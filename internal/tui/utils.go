// Copyright (c) 2026 nrbf-go Authors

package tui

//////////////////////////////////////////////////////////////////////////////

func maxInt[I int | uint | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64](a, b I) I {
	if a > b {
		return a
	}
	return b
}
