package utils

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page normalises 1-based page and page_size query values.
func Page(pageStr, sizeStr string) (page, size int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func Offset(page, size int) int {
	return (page - 1) * size
}
