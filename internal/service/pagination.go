package service

import "job-board/internal/repository"

// Page 是分页查询的结果。页码越界时 Items 为空，但 Total / Pages 仍然准确。
type Page[T any] struct {
	Items   []T
	Total   int64
	Pages   int
	Page    int
	PerPage int
}

func newPage[T any](items []T, total int64, req repository.PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:   items,
		Total:   total,
		Pages:   req.Pages(total),
		Page:    req.Page,
		PerPage: req.PerPage,
	}
}
