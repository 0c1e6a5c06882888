package dto

import "github.com/spec-kit/hospital-console/internal/domain"

// PageQuery binds the paging query parameters of list routes.
type PageQuery struct {
	Page int    `query:"page" validate:"gte=0"`
	Size int    `query:"size" validate:"gte=0,lte=100"`
	Sort string `query:"sort" validate:"omitempty,max=64"`
}

func (q PageQuery) Request() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, Size: q.Size, Sort: q.Sort}
}

// PageMeta is the paging part of a list response.
type PageMeta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"total_pages"`
	TotalElements int64 `json:"total_elements"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// PageResponse is the console envelope for backend pages.
type PageResponse[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewPageResponse[T any](page domain.Page[T]) PageResponse[T] {
	items := page.Content
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Data: items,
		Meta: PageMeta{
			Page:          page.Number,
			Size:          page.Size,
			TotalPages:    page.TotalPages,
			TotalElements: page.TotalElements,
			First:         page.First,
			Last:          page.Last,
		},
	}
}

// DashboardResponse is rendered on the home route.
type DashboardResponse struct {
	User  *IdentityResponse `json:"user"`
	Stats domain.Dashboard  `json:"stats"`
}
