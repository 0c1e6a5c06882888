package domain

// Page is the paginated envelope returned by the backend list endpoints.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalPages       int   `json:"totalPages"`
	TotalElements    int64 `json:"totalElements"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// PageRequest selects a page of a list endpoint. Sort uses the backend's
// "field,direction" form.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// WithDefaults fills unset fields; sort is the per-entity default ordering.
func (p PageRequest) WithDefaults(sort string) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Sort == "" {
		p.Sort = sort
	}
	return p
}
