package domain

// Department is a hospital unit patients are admitted to.
type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
