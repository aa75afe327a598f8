package models

// Pagination — окно выборки. Limit == nil означает "без ограничения".
type Pagination struct {
	Limit  *int
	Offset int
}
