package entity

type PaginationInput struct {
	Limit  int
	Offset int
}

func NewPaginationInput(limit int, offset int) *PaginationInput {
	return &PaginationInput{
		Limit:  limit,
		Offset: offset,
	}
}

type SortInput struct {
	By    string // column to sort on: "created_at" or "budget"
	Order string // "asc" or "desc"
}

func NewSortInput(by string, order string) *SortInput {
	return &SortInput{
		By:    by,
		Order: order,
	}
}
