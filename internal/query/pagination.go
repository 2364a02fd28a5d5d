package query

import "strconv"

// PageSize is the fixed number of recipes per list page.
const PageSize = 60

// Plan holds the skip/limit derived from a 1-based page number.
type Plan struct {
	Page   int
	Offset int
	Limit  int
}

// PlanPage parses a raw page parameter. Non-numeric or sub-1 values
// coerce to page 1; an out-of-range page is not an error, it just yields
// an empty page downstream.
func PlanPage(raw string) Plan {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}
	return Plan{
		Page:   page,
		Offset: (page - 1) * PageSize,
		Limit:  PageSize,
	}
}

// Pagination is the envelope returned alongside every list page.
type Pagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	TotalRecipes    int64 `json:"totalRecipes"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// Paginate derives the envelope from the total count and the number of
// items actually returned for the current page. The flags stay
// consistent even when the page number exceeds totalPages.
func (p Plan) Paginate(total int64, returned int) Pagination {
	totalPages := int((total + PageSize - 1) / PageSize)
	return Pagination{
		CurrentPage:     p.Page,
		TotalPages:      totalPages,
		HasPreviousPage: p.Page > 1,
		TotalRecipes:    total,
		HasNextPage:     int64(p.Offset+returned) < total,
	}
}
