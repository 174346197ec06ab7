package domain

// DefaultPageSize is the page size when none is configured.
const DefaultPageSize = 100

// PageSizes are the selectable page sizes for the log grids.
var PageSizes = []int{100, 250, 500, 1000}

// Pagination tracks the page state of one logical table. Page is zero-based.
// An out-of-range page is not corrected here; the server returns zero rows
// and the real total, so the footer self-corrects on the next mutation.
type Pagination struct {
	PageSize int
	Page     int
}

// Offset returns the row offset sent to the server.
func (p Pagination) Offset() int {
	return p.Page * p.PageSize
}

// TotalPages returns ceil(total / PageSize), at least 1 page when total > 0.
func (p Pagination) TotalPages(total int) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// StartRow returns the 1-based index of the first row on the current page,
// clamped so it never exceeds total.
func (p Pagination) StartRow(total int) int {
	if total <= 0 {
		return 0
	}
	start := p.Page*p.PageSize + 1
	if start > total {
		return total
	}
	return start
}

// EndRow returns the 1-based index of the last row on the current page.
func (p Pagination) EndRow(total int) int {
	if total <= 0 {
		return 0
	}
	end := (p.Page + 1) * p.PageSize
	if end > total {
		return total
	}
	return end
}
