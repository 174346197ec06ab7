package domain

// SortOrder is a sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// SortSpec is the sort state of one logical table.
type SortSpec struct {
	Field string
	Order SortOrder
}
