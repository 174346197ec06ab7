package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_RowWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		p          Pagination
		total      int
		wantPages  int
		wantStart  int
		wantEnd    int
		wantOffset int
	}{
		{
			name:       "last partial page",
			p:          Pagination{PageSize: 1000, Page: 4},
			total:      4200,
			wantPages:  5,
			wantStart:  4001,
			wantEnd:    4200,
			wantOffset: 4000,
		},
		{
			name:       "first page",
			p:          Pagination{PageSize: 100, Page: 0},
			total:      250,
			wantPages:  3,
			wantStart:  1,
			wantEnd:    100,
			wantOffset: 0,
		},
		{
			name:       "exact multiple",
			p:          Pagination{PageSize: 100, Page: 1},
			total:      200,
			wantPages:  2,
			wantStart:  101,
			wantEnd:    200,
			wantOffset: 100,
		},
		{
			name:      "empty result",
			p:         Pagination{PageSize: 100, Page: 0},
			total:     0,
			wantPages: 0,
		},
		{
			name:       "page beyond total clamps to total",
			p:          Pagination{PageSize: 100, Page: 9},
			total:      42,
			wantPages:  1,
			wantStart:  42,
			wantEnd:    42,
			wantOffset: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantPages, tt.p.TotalPages(tt.total))
			assert.Equal(t, tt.wantStart, tt.p.StartRow(tt.total))
			assert.Equal(t, tt.wantEnd, tt.p.EndRow(tt.total))
			assert.Equal(t, tt.wantOffset, tt.p.Offset())
		})
	}
}
