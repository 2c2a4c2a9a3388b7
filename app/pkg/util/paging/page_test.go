package pagingUtil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

func TestLoadDefault(t *testing.T) {
	tests := []struct {
		name string
		in   pagingUtil.Page
		want pagingUtil.Page
	}{
		{
			name: "empty",
			want: pagingUtil.Page{Limit: pagingUtil.DefaultLimit, SortBy: pagingUtil.ASC, OrderBy: "id"},
		},
		{
			name: "clamped",
			in:   pagingUtil.Page{Limit: 10_000, Offset: -5, SortBy: pagingUtil.DESC, OrderBy: "filed_date"},
			want: pagingUtil.Page{Limit: pagingUtil.MaxLimit, SortBy: pagingUtil.DESC, OrderBy: "filed_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := tt.in
			page.LoadDefault()
			assert.Equal(t, tt.want, page)
		})
	}
}

func TestOrDefaultKeepsCallerOrdering(t *testing.T) {
	page := pagingUtil.Page{OrderBy: "amount", SortBy: pagingUtil.ASC}
	assert.Equal(t, page, page.OrDefault("filed_date", pagingUtil.DESC))

	open := pagingUtil.Page{Limit: 5}.OrDefault("filed_date", pagingUtil.DESC)
	assert.Equal(t, "filed_date", open.OrderBy)
	assert.Equal(t, pagingUtil.DESC, open.SortBy)
}

func TestColumn(t *testing.T) {
	page := pagingUtil.Page{OrderBy: "filed_date"}
	assert.Equal(t, "c.filed_date", page.Column("c"))
	assert.Equal(t, "filed_date", page.Column(""))

	page.OrderBy = "p.name"
	assert.Equal(t, "p.name", page.Column("c"))
}
