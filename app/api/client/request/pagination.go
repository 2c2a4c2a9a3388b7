package request

import (
	"strings"

	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
)

type SortBy string

const (
	ASC  SortBy = "ASC"
	DESC SortBy = "DESC"
)

type PaginationRequest struct {
	Page    int    `json:"page" query:"page" form:"page" validate:"omitempty,min=1"`
	Size    int    `json:"size" query:"size" form:"size" validate:"omitempty,min=1,max=100"`
	SortBy  SortBy `json:"sort_by" query:"sort_by" form:"sort_by"`
	OrderBy string `json:"order_by" query:"order_by" form:"order_by"`
}

func (p *PaginationRequest) LoadDefaultValues(desireSize ...int) {
	if p.Page < 1 {
		p.Page = 1
	}

	size := 10
	if len(desireSize) > 0 && desireSize[0] > 0 {
		size = desireSize[0]
	}

	if p.Size < 1 {
		p.Size = size
	}

	if p.SortBy == "" {
		p.SortBy = DESC
	}
	if p.OrderBy == "" {
		p.OrderBy = "created_at"
	}
}

// ToPage converts the request into repository paging. OrderBy must be one of
// sortable, otherwise the first entry is used; an empty sortable leaves the
// ordering to the repository.
func (p PaginationRequest) ToPage(sortable ...string) pagingUtil.Page {
	p.LoadDefaultValues()

	sortBy := pagingUtil.DESC
	if strings.EqualFold(string(p.SortBy), string(ASC)) {
		sortBy = pagingUtil.ASC
	}

	orderBy := ""
	if len(sortable) > 0 {
		orderBy = sortable[0]
		for _, column := range sortable {
			if column == p.OrderBy {
				orderBy = column
				break
			}
		}
	}

	return pagingUtil.Page{
		Limit:   p.Size,
		Offset:  (p.Page - 1) * p.Size,
		SortBy:  sortBy,
		OrderBy: orderBy,
	}
}
