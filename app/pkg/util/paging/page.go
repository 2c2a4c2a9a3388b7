package pagingUtil

import "strings"

type SortBy string

const (
	ASC  SortBy = "ASC"
	DESC SortBy = "DESC"

	DefaultLimit = 100
	MaxLimit     = 500
)

// Page is an offset window over rows ordered by a single column.
type Page struct {
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	SortBy  SortBy `json:"sort_by"`
	OrderBy string `json:"order_by"`
}

func (p *Page) LoadDefault() {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.SortBy == "" {
		p.SortBy = ASC
	}
	if p.OrderBy == "" {
		p.OrderBy = "id"
	}
}

// OrDefault fills in the ordering a repository prefers when the caller left
// it open.
func (p Page) OrDefault(orderBy string, sortBy SortBy) Page {
	if p.OrderBy == "" {
		p.OrderBy = orderBy
		p.SortBy = sortBy
	}
	return p
}

// Column returns OrderBy prefixed with alias unless it is already qualified.
func (p Page) Column(alias string) string {
	if alias == "" || strings.Contains(p.OrderBy, ".") {
		return p.OrderBy
	}
	return alias + "." + p.OrderBy
}
