package dto

import "strings"

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams controls ordering and paging of a repository read. A zero value
// returns every matching row in storage order.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// OrderBy renders the ORDER BY clause, or an empty string when no sort is requested.
// SortBy may list several comma separated columns; SortDir applies to each of them.
func (q QueryParams) OrderBy() string {
	if q.SortBy == "" {
		return ""
	}

	dir := SortDirAsc
	if q.SortDir == SortDirDesc {
		dir = SortDirDesc
	}

	columns := []string{}

	for _, part := range strings.Split(q.SortBy, ",") {
		if col := strings.TrimSpace(part); col != "" {
			columns = append(columns, col+" "+dir)
		}
	}

	return "ORDER BY " + strings.Join(columns, ", ")
}
