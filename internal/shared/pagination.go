package shared

import (
	"errors"
	"strconv"
)

// ErrInvalidPagination signals non-numeric or non-positive page/limit
// query parameters. Handlers translate it into a 400.
var ErrInvalidPagination = errors.New("params page or limit are not valid")

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageParams is a parsed, validated page/limit pair.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams applies the 1/10 defaults when a parameter is absent
// and rejects non-numeric or non-positive values.
func ParsePageParams(pageStr, limitStr string) (PageParams, error) {
	p := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			return PageParams{}, ErrInvalidPagination
		}
		p.Page = page
	}
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return PageParams{}, ErrInvalidPagination
		}
		p.Limit = limit
	}
	return p, nil
}

// Offset is what the store skips: (page-1)*limit.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(totalItems / limit).
func (p PageParams) TotalPages(totalItems int64) int {
	if totalItems == 0 {
		return 0
	}
	return int((totalItems + int64(p.Limit) - 1) / int64(p.Limit))
}
