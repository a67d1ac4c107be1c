package api

import (
	"net/http"
	"strconv"

	"catalog-service/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// parseListParams reads the shared pagination query parameters. pageIndex is
// zero-based and defaults to 0; pageSize defaults to 10 and is clamped to
// 100 to keep result sets bounded.
func parseListParams(r *http.Request) store.ListParams {
	query := r.URL.Query()

	pageIndex, _ := strconv.Atoi(query.Get("pageIndex"))
	if pageIndex < 0 {
		pageIndex = 0
	}
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if pageSize <= 0 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return store.ListParams{PageIndex: pageIndex, PageSize: pageSize}
}
