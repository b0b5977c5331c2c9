package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/table"
	"github.com/qcdash/qc-dashboard/services/api/views"
)

// parseTableQuery reads the table state from the query string:
// q, status, filter[col], sort=col,-col, page, pageSize, hidden, selected.
func parseTableQuery(c *gin.Context) (views.Query, error) {
	q := views.Query{
		Search:   c.Query("q"),
		Status:   strings.TrimSpace(c.Query("status")),
		Filters:  c.QueryMap("filter"),
		Sort:     views.ParseSort(c.Query("sort")),
		Hidden:   views.SplitList(c.Query("hidden")),
		Selected: views.SplitList(c.Query("selected")),
	}

	switch q.Status {
	case "", table.AllOption, "true", "false":
	default:
		return q, &model.ValidationError{Message: fmt.Sprintf("invalid status %q", q.Status)}
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return q, &model.ValidationError{Message: "invalid page"}
		}
		q.Page = page
	}
	if v := c.Query("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return q, &model.ValidationError{Message: "invalid pageSize"}
		}
		q.PageSize = size
	}
	return q, nil
}

func tableMeta(pageSizes []int, toggleable []string, status string, options []table.Option) gin.H {
	meta := gin.H{
		"pageSizes":         pageSizes,
		"toggleableColumns": toggleable,
	}
	if options != nil {
		meta["status"] = status
		meta["statusOptions"] = options
	}
	return meta
}
