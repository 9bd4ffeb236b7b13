package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit        = 1000
	defaultCompanyLimit = 99
)

// parsePagination reads skip (alias offset) and limit from the query.
// Absent parameters take their defaults; present ones must be
// non-negative integers. limit=0 is passed through.
func parsePagination(c *gin.Context, fallbackLimit int) (domain.Pagination, error) {
	page := domain.Pagination{Skip: 0, Limit: fallbackLimit}

	skipName := "skip"
	rawSkip, ok := c.GetQuery(skipName)
	if !ok {
		skipName = "offset"
		rawSkip, ok = c.GetQuery(skipName)
	}
	if ok {
		n, err := parseNonNegative(skipName, rawSkip)
		if err != nil {
			return page, err
		}
		page.Skip = n
	}

	if rawLimit, ok := c.GetQuery("limit"); ok {
		n, err := parseNonNegative("limit", rawLimit)
		if err != nil {
			return page, err
		}
		page.Limit = n
	}

	return page, nil
}

func parseNonNegative(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		e := apperror.New(http.StatusBadRequest, "Invalid Pagination",
			fmt.Sprintf("The parameter '%s' must be a non-negative integer, got '%s'.", name, raw), err)
		e.Details = []validation.FieldError{{Field: name, Message: "must be a non-negative integer"}}
		return 0, e
	}
	return n, nil
}
