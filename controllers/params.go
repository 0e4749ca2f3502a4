package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-inventory-sales/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// pageParams reads page/limit query parameters, falling back to the defaults
// when they are missing or out of range.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}

// idParam parses a positive integer path parameter, responding 400 itself on
// failure.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// likePattern builds the case-insensitive substring pattern used with
// LOWER(col) LIKE ?.
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// dateRange applies start_date/end_date filters on column, responding 400
// itself when a date is malformed.
func dateRange(c *gin.Context, q *gorm.DB, column string) (*gorm.DB, bool) {
	if s := c.Query("start_date"); s != "" {
		t, err := utils.ParseStartDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, use YYYY-MM-DD"})
			return nil, false
		}
		q = q.Where(column+" >= ?", t)
	}
	if s := c.Query("end_date"); s != "" {
		t, err := utils.ParseEndDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, use YYYY-MM-DD"})
			return nil, false
		}
		q = q.Where(column+" <= ?", t)
	}
	return q, true
}

// requestError carries the HTTP status of a failure raised inside a
// transaction body so the handler can unpack it after rollback.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func failNotFound(message string) error {
	return &requestError{status: http.StatusNotFound, message: message}
}

func failBadRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// abortWithError maps an error to its client response. Unclassified errors
// surface as 500 with no translation.
func abortWithError(c *gin.Context, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.status, gin.H{"error": reqErr.message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, for writes that race past the handler's pre-checks.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
