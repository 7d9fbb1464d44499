package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetProductsQueryIsNotConstructed = errors.New(
	"GetProductsQuery must be created via NewGetProductsQuery constructor",
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// GetProductsQuery retrieves a page of the catalog, optionally filtered
// by a keyword matched against product names. The query is public; no
// actor is involved.
type GetProductsQuery struct { //nolint:recvcheck //using for validation
	keyword  string
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetProductsQuery creates a catalog listing query. A page below 1
// becomes 1 and a page size outside [1, 50] becomes the default of 10,
// so sloppy query strings never fail a public listing.
func NewGetProductsQuery(keyword string, page, pageSize int) GetProductsQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return GetProductsQuery{
		keyword:  strings.TrimSpace(keyword),
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProductsQueryIsNotConstructed if validation fails.
func (q GetProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductsQueryIsNotConstructed)
}

// Keyword returns the name filter, possibly empty.
func (q GetProductsQuery) Keyword() string {
	return q.keyword
}

// Page returns the 1-based page number.
func (q GetProductsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetProductsQuery) PageSize() int {
	return q.pageSize
}

// ProductResponse is one catalog entry read model.
type ProductResponse struct {
	ID    kernel.UUID
	Name  string
	Brand string
	Price string
	Stock int
}

// GetProductsQueryResponse is one page of the catalog listing.
type GetProductsQueryResponse struct {
	Items []ProductResponse
	Page  int
	Pages int
	Total int64
}
