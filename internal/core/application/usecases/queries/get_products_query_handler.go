package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProductsQueryHandler serves the public catalog listing with keyword
// search and pagination.
type GetProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetProductsQueryHandler creates a handler for catalog listings.
func NewGetProductsQueryHandler(db *gorm.DB) GetProductsQueryHandler {
	return GetProductsQueryHandler{db: db}
}

// Handle executes the query. The keyword matches product names case
// insensitively; an empty keyword lists the whole catalog.
func (h GetProductsQueryHandler) Handle(
	ctx context.Context,
	query GetProductsQuery,
) (GetProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductsQueryResponse{}, err
	}

	pattern := "%" + query.Keyword() + "%"

	var total int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*) FROM products WHERE name ILIKE ?
	`, pattern).Scan(&total).Error
	if err != nil {
		return GetProductsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			brand,
			price,
			stock
		FROM products
		WHERE name ILIKE ?
		ORDER BY name, id
		LIMIT ? OFFSET ?
	`, pattern, query.PageSize(), (query.Page()-1)*query.PageSize()).Rows()
	if err != nil {
		return GetProductsQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]ProductResponse, 0, query.PageSize())
	for rows.Next() {
		var (
			item ProductResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &item.Name, &item.Brand, &item.Price, &item.Stock); err != nil {
			return GetProductsQueryResponse{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetProductsQueryResponse{}, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return GetProductsQueryResponse{}, err
	}

	pages := int((total + int64(query.PageSize()) - 1) / int64(query.PageSize()))
	if pages < 1 {
		pages = 1
	}

	return GetProductsQueryResponse{
		Items: items,
		Page:  query.Page(),
		Pages: pages,
		Total: total,
	}, nil
}
