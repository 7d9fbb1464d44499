package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProductQueryHandler reads one catalog entry.
type GetProductQueryHandler struct {
	db *gorm.DB
}

// NewGetProductQueryHandler creates a handler for single product reads.
func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFound for an unknown id.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			brand,
			price,
			stock
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Row()

	var (
		item ProductResponse
		id   uuid.UUID
	)

	err := row.Scan(&id, &item.Name, &item.Brand, &item.Price, &item.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductResponse{}, errs.NewObjectNotFoundError("product", query.ProductID())
	}
	if err != nil {
		return ProductResponse{}, err
	}

	if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ProductResponse{}, err
	}

	return item, nil
}
