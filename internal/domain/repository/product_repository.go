package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// ProductRepository puerto para productos (/productos).
type ProductRepository interface {
	Resource[entity.Product, int64]
	AdjustStock(ctx context.Context, token string, id int64, qty int, op entity.StockOperation) (*entity.Product, error)
	SetActive(ctx context.Context, token string, id int64, active bool) (*entity.Product, error)
}
