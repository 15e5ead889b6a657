package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// OrderRepository puerto para comandas (/comandas).
type OrderRepository interface {
	Resource[entity.Order, int64]
	ListMyActive(ctx context.Context, token string) ([]*entity.Order, error)
	ListMineByTable(ctx context.Context, token string, tableID int64) ([]*entity.Order, error)
	MyOrderLines(ctx context.Context, token string, orderID int64) ([]entity.OrderLine, error)
	ListPending(ctx context.Context, token string) ([]*entity.Order, error)
	ListPreparing(ctx context.Context, token string) ([]*entity.Order, error)
	ListToday(ctx context.Context, token string) ([]*entity.Order, error)
	SetStatus(ctx context.Context, token string, id int64, status entity.OrderStatus) error
	AssignCook(ctx context.Context, token string, id int64, cookID string) error
}

// OrderLineRepository puerto para detalles de comanda (/detalles-comanda).
type OrderLineRepository interface {
	Resource[entity.OrderLine, int64]
}
