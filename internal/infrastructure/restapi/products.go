package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos contra /productos.
type ProductRepo struct {
	*resource[productoWire, entity.Product, int64]
}

// NewProductRepo construye el repositorio de productos.
func NewProductRepo(c *Client) *ProductRepo {
	return &ProductRepo{newResource[productoWire, entity.Product, int64](c, "productos", (*productoWire).toEntity, productoFromEntity, "productos")}
}

// AdjustStock PUT /productos/{id}/stock {cantidad, operacion}.
func (r *ProductRepo) AdjustStock(ctx context.Context, token string, id int64, qty int, op entity.StockOperation) (*entity.Product, error) {
	body := map[string]interface{}{"cantidad": qty, "operacion": string(op)}
	return r.send(ctx, http.MethodPut, fmt.Sprintf("productos/%d/stock", id), token, body, nil)
}

// SetActive PUT /productos/{id}/estado {estado}.
func (r *ProductRepo) SetActive(ctx context.Context, token string, id int64, active bool) (*entity.Product, error) {
	body := map[string]bool{"estado": active}
	return r.send(ctx, http.MethodPut, fmt.Sprintf("productos/%d/estado", id), token, body, nil)
}
