package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderLineRepository = (*OrderLineRepo)(nil)
)

// OrderRepo comandas contra /comandas.
type OrderRepo struct {
	*resource[comandaWire, entity.Order, int64]
	lines *resource[detalleWire, entity.OrderLine, int64]
}

// NewOrderRepo construye el repositorio de comandas.
func NewOrderRepo(c *Client) *OrderRepo {
	return &OrderRepo{
		resource: newResource[comandaWire, entity.Order, int64](c, "comandas", (*comandaWire).toEntity, comandaFromEntity, "comandas"),
		lines:    newResource[detalleWire, entity.OrderLine, int64](c, "detalles-comanda", (*detalleWire).toEntity, detalleFromEntity, "detalles"),
	}
}

// ListMyActive GET /comandas/mis-comandas-activas (comandas activas del mesero autenticado).
func (r *OrderRepo) ListMyActive(ctx context.Context, token string) ([]*entity.Order, error) {
	return r.listAt(ctx, token, "comandas/mis-comandas-activas")
}

// ListMineByTable GET /comandas/mesa/{id}/mis-comandas.
func (r *OrderRepo) ListMineByTable(ctx context.Context, token string, tableID int64) ([]*entity.Order, error) {
	return r.listAt(ctx, token, fmt.Sprintf("comandas/mesa/%d/mis-comandas", tableID))
}

// MyOrderLines GET /comandas/mis-comandas/{id}/detalles.
func (r *OrderRepo) MyOrderLines(ctx context.Context, token string, orderID int64) ([]entity.OrderLine, error) {
	lines, err := r.lines.listAt(ctx, token, fmt.Sprintf("comandas/mis-comandas/%d/detalles", orderID))
	if err != nil {
		return nil, err
	}
	out := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.OrderID == 0 {
			l.OrderID = orderID
		}
		out = append(out, *l)
	}
	return out, nil
}

// ListPending GET /comandas/pendientes.
func (r *OrderRepo) ListPending(ctx context.Context, token string) ([]*entity.Order, error) {
	return r.listAt(ctx, token, "comandas/pendientes")
}

// ListPreparing GET /comandas/preparacion.
func (r *OrderRepo) ListPreparing(ctx context.Context, token string) ([]*entity.Order, error) {
	return r.listAt(ctx, token, "comandas/preparacion")
}

// ListToday GET /comandas/hoy.
func (r *OrderRepo) ListToday(ctx context.Context, token string) ([]*entity.Order, error) {
	return r.listAt(ctx, token, "comandas/hoy")
}

// SetStatus PUT /comandas/{id}/estado {estado}.
func (r *OrderRepo) SetStatus(ctx context.Context, token string, id int64, status entity.OrderStatus) error {
	body := map[string]int{"estado": status.Code()}
	return r.c.do(ctx, http.MethodPut, fmt.Sprintf("comandas/%d/estado", id), token, body, nil)
}

// AssignCook PUT /comandas/{id}/cocinero {id_cocinero}.
func (r *OrderRepo) AssignCook(ctx context.Context, token string, id int64, cookID string) error {
	body := map[string]string{"id_cocinero": cookID}
	return r.c.do(ctx, http.MethodPut, fmt.Sprintf("comandas/%d/cocinero", id), token, body, nil)
}

// OrderLineRepo detalles de comanda contra /detalles-comanda.
type OrderLineRepo struct {
	*resource[detalleWire, entity.OrderLine, int64]
}

// NewOrderLineRepo construye el repositorio de detalles.
func NewOrderLineRepo(c *Client) *OrderLineRepo {
	return &OrderLineRepo{newResource[detalleWire, entity.OrderLine, int64](c, "detalles-comanda", (*detalleWire).toEntity, detalleFromEntity, "detalles")}
}
