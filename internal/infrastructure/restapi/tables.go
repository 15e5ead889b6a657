package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo mesas contra /mesas.
type TableRepo struct {
	*resource[mesaWire, entity.Table, int64]
}

// NewTableRepo construye el repositorio de mesas.
func NewTableRepo(c *Client) *TableRepo {
	return &TableRepo{newResource[mesaWire, entity.Table, int64](c, "mesas", (*mesaWire).toEntity, mesaFromEntity, "mesas")}
}

// ListAvailable GET /mesas/disponibles.
func (r *TableRepo) ListAvailable(ctx context.Context, token string) ([]*entity.Table, error) {
	return r.listAt(ctx, token, "mesas/disponibles")
}

// ListOccupied GET /mesas/ocupadas.
func (r *TableRepo) ListOccupied(ctx context.Context, token string) ([]*entity.Table, error) {
	return r.listAt(ctx, token, "mesas/ocupadas")
}

// SetStatus PATCH /mesas/{id}/estado {estadoId}.
func (r *TableRepo) SetStatus(ctx context.Context, token string, id int64, status entity.TableStatus) error {
	body := map[string]int{"estadoId": status.Code()}
	return r.c.do(ctx, http.MethodPatch, fmt.Sprintf("mesas/%d/estado", id), token, body, nil)
}
