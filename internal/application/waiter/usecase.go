// Package waiter casos de uso del mesero: tablero, mesas, carrito, envío de comandas y cuenta.
package waiter

import (
	"context"
	"time"

	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// Deps dependencias del caso de uso del mesero. Events, PDF y Compensations pueden ser nil.
type Deps struct {
	Tables        repository.TableRepository
	Orders        repository.OrderRepository
	Products      repository.ProductRepository
	Categories    repository.CategoryRepository
	Carts         repository.CartRepository
	Compensations repository.CompensationRepository
	Events        ports.EventPublisher
	PDF           ports.BillPDFGenerator
	TipPercent    int
	Log           *logger.Logger
}

// WaiterUseCase operaciones del rol MESERO.
type WaiterUseCase struct {
	tables        repository.TableRepository
	orders        repository.OrderRepository
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	carts         repository.CartRepository
	compensations repository.CompensationRepository
	events        ports.EventPublisher
	pdf           ports.BillPDFGenerator
	tipPercent    int
	log           *logger.Logger
	now           func() time.Time
}

// NewWaiterUseCase construye el caso de uso.
func NewWaiterUseCase(d Deps) *WaiterUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	tip := d.TipPercent
	if tip < 0 {
		tip = billing.DefaultTipPercent
	}
	return &WaiterUseCase{
		tables:        d.Tables,
		orders:        d.Orders,
		products:      d.Products,
		categories:    d.Categories,
		carts:         d.Carts,
		compensations: d.Compensations,
		events:        d.Events,
		pdf:           d.PDF,
		tipPercent:    tip,
		log:           log.Named("mesero"),
		now:           time.Now,
	}
}

// TipPercent propina sugerida configurada.
func (uc *WaiterUseCase) TipPercent() int { return uc.tipPercent }

func (uc *WaiterUseCase) publish(ctx context.Context, subject string, payload interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, subject, payload); err != nil {
		uc.log.Warn().Err(err).Str("subject", subject).Msg("no se pudo publicar el evento")
	}
}
