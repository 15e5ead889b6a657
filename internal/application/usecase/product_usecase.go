package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// ProductUseCase CRUD de productos más ajuste de stock y activación.
type ProductUseCase struct {
	*ResourceUseCase[entity.Product, int64, dto.ProductRequest, dto.ProductResponse]
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		ResourceUseCase: NewResourceUseCase("producto", repository.Resource[entity.Product, int64](repo), productFromRequest, dto.FromProduct, log),
		repo:            repo,
		log:             log,
	}
}

// AdjustStock aumenta o reduce el stock. La cantidad debe ser positiva.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, s *entity.Session, id int64, in dto.StockRequest) (*dto.ProductResponse, error) {
	op := entity.StockOperation(strings.ToLower(strings.TrimSpace(in.Operation)))
	if !op.Valid() {
		return nil, invalid("Operación de stock no válida (aumentar o reducir)")
	}
	if in.Quantity < 1 {
		return nil, invalid("La cantidad debe ser al menos 1")
	}
	p, err := uc.repo.AdjustStock(ctx, s.BearerToken(), id, in.Quantity, op)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", id).Str("op", string(op)).Int("qty", in.Quantity).Msg("stock ajustado")
	out := dto.FromProduct(p)
	return &out, nil
}

// Toggle invierte el estado activo del producto.
func (uc *ProductUseCase) Toggle(ctx context.Context, s *entity.Session, id int64) (*dto.ProductResponse, error) {
	current, err := uc.repo.GetByID(ctx, s.BearerToken(), id)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.SetActive(ctx, s.BearerToken(), id, !current.Active)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("product_id", id).Bool("active", p.Active).Msg("estado de producto cambiado")
	out := dto.FromProduct(p)
	return &out, nil
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, invalid("El nombre del producto es obligatorio")
	case in.Price.IsNegative():
		return nil, invalid("El precio no puede ser negativo")
	case in.Stock < 0:
		return nil, invalid("El stock no puede ser negativo")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &entity.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		Active:      active,
		CategoryID:  in.CategoryID,
	}, nil
}
