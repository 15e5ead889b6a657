package usecase

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// Casos de uso de administración por recurso.
type (
	TableUseCase     = ResourceUseCase[entity.Table, int64, dto.TableRequest, dto.TableResponse]
	CategoryUseCase  = ResourceUseCase[entity.Category, int64, dto.CategoryRequest, dto.CategoryResponse]
	StateUseCase     = ResourceUseCase[entity.State, int64, dto.StateRequest, dto.StateResponse]
	RoleUseCase      = ResourceUseCase[entity.Role, int64, dto.RoleRequest, dto.RoleResponse]
	PhoneUseCase     = ResourceUseCase[entity.Phone, int64, dto.PhoneRequest, dto.PhoneResponse]
	OrderUseCase     = ResourceUseCase[entity.Order, int64, dto.OrderRequest, dto.OrderResponse]
	OrderLineUseCase = ResourceUseCase[entity.OrderLine, int64, dto.OrderLineRequest, dto.OrderLineResponse]
)

// CatalogRepos repositorios de los recursos administrables.
type CatalogRepos struct {
	Tables     repository.TableRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	States     repository.StateRepository
	Roles      repository.RoleRepository
	Phones     repository.PhoneRepository
	Users      repository.UserRepository
	Orders     repository.OrderRepository
	OrderLines repository.OrderLineRepository
}

// CatalogUseCase CRUD de los nueve recursos del backend para el administrador.
type CatalogUseCase struct {
	Tables     *TableUseCase
	Categories *CategoryUseCase
	Products   *ProductUseCase
	States     *StateUseCase
	Roles      *RoleUseCase
	Phones     *PhoneUseCase
	Users      *UserUseCase
	Orders     *OrderUseCase
	OrderLines *OrderLineUseCase
}

// NewCatalogUseCase construye los casos de uso de cada recurso.
func NewCatalogUseCase(r CatalogRepos, log *logger.Logger) *CatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("admin")
	return &CatalogUseCase{
		Tables:     NewResourceUseCase("mesa", repository.Resource[entity.Table, int64](r.Tables), tableFromRequest, dto.FromTable, log),
		Categories: NewResourceUseCase("categoria", repository.Resource[entity.Category, int64](r.Categories), categoryFromRequest, dto.FromCategory, log),
		Products:   NewProductUseCase(r.Products, log),
		States:     NewResourceUseCase("estado", repository.Resource[entity.State, int64](r.States), stateFromRequest, dto.FromState, log),
		Roles:      NewResourceUseCase("rol", repository.Resource[entity.Role, int64](r.Roles), roleFromRequest, dto.FromRole, log),
		Phones:     NewResourceUseCase("telefono", repository.Resource[entity.Phone, int64](r.Phones), phoneFromRequest, dto.FromPhone, log),
		Users:      NewUserUseCase(r.Users, log),
		Orders:     NewResourceUseCase("comanda", repository.Resource[entity.Order, int64](r.Orders), orderFromRequest, dto.FromOrder, log),
		OrderLines: NewResourceUseCase("detalle", repository.Resource[entity.OrderLine, int64](r.OrderLines), orderLineFromRequest, toOrderLineResponse, log),
	}
}

func toOrderLineResponse(l *entity.OrderLine) dto.OrderLineResponse { return dto.FromOrderLine(*l) }

func tableFromRequest(in dto.TableRequest) (*entity.Table, error) {
	if in.Capacity < 0 {
		return nil, invalid("La capacidad no puede ser negativa")
	}
	status := entity.TableAvailable
	if strings.TrimSpace(in.Status) != "" {
		status = entity.ParseTableStatus(in.Status)
		if status == entity.TableUnknown {
			return nil, invalid("Estado de mesa no válido")
		}
	}
	return &entity.Table{Label: strings.TrimSpace(in.Label), Capacity: in.Capacity, Status: status}, nil
}

func categoryFromRequest(in dto.CategoryRequest) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("El nombre de la categoría es obligatorio")
	}
	return &entity.Category{Name: name, Description: strings.TrimSpace(in.Description)}, nil
}

func stateFromRequest(in dto.StateRequest) (*entity.State, error) {
	name := strings.ToUpper(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, invalid("El nombre del estado es obligatorio")
	}
	return &entity.State{Name: name}, nil
}

func roleFromRequest(in dto.RoleRequest) (*entity.Role, error) {
	name := entity.NormalizeRole(in.Name)
	if name == "" {
		return nil, invalid("El nombre del rol es obligatorio")
	}
	return &entity.Role{Name: name}, nil
}

func phoneFromRequest(in dto.PhoneRequest) (*entity.Phone, error) {
	number := strings.TrimSpace(in.Number)
	if number == "" {
		return nil, invalid("El número es obligatorio")
	}
	for _, r := range number {
		if (r < '0' || r > '9') && r != '+' && r != ' ' && r != '-' {
			return nil, invalid("El número solo puede tener dígitos, espacios, '+' y '-'")
		}
	}
	return &entity.Phone{Number: number}, nil
}

func orderFromRequest(in dto.OrderRequest) (*entity.Order, error) {
	if in.TableID <= 0 {
		return nil, invalid("La mesa es obligatoria")
	}
	status := entity.OrderPending
	if strings.TrimSpace(in.Status) != "" {
		status = entity.ParseOrderStatus(in.Status)
		if status == entity.OrderUnknown {
			return nil, invalid("Estado de comanda no válido")
		}
	}
	return &entity.Order{
		TableID:  in.TableID,
		WaiterID: strings.TrimSpace(in.WaiterID),
		CookID:   strings.TrimSpace(in.CookID),
		Status:   status,
	}, nil
}

func orderLineFromRequest(in dto.OrderLineRequest) (*entity.OrderLine, error) {
	switch {
	case in.OrderID <= 0:
		return nil, invalid("La comanda es obligatoria")
	case in.ProductID <= 0:
		return nil, invalid("El producto es obligatorio")
	case in.Quantity < 1:
		return nil, invalid("La cantidad debe ser al menos 1")
	case in.UnitPrice.IsNegative():
		return nil, invalid("El precio no puede ser negativo")
	}
	return &entity.OrderLine{
		OrderID:   in.OrderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Subtotal:  in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
	}, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
