package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TableRequest alta o edición de mesa. Status acepta código o nombre.
type TableRequest struct {
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}

// TableResponse mesa con su estado canónico.
type TableResponse struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Capacity   int    `json:"capacity"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
}

// ChangeTableStatusRequest cambio de estado de mesa desde el tablero del mesero.
type ChangeTableStatusRequest struct {
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}

// OrderLineResponse línea de comanda.
type OrderLineResponse struct {
	ID          int64           `json:"id,omitempty"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Note        string          `json:"note,omitempty"`
}

// OrderResponse comanda. Total es el derivado de las líneas cuando hay líneas.
type OrderResponse struct {
	ID           int64               `json:"id"`
	TableID      int64               `json:"table_id"`
	TableLabel   string              `json:"table_label"`
	WaiterID     string              `json:"waiter_id"`
	WaiterName   string              `json:"waiter_name,omitempty"`
	CookID       string              `json:"cook_id,omitempty"`
	CookName     string              `json:"cook_name,omitempty"`
	StatusCode   int                 `json:"status_code"`
	Status       string              `json:"status"`
	CreatedAt    *time.Time          `json:"created_at,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	TotalDisplay string              `json:"total_display"`
	ItemCount    int                 `json:"item_count"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	CanStart     bool                `json:"can_start"`
	CanMarkReady bool                `json:"can_mark_ready"`
}

// OrderRequest edición administrativa de una comanda.
type OrderRequest struct {
	TableID  int64  `json:"table_id"`
	WaiterID string `json:"waiter_id"`
	CookID   string `json:"cook_id"`
	Status   string `json:"status"`
}

// OrderLineRequest alta o edición administrativa de un detalle de comanda.
type OrderLineRequest struct {
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderFilter filtro de listados de comandas por estado y texto (mesa, mesero o id).
type OrderFilter struct {
	Status string `query:"status"`
	Search string `query:"q"`
}

// ConfirmRequest confirmación explícita de una acción.
type ConfirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

// ActionResponse resultado de una acción sobre comanda o mesa.
type ActionResponse struct {
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
	Table   *TableResponse `json:"table,omitempty"`
}

// ConfirmationResponse la acción requiere confirmación; repetir con confirmed=true.
type ConfirmationResponse struct {
	Code    string `json:"code"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// PartialFailureResponse la operación quedó a medias en el backend.
type PartialFailureResponse struct {
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	FailedStep     string   `json:"failed_step"`
	CompletedSteps []string `json:"completed_steps"`
	PendingSteps   []string `json:"uncompensated_steps"`
}
