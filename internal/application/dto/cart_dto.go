package dto

import "github.com/shopspring/decimal"

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Note        string          `json:"note,omitempty"`
}

// TotalsResponse subtotal, propina sugerida y total, con sus textos formateados.
type TotalsResponse struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	TipPercent        int             `json:"tip_percent"`
	Tip               decimal.Decimal `json:"tip"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	SubtotalDisplay   string          `json:"subtotal_display"`
	TipDisplay        string          `json:"tip_display"`
	GrandTotalDisplay string          `json:"grand_total_display"`
}

// CartResponse carrito de una mesa.
type CartResponse struct {
	TableID  int64              `json:"table_id"`
	Lines    []CartLineResponse `json:"lines"`
	Totals   TotalsResponse     `json:"totals"`
	Warnings []string           `json:"warnings,omitempty"`
}

// AddCartItemRequest agrega un producto al carrito.
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// UpdateCartItemRequest modifica una línea: Action = increase | decrease, o Quantity/Note explícitos.
type UpdateCartItemRequest struct {
	Action   string  `json:"action"`
	Quantity *int    `json:"quantity"`
	Note     *string `json:"note"`
}

// SubmitOrderRequest envío del carrito como comanda. CookID es opcional.
type SubmitOrderRequest struct {
	CookID   string `json:"cook_id"`
	CookName string `json:"cook_name"`
}

// BillResponse cuenta de la mesa.
type BillResponse struct {
	Table           TableResponse   `json:"table"`
	Orders          []OrderResponse `json:"orders"`
	Totals          TotalsResponse  `json:"totals"`
	CanClose        bool            `json:"can_close"`
	PendingOrderIDs []int64         `json:"pending_order_ids,omitempty"`
	Message         string          `json:"message,omitempty"`
}
