// Package event define los eventos de comandas y mesas que el BFF publica en NATS.
package event

import "time"

// Sufijos de subject; el prefijo se configura con NATS_SUBJECT_PREFIX.
const (
	SubjectOrderSubmitted = "comanda.enviada"
	SubjectOrderPreparing = "comanda.preparacion"
	SubjectOrderReady     = "comanda.lista"
	SubjectTableClosed    = "mesa.cerrada"
)

// OrderEvent cambio de estado de una comanda, para pantallas de cocina y sala.
type OrderEvent struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	OrderID    int64       `json:"order_id"`
	TableID    int64       `json:"table_id"`
	TableLabel string      `json:"table_label,omitempty"`
	Status     string      `json:"status"`
	WaiterID   string      `json:"waiter_id,omitempty"`
	CookID     string      `json:"cook_id,omitempty"`
	Total      string      `json:"total,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem línea denormalizada para mostrar en cocina.
type OrderItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// TableClosedEvent cuenta cerrada y mesa liberada.
type TableClosedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	TableID    int64     `json:"table_id"`
	OrderIDs   []int64   `json:"order_ids"`
	Subtotal   string    `json:"subtotal"`
	Tip        string    `json:"tip"`
	Total      string    `json:"total"`
	ClosedBy   string    `json:"closed_by,omitempty"`
}
