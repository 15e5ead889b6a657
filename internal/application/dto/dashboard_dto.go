package dto

import "github.com/shopspring/decimal"

// WaiterStats estadísticas del tablero del mesero.
type WaiterStats struct {
	TablesServed int             `json:"tables_served"`
	Pending      int             `json:"pending"`   // PENDIENTE o EN_PREPARACION
	Completed    int             `json:"completed"` // LISTA
	TotalSold    decimal.Decimal `json:"total_sold"`
	TotalDisplay string          `json:"total_sold_display"`
}

// WaiterDashboardResponse tablero del mesero. Warnings lista las consultas que fallaron.
type WaiterDashboardResponse struct {
	Tables       []TableResponse `json:"tables"`
	ActiveOrders []OrderResponse `json:"active_orders"`
	Stats        WaiterStats     `json:"stats"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// KitchenStats contadores del tablero del cocinero.
type KitchenStats struct {
	Pending            int `json:"pending"`
	Preparing          int `json:"preparing"`
	Ready              int `json:"ready"`
	ItemsInPreparation int `json:"items_in_preparation"`
}

// KitchenDashboardResponse tablero del cocinero.
type KitchenDashboardResponse struct {
	Pending   []OrderResponse `json:"pending"`
	Preparing []OrderResponse `json:"preparing"`
	Stats     KitchenStats    `json:"stats"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// ResourceCounts cantidad de registros por recurso.
type ResourceCounts struct {
	Tables     int `json:"tables"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	States     int `json:"states"`
	Roles      int `json:"roles"`
	Phones     int `json:"phones"`
	Users      int `json:"users"`
	Orders     int `json:"orders"`
	OrderLines int `json:"order_lines"`
}

// AdminDashboardResponse tablero del administrador.
type AdminDashboardResponse struct {
	Counts            ResourceCounts  `json:"counts"`
	TablesByStatus    map[string]int  `json:"tables_by_status"`
	OrdersByStatus    map[string]int  `json:"orders_by_status"`
	ActiveOrders      int             `json:"active_orders"`
	PendingOrders     int             `json:"pending_orders"`
	TodayOrders       int             `json:"today_orders"`
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodaySalesDisplay string          `json:"today_sales_display"`
	PendingFixes      int             `json:"pending_compensations"`
	Warnings          []string        `json:"warnings,omitempty"`
}

// PendingCompensationResponse compensación de saga pendiente.
type PendingCompensationResponse struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	ResourceID   int64   `json:"resource_id"`
	TargetStatus string  `json:"target_status"`
	Cause        string  `json:"cause"`
	Attempts     int     `json:"attempts"`
	CreatedAt    string  `json:"created_at"`
	ResolvedAt   *string `json:"resolved_at,omitempty"`
}
