package dto

import "github.com/shopspring/decimal"

// ProductRequest alta o edición de producto.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      *bool           `json:"active"`
	CategoryID  int64           `json:"category_id"`
}

// ProductResponse producto de la carta.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	Stock        int             `json:"stock"`
	Active       bool            `json:"active"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
}

// ProductFilter filtro del catálogo del mesero: categoría y texto sobre nombre o descripción.
type ProductFilter struct {
	CategoryID int64  `query:"category_id"`
	Search     string `query:"q"`
	OnlyActive bool   `query:"only_active"`
}

// StockRequest ajuste de stock: operation = aumentar | reducir.
type StockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StateRequest alta o edición de estado.
type StateRequest struct {
	Name string `json:"name"`
}

// StateResponse estado genérico.
type StateResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DeleteResponse resultado de una eliminación. AlreadyRemoved=true si el backend ya no lo tenía.
type DeleteResponse struct {
	Deleted        bool   `json:"deleted"`
	AlreadyRemoved bool   `json:"already_removed,omitempty"`
	Message        string `json:"message"`
}
