package entity

import (
	"strconv"
	"strings"
)

// TableStatus estado de una mesa. El código numérico es el que usa el backend.
type TableStatus int

const (
	TableUnknown   TableStatus = 0
	TableAvailable TableStatus = 1
	TableOccupied  TableStatus = 2
	TableReserved  TableStatus = 3
)

var tableLabels = map[TableStatus]string{
	TableAvailable: "DISPONIBLE",
	TableOccupied:  "OCUPADA",
	TableReserved:  "RESERVADA",
}

// Code devuelve el estadoId del backend.
func (s TableStatus) Code() int { return int(s) }

// Label devuelve la etiqueta canónica (DISPONIBLE, OCUPADA, RESERVADA).
func (s TableStatus) Label() string {
	if l, ok := tableLabels[s]; ok {
		return l
	}
	return "DESCONOCIDO"
}

func (s TableStatus) String() string { return s.Label() }

// Valid indica si el estado pertenece a la enumeración.
func (s TableStatus) Valid() bool {
	_, ok := tableLabels[s]
	return ok
}

// TableStatusFromCode convierte un estadoId del backend. Códigos fuera de rango devuelven TableUnknown.
func TableStatusFromCode(code int) TableStatus {
	s := TableStatus(code)
	if !s.Valid() {
		return TableUnknown
	}
	return s
}

// ParseTableStatus acepta el código ("2") o el nombre en cualquier capitalización ("ocupada").
func ParseTableStatus(raw string) TableStatus {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return TableStatusFromCode(n)
	}
	up := strings.ToUpper(raw)
	if up == "" {
		return TableUnknown
	}
	for s, l := range tableLabels {
		if strings.Contains(up, l) {
			return s
		}
	}
	return TableUnknown
}

// OrderStatus estado de una comanda. Los códigos coinciden con la tabla de estados del backend.
type OrderStatus int

const (
	OrderUnknown   OrderStatus = 0
	OrderPending   OrderStatus = 4
	OrderReady     OrderStatus = 5
	OrderDelivered OrderStatus = 6
	OrderCancelled OrderStatus = 7
	OrderPreparing OrderStatus = 9
)

var orderLabels = map[OrderStatus]string{
	OrderPending:   "PENDIENTE",
	OrderPreparing: "EN_PREPARACION",
	OrderReady:     "LISTA",
	OrderDelivered: "ENTREGADA",
	OrderCancelled: "CANCELADA",
}

// orden de búsqueda por nombre: EN_PREPARACION antes que cualquier etiqueta corta que pudiera contener.
var orderMatchOrder = []OrderStatus{OrderPreparing, OrderPending, OrderReady, OrderDelivered, OrderCancelled}

// OrderStatuses lista los estados en el orden del flujo.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled}
}

// Code devuelve el estadoId del backend.
func (s OrderStatus) Code() int { return int(s) }

// Label devuelve la etiqueta canónica.
func (s OrderStatus) Label() string {
	if l, ok := orderLabels[s]; ok {
		return l
	}
	return "DESCONOCIDO"
}

func (s OrderStatus) String() string { return s.Label() }

// Valid indica si el estado pertenece a la enumeración.
func (s OrderStatus) Valid() bool {
	_, ok := orderLabels[s]
	return ok
}

// Active: la comanda sigue en curso (ni entregada ni cancelada).
func (s OrderStatus) Active() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderReady
}

// OrderStatusFromCode convierte un estadoId del backend.
func OrderStatusFromCode(code int) OrderStatus {
	s := OrderStatus(code)
	if !s.Valid() {
		return OrderUnknown
	}
	return s
}

// ParseOrderStatus acepta el código o el nombre. "en preparación", "EN_PREPARACION" y
// "preparacion" se reconocen igual.
func ParseOrderStatus(raw string) OrderStatus {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return OrderStatusFromCode(n)
	}
	up := normalizeLabel(raw)
	if up == "" {
		return OrderUnknown
	}
	if strings.Contains(up, "PREPARACION") {
		return OrderPreparing
	}
	for _, s := range orderMatchOrder {
		if strings.Contains(up, orderLabels[s]) {
			return s
		}
	}
	return OrderUnknown
}

// ResolveOrderStatus prioriza el código y cae al nombre cuando el código no es reconocido.
func ResolveOrderStatus(code int, name string) OrderStatus {
	if s := OrderStatusFromCode(code); s != OrderUnknown {
		return s
	}
	return ParseOrderStatus(name)
}

// ResolveTableStatus igual que ResolveOrderStatus para mesas.
func ResolveTableStatus(code int, name string) TableStatus {
	if s := TableStatusFromCode(code); s != TableUnknown {
		return s
	}
	return ParseTableStatus(name)
}

func normalizeLabel(s string) string {
	r := strings.NewReplacer("Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", " ", "_")
	return r.Replace(strings.ToUpper(s))
}
