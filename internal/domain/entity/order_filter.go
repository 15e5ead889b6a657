package entity

import (
	"strconv"
	"strings"
)

// ParseStatusFilter interpreta el filtro de estado de un listado. Vacío o "todas" no filtra
// (OrderUnknown, true); un valor no reconocido devuelve ok=false.
func ParseStatusFilter(raw string) (OrderStatus, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "todas") {
		return OrderUnknown, true
	}
	s := ParseOrderStatus(raw)
	return s, s != OrderUnknown
}

// FilterOrders filtra por estado (OrderUnknown = todos) y por texto en mesa, mesero o número.
func FilterOrders(orders []*Order, status OrderStatus, search string) []*Order {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if status != OrderUnknown && o.Status != status {
			continue
		}
		if q != "" && !o.matches(q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (o *Order) matches(q string) bool {
	return strings.Contains(strings.ToLower(o.TableLabel), q) ||
		strings.Contains(strings.ToLower(o.WaiterName), q) ||
		strings.Contains(strconv.FormatInt(o.ID, 10), q)
}
