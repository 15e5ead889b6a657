package entity

// Table representa una mesa del restaurante.
type Table struct {
	ID       int64
	Label    string // numeroMesa o ubicación; "Mesa <id>" si el backend no envía ninguno
	Capacity int
	Status   TableStatus
}

// IsOccupied indica si la mesa está ocupada.
func (t *Table) IsOccupied() bool { return t.Status == TableOccupied }
