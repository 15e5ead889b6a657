package entity

// Category categoría de productos.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// State estado genérico administrable (tabla estados del backend).
type State struct {
	ID   int64
	Name string
}

// Phone teléfono; puede estar asociado a varios usuarios.
type Phone struct {
	ID     int64
	Number string
	Users  []UserRef
}

// UserRef referencia liviana a un usuario.
type UserRef struct {
	ID    string
	Name  string
	Email string
}
