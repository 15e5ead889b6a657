package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// ── Tipos tolerantes ──────────────────────────────────────────────────────────
// El backend no es consistente: los ids llegan como número o como string según el endpoint.

// flexInt acepta 12, "12" o null.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ids no numéricos se ignoran en vez de romper todo el listado
		*f = 0
		return nil
	}
	*f = flexInt(int64(fl))
	return nil
}

// flexString acepta "USR-1", 17 o null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(strings.TrimSpace(string(b)))
	return nil
}

// firstInt devuelve el primer id no cero.
func firstInt(vals ...flexInt) int64 {
	for _, v := range vals {
		if v != 0 {
			return int64(v)
		}
	}
	return 0
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// decodeList acepta un arreglo o un objeto envolvente con el arreglo bajo alguna de keys.
func decodeList(raw []byte, out interface{}, keys ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, out)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	for _, k := range keys {
		if v, ok := env[k]; ok && len(bytes.TrimSpace(v)) > 0 && string(bytes.TrimSpace(v)) != "null" {
			return json.Unmarshal(v, out)
		}
	}
	return fmt.Errorf("respuesta sin lista (claves esperadas: %s)", strings.Join(keys, ", "))
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ── Mesas ─────────────────────────────────────────────────────────────────────

type mesaWire struct {
	IDMesa     flexInt    `json:"idMesa,omitempty"`
	ID         flexInt    `json:"id,omitempty"`
	NumeroMesa string     `json:"numeroMesa,omitempty"`
	Ubicacion  string     `json:"ubicacion,omitempty"`
	Capacidad  int        `json:"capacidad"`
	EstadoID   flexInt    `json:"estadoId"`
	Estado     flexString `json:"estado,omitempty"`
}

func (w *mesaWire) toEntity() *entity.Table {
	id := firstInt(w.IDMesa, w.ID)
	label := firstString(w.NumeroMesa, w.Ubicacion)
	if label == "" {
		label = fmt.Sprintf("Mesa %d", id)
	}
	status := entity.ResolveTableStatus(int(w.EstadoID), string(w.Estado))
	if status == entity.TableUnknown {
		status = entity.TableAvailable
	}
	return &entity.Table{ID: id, Label: label, Capacity: w.Capacidad, Status: status}
}

func mesaFromEntity(t *entity.Table) interface{} {
	status := t.Status
	if !status.Valid() {
		status = entity.TableAvailable
	}
	return &mesaWire{
		IDMesa:     flexInt(t.ID),
		NumeroMesa: t.Label,
		Capacidad:  t.Capacity,
		EstadoID:   flexInt(status.Code()),
	}
}

// ── Comandas ──────────────────────────────────────────────────────────────────

type estadoRef struct {
	IDEstado flexInt `json:"idEstado"`
	ID       flexInt `json:"id"`
	Nombre   string  `json:"nombre"`
}

type productoRef struct {
	IDProducto flexInt         `json:"id_producto"`
	IDCamel    flexInt         `json:"idProducto"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
}

type detalleWire struct {
	IDDetalleComanda flexInt         `json:"idDetalleComanda"`
	IDDetalleSnake   flexInt         `json:"id_detalle_comanda"`
	ID               flexInt         `json:"id"`
	ComandaID        flexInt         `json:"comandaId"`
	IDComandaSnake   flexInt         `json:"id_comanda"`
	ProductoID       flexInt         `json:"productoId"`
	IDProductoSnake  flexInt         `json:"id_producto"`
	ProductoNombre   string          `json:"productoNombre"`
	NombreProducto   string          `json:"nombreProducto"`
	PrecioUnitario   decimal.Decimal `json:"precioUnitario"`
	Cantidad         int             `json:"cantidad"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Observaciones    string          `json:"observaciones"`
	Producto         *productoRef    `json:"producto"`
}

func (w *detalleWire) toEntity() *entity.OrderLine {
	l := &entity.OrderLine{
		ID:          firstInt(w.IDDetalleComanda, w.IDDetalleSnake, w.ID),
		OrderID:     firstInt(w.ComandaID, w.IDComandaSnake),
		ProductID:   firstInt(w.ProductoID, w.IDProductoSnake),
		ProductName: firstString(w.ProductoNombre, w.NombreProducto),
		Quantity:    w.Cantidad,
		UnitPrice:   w.PrecioUnitario,
		Subtotal:    w.Subtotal,
		Note:        w.Observaciones,
	}
	if w.Producto != nil {
		if l.ProductID == 0 {
			l.ProductID = firstInt(w.Producto.IDProducto, w.Producto.IDCamel)
		}
		if l.ProductName == "" {
			l.ProductName = w.Producto.Nombre
		}
		if l.UnitPrice.IsZero() {
			l.UnitPrice = w.Producto.Precio
		}
	}
	if l.Quantity > 0 {
		qty := decimal.NewFromInt(int64(l.Quantity))
		if l.UnitPrice.IsZero() && !l.Subtotal.IsZero() {
			l.UnitPrice = l.Subtotal.Div(qty)
		}
		if l.Subtotal.IsZero() {
			l.Subtotal = l.UnitPrice.Mul(qty)
		}
	}
	return l
}

// detallePayload línea tal como la espera POST /detalles-comanda.
type detallePayload struct {
	IDComanda  int64           `json:"id_comanda"`
	IDProducto int64           `json:"id_producto"`
	Cantidad   int             `json:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

func detalleFromEntity(l *entity.OrderLine) interface{} {
	return &detallePayload{IDComanda: l.OrderID, IDProducto: l.ProductID, Cantidad: l.Quantity, Subtotal: l.Subtotal}
}

type comandaWire struct {
	ComandaID      flexInt         `json:"comandaId"`
	IDComanda      flexInt         `json:"idComanda"`
	ID             flexInt         `json:"id"`
	MesaID         flexInt         `json:"mesaId"`
	MesaUbicacion  string          `json:"mesaUbicacion"`
	MeseroID       flexString      `json:"meseroId"`
	MeseroNombre   string          `json:"meseroNombre"`
	CocineroID     flexString      `json:"cocineroId"`
	CocineroNombre string          `json:"cocineroNombre"`
	EstadoID       flexInt         `json:"estadoId"`
	EstadoNombre   string          `json:"estadoNombre"`
	Estado         json.RawMessage `json:"estado"`
	Fecha          string          `json:"fecha"`
	Total          decimal.Decimal `json:"total"`
	Detalles       []detalleWire   `json:"detalles"`
}

// status resuelve el estado desde estadoId/estadoNombre o desde el objeto anidado estado.
func (w *comandaWire) status() (entity.OrderStatus, string) {
	code, name := int(w.EstadoID), w.EstadoNombre
	raw := bytes.TrimSpace(w.Estado)
	if len(raw) > 0 && string(raw) != "null" {
		switch raw[0] {
		case '{':
			var ref estadoRef
			if err := json.Unmarshal(raw, &ref); err == nil {
				if code == 0 {
					code = int(firstInt(ref.IDEstado, ref.ID))
				}
				name = firstString(name, ref.Nombre)
			}
		case '"':
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				name = firstString(name, s)
			}
		default:
			if n, err := strconv.Atoi(string(raw)); err == nil && code == 0 {
				code = n
			}
		}
	}
	return entity.ResolveOrderStatus(code, name), name
}

func (w *comandaWire) toEntity() *entity.Order {
	status, name := w.status()
	if name == "" {
		name = status.Label()
	}
	o := &entity.Order{
		ID:         firstInt(w.ComandaID, w.IDComanda, w.ID),
		TableID:    int64(w.MesaID),
		TableLabel: w.MesaUbicacion,
		WaiterID:   string(w.MeseroID),
		WaiterName: w.MeseroNombre,
		CookID:     string(w.CocineroID),
		CookName:   w.CocineroNombre,
		Status:     status,
		StatusName: name,
		CreatedAt:  parseTime(w.Fecha),
		Total:      w.Total,
	}
	for i := range w.Detalles {
		l := w.Detalles[i].toEntity()
		if l.OrderID == 0 {
			l.OrderID = o.ID
		}
		o.Lines = append(o.Lines, *l)
	}
	if o.TableLabel == "" && o.TableID != 0 {
		o.TableLabel = fmt.Sprintf("Mesa %d", o.TableID)
	}
	return o
}

// comandaPayload cuerpo de creación/actualización de una comanda con sus detalles.
type comandaPayload struct {
	IDComanda      int64                `json:"idComanda"`
	Fecha          string               `json:"fecha"`
	MesaID         int64                `json:"mesaId"`
	MesaUbicacion  string               `json:"mesaUbicacion"`
	MeseroID       string               `json:"meseroId"`
	MeseroNombre   string               `json:"meseroNombre"`
	CocineroID     string               `json:"cocineroId"`
	CocineroNombre string               `json:"cocineroNombre"`
	EstadoID       int                  `json:"estadoId"`
	EstadoNombre   string               `json:"estadoNombre"`
	Detalles       []comandaLinePayload `json:"detalles"`
	Total          decimal.Decimal      `json:"total"`
}

type comandaLinePayload struct {
	IDDetalleComanda int64           `json:"idDetalleComanda"`
	ComandaID        int64           `json:"comandaId"`
	ProductoID       int64           `json:"productoId"`
	ProductoNombre   string          `json:"productoNombre"`
	PrecioUnitario   decimal.Decimal `json:"precioUnitario"`
	Cantidad         int             `json:"cantidad"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Observaciones    string          `json:"observaciones,omitempty"`
}

func comandaFromEntity(o *entity.Order) interface{} {
	created := o.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	status := o.Status
	if !status.Valid() {
		status = entity.OrderPending
	}
	p := &comandaPayload{
		IDComanda:      o.ID,
		Fecha:          created.UTC().Format(time.RFC3339),
		MesaID:         o.TableID,
		MesaUbicacion:  o.TableLabel,
		MeseroID:       o.WaiterID,
		MeseroNombre:   o.WaiterName,
		CocineroID:     o.CookID,
		CocineroNombre: o.CookName,
		EstadoID:       status.Code(),
		EstadoNombre:   status.Label(),
		Total:          o.Total,
		Detalles:       make([]comandaLinePayload, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		p.Detalles = append(p.Detalles, comandaLinePayload{
			IDDetalleComanda: l.ID,
			ComandaID:        o.ID,
			ProductoID:       l.ProductID,
			ProductoNombre:   l.ProductName,
			PrecioUnitario:   l.UnitPrice,
			Cantidad:         l.Quantity,
			Subtotal:         l.Subtotal,
			Observaciones:    l.Note,
		})
	}
	return p
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productoWire struct {
	IDProducto      flexInt         `json:"idProducto,omitempty"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion,omitempty"`
	Precio          decimal.Decimal `json:"precio"`
	Stock           int             `json:"stock"`
	Estado          bool            `json:"estado"`
	IDCategoria     flexInt         `json:"idCategoria"`
	CategoriaNombre string          `json:"categoriaNombre,omitempty"`
}

func (w *productoWire) toEntity() *entity.Product {
	return &entity.Product{
		ID:           int64(w.IDProducto),
		Name:         w.Nombre,
		Description:  w.Descripcion,
		Price:        w.Precio,
		Stock:        w.Stock,
		Active:       w.Estado,
		CategoryID:   int64(w.IDCategoria),
		CategoryName: w.CategoriaNombre,
	}
}

func productoFromEntity(p *entity.Product) interface{} {
	return &productoWire{
		IDProducto:  flexInt(p.ID),
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		Stock:       p.Stock,
		Estado:      p.Active,
		IDCategoria: flexInt(p.CategoryID),
	}
}

// ── Catálogos simples ─────────────────────────────────────────────────────────

type categoriaWire struct {
	IDCategoria flexInt `json:"idCategoria,omitempty"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
}

func (w *categoriaWire) toEntity() *entity.Category {
	return &entity.Category{ID: int64(w.IDCategoria), Name: w.Nombre, Description: w.Descripcion}
}

func categoriaFromEntity(c *entity.Category) interface{} {
	return &categoriaWire{IDCategoria: flexInt(c.ID), Nombre: c.Name, Descripcion: c.Description}
}

type estadoWire struct {
	IDEstado flexInt `json:"idEstado,omitempty"`
	Nombre   string  `json:"nombre"`
}

func (w *estadoWire) toEntity() *entity.State {
	return &entity.State{ID: int64(w.IDEstado), Name: w.Nombre}
}

func estadoFromEntity(s *entity.State) interface{} {
	return &estadoWire{IDEstado: flexInt(s.ID), Nombre: s.Name}
}

type rolWire struct {
	IDRol            flexInt `json:"idRol,omitempty"`
	Nombre           string  `json:"nombre"`
	CantidadUsuarios int     `json:"cantidadUsuarios,omitempty"`
}

func (w *rolWire) toEntity() *entity.Role {
	return &entity.Role{ID: int64(w.IDRol), Name: w.Nombre, UsersCount: w.CantidadUsuarios}
}

func rolFromEntity(r *entity.Role) interface{} {
	return &rolWire{IDRol: flexInt(r.ID), Nombre: r.Name}
}

type usuarioSimpleWire struct {
	IDUsuario flexString `json:"idUsuario"`
	Nombre    string     `json:"nombre"`
	Email     string     `json:"email"`
}

type telefonoWire struct {
	IDTelefono flexInt             `json:"idTelefono,omitempty"`
	Numero     string              `json:"numero"`
	Usuarios   []usuarioSimpleWire `json:"usuarios,omitempty"`
}

func (w *telefonoWire) toEntity() *entity.Phone {
	p := &entity.Phone{ID: int64(w.IDTelefono), Number: w.Numero}
	for _, u := range w.Usuarios {
		p.Users = append(p.Users, entity.UserRef{ID: string(u.IDUsuario), Name: u.Nombre, Email: u.Email})
	}
	return p
}

func telefonoFromEntity(p *entity.Phone) interface{} {
	return &telefonoWire{IDTelefono: flexInt(p.ID), Numero: p.Number}
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type usuarioWire struct {
	IDUsuario flexString     `json:"idUsuario,omitempty"`
	Nombre    string         `json:"nombre"`
	Email     string         `json:"email"`
	Password  string         `json:"password,omitempty"`
	Roles     []rolWire      `json:"roles,omitempty"`
	Telefonos []telefonoWire `json:"telefonos,omitempty"`
	Rol       string         `json:"rol,omitempty"`
	RolID     flexInt        `json:"rolId,omitempty"`
	RolNombre string         `json:"rolNombre,omitempty"`
}

func (w *usuarioWire) toEntity() *entity.User {
	u := &entity.User{ID: string(w.IDUsuario), Name: w.Nombre, Email: w.Email}
	for i := range w.Roles {
		u.Roles = append(u.Roles, *w.Roles[i].toEntity())
	}
	if len(u.Roles) == 0 {
		if name := firstString(w.RolNombre, w.Rol); name != "" || w.RolID != 0 {
			u.Roles = append(u.Roles, entity.Role{ID: int64(w.RolID), Name: name})
		}
	}
	for i := range w.Telefonos {
		u.Phones = append(u.Phones, *w.Telefonos[i].toEntity())
	}
	return u
}

func usuarioFromEntity(u *entity.User) interface{} {
	w := &usuarioWire{IDUsuario: flexString(u.ID), Nombre: u.Name, Email: u.Email, Password: u.Password}
	for _, r := range u.Roles {
		w.Roles = append(w.Roles, rolWire{IDRol: flexInt(r.ID), Nombre: r.Name})
	}
	for _, p := range u.Phones {
		w.Telefonos = append(w.Telefonos, telefonoWire{IDTelefono: flexInt(p.ID), Numero: p.Number})
	}
	return w
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	Type      string     `json:"type"`
	Email     string     `json:"email"`
	Nombre    string     `json:"nombre"`
	Rol       string     `json:"rol"`
	IDUsuario flexString `json:"idUsuario"`
}

type registerRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol,omitempty"`
	Telefono string `json:"telefono,omitempty"`
}
