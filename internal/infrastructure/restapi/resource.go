package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// resource implementa el CRUD uniforme sobre un path del backend. W es la forma en el cable,
// T la entidad de dominio.
type resource[W any, T any, ID comparable] struct {
	c        *Client
	path     string
	listKeys []string
	toEntity func(*W) *T
	payload  func(*T) interface{}
}

func newResource[W any, T any, ID comparable](c *Client, path string, toEntity func(*W) *T, payload func(*T) interface{}, listKeys ...string) *resource[W, T, ID] {
	return &resource[W, T, ID]{
		c:        c,
		path:     path,
		listKeys: append(listKeys, "data"),
		toEntity: toEntity,
		payload:  payload,
	}
}

func (r *resource[W, T, ID]) itemPath(id ID) string {
	return r.path + "/" + url.PathEscape(fmt.Sprint(id))
}

// List GET /<path>.
func (r *resource[W, T, ID]) List(ctx context.Context, token string) ([]*T, error) {
	return r.listAt(ctx, token, r.path)
}

// GetByID GET /<path>/{id}.
func (r *resource[W, T, ID]) GetByID(ctx context.Context, token string, id ID) (*T, error) {
	return r.getAt(ctx, token, r.itemPath(id))
}

// Create POST /<path>. Si el backend no devuelve cuerpo, se devuelve v.
func (r *resource[W, T, ID]) Create(ctx context.Context, token string, v *T) (*T, error) {
	return r.send(ctx, http.MethodPost, r.path, token, r.payload(v), v)
}

// Update PUT /<path>/{id}.
func (r *resource[W, T, ID]) Update(ctx context.Context, token string, id ID, v *T) (*T, error) {
	return r.send(ctx, http.MethodPut, r.itemPath(id), token, r.payload(v), v)
}

// Delete DELETE /<path>/{id}.
func (r *resource[W, T, ID]) Delete(ctx context.Context, token string, id ID) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), token, nil, nil)
}

func (r *resource[W, T, ID]) listAt(ctx context.Context, token, path string) ([]*T, error) {
	raw, err := r.c.doRaw(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var ws []W
	if err := decodeList(raw, &ws, r.listKeys...); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Method: http.MethodGet, URL: r.c.url(path), Message: "respuesta inválida del servidor", Err: err}
	}
	out := make([]*T, 0, len(ws))
	for i := range ws {
		out = append(out, r.toEntity(&ws[i]))
	}
	return out, nil
}

func (r *resource[W, T, ID]) getAt(ctx context.Context, token, path string) (*T, error) {
	var w W
	if err := r.c.do(ctx, http.MethodGet, path, token, nil, &w); err != nil {
		return nil, err
	}
	return r.toEntity(&w), nil
}

func (r *resource[W, T, ID]) send(ctx context.Context, method, path, token string, in interface{}, fallback *T) (*T, error) {
	raw, err := r.c.doRaw(ctx, method, path, token, in)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return fallback, nil
	}
	var w W
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Method: method, URL: r.c.url(path), Message: "respuesta inválida del servidor", Err: err}
	}
	return r.toEntity(&w), nil
}
