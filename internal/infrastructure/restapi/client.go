// Package restapi implementa los puertos de repositorio contra el backend REST del restaurante.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/comandas-bff/pkg/logger"
)

const maxBodyBytes = 4 << 20

// Client cliente HTTP del backend. Adjunta el bearer token cuando se le pasa uno.
// No reintenta ni cachea: cada llamada va a la red.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo /api (ej. http://localhost:8081/api).
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("restapi"),
	}
}

// BaseURL URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// do ejecuta una llamada. in se serializa como JSON si no es nil; out recibe la respuesta si no es nil.
// Cualquier fallo se devuelve como *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	raw, err := c.doRaw(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: http.StatusBadGateway, Method: method, URL: c.url(path), Message: "respuesta inválida del servidor", Err: err}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path, token string, in interface{}) ([]byte, error) {
	fullURL := c.url(path)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("restapi: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("restapi: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("url", fullURL).Msg("backend inalcanzable")
		return nil, &APIError{Status: 0, Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &APIError{Status: 0, Method: method, URL: fullURL, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Str("method", method).
		Str("url", fullURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend")

	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Method: method, URL: fullURL, Message: extractMessage(raw)}
	}
	return raw, nil
}

// extractMessage busca el mensaje de error en los campos que usa el backend.
func extractMessage(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, k := range []string{"message", "mensaje", "error", "detail"} {
		if s, ok := body[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
