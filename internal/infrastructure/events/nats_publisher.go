// Package events publica los eventos de comandas y mesas.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// conn lo que el publicador necesita de *nats.Conn.
type conn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NATSPublisher publica JSON en NATS bajo <prefijo>.<subject>.
type NATSPublisher struct {
	conn   conn
	prefix string
	log    *logger.Logger
}

// NewNATSPublisher conecta con el servidor NATS.
func NewNATSPublisher(url, prefix string, log *logger.Logger) (*NATSPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("nats")
	nc, err := nats.Connect(url,
		nats.Name("comandas-bff"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("desconectado de NATS")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("reconectado a NATS")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return newPublisher(nc, prefix, log), nil
}

func newPublisher(c conn, prefix string, log *logger.Logger) *NATSPublisher {
	return &NATSPublisher{conn: c, prefix: strings.Trim(prefix, "."), log: log}
}

// Subject arma el subject completo.
func (p *NATSPublisher) Subject(subject string) string {
	if p.prefix == "" {
		return subject
	}
	return p.prefix + "." + subject
}

// Publish serializa payload a JSON y lo publica.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento %s: %w", subject, err)
	}
	full := p.Subject(subject)
	if err := p.conn.Publish(full, data); err != nil {
		return fmt.Errorf("publicar %s: %w", full, err)
	}
	p.log.Debug().Str("subject", full).Int("bytes", len(data)).Msg("evento publicado")
	return nil
}

// Close vacía lo pendiente y cierra la conexión.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
