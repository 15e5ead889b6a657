package events

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

var _ ports.EventPublisher = (*NoopPublisher)(nil)

// NoopPublisher se usa cuando no hay NATS configurado; solo deja rastro en el log.
type NoopPublisher struct {
	log *logger.Logger
}

// NewNoopPublisher crea el publicador vacío.
func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &NoopPublisher{log: log.Named("eventos")}
}

func (p *NoopPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.log.Debug().Str("subject", subject).Msg("evento descartado (sin NATS)")
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
