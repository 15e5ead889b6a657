package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sesiones (
	id          TEXT PRIMARY KEY,
	token       TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	email       TEXT,
	nombre      TEXT,
	rol         TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS compensaciones_pendientes (
	id             TEXT PRIMARY KEY,
	tipo           TEXT NOT NULL,
	recurso_id     BIGINT NOT NULL,
	estado_destino INT NOT NULL,
	causa          TEXT,
	intentos       INT NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL,
	resolved_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_compensaciones_pendientes
	ON compensaciones_pendientes (created_at) WHERE resolved_at IS NULL;
`

// EnsureSchema crea las tablas del BFF si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
