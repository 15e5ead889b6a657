package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones del BFF sobre PostgreSQL.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de persistencia para sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Save inserta o reemplaza la sesión.
func (r *SessionRepo) Save(ctx context.Context, s *entity.Session) error {
	p := s.Profile
	if p == nil {
		p = &entity.Profile{}
	}
	var expires *time.Time
	if !s.ExpiresAt.IsZero() {
		expires = &s.ExpiresAt
	}
	query := `
		INSERT INTO sesiones (id, token, user_id, email, nombre, rol, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token, user_id = EXCLUDED.user_id, email = EXCLUDED.email,
			nombre = EXCLUDED.nombre, rol = EXCLUDED.rol, expires_at = EXCLUDED.expires_at`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Token, p.UserID, nullIfEmpty(p.Email), nullIfEmpty(p.Name), p.Role, s.CreatedAt, expires,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si la sesión no existe.
func (r *SessionRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT id, token, user_id, email, nombre, rol, created_at, expires_at
		FROM sesiones WHERE id = $1`
	var (
		s           entity.Session
		p           entity.Profile
		email, name *string
		expires     *time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Token, &p.UserID, &email, &name, &p.Role, &s.CreatedAt, &expires,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	p.Email = derefString(email)
	p.Name = derefString(name)
	if expires != nil {
		s.ExpiresAt = *expires
	}
	s.Profile = &p
	return &s, nil
}

// Delete elimina la sesión; no falla si ya no existe.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sesiones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purga las sesiones vencidas antes de now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sesiones WHERE expires_at IS NOT NULL AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
