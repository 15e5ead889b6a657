package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.CompensationRepository = (*CompensationRepo)(nil)

// CompensationRepo compensaciones pendientes sobre PostgreSQL.
type CompensationRepo struct {
	pool *pgxpool.Pool
}

// NewCompensationRepository construye el adaptador.
func NewCompensationRepository(pool *pgxpool.Pool) *CompensationRepo {
	return &CompensationRepo{pool: pool}
}

const compensationColumns = `id, tipo, recurso_id, estado_destino, causa, intentos, created_at, resolved_at`

// Save registra una compensación nueva.
func (r *CompensationRepo) Save(ctx context.Context, p *entity.PendingCompensation) error {
	query := `INSERT INTO compensaciones_pendientes (` + compensationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Kind, p.ResourceID, p.TargetStatus, nullIfEmpty(p.Cause), p.Attempts, p.CreatedAt, p.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: compensación %s ya registrada", domain.ErrConflict, p.ID)
		}
		return fmt.Errorf("insert compensation: %w", err)
	}
	return nil
}

// GetByID devuelve ErrNotFound si no existe.
func (r *CompensationRepo) GetByID(ctx context.Context, id string) (*entity.PendingCompensation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+compensationColumns+` FROM compensaciones_pendientes WHERE id = $1`, id)
	p, err := scanCompensation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get compensation: %w", err)
	}
	return p, nil
}

// ListUnresolved pendientes, las más antiguas primero.
func (r *CompensationRepo) ListUnresolved(ctx context.Context) ([]*entity.PendingCompensation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+compensationColumns+`
		FROM compensaciones_pendientes WHERE resolved_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list compensations: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.PendingCompensation, 0)
	for rows.Next() {
		p, err := scanCompensation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compensation: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update guarda intentos, causa y fecha de resolución.
func (r *CompensationRepo) Update(ctx context.Context, p *entity.PendingCompensation) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE compensaciones_pendientes SET causa = $2, intentos = $3, resolved_at = $4
		WHERE id = $1`, p.ID, nullIfEmpty(p.Cause), p.Attempts, p.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update compensation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCompensation(row pgx.Row) (*entity.PendingCompensation, error) {
	var (
		p     entity.PendingCompensation
		cause *string
	)
	if err := row.Scan(&p.ID, &p.Kind, &p.ResourceID, &p.TargetStatus, &cause, &p.Attempts, &p.CreatedAt, &p.ResolvedAt); err != nil {
		return nil, err
	}
	p.Cause = derefString(cause)
	return &p, nil
}
