package entity

import "time"

// Tipos de compensación pendiente.
const (
	CompensationRevertTable = "mesa.revertir"
)

// PendingCompensation compensación de saga que falló y quedó para resolución manual
// (ej. mesa OCUPADA sin comanda).
type PendingCompensation struct {
	ID           string
	Kind         string
	ResourceID   int64
	TargetStatus int
	Cause        string
	Attempts     int
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}

// Resolved indica si ya se resolvió.
func (p *PendingCompensation) Resolved() bool { return p.ResolvedAt != nil }
