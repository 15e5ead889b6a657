package ports

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/billing"
)

// EventPublisher puerto de salida para avisar cambios de comandas y mesas (cocina, sala).
// subject es el sufijo (ej. event.SubjectOrderSubmitted); el adaptador antepone su prefijo.
// Un error al publicar se registra en el log y no hace fallar la operación del usuario.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// BillPDFGenerator genera el PDF de la cuenta de una mesa.
type BillPDFGenerator interface {
	GenerateBillPDF(bill *billing.Bill, issuedBy string) ([]byte, error)
}
