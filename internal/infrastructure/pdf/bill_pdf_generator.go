// Package pdf genera la cuenta de una mesa en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante + Mesa  │  Fecha + Atendió             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR COMANDA: N° + estado, luego Cant | Producto | P.Unit   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Propina sugerida / TOTAL A PAGAR        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/money"
)

var _ ports.BillPDFGenerator = (*BillGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 38, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BillGenerator genera la cuenta con Maroto v2.
type BillGenerator struct {
	restaurant string
	now        func() time.Time
}

// NewBillGenerator construye el generador; restaurant va en el encabezado.
func NewBillGenerator(restaurant string) *BillGenerator {
	if restaurant == "" {
		restaurant = "Restaurante"
	}
	return &BillGenerator{restaurant: restaurant, now: time.Now}
}

// GenerateBillPDF genera el PDF de la cuenta y devuelve sus bytes.
func (g *BillGenerator) GenerateBillPDF(bill *billing.Bill, issuedBy string) ([]byte, error) {
	if bill == nil || bill.Table == nil {
		return nil, fmt.Errorf("pdf: cuenta sin mesa")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuenta "+bill.Table.Label, true).
		WithAuthor(g.restaurant, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.restaurant, bill.Table, g.now(), issuedBy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, o := range bill.Orders {
		m.AddRows(orderRows(o)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill.Totals))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(restaurant string, table *entity.Table, at time.Time, issuedBy string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(restaurant, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUENTA "+table.Label, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Atendió: "+nonEmpty(issuedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// orderRows: título de la comanda y una fila por línea.
func orderRows(o *entity.Order) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			col.New(8).Add(text.New("Comanda #"+strconv.FormatInt(o.ID, 10), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			})),
			col.New(4).Add(text.New(o.Status.Label(), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			})),
		),
	}
	if len(o.Lines) == 0 {
		return append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Sin detalle", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(money.FormatCOP(o.DisplayTotal()), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	for _, l := range o.Lines {
		name := nonEmpty(l.ProductName, "Producto "+strconv.FormatInt(l.ProductID, 10))
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money.FormatCOP(l.UnitPrice), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(money.FormatCOP(l.Subtotal), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func totalsRow(t billing.Totals) core.Row {
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2})
	}
	value := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 9),
			label(fmt.Sprintf("Propina sugerida (%d%%):", t.TipPercent), 9),
			label("TOTAL A PAGAR:", 10),
		),
		col.New(3).Add(
			value(money.FormatCOP(t.Subtotal), 9),
			value(money.FormatCOP(t.Tip), 9),
			value(money.FormatCOP(t.GrandTotal), 10),
		),
	)
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("La propina es voluntaria. Este documento no es una factura electrónica.", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 4,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
