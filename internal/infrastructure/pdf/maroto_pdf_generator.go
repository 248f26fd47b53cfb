// Package pdf implementa el documento imprimible de la orden de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + dirección  │  N° Orden + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + contacto                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Cant | Recibido | P.Unit | Subtotal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + entrega esperada + notas                            │
//	│  QR con el número de orden                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/application/purchasing"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[entity.POStatus]string{
	entity.POStatusDraft:     "BORRADOR",
	entity.POStatusPending:   "PENDIENTE",
	entity.POStatusReceived:  "RECIBIDA",
	entity.POStatusCancelled: "CANCELADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// Issuer datos de la empresa que emite la orden.
type Issuer struct {
	Name    string
	Address string
}

// MarotoPDFGenerator implementa purchasing.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer       Issuer
	currencyCode string
}

// NewMarotoPDFGenerator construye el generador. currencyCode es ISO 4217 (ej: "USD").
func NewMarotoPDFGenerator(issuer Issuer, currencyCode string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer, currencyCode: currency.Normalize(currencyCode)}
}

var _ purchasing.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	po *entity.PurchaseOrder,
	supplier *entity.Supplier,
	lines []purchasing.PurchaseOrderLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+po.PONumber, true).
		WithAuthor(nonEmpty(g.issuer.Name, "Inventory Tracker"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableLineRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(po))
	m.AddRows(footerRows(po)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y N° de orden + fecha + estado (der).
func (g *MarotoPDFGenerator) headerRow(po *entity.PurchaseOrder) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.issuer.Name, "Inventory Tracker"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(g.issuer.Address, ""), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+po.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Estado: "+statusLabel(po.Status), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor.
func supplierRow(s *entity.Supplier) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(s.ContactName, "-"),
				nonEmpty(s.Email, "-"),
				nonEmpty(s.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Artículo", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("Recib.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea de la orden.
func (g *MarotoPDFGenerator) tableLineRows(lines []purchasing.PurchaseOrderLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(l.QuantityOrdered), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprint(l.QuantityReceived), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.money(l.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalRow: total de la orden alineado a la derecha.
func (g *MarotoPDFGenerator) totalRow(po *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL ORDEN:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.money(po.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: entrega esperada, notas y QR con el número de orden.
func footerRows(po *entity.PurchaseOrder) []core.Row {
	delivery := "-"
	if po.ExpectedDelivery != nil {
		delivery = po.ExpectedDelivery.Format("02/01/2006")
	}
	info := "Entrega esperada: " + delivery
	if po.ReceivedAt != nil {
		info += "   |   Recibida: " + po.ReceivedAt.Format("02/01/2006 15:04")
	}

	rows := []core.Row{
		row.New(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(6).Add(col.New(12).Add(text.New(info, props.Text{Size: 8, Top: 1, Color: colorGray}))),
	}
	if po.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Notas: "+po.Notes, props.Text{Size: 8, Top: 1}),
		)))
	}
	rows = append(rows, row.New(35).Add(
		col.New(3).Add(code.NewQr(po.PONumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New(
			"Indique el número de orden en la remisión para agilizar la recepción.",
			props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray},
		)),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return currency.Format(d, g.currencyCode)
}

func statusLabel(s entity.POStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
