// Package pdf genera la factura de servicios en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor              │  N° Счет + Fecha + Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + ИНН / ОГРН + contacto                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Услуга | Кол-во | Цена | Сумма                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Total / Pagado              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const customFamily = "invoice-font"

var _ usecase.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company  string
	fontPath string
}

// NewMarotoPDFGenerator construye el generador. fontPath es un TTF con cirílico;
// vacío usa helvetica.
func NewMarotoPDFGenerator(company, fontPath string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, fontPath: fontPath}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	client *entity.Client,
	lines []usecase.InvoiceLineForPDF,
) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle("Счет "+invoice.InvoiceNumber, true).
		WithAuthor(g.company, true)

	family := "helvetica"
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente: %w", err)
		}
		b = b.WithCustomFonts(fonts)
		family = customFamily
	}
	m := maroto.New(b.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build())

	m.AddRows(headerRow(invoice, g.company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	subtotal := decimal.Zero
	for _, l := range lines {
		m.AddRows(tableDetailRow(l))
		subtotal = subtotal.Add(l.Subtotal)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, subtotal))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: emisor (izq) y número, fecha y estado de la factura (der).
func headerRow(invoice *entity.Invoice, company string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("СЧЕТ НА ОПЛАТУ", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Дата: "+invoice.CreatedAt.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("ПЛАТЕЛЬЩИК", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(client.Name, client.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("ИНН: %s   |   ОГРН: %s   |   Тел: %s   |   Email: %s",
				nonEmpty(client.INN, "—"),
				nonEmpty(client.OGRN, "—"),
				nonEmpty(client.PhoneNumber, "—"),
				nonEmpty(client.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Услуга", 6, align.Left),
		h("Кол-во", 2, align.Center),
		h("Цена", 2, align.Right),
		h("Сумма", 2, align.Right),
	)
}

func tableDetailRow(l usecase.InvoiceLineForPDF) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(l.Service, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(strconv.Itoa(l.Amount), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(money.Amount(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(money.Amount(l.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice, subtotal decimal.Decimal) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Сумма услуг:", 0),
			label("Скидка:", 6),
			label("ИТОГО:", 12),
			label("Оплачено:", 18),
			label("Статус:", 24),
		),
		col.New(3).Add(
			value(money.Format(subtotal), 0),
			value(money.Format(invoice.Discount), 6),
			value(money.Format(invoice.TotalAmount), 12),
			value(money.Format(invoice.PaidAmount), 18),
			value(invoice.Status, 24),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
