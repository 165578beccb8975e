// Package pdf genera el reporte de reposición de estoque con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Confeitaria + título  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingrediente | Cat. | Est. | Mín. | Falta | Validade │
//	│         | Custo unit. | Custo reposição                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: custo estimado de reposição                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeitaria-api/internal/application/stock"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

var _ stock.RestockReportGenerator = (*RestockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 45, Blue: 82}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// RestockReportGenerator implementa stock.RestockReportGenerator usando Maroto v2.
type RestockReportGenerator struct {
	title string
}

// NewRestockReportGenerator construye el generador. title aparece en el encabezado.
func NewRestockReportGenerator(title string) *RestockReportGenerator {
	if title == "" {
		title = "Confeitaria"
	}
	return &RestockReportGenerator{title: title}
}

// GenerateRestockReport genera el PDF y devuelve sus bytes. Sin ítems produce un reporte vacío.
func (g *RestockReportGenerator) GenerateRestockReport(_ context.Context, items []*entity.Ingredient, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de reposição de estoque", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt, len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(items) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhum ingrediente abaixo do nível mínimo.", props.Text{
				Size: 10, Align: align.Center, Top: 4, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(items, generatedAt)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(totalRow(items))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time, count int) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("RELATÓRIO DE REPOSIÇÃO DE ESTOQUE", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d ingrediente(s)", count), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingrediente", 3, align.Left),
		h("Categoria", 2, align.Left),
		h("Est.", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Falta", 1, align.Center),
		h("Validade", 1, align.Center),
		h("Custo unit.", 1, align.Right),
		h("Reposição", 2, align.Right),
	)
}

// tableDetailRows una fila por ingrediente. La validade vencida se marca en rojo.
func tableDetailRows(items []*entity.Ingredient, now time.Time) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		expiry := props.Text{Size: 8, Align: align.Center, Top: 1}
		if it.ExpiryDate.Before(now) {
			expiry.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Category, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprint(it.UnitCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprint(it.MinimumThreshold), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprint(shortfall(it)), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(it.ExpiryDate.Format("02/01/06"), expiry)),
			col.New(1).Add(text.New(formatMoney(it.CostPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(restockCost(it)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(items []*entity.Ingredient) core.Row {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(restockCost(it))
	}
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("CUSTO ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 2, Color: colorPrimary,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortfall unidades que faltan para volver al nivel mínimo; al menos 1 cuando está en el mínimo.
func shortfall(it *entity.Ingredient) int {
	n := it.MinimumThreshold - it.UnitCount
	if n < 1 {
		return 1
	}
	return n
}

func restockCost(it *entity.Ingredient) decimal.Decimal {
	return it.CostPrice.Mul(decimal.NewFromInt(int64(shortfall(it))))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea en reales con separador de miles. Ej: 1234.5 → "R$ 1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := "R$ " + string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
