// Package pdf рендерит печатную форму счёта в PDF через maroto.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceData — данные печатной формы, собираются хендлером из моделей.
type InvoiceData struct {
	InvoiceID     int64
	Title         string
	Comment       string
	Status        string
	CustomerName  string
	CustomerEmail string
	TotalSum      float64
	StartDate     *time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	Rows          []RowData
}

// RowData — строка таблицы печатной формы.
type RowData struct {
	Description string
	Quantity    float64
	Amount      float64
	Sum         float64
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02.01.2006")
}

// Render собирает PDF-документ счёта и возвращает его байты.
func Render(d InvoiceData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(12,
		text.NewCol(12, fmt.Sprintf("Invoice #%d — %s", d.InvoiceID, d.Title), props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(6,
		text.NewCol(6, "Customer: "+d.CustomerName, props.Text{Size: 10}),
		text.NewCol(6, "Status: "+d.Status, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, "Email: "+d.CustomerEmail, props.Text{Size: 10}),
		text.NewCol(6, "Created: "+d.CreatedAt.Format("02.01.2006"), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, "Start date: "+formatDate(d.StartDate), props.Text{Size: 10}),
		text.NewCol(6, "End date: "+formatDate(d.EndDate), props.Text{Size: 10, Align: align.Right}),
	)
	if d.Comment != "" {
		m.AddRow(6, text.NewCol(12, d.Comment, props.Text{Size: 9, Style: fontstyle.Italic}))
	}

	m.AddRows(row.New(2).Add(col.New(12).Add(line.New())))

	// шапка таблицы строк
	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Quantity", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Sum", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, r := range d.Rows {
		m.AddRow(6,
			text.NewCol(6, r.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%.2f", r.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", r.Amount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", r.Sum), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRows(row.New(2).Add(col.New(12).Add(line.New())))
	m.AddRow(10,
		text.NewCol(12, fmt.Sprintf("Total: %.2f", d.TotalSum), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
