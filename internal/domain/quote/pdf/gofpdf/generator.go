package gofpdf

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"ss-quote/go_backend/internal/domain/quote"
)

const (
	regularFont = "internal/domain/quote/pdf/gofpdf/fonts/NanumGothic.ttf"
	boldFont    = "internal/domain/quote/pdf/gofpdf/fonts/NanumGothicBold.ttf"
)

// Renderer draws the comparison quote directly with gofpdf instead of
// converting the workbook. Last-resort backend for hosts without Excel or
// LibreOffice; the layout is simpler than the spreadsheet template.
type Renderer struct {
	Quote quote.Quote
}

func New(q quote.Quote) *Renderer { return &Renderer{Quote: q} }

func (r *Renderer) Name() string { return "native" }

func (r *Renderer) Available() bool {
	_, err := os.Stat(regularFont)
	return err == nil
}

// Convert ignores the workbook bytes; it renders from the quote model.
func (r *Renderer) Convert(ctx context.Context, workbook []byte) ([]byte, error) {
	q := r.Quote

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("비교 견적서", false)
	pdf.AddUTF8Font("Nanum", "", regularFont)
	pdf.AddUTF8Font("Nanum", "B", boldFont)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	pdf.AddPage()

	pdf.SetFont("Nanum", "B", 16)
	pdf.Cell(0, 10, "비교 견적서")
	pdf.Ln(10)

	pdf.SetFont("Nanum", "", 11)
	if q.Recipient != "" {
		pdf.Cell(0, 6, q.Recipient)
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("견적일: %s", quote.DateLabel(q.Date)))
	pdf.Ln(8)

	r.planTable(pdf, "1안", q.Plan1)
	pdf.Ln(6)
	r.planTable(pdf, "2안", q.Plan2)

	pdf.Ln(6)
	pdf.SetFont("Nanum", "B", 12)
	pdf.Cell(0, 7, q.Summary)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) planTable(pdf *gofpdf.Fpdf, title string, p quote.Plan) {
	pdf.SetFont("Nanum", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)

	pdf.SetFont("Nanum", "B", 10)
	pdf.Cell(90, 6, "모델")
	pdf.Cell(30, 6, "단가")
	pdf.Cell(20, 6, "수량")
	pdf.Cell(30, 6, "금액")
	pdf.Ln(6)

	pdf.SetFont("Nanum", "", 10)
	for _, it := range p.Rows {
		if it.Empty() {
			continue
		}
		pdf.Cell(90, 6, trim(it.Model, 48))
		pdf.Cell(30, 6, quote.FormatWon(it.Price))
		pdf.Cell(20, 6, fmt.Sprintf("%d", it.Qty))
		pdf.Cell(30, 6, quote.FormatWon(it.LineTotal()))
		pdf.Ln(6)
	}

	pdf.SetFont("Nanum", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("합계 %s / 선납 %s", quote.FormatWon(p.Total), quote.FormatWon(p.Prepay)))
	pdf.Ln(6)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
