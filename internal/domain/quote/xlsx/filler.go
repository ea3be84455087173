package xlsx

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"ss-quote/go_backend/internal/domain/quote"
)

var ErrTemplateNotFound = errors.New("quote template not found")

// Cell coordinates of the fixed-layout template. The template ships with the
// deployment; any layout change there has to be mirrored here.
const (
	cellRecipient   = "B4"
	cellSummary     = "B13"
	cellDateLabel   = "D5"
	cellExt         = "D6"
	cellEmail       = "D7"
	cellPlan1Total  = "E11"
	cellPlan2Total  = "N11"
	cellPlan1Prepay = "E12"
	cellPlan2Prepay = "N12"

	firstItemRow = 15
)

// model / price / qty / line total columns per plan.
var (
	plan1Cols = [4]string{"B", "E", "G", "H"}
	plan2Cols = [4]string{"K", "N", "P", "Q"}
)

type Filler struct {
	TemplatePath string
}

func New(templatePath string) *Filler { return &Filler{TemplatePath: templatePath} }

// Fill loads the template, writes the quote into its fixed cells and returns
// the serialized workbook. Zero prices, quantities and line totals are
// written as blank cells rather than "0".
func (f *Filler) Fill(q quote.Quote) ([]byte, error) {
	if _, err := os.Stat(f.TemplatePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, f.TemplatePath)
	}
	wb, err := excelize.OpenFile(f.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer wb.Close()

	w := &sheetWriter{wb: wb, sheet: wb.GetSheetName(wb.GetActiveSheetIndex())}

	w.set(cellRecipient, q.Recipient)
	w.set(cellSummary, q.Summary)
	w.set(cellDateLabel, quote.DateLabel(q.Date))
	w.set(cellExt, q.Ext)
	w.set(cellEmail, q.Email)

	w.set(cellPlan1Total, q.Plan1.Total)
	w.set(cellPlan2Total, q.Plan2.Total)
	w.set(cellPlan1Prepay, q.Plan1.Prepay)
	w.set(cellPlan2Prepay, q.Plan2.Prepay)

	w.fillPlan(plan1Cols, q.Plan1.Rows)
	w.fillPlan(plan2Cols, q.Plan2.Rows)

	if w.err != nil {
		return nil, fmt.Errorf("fill template: %w", w.err)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetWriter struct {
	wb    *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, v interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.wb.SetCellValue(w.sheet, cell, v)
}

func (w *sheetWriter) fillPlan(cols [4]string, rows []quote.LineItem) {
	for i, it := range rows {
		row := firstItemRow + i
		w.set(fmt.Sprintf("%s%d", cols[0], row), it.Model)
		w.set(fmt.Sprintf("%s%d", cols[1], row), blankIfZero(it.Price))
		w.set(fmt.Sprintf("%s%d", cols[2], row), blankIfZero(it.Qty))
		w.set(fmt.Sprintf("%s%d", cols[3], row), blankIfZero(it.LineTotal()))
	}
}

func blankIfZero(v int) interface{} {
	if v == 0 {
		return ""
	}
	return v
}
