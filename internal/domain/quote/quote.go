package quote

import "time"

// MaxTemplateRows is the fixed row capacity of the spreadsheet template.
const MaxTemplateRows = 9

type LineItem struct {
	Model string
	Price int
	Qty   int
}

func (it LineItem) LineTotal() int { return it.Price * it.Qty }

func (it LineItem) Empty() bool { return it.Model == "" && it.Price == 0 && it.Qty == 0 }

type Plan struct {
	Rows     []LineItem
	Discount float64
	Total    int
	Prepay   int
}

type Quote struct {
	Recipient string // display label, already carries the 귀하 honorific
	Ext       string
	Email     string
	Date      time.Time
	Plan1     Plan
	Plan2     Plan
	Summary   string
}
