package quote

import (
	"strconv"
	"strings"
	"time"
)

// RawRow is one line item as posted by the UI bridge. Price and qty arrive
// as whatever the form produced: a number, a string with separators, or
// nothing at all.
type RawRow struct {
	Model string      `json:"model"`
	Price interface{} `json:"price"`
	Qty   interface{} `json:"qty"`
}

// NormalizeRows drops fully empty rows, pads the rest with placeholders up
// to MaxTemplateRows and truncates anything past the template capacity.
// The second result reports whether rows were cut. The output always has
// exactly MaxTemplateRows items.
func NormalizeRows(raw []RawRow) ([]LineItem, bool) {
	kept := make([]LineItem, 0, len(raw))
	for _, r := range raw {
		it := LineItem{
			Model: strings.TrimSpace(r.Model),
			Price: ParseNumber(r.Price),
			Qty:   ParseNumber(r.Qty),
		}
		if it.Empty() {
			continue
		}
		kept = append(kept, it)
	}

	truncated := false
	if len(kept) > MaxTemplateRows {
		kept = kept[:MaxTemplateRows]
		truncated = true
	}
	if len(kept) == 0 {
		kept = append(kept, LineItem{})
	}
	for len(kept) < MaxTemplateRows {
		kept = append(kept, LineItem{})
	}
	return kept, truncated
}

// ParseNumber coerces form input to a non-negative integer. Strings are
// reduced to their digits, everything unparsable counts as zero.
func ParseNumber(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		if t < 0 {
			return 0
		}
		return t
	case float64:
		if t < 0 {
			return 0
		}
		return int(t)
	case string:
		var b strings.Builder
		for _, r := range t {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		n, err := strconv.Atoi(b.String())
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ParseFloat coerces a discount rate to float64, defaulting to 0.
func ParseFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParseDate reads a YYYY-MM-DD quote date, falling back to today.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Now()
	}
	return t
}
