package quote

import (
	"fmt"
	"math"
	"strconv"
)

func ComputeTotal(rows []LineItem) int {
	sum := 0
	for _, it := range rows {
		sum += it.Price * it.Qty
	}
	return sum
}

// ComputePrepay applies the discount rate to a raw total. Negative rates are
// treated as zero. Rates above 1.0 are passed through and yield a negative
// prepay total; whether that is a feature is an open product question, so
// the behavior is kept as-is.
func ComputePrepay(total int, discount float64) int {
	if discount < 0 {
		discount = 0
	}
	return int(math.Round(float64(total) * (1 - discount)))
}

// BuildSummary describes the monthly difference between the two prepay
// totals from plan 1's point of view.
func BuildSummary(prepay1, prepay2 int) string {
	switch {
	case prepay2 < prepay1:
		diff := prepay1 - prepay2
		return fmt.Sprintf("연 %s 할인 / 월 %s 할인", FormatWon(diff*12), FormatWon(diff))
	case prepay2 > prepay1:
		return fmt.Sprintf("월 %s 추가", FormatWon(prepay2-prepay1))
	default:
		return "차이 0원"
	}
}

// FormatWon renders an amount with thousands separators and the 원 suffix.
func FormatWon(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.Itoa(v)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out) + "원"
}
