package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees formats an amount with Indian digit grouping.
// Example: 1234567.5 -> "Rs. 12,34,567.50"
func FormatRupees(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.SplitN(d.StringFixed(2), ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	// Last three digits form one group, everything above groups by two.
	if len(integerPart) > 3 {
		head, tail := integerPart[:len(integerPart)-3], integerPart[len(integerPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		integerPart = strings.Join(groups, ",") + "," + tail
	}

	return sign + "Rs. " + integerPart + "." + decimalPart
}

// SumMoney adds amounts in decimal to avoid float drift and rounds to paise.
func SumMoney(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

// MoneyEqual compares two amounts at paise precision.
func MoneyEqual(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}
