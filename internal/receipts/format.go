package receipts

import (
	"fmt"
	"strings"
	"time"
)

// formatAmount renders a currency amount with Indian digit grouping and two
// decimals: 1234.5 -> "1,234.50", 123456.7 -> "1,23,456.70".
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	grouped := whole
	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		tail := whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	out := grouped + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatDate converts an ISO date (2006-01-02) to DD/MM/YYYY. Input that does
// not parse is returned unchanged so a bad date never blocks a receipt.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
