package engine

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCurrency renders a rupee amount for display: "₹" prefix, whole
// rupees, and Indian digit grouping (last three digits, then pairs), e.g.
// 123456 -> "₹1,23,456". Fractions are rounded away at this boundary only.
func FormatCurrency(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	n := int64(math.Round(value))
	return sign + "₹" + groupIndian(n)
}

// FormatPercentage renders a percentage with an explicit sign and two decimal
// places, e.g. 5.67 -> "+5.67%".
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value)
}

// groupIndian inserts commas per the Indian numbering convention: the last
// three digits form one group, every preceding pair another.
func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	grouped := tail
	for len(head) > 2 {
		grouped = head[len(head)-2:] + "," + grouped
		head = head[:len(head)-2]
	}
	return head + "," + grouped
}
