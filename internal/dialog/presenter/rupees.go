package presenter

import (
	"strconv"
	"strings"
)

// FormatRupees renders an amount as an integer rupee value grouped per the
// Indian convention (last three digits, then pairs): 500000 → "₹5,00,000".
// Numeric strings are parsed first; a non-numeric string is returned
// unchanged.
func FormatRupees(amount any) string {
	switch v := amount.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if ferr != nil {
				return v
			}
			n = int64(f)
		}
		return "₹" + groupIndian(n)
	case int:
		return "₹" + groupIndian(int64(v))
	case int64:
		return "₹" + groupIndian(v)
	case float64:
		return "₹" + groupIndian(int64(v))
	default:
		return ""
	}
}

func groupIndian(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	tail := s[len(s)-3:]
	head := s[:len(s)-3]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return sign + strings.Join(append(groups, tail), ",")
}
