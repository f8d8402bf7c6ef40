package report

import (
	"strconv"
	"strings"
)

// FormatIndianCurrency groups the integer part of s the Indian way: the last
// three digits, then pairs. A decimal suffix is kept as is. negative adds a
// leading "- ".
//
//	FormatIndianCurrency("1234567", false) == "12,34,567"
//	FormatIndianCurrency("5000", true)     == "- 5,000"
func FormatIndianCurrency(s string, negative bool) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	var b strings.Builder
	if n := len(intPart); n > 3 {
		head, tail := intPart[:n-3], intPart[n-3:]
		if len(head)%2 == 1 {
			b.WriteString(head[:1])
			head = head[1:]
		}
		for len(head) > 0 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(head[:2])
			head = head[2:]
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(intPart)
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if negative {
		out = "- " + out
	}
	return out
}

// FormatAmount formats an integer amount with Indian grouping
func FormatAmount(n int64, negative bool) string {
	return FormatIndianCurrency(strconv.FormatInt(n, 10), negative)
}
