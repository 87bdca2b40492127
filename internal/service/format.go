package service

import (
	"strconv"
	"strings"
	"time"
)

// formatMonto renders an amount with comma-grouped thousands and two
// decimals, e.g. 12500.5 -> "12,500.50".
func formatMonto(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatFecha renders a date as dd/mm/yyyy for notification messages.
func formatFecha(t time.Time) string {
	return t.Format("02/01/2006")
}
