package currency

import (
	"strings"

	"github.com/ministore-next/internal/models"
)

// Formatter renders Money amounts for display: currency symbol, thousands
// grouping, fixed 2 decimals. Matches the storefront's badge and cart page
// formatting, e.g. "₱1,234.56".
type Formatter struct {
	Symbol string
	Code   string
}

// New creates a formatter. An empty symbol falls back to the peso sign.
func New(symbol, code string) Formatter {
	if strings.TrimSpace(symbol) == "" {
		symbol = "₱"
	}
	if strings.TrimSpace(code) == "" {
		code = "PHP"
	}
	return Formatter{Symbol: symbol, Code: code}
}

// Format renders an amount with the configured symbol.
func (f Formatter) Format(amount models.Money) string {
	fixed := amount.String() // always "-?digits.dd"
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart, fracPart = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(f.Symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
