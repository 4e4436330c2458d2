package viewmodel

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol prefixes formatted amounts.
const DefaultCurrencySymbol = "RM"

// Formatter renders amounts as localized currency strings.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a formatter using English digit grouping.
func NewFormatter(symbol string) Formatter {
	return Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format renders the absolute value with two decimals, e.g. "RM 1,234.50".
// Digits come from the decimal itself; the printer only supplies the locale's
// separators.
func (f Formatter) Format(amount decimal.Decimal) string {
	p := f.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}

	value := groupDigits(amount.Abs().StringFixed(2), separators(p))
	if f.symbol == "" {
		return value
	}
	return f.symbol + " " + value
}

type localeSeparators struct {
	group   string
	decimal string
}

func separators(p *message.Printer) localeSeparators {
	// "1,000.5" in English: the rune after the first digit is the group
	// separator, the one before the last digit is the decimal point.
	sample := []rune(p.Sprintf("%.1f", 1000.5))
	seps := localeSeparators{group: ",", decimal: "."}
	if len(sample) == 7 {
		seps.group = string(sample[1])
		seps.decimal = string(sample[5])
	}
	return seps
}

// groupDigits inserts group separators into a non-negative fixed-point string.
func groupDigits(fixed string, seps localeSeparators) string {
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(seps.group)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(seps.decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatSigned prefixes "+" for credits and "-" for everything else.
func (f Formatter) FormatSigned(amount decimal.Decimal) string {
	if amount.Sign() > 0 {
		return "+" + f.Format(amount)
	}
	return "-" + f.Format(amount)
}

// TruncateString truncates a string to the specified length with ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
