package portfolio

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// maxExponent - предел показателя степени в оценке. Больше - строка считается нечисловой.
const maxExponent = 30

var (
	currencyNoise = strings.NewReplacer("£", "", ",", "")
	numberPrefix  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)(?:[eE]([+-]?\d+))?`)

	maxPence = decimal.NewFromInt(math.MaxInt64)
)

// ParseCurrency убирает символы £ и запятые и разбирает число в начале строки.
// Пустая или нечисловая строка дает 0.
//
//	ParseCurrency("£1,234.50") == 1234.50
//	ParseCurrency("1,234")     == 1234
//	ParseCurrency("")          == 0
func ParseCurrency(raw string) decimal.Decimal {
	cleaned := strings.TrimLeft(currencyNoise.Replace(raw), " \t\n\r")
	m := numberPrefix.FindStringSubmatch(cleaned)
	if m == nil {
		return decimal.Zero
	}
	if exp := m[2]; exp != "" {
		e, err := strconv.Atoi(exp)
		if err != nil || e > maxExponent || e < -maxExponent {
			return decimal.Zero
		}
	}
	value, err := decimal.NewFromString(m[0])
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParseValuation - то же, что ParseCurrency, но отсутствующая оценка дает 0.
func ParseValuation(valuation *string) decimal.Decimal {
	if valuation == nil {
		return decimal.Zero
	}
	return ParseCurrency(*valuation)
}

// FormatGBP форматирует сумму в фунтах с разделителями разрядов: £350,500.50.
// Округление до пенсов происходит только здесь.
func FormatGBP(amount decimal.Decimal) string {
	pence := amount.Round(2).Shift(2)
	if pence.Abs().LessThanOrEqual(maxPence) {
		return money.New(pence.IntPart(), money.GBP).Display()
	}
	return formatLargeGBP(amount)
}

// formatLargeGBP - запасной путь для сумм, у которых пенсы не помещаются в int64.
func formatLargeGBP(amount decimal.Decimal) string {
	gbp := money.GetCurrency(money.GBP)

	whole, frac, _ := strings.Cut(amount.Abs().StringFixed(2), ".")
	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(gbp.Thousand)
		}
		b.WriteRune(digit)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + gbp.Grapheme + b.String() + gbp.Decimal + frac
}
