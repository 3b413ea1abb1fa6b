package portfolio

import (
	"portfolio-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Summary - сводка по всему портфелю.
type Summary struct {
	// Count считается по полному списку, а не по результату поиска.
	Count          int
	TotalValuation decimal.Decimal
}

// FormattedTotal - итоговая оценка для карточки "Asset Valuation".
func (s Summary) FormattedTotal() string {
	return FormatGBP(s.TotalValuation)
}

// Aggregate считает количество объектов и суммарную оценку без потери точности.
func Aggregate(list []domain.Property) Summary {
	total := decimal.Zero
	for _, p := range list {
		total = total.Add(ParseValuation(p.Valuation))
	}
	return Summary{
		Count:          len(list),
		TotalValuation: total,
	}
}
