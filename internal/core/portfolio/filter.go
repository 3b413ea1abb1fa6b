package portfolio

import (
	"slices"
	"strconv"
	"strings"

	"portfolio-service/internal/core/domain"
)

// Filter возвращает записи, в одном из текстовых полей которых встречается query
// (без учета регистра). Результат всегда отсортирован по id по возрастанию,
// независимо от порядка во входном списке. Пустой query пропускает все записи.
func Filter(list []domain.Property, query string) []domain.Property {
	needle := strings.ToLower(query)

	result := make([]domain.Property, 0, len(list))
	for _, p := range list {
		if Matches(p, needle) {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, func(a, b domain.Property) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return result
}

// Matches проверяет одну запись. needle должен быть уже в нижнем регистре.
// Отсутствующие агенты и числа никогда не совпадают.
func Matches(p domain.Property, needle string) bool {
	if containsFold(p.Address, needle) ||
		containsFold(string(p.Type), needle) ||
		containsFold(string(p.Occupied), needle) {
		return true
	}
	if p.Bedrooms != nil && strings.Contains(strconv.Itoa(*p.Bedrooms), needle) {
		return true
	}
	if p.Bathrooms != nil && strings.Contains(domain.FormatNumber(*p.Bathrooms), needle) {
		return true
	}
	if p.EstateAgent != nil && containsFold(*p.EstateAgent, needle) {
		return true
	}
	if p.SellingAgent != nil && containsFold(*p.SellingAgent, needle) {
		return true
	}
	return false
}

func containsFold(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}
