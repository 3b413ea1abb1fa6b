package portfolio

import "portfolio-service/internal/core/domain"

// ScreenView - все, что нужно для отрисовки страницы: видимые строки и сводка.
type ScreenView struct {
	Query   string
	Rows    []domain.Property
	Summary Summary
	// Loaded = false, пока не было успешной полной загрузки ("Loading...").
	Loaded bool
}

// BuildView строит представление за один проход по текущему списку.
// Сводка считается по полному списку, строки - по отфильтрованному.
func BuildView(list []domain.Property, query string, loaded bool) ScreenView {
	return ScreenView{
		Query:   query,
		Rows:    Filter(list, query),
		Summary: Aggregate(list),
		Loaded:  loaded,
	}
}
