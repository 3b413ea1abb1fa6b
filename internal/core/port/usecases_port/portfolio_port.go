package usecases_port

import (
	"context"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/portfolio"
)

// PropertyWriterUseCase - операции записи, которыми пользуются диалоги.
type PropertyWriterUseCase interface {
	Create(ctx context.Context, form domain.PropertyForm) (domain.Property, error)
	Update(ctx context.Context, ref domain.PropertyRef, form domain.PropertyForm) (domain.Property, error)
	Remove(ctx context.Context, id int64) error
}

// PortfolioScreenUseCase - данные для страницы со списком объектов.
type PortfolioScreenUseCase interface {
	Load(ctx context.Context) error
	View(ctx context.Context, query string) portfolio.ScreenView
	Find(id int64) (domain.Property, bool)
}
