package port

import (
	"context"
	"portfolio-service/internal/core/domain"
)

// PropertyStorePort - контракт удаленного хранилища с единственной таблицей properties.
// Insert и Update возвращают строки, которые вернул сервер (returning *).
type PropertyStorePort interface {
	SelectAll(ctx context.Context) ([]domain.Property, error)
	Insert(ctx context.Context, input domain.PropertyInput) ([]domain.Property, error)
	Update(ctx context.Context, id int64, input domain.PropertyInput) ([]domain.Property, error)
	Delete(ctx context.Context, id int64) error
}

// PropertyEventsPort - куда отправляются события об изменениях портфеля.
type PropertyEventsPort interface {
	PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error
}

// FormValidatorPort проверяет форму на уровне ввода (обязательные поля и перечисления)
// и возвращает нормализованную копию.
type FormValidatorPort interface {
	ValidateForm(form domain.PropertyForm) (domain.PropertyForm, error)
}
