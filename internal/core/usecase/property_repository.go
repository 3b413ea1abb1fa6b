package usecase

import (
	"context"
	"errors"
	"fmt"
	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"time"
)

// PropertyRepository переводит данные формы в формат удаленного хранилища и обратно.
// Повторных попыток нет: каждая ошибка окончательна для данной попытки.
type PropertyRepository struct {
	store  port.PropertyStorePort
	events port.PropertyEventsPort
	now    func() time.Time
}

func NewPropertyRepository(store port.PropertyStorePort, events port.PropertyEventsPort) (*PropertyRepository, error) {
	if store == nil {
		return nil, fmt.Errorf("property store cannot be nil")
	}
	if events == nil {
		events = NoopEvents{}
	}
	return &PropertyRepository{store: store, events: events, now: time.Now}, nil
}

// List загружает все строки, отсортированные по id.
func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListProperties"})
	logger.Debug("Fetching properties", nil)

	records, err := r.store.SelectAll(ctx)
	if err != nil {
		logger.Error("Error fetching properties", err, nil)
		return nil, &domain.OperationError{
			Op:      "list",
			Kind:    domain.ErrRemoteRead,
			Message: "Failed to load properties",
			Err:     err,
		}
	}

	logger.Info("Properties fetched", port.Fields{"count": len(records)})
	return records, nil
}

// Create вставляет одну строку и возвращает запись, которую вернул сервер.
func (r *PropertyRepository) Create(ctx context.Context, form domain.PropertyForm) (domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CreateProperty"})

	input := domain.Coerce(form)
	logger.Debug("Submitting new property", port.Fields{"submission": input})

	rows, err := r.store.Insert(ctx, input)
	if err == nil && len(rows) == 0 {
		err = domain.ErrNoRowsReturned
	}
	if err != nil {
		logger.Error("Error adding property", err, port.Fields{"submission": input})
		return domain.Property{}, writeError("create", err, "Failed to add property. Please try again.", map[string]any{
			"submission": input,
		})
	}

	created := rows[0]
	logger.Info("Property created", port.Fields{"property_id": created.ID})
	r.publish(ctx, domain.ChangeCreated, created.ID, &created)
	return created, nil
}

// Update обновляет все редактируемые поля записи, на которую указывает ref.
// Если id определить нельзя, хранилище не вызывается.
func (r *PropertyRepository) Update(ctx context.Context, ref domain.PropertyRef, form domain.PropertyForm) (domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "UpdateProperty"})

	_, id, err := domain.ResolveID(ref)
	if err != nil {
		logger.Error("Could not determine property ID for update", err, port.Fields{"property": ref})
		return domain.Property{}, &domain.OperationError{
			Op:      "update",
			Kind:    domain.ErrIdentityResolution,
			Message: "Could not determine property ID for update",
			Err:     err,
			Details: map[string]any{"property": ref},
		}
	}

	input := domain.Coerce(form)
	logger = logger.WithFields(port.Fields{"property_id": id})
	logger.Debug("Submitting property update", port.Fields{"submission": input, "original_property": ref})

	rows, err := r.store.Update(ctx, id, input)
	if err == nil && len(rows) == 0 {
		err = domain.ErrNoRowsReturned
	}
	if err != nil {
		logger.Error("Error updating property", err, nil)
		return domain.Property{}, writeError("update", err, "Failed to update property", map[string]any{
			"property":   ref,
			"submission": input,
		})
	}

	updated := rows[0]
	logger.Info("Property updated", nil)
	r.publish(ctx, domain.ChangeUpdated, updated.ID, &updated)
	return updated, nil
}

// Remove удаляет строку по id. Успех - отсутствие ошибки от хранилища.
func (r *PropertyRepository) Remove(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	if err := r.store.Delete(ctx, id); err != nil {
		logger.Error("Error deleting property", err, nil)
		return writeError("delete", err, "Failed to delete property", map[string]any{"property_id": id})
	}

	logger.Info("Property deleted", nil)
	r.publish(ctx, domain.ChangeDeleted, id, nil)
	return nil
}

// publish не влияет на результат записи: ошибка только логируется.
func (r *PropertyRepository) publish(ctx context.Context, change domain.ChangeType, id int64, record *domain.Property) {
	event := domain.PropertyChangedEvent{
		Type:       change,
		PropertyID: id,
		Property:   record,
		OccurredAt: r.now().UTC(),
	}
	if err := r.events.PublishPropertyChanged(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to publish property change event", port.Fields{
			"change":      change,
			"property_id": id,
			"error":       err.Error(),
		})
	}
}

func writeError(op string, err error, fallback string, details map[string]any) *domain.OperationError {
	msg := fallback
	if errors.Is(err, domain.ErrNoRowsReturned) {
		msg = "No data returned from the server"
	}
	return &domain.OperationError{
		Op:      op,
		Kind:    domain.ErrRemoteWrite,
		Message: msg,
		Err:     err,
		Details: details,
	}
}

// NoopEvents используется, когда публикация событий выключена.
type NoopEvents struct{}

func (NoopEvents) PublishPropertyChanged(context.Context, domain.PropertyChangedEvent) error {
	return nil
}
