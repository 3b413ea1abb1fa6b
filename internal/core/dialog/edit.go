package dialog

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/port/usecases_port"
)

// EditDialog - форма редактирования. Форма ссылки (запись или обертка) определяется
// один раз при открытии, дальше работаем только с нормализованной записью и id.
type EditDialog struct {
	machine
	writer    usecases_port.PropertyWriterUseCase
	validator port.FormValidatorPort
	sink      ListSink

	ref      domain.PropertyRef
	target   domain.Property
	resolved bool
}

func NewEditDialog(id string, writer usecases_port.PropertyWriterUseCase, validator port.FormValidatorPort, sink ListSink) (*EditDialog, error) {
	if writer == nil || sink == nil {
		return nil, fmt.Errorf("edit dialog: writer and list sink are required")
	}
	return &EditDialog{
		machine:   machine{id: id, kind: KindEdit, state: StateClosed, form: domain.NewPropertyForm()},
		writer:    writer,
		validator: validator,
		sink:      sink,
	}, nil
}

// Open открывает диалог для ссылки и заполняет форму.
// Если id определить нельзя, диалог открывается с ошибкой и диагностикой.
func (d *EditDialog) Open(ref domain.PropertyRef) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = StateIdle
	d.errMsg = ""
	d.debug = nil
	d.ref = ref

	record, _, err := domain.ResolveID(ref)
	if err != nil {
		d.resolved = false
		d.target = domain.Property{}
		d.form = domain.NewPropertyForm()
		d.errMsg = "Unexpected property structure. Check diagnostics for details."
		d.debug = map[string]any{
			"error":            "Unexpected property structure",
			"receivedProperty": ref,
		}
		return
	}

	d.resolved = true
	d.target = record
	d.form = domain.FormFromProperty(record)
}

// OpenRaw разбирает ссылку из JSON и открывает диалог.
func (d *EditDialog) OpenRaw(raw json.RawMessage) {
	ref, err := domain.ParsePropertyRef(raw)
	if err != nil {
		d.Open(nil)
		d.mu.Lock()
		d.debug["receivedProperty"] = raw
		d.debug["parseError"] = err.Error()
		d.mu.Unlock()
		return
	}
	d.Open(ref)
}

// Submit сохраняет изменения. Без определенного id хранилище не вызывается.
func (d *EditDialog) Submit(ctx context.Context, form domain.PropertyForm) (domain.Property, error) {
	if err := d.begin(&form); err != nil {
		return domain.Property{}, err
	}

	d.mu.Lock()
	ref, resolved := d.ref, d.resolved
	d.mu.Unlock()

	if !resolved {
		err := &domain.OperationError{
			Op:      "update",
			Kind:    domain.ErrIdentityResolution,
			Message: "Could not determine property ID for update",
			Details: map[string]any{"property": ref},
		}
		d.fail(err, "", domain.Diagnostics(err))
		return domain.Property{}, err
	}

	normalized, err := validate(d.validator, form)
	if err != nil {
		d.fail(err, "Please fill in all required fields", nil)
		return domain.Property{}, err
	}

	updated, err := d.writer.Update(ctx, ref, normalized)
	if err != nil {
		d.fail(err, "Failed to update property", domain.Diagnostics(err))
		return domain.Property{}, err
	}

	d.sink.Replace(updated)

	d.mu.Lock()
	d.ref = domain.RefWith(ref, updated)
	d.target = updated
	d.state = StateSuccess
	d.mu.Unlock()
	return updated, nil
}

func (d *EditDialog) Close() error {
	if err := d.close(); err != nil {
		return err
	}
	d.mu.Lock()
	d.ref, d.target, d.resolved = nil, domain.Property{}, false
	d.mu.Unlock()
	return nil
}

func (d *EditDialog) Snapshot() Snapshot {
	s := d.snapshot()
	d.mu.Lock()
	if d.resolved {
		target := d.target
		s.Target = &target
	}
	d.mu.Unlock()
	return s
}
