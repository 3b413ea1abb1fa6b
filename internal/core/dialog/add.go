package dialog

import (
	"context"
	"fmt"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/port/usecases_port"
)

// AddDialog - форма добавления объекта. После успеха можно сразу ввести следующий.
type AddDialog struct {
	machine
	writer    usecases_port.PropertyWriterUseCase
	validator port.FormValidatorPort
	sink      ListSink
	created   *domain.Property
}

func NewAddDialog(id string, writer usecases_port.PropertyWriterUseCase, validator port.FormValidatorPort, sink ListSink) (*AddDialog, error) {
	if writer == nil || sink == nil {
		return nil, fmt.Errorf("add dialog: writer and list sink are required")
	}
	return &AddDialog{
		machine:   machine{id: id, kind: KindAdd, state: StateClosed, form: domain.NewPropertyForm()},
		writer:    writer,
		validator: validator,
		sink:      sink,
	}, nil
}

// Open показывает пустую форму.
func (d *AddDialog) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateIdle
	d.form = domain.NewPropertyForm()
	d.errMsg = ""
	d.debug = nil
	d.created = nil
}

// Submit создает объект. При ошибке диалог возвращается в idle, введенные значения сохраняются.
func (d *AddDialog) Submit(ctx context.Context, form domain.PropertyForm) (domain.Property, error) {
	if err := d.begin(&form); err != nil {
		return domain.Property{}, err
	}

	normalized, err := validate(d.validator, form)
	if err != nil {
		d.fail(err, "Please fill in all required fields", nil)
		return domain.Property{}, err
	}

	created, err := d.writer.Create(ctx, normalized)
	if err != nil {
		d.fail(err, "Failed to add property. Please try again.", domain.Diagnostics(err))
		return domain.Property{}, err
	}

	d.sink.Add(created)

	d.mu.Lock()
	d.created = &created
	d.state = StateSuccess
	d.mu.Unlock()
	return created, nil
}

// AddAnother сбрасывает форму после успешного добавления.
func (d *AddDialog) AddAnother() error {
	d.mu.Lock()
	state := d.state
	d.mu.Unlock()
	if state != StateSuccess {
		return fmt.Errorf("%w: add another is only available after success", domain.ErrInvalidDialogState)
	}
	d.Open()
	return nil
}

func (d *AddDialog) Close() error {
	return d.close()
}

func (d *AddDialog) Snapshot() Snapshot {
	s := d.snapshot()
	d.mu.Lock()
	s.Target = d.created
	d.mu.Unlock()
	return s
}
