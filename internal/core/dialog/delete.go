package dialog

import (
	"context"
	"fmt"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port/usecases_port"
)

// DeleteDialog - подтверждение удаления. После успеха сразу закрывается.
type DeleteDialog struct {
	machine
	writer usecases_port.PropertyWriterUseCase
	sink   ListSink
	target *domain.Property
}

func NewDeleteDialog(id string, writer usecases_port.PropertyWriterUseCase, sink ListSink) (*DeleteDialog, error) {
	if writer == nil || sink == nil {
		return nil, fmt.Errorf("delete dialog: writer and list sink are required")
	}
	return &DeleteDialog{
		machine: machine{id: id, kind: KindDelete, state: StateClosed, form: domain.NewPropertyForm()},
		writer:  writer,
		sink:    sink,
	}, nil
}

func (d *DeleteDialog) Open(target domain.Property) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateIdle
	d.errMsg = ""
	d.debug = nil
	d.target = &target
}

// Confirm удаляет объект.
func (d *DeleteDialog) Confirm(ctx context.Context) error {
	if err := d.begin(nil); err != nil {
		return err
	}

	d.mu.Lock()
	target := d.target
	d.mu.Unlock()
	if target == nil {
		d.fail(domain.ErrIdentityResolution, "No property selected", nil)
		return domain.ErrIdentityResolution
	}

	if err := d.writer.Remove(ctx, target.ID); err != nil {
		d.fail(err, "Failed to delete property", domain.Diagnostics(err))
		return err
	}

	d.sink.Remove(target.ID)
	d.settle(StateClosed)
	return nil
}

func (d *DeleteDialog) Close() error {
	return d.close()
}

func (d *DeleteDialog) Snapshot() Snapshot {
	s := d.snapshot()
	d.mu.Lock()
	s.Target = d.target
	d.mu.Unlock()
	return s
}
