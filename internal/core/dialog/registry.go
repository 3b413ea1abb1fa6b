package dialog

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// DefaultMaxOpen - сколько открытых диалогов держит реестр, прежде чем забыть самые старые.
const DefaultMaxOpen = 256

// Registry хранит открытые диалоги по id для HTTP-слоя.
type Registry struct {
	mu      sync.Mutex
	dialogs map[string]Dialog
	order   []string
	maxOpen int

	writer    usecases_port.PropertyWriterUseCase
	validator port.FormValidatorPort
	sink      ListSink
	newID     func() string
}

func NewRegistry(writer usecases_port.PropertyWriterUseCase, validator port.FormValidatorPort, sink ListSink) (*Registry, error) {
	if writer == nil {
		return nil, fmt.Errorf("property writer cannot be nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("list sink cannot be nil")
	}
	return &Registry{
		dialogs:   make(map[string]Dialog),
		maxOpen:   DefaultMaxOpen,
		writer:    writer,
		validator: validator,
		sink:      sink,
		newID:     func() string { return uuid.New().String() },
	}, nil
}

func (r *Registry) OpenAdd() (*AddDialog, error) {
	d, err := NewAddDialog(r.newID(), r.writer, r.validator, r.sink)
	if err != nil {
		return nil, err
	}
	d.Open()
	r.put(d)
	return d, nil
}

// OpenEdit принимает ссылку в любой из двух форм в виде JSON.
func (r *Registry) OpenEdit(raw json.RawMessage) (*EditDialog, error) {
	d, err := NewEditDialog(r.newID(), r.writer, r.validator, r.sink)
	if err != nil {
		return nil, err
	}
	d.OpenRaw(raw)
	r.put(d)
	return d, nil
}

// OpenEditRecord открывает редактирование уже известной записи.
func (r *Registry) OpenEditRecord(record domain.Property) (*EditDialog, error) {
	d, err := NewEditDialog(r.newID(), r.writer, r.validator, r.sink)
	if err != nil {
		return nil, err
	}
	d.Open(domain.BareRef{Property: record})
	r.put(d)
	return d, nil
}

func (r *Registry) OpenDelete(target domain.Property) (*DeleteDialog, error) {
	d, err := NewDeleteDialog(r.newID(), r.writer, r.sink)
	if err != nil {
		return nil, err
	}
	d.Open(target)
	r.put(d)
	return d, nil
}

func (r *Registry) Get(id string) (Dialog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dialogs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDialogNotFound, id)
	}
	return d, nil
}

// Close закрывает диалог и убирает его из реестра.
func (r *Registry) Close(id string) error {
	d, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := d.Close(); err != nil {
		return err
	}
	r.Forget(id)
	return nil
}

// Forget убирает диалог из реестра без закрытия (например, после удаления).
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dialogs, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dialogs)
}

func (r *Registry) put(d Dialog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialogs[d.ID()] = d
	r.order = append(r.order, d.ID())

	for len(r.order) > r.maxOpen {
		// отправляемые и только что открытый диалог не вытесняем
		evicted := false
		for i, id := range r.order {
			if id == d.ID() || r.dialogs[id].Snapshot().State == StateSubmitting {
				continue
			}
			delete(r.dialogs, id)
			r.order = slices.Delete(r.order, i, i+1)
			evicted = true
			break
		}
		if !evicted {
			return
		}
	}
}
