// Package dialog реализует модальные формы добавления, редактирования и удаления.
//
// Каждый диалог проходит состояния closed -> idle -> submitting -> success | idle.
// Пока идет отправка, повторная отправка того же диалога отклоняется.
// Между разными диалогами блокировок нет.
package dialog

import (
	"fmt"
	"sync"

	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
)

type State string

const (
	StateClosed     State = "closed"
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

type Kind string

const (
	KindAdd    Kind = "add"
	KindEdit   Kind = "edit"
	KindDelete Kind = "delete"
)

// ListSink - список сессии, в который диалоги применяют результат записи.
type ListSink interface {
	Add(record domain.Property)
	Replace(record domain.Property)
	Remove(id int64)
}

// Snapshot - состояние диалога для отрисовки.
type Snapshot struct {
	ID           string              `json:"id"`
	Kind         Kind                `json:"kind"`
	State        State               `json:"state"`
	Form         domain.PropertyForm `json:"form"`
	Target       *domain.Property    `json:"target,omitempty"`
	ErrorMessage string              `json:"error,omitempty"`
	Debug        map[string]any      `json:"debug,omitempty"`
}

// Dialog - общий интерфейс для реестра.
type Dialog interface {
	ID() string
	Kind() Kind
	Snapshot() Snapshot
	Close() error
}

// machine - общая часть всех диалогов.
type machine struct {
	mu     sync.Mutex
	id     string
	kind   Kind
	state  State
	form   domain.PropertyForm
	errMsg string
	debug  map[string]any
}

func (m *machine) ID() string { return m.id }
func (m *machine) Kind() Kind { return m.kind }

func (m *machine) snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		ID:           m.id,
		Kind:         m.kind,
		State:        m.state,
		Form:         m.form,
		ErrorMessage: m.errMsg,
		Debug:        m.debug,
	}
}

// begin переводит диалог в submitting. Форма сохраняется, чтобы не потерять ввод при ошибке.
func (m *machine) begin(form *domain.PropertyForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateSubmitting:
		return domain.ErrSubmitInProgress
	case StateIdle:
	default:
		return fmt.Errorf("%w: cannot submit %s dialog in state %s", domain.ErrInvalidDialogState, m.kind, m.state)
	}
	if form != nil {
		m.form = *form
	}
	m.state = StateSubmitting
	m.errMsg = ""
	m.debug = nil
	return nil
}

// fail возвращает диалог в idle с сообщением об ошибке.
func (m *machine) fail(err error, fallback string, debug map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateIdle
	m.errMsg = domain.UserMessage(err, fallback)
	m.debug = debug
}

func (m *machine) settle(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = next
}

func (m *machine) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return domain.ErrSubmitInProgress
	}
	m.state = StateClosed
	m.form = domain.NewPropertyForm()
	m.errMsg = ""
	m.debug = nil
	return nil
}

// validate проверяет форму, если валидатор задан, и возвращает нормализованную копию.
func validate(v port.FormValidatorPort, form domain.PropertyForm) (domain.PropertyForm, error) {
	if v == nil {
		return form, nil
	}
	normalized, err := v.ValidateForm(form)
	if err != nil {
		return form, &domain.OperationError{
			Op:      "validate",
			Kind:    domain.ErrValidation,
			Message: err.Error(),
			Err:     err,
		}
	}
	return normalized, nil
}
