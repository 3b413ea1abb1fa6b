package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок, которые возвращают use cases и диалоги.
var (
	ErrRemoteRead         = errors.New("remote read failed")
	ErrRemoteWrite        = errors.New("remote write failed")
	ErrIdentityResolution = errors.New("could not determine property ID for update")
	ErrNoRowsReturned     = errors.New("no data returned from the server")
	ErrValidation         = errors.New("form validation failed")

	ErrSubmitInProgress   = errors.New("submission already in progress")
	ErrDialogNotFound     = errors.New("dialog not found")
	ErrInvalidDialogState = errors.New("operation not allowed in current dialog state")
)

// OperationError - ошибка операции с коротким сообщением для пользователя
// и исходной ошибкой для диагностики.
type OperationError struct {
	Op      string
	Kind    error
	Message string
	Err     error
	Details map[string]any
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *OperationError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UserMessage достает сообщение для пользователя из цепочки ошибок.
func UserMessage(err error, fallback string) string {
	var opErr *OperationError
	if errors.As(err, &opErr) && opErr.Message != "" {
		return opErr.Message
	}
	return fallback
}

// Diagnostics собирает данные для диагностической панели.
func Diagnostics(err error) map[string]any {
	if err == nil {
		return nil
	}
	info := map[string]any{"error": err.Error()}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		info["operation"] = opErr.Op
		for k, v := range opErr.Details {
			info[k] = v
		}
	}
	return info
}
