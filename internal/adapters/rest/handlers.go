package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/dialog"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/port/usecases_port"
	"portfolio-service/internal/core/portfolio"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type dialogRegistry interface {
	OpenAdd() (*dialog.AddDialog, error)
	OpenEdit(raw json.RawMessage) (*dialog.EditDialog, error)
	OpenEditRecord(record domain.Property) (*dialog.EditDialog, error)
	OpenDelete(target domain.Property) (*dialog.DeleteDialog, error)
	Get(id string) (dialog.Dialog, error)
	Close(id string) error
	Forget(id string)
}

type PortfolioHandlers struct {
	screen         usecases_port.PortfolioScreenUseCase
	dialogs        dialogRegistry
	rentalEstimate string
}

func NewPortfolioHandlers(screen usecases_port.PortfolioScreenUseCase, dialogs dialogRegistry, rentalPCM int) (*PortfolioHandlers, error) {
	if screen == nil {
		return nil, fmt.Errorf("portfolio screen use case cannot be nil")
	}
	if dialogs == nil {
		return nil, fmt.Errorf("dialog registry cannot be nil")
	}
	return &PortfolioHandlers{
		screen:         screen,
		dialogs:        dialogs,
		rentalEstimate: portfolio.FormatGBP(decimal.NewFromInt(int64(rentalPCM))) + " pcm",
	}, nil
}

// HandleListProperties - GET /api/v1/properties?q=
func (h *PortfolioHandlers) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	view := h.screen.View(r.Context(), r.URL.Query().Get("q"))
	RespondWithJSON(w, http.StatusOK, toViewDTO(view, h.rentalEstimate))
}

// HandleSummary - GET /api/v1/summary
func (h *PortfolioHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	view := h.screen.View(r.Context(), "")
	RespondWithJSON(w, http.StatusOK, toSummaryDTO(view.Summary, h.rentalEstimate))
}

// HandleReload - POST /api/v1/properties/reload, повторная полная загрузка.
func (h *PortfolioHandlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleReload"})
	// загрузка доводится до конца, даже если клиент ушел
	if err := h.screen.Load(context.WithoutCancel(r.Context())); err != nil {
		logger.Error("Reload failed", err, nil)
		WriteJSONError(w, statusFromError(err), domain.UserMessage(err, "Failed to load properties"))
		return
	}
	view := h.screen.View(r.Context(), r.URL.Query().Get("q"))
	RespondWithJSON(w, http.StatusOK, toViewDTO(view, h.rentalEstimate))
}

// HandleOpenDialog - POST /api/v1/dialogs
func (h *PortfolioHandlers) HandleOpenDialog(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleOpenDialog"})

	var reqDTO OpenDialogRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if errors.Is(err, io.EOF) {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	var (
		d   dialog.Dialog
		err error
	)
	switch reqDTO.Kind {
	case dialog.KindAdd:
		d, err = h.dialogs.OpenAdd()
	case dialog.KindEdit:
		d, err = h.dialogs.OpenEdit(reqDTO.Property)
	case dialog.KindDelete:
		var ref domain.PropertyRef
		ref, err = domain.ParsePropertyRef(reqDTO.Property)
		if err == nil {
			var target domain.Property
			target, _, err = domain.ResolveID(ref)
			if err == nil {
				d, err = h.dialogs.OpenDelete(h.current(target))
			}
		}
	default:
		WriteJSONError(w, http.StatusBadRequest, "Field 'kind' must be one of add, edit, delete")
		return
	}
	if err != nil {
		logger.Error("Failed to open dialog", err, port.Fields{"kind": reqDTO.Kind})
		WriteJSONError(w, statusFromError(err), domain.UserMessage(err, "Failed to open dialog"))
		return
	}

	logger.Info("Dialog opened", port.Fields{"dialog_id": d.ID(), "kind": d.Kind()})
	RespondWithJSON(w, http.StatusCreated, d.Snapshot())
}

// HandleGetDialog - GET /api/v1/dialogs/{id}
func (h *PortfolioHandlers) HandleGetDialog(w http.ResponseWriter, r *http.Request) {
	d, err := h.dialogs.Get(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, statusFromError(err), "Dialog not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, d.Snapshot())
}

// HandleSubmitDialog - POST /api/v1/dialogs/{id}/submit, тело - форма (для удаления не нужно).
func (h *PortfolioHandlers) HandleSubmitDialog(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSubmitDialog"})

	d, err := h.dialogs.Get(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, statusFromError(err), "Dialog not found")
		return
	}

	var form domain.PropertyForm
	if d.Kind() != dialog.KindDelete {
		form = domain.NewPropertyForm()
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	snapshot, err := h.submit(r.Context(), d, form)
	if err != nil {
		logger.Warn("Dialog submission failed", port.Fields{"dialog_id": d.ID(), "error": err.Error()})
		RespondWithJSON(w, statusFromError(err), ErrorResponseDTO{
			Error:  domain.UserMessage(err, err.Error()),
			Dialog: &snapshot,
		})
		return
	}
	RespondWithJSON(w, http.StatusOK, snapshot)
}

// HandleResetDialog - POST /api/v1/dialogs/{id}/reset ("Add Another Property").
func (h *PortfolioHandlers) HandleResetDialog(w http.ResponseWriter, r *http.Request) {
	d, err := h.dialogs.Get(chi.URLParam(r, "id"))
	if err != nil {
		WriteJSONError(w, statusFromError(err), "Dialog not found")
		return
	}
	if err := reset(d); err != nil {
		WriteJSONError(w, statusFromError(err), err.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, d.Snapshot())
}

// HandleCloseDialog - DELETE /api/v1/dialogs/{id}
func (h *PortfolioHandlers) HandleCloseDialog(w http.ResponseWriter, r *http.Request) {
	if err := h.dialogs.Close(chi.URLParam(r, "id")); err != nil {
		WriteJSONError(w, statusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PortfolioHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// submit выполняет отправку диалога любого вида. Закрытый после удаления диалог
// убирается из реестра. Запись не отменяется при обрыве запроса.
func (h *PortfolioHandlers) submit(ctx context.Context, d dialog.Dialog, form domain.PropertyForm) (dialog.Snapshot, error) {
	ctx = context.WithoutCancel(ctx)
	var err error
	switch typed := d.(type) {
	case *dialog.AddDialog:
		_, err = typed.Submit(ctx, form)
	case *dialog.EditDialog:
		_, err = typed.Submit(ctx, form)
	case *dialog.DeleteDialog:
		err = typed.Confirm(ctx)
	default:
		err = fmt.Errorf("%w: unsupported dialog %T", domain.ErrInvalidDialogState, d)
	}
	snapshot := d.Snapshot()
	if err == nil && snapshot.State == dialog.StateClosed {
		h.dialogs.Forget(d.ID())
	}
	return snapshot, err
}

func reset(d dialog.Dialog) error {
	add, ok := d.(*dialog.AddDialog)
	if !ok {
		return fmt.Errorf("%w: only the add dialog can be reset", domain.ErrInvalidDialogState)
	}
	return add.AddAnother()
}

// current возвращает актуальную версию записи из списка сессии, если она там есть.
func (h *PortfolioHandlers) current(record domain.Property) domain.Property {
	if p, ok := h.screen.Find(record.ID); ok {
		return p
	}
	return record
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid property id %q", domain.ErrIdentityResolution, raw)
	}
	return id, nil
}
