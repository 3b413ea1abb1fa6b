package rest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/dialog"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/portfolio"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"intp": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	"floatp": func(v *float64) string {
		if v == nil {
			return ""
		}
		return domain.FormatNumber(*v)
	},
	"strp": func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	},
	"dump": func(v any) string {
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err.Error()
		}
		return string(raw)
	},
}).ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	Title          string
	View           portfolio.ScreenView
	TotalValuation string
	RentalEstimate string
	Dialog         *dialog.Snapshot
	Flash          string
}

// HandlePage - GET /. Параметры: q - строка поиска, dialog - id открытого диалога.
func (h *PortfolioHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandlePage"})
	query := r.URL.Query()

	view := h.screen.View(r.Context(), query.Get("q"))
	data := pageData{
		Title:          "PNFB Holdings Properties",
		View:           view,
		TotalValuation: view.Summary.FormattedTotal(),
		RentalEstimate: h.rentalEstimate,
		Flash:          query.Get("error"),
	}
	if id := query.Get("dialog"); id != "" {
		if d, err := h.dialogs.Get(id); err == nil {
			snapshot := d.Snapshot()
			if snapshot.State != dialog.StateClosed {
				data.Dialog = &snapshot
			}
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page.html", data); err != nil {
		logger.Error("Failed to render page", err, nil)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// HandleUIOpenDialog - POST /ui/dialogs (kind, property_id, q).
func (h *PortfolioHandlers) HandleUIOpenDialog(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleUIOpenDialog"})
	q := r.PostFormValue("q")

	var (
		d   dialog.Dialog
		err error
	)
	switch dialog.Kind(r.PostFormValue("kind")) {
	case dialog.KindAdd:
		d, err = h.dialogs.OpenAdd()
	case dialog.KindEdit, dialog.KindDelete:
		var target domain.Property
		target, err = h.lookup(r.PostFormValue("property_id"))
		if err != nil {
			break
		}
		if dialog.Kind(r.PostFormValue("kind")) == dialog.KindEdit {
			d, err = h.dialogs.OpenEditRecord(target)
		} else {
			d, err = h.dialogs.OpenDelete(target)
		}
	default:
		err = fmt.Errorf("%w: unknown dialog kind", domain.ErrInvalidDialogState)
	}
	if err != nil {
		logger.Error("Failed to open dialog", err, nil)
		redirectToPage(w, r, q, "", domain.UserMessage(err, "Failed to open dialog"))
		return
	}
	redirectToPage(w, r, q, d.ID(), "")
}

// HandleUISubmitDialog - POST /ui/dialogs/{id}/submit
func (h *PortfolioHandlers) HandleUISubmitDialog(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	d, err := h.dialogs.Get(chi.URLParam(r, "id"))
	if err != nil {
		redirectToPage(w, r, q, "", "Dialog not found")
		return
	}

	form := domain.PropertyForm{
		Address:      r.PostFormValue("address"),
		Type:         r.PostFormValue("type"),
		Bedrooms:     r.PostFormValue("bedrooms"),
		Bathrooms:    r.PostFormValue("bathrooms"),
		Valuation:    r.PostFormValue("valuation"),
		EstateAgent:  r.PostFormValue("estate_agent"),
		SellingAgent: r.PostFormValue("selling_agent"),
		Occupied:     r.PostFormValue("occupied"),
	}
	if form.Occupied == "" {
		form.Occupied = string(domain.OccupiedNo)
	}

	// ошибка уже записана в состояние диалога и будет показана в нем
	snapshot, _ := h.submit(r.Context(), d, form)
	if snapshot.State == dialog.StateClosed {
		redirectToPage(w, r, q, "", "")
		return
	}
	redirectToPage(w, r, q, d.ID(), "")
}

// HandleUIResetDialog - POST /ui/dialogs/{id}/reset
func (h *PortfolioHandlers) HandleUIResetDialog(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	d, err := h.dialogs.Get(chi.URLParam(r, "id"))
	if err != nil {
		redirectToPage(w, r, q, "", "Dialog not found")
		return
	}
	if err := reset(d); err != nil {
		redirectToPage(w, r, q, d.ID(), err.Error())
		return
	}
	redirectToPage(w, r, q, d.ID(), "")
}

// HandleUICloseDialog - POST /ui/dialogs/{id}/close
func (h *PortfolioHandlers) HandleUICloseDialog(w http.ResponseWriter, r *http.Request) {
	q := r.PostFormValue("q")
	id := chi.URLParam(r, "id")
	if err := h.dialogs.Close(id); err != nil {
		// пока идет отправка, диалог не закрывается
		redirectToPage(w, r, q, id, "")
		return
	}
	redirectToPage(w, r, q, "", "")
}

func (h *PortfolioHandlers) lookup(rawID string) (domain.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Property{}, err
	}
	p, ok := h.screen.Find(id)
	if !ok {
		return domain.Property{}, fmt.Errorf("%w: property %d is not in the list", domain.ErrIdentityResolution, id)
	}
	return p, nil
}

func redirectToPage(w http.ResponseWriter, r *http.Request, q, dialogID, flash string) {
	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}
	if dialogID != "" {
		params.Set("dialog", dialogID)
	}
	if flash != "" {
		params.Set("error", flash)
	}
	target := "/"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
