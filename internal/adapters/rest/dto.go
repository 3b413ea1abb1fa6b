package rest

import (
	"encoding/json"

	"portfolio-service/internal/core/dialog"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/portfolio"
)

type ErrorResponseDTO struct {
	Error  string           `json:"error"`
	Dialog *dialog.Snapshot `json:"dialog,omitempty"`
}

type SummaryDTO struct {
	Count int `json:"count"`
	// TotalValuation - точная сумма строкой, без округления.
	TotalValuation string `json:"total_valuation"`
	FormattedTotal string `json:"formatted_total"`
	RentalEstimate string `json:"rental_estimate"`
}

type PortfolioViewDTO struct {
	Query   string            `json:"query"`
	Loaded  bool              `json:"loaded"`
	Summary SummaryDTO        `json:"summary"`
	Rows    []domain.Property `json:"rows"`
}

// OpenDialogRequestDTO - тело POST /api/v1/dialogs.
// Property может быть записью или оберткой {"propertyData": {...}}.
type OpenDialogRequestDTO struct {
	Kind     dialog.Kind     `json:"kind"`
	Property json.RawMessage `json:"property,omitempty"`
}

func toSummaryDTO(s portfolio.Summary, rentalEstimate string) SummaryDTO {
	return SummaryDTO{
		Count:          s.Count,
		TotalValuation: s.TotalValuation.String(),
		FormattedTotal: s.FormattedTotal(),
		RentalEstimate: rentalEstimate,
	}
}

func toViewDTO(v portfolio.ScreenView, rentalEstimate string) PortfolioViewDTO {
	rows := v.Rows
	if rows == nil {
		rows = []domain.Property{}
	}
	return PortfolioViewDTO{
		Query:   v.Query,
		Loaded:  v.Loaded,
		Summary: toSummaryDTO(v.Summary, rentalEstimate),
		Rows:    rows,
	}
}
