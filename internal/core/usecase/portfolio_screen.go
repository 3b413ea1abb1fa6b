package usecase

import (
	"context"
	"fmt"
	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"
	"portfolio-service/internal/core/portfolio"
)

type propertyLister interface {
	List(ctx context.Context) ([]domain.Property, error)
}

// PortfolioScreenUseCase владеет списком текущей сессии и строит представление страницы.
type PortfolioScreenUseCase struct {
	repo  propertyLister
	state *portfolio.ListState
}

func NewPortfolioScreenUseCase(repo propertyLister, state *portfolio.ListState) (*PortfolioScreenUseCase, error) {
	if repo == nil {
		return nil, fmt.Errorf("property repository cannot be nil")
	}
	if state == nil {
		return nil, fmt.Errorf("list state cannot be nil")
	}
	return &PortfolioScreenUseCase{repo: repo, state: state}, nil
}

// Load выполняет полную загрузку. При ошибке список не меняется и остается
// в состоянии "Loading...", автоматических повторов нет.
func (uc *PortfolioScreenUseCase) Load(ctx context.Context) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "LoadPortfolio"})
	ucLogger.Info("Use case started", nil)

	records, err := uc.repo.List(ctx)
	if err != nil {
		ucLogger.Error("Portfolio load failed, list left untouched", err, nil)
		return err
	}

	uc.state.Reset(records)
	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(records)})
	return nil
}

func (uc *PortfolioScreenUseCase) View(ctx context.Context, query string) portfolio.ScreenView {
	view := portfolio.BuildView(uc.state.Snapshot(), query, uc.state.Loaded())
	contextkeys.LoggerFromContext(ctx).Debug("Portfolio view built", port.Fields{
		"query":   query,
		"visible": len(view.Rows),
		"total":   view.Summary.Count,
	})
	return view
}

func (uc *PortfolioScreenUseCase) Find(id int64) (domain.Property, bool) {
	return uc.state.Find(id)
}
