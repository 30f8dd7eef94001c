package service

import (
	"context"
	"errors"

	"github.com/avvvet/fantasy-services/internal/apisvc/models"
	"github.com/avvvet/fantasy-services/internal/comm"
)

var ErrTriggerUnavailable = errors.New("settlement trigger unavailable")

// SettlementService is the admin view over settlement runs.
type SettlementService struct {
	repo    SettlementRepository
	trigger SettlementTrigger
}

func NewSettlementService(repo SettlementRepository, trigger SettlementTrigger) *SettlementService {
	return &SettlementService{repo: repo, trigger: trigger}
}

func (s *SettlementService) RecentRuns(ctx context.Context, limit int) ([]*models.SettlementRun, error) {
	return s.repo.RecentRuns(ctx, limit)
}

func (s *SettlementService) RunNow(ctx context.Context) (*comm.SettlementReport, error) {
	if s.trigger == nil {
		return nil, ErrTriggerUnavailable
	}
	return s.trigger.TriggerSettlement(ctx)
}
