package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/config"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
	"github.com/concilia-retail/concilia-api/pkg/insight"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// InsightService produces a narrative analysis of a period's reconciliation
// state through an external text generator. The generator is opaque: the
// service builds a snapshot, sends it, and returns the text verbatim.
type InsightService struct {
	fiscalRepo     repository.FiscalRecordRepository
	receivableRepo repository.ReceivableRepository
	commissionRepo repository.CommissionRepository
	generator      insight.Generator
	features       config.FeatureConfig
	logger         *logrus.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(
	fiscalRepo repository.FiscalRecordRepository,
	receivableRepo repository.ReceivableRepository,
	commissionRepo repository.CommissionRepository,
	generator insight.Generator,
	features config.FeatureConfig,
	logger *logrus.Logger,
) *InsightService {
	return &InsightService{
		fiscalRepo:     fiscalRepo,
		receivableRepo: receivableRepo,
		commissionRepo: commissionRepo,
		generator:      generator,
		features:       features,
		logger:         logger,
	}
}

// GeneratePeriodInsight builds the period snapshot and returns the generated
// analysis. Refused outright when the insights feature flag is off.
func (s *InsightService) GeneratePeriodInsight(ctx context.Context, period string) (string, error) {
	if !s.features.EnableInsights {
		return "", apperror.NewNotFoundError("Insights feature")
	}
	if !utils.IsValidPeriod(period) {
		return "", apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}

	snapshot, err := s.buildSnapshot(ctx, period)
	if err != nil {
		return "", err
	}

	text, err := s.generator.Generate(ctx, snapshot)
	if err != nil {
		s.logger.WithError(err).WithField("period", period).Error("insight generation failed")
		return "", apperror.NewAppError(502, "Insight generation failed")
	}
	return text, nil
}

func (s *InsightService) buildSnapshot(ctx context.Context, period string) (string, error) {
	counts, err := s.fiscalRepo.CountByDivergenceType(ctx, period)
	if err != nil {
		return "", err
	}

	open, err := s.receivableRepo.ListOpen(ctx, nil)
	if err != nil {
		return "", err
	}

	commissions, err := s.commissionRepo.ListByPeriod(ctx, period)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fechamento %s\n\nDivergências em aberto:\n", period)
	for _, t := range enum.AllDivergenceTypes() {
		if n := counts[t]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", t, n)
		}
	}

	now := time.Now()
	overdueCount := 0
	overdueTotal := decimal.Zero
	for _, r := range open {
		if r.IsOverdue(now) {
			overdueCount++
			overdueTotal = overdueTotal.Add(r.OpenBalance)
		}
	}
	fmt.Fprintf(&b, "\nTítulos vencidos: %d, total em aberto R$ %s\n", overdueCount, overdueTotal.StringFixed(2))

	commissionTotal := decimal.Zero
	for _, c := range commissions {
		commissionTotal = commissionTotal.Add(c.Value)
	}
	fmt.Fprintf(&b, "Comissões do período: %d vendedores, total R$ %s\n", len(commissions), commissionTotal.StringFixed(2))

	return b.String(), nil
}
