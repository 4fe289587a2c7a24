package engine

import (
	"context"
	"errors"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/sirupsen/logrus"
)

// Scope is the subset of discrepancies one generation run considers.
// The zero value means "all open discrepancies".
type Scope struct {
	Zone string
}

// DiscrepancySource reads eligible discrepancies. The engine never mutates
// them; the store behind this interface is an external collaborator.
type DiscrepancySource interface {
	OpenDiscrepancies(ctx context.Context, scope Scope) ([]*models.Discrepancy, error)
}

// ActionStore persists recommendations. CreateAction must return
// models.ErrDuplicateAction on a (discrepancyId, type) collision; under
// concurrent generation exactly one insert wins and the rest must see that
// error, which the generator treats as a benign skip.
type ActionStore interface {
	CreateAction(ctx context.Context, action *models.ActionRecommendation) error
}

// GenerateResult reports one generation run. FailedCount surfaces per-item
// persistence failures; duplicates are not failures.
type GenerateResult struct {
	Actions           []*models.ActionRecommendation
	SkippedDuplicates int
	FailedCount       int
}

type Generator struct {
	source DiscrepancySource
	store  ActionStore
	logger *logrus.Logger
}

func NewGenerator(source DiscrepancySource, store ActionStore, logger *logrus.Logger) *Generator {
	return &Generator{source: source, store: store, logger: logger}
}

// Generate evaluates every open discrepancy in scope and persists the
// candidate actions. Best effort: a failure on one candidate is logged and
// counted, the rest of the scope still runs. Re-running on an unchanged
// discrepancy set creates nothing new.
func (g *Generator) Generate(ctx context.Context, scope Scope) (*GenerateResult, error) {
	discrepancies, err := g.source.OpenDiscrepancies(ctx, scope)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{}
	for _, disc := range discrepancies {
		for _, candidate := range Evaluate(disc) {
			action := &models.ActionRecommendation{
				Type:            candidate.Type,
				Priority:        candidate.Priority,
				Description:     candidate.Description,
				Instructions:    candidate.Instructions,
				DiscrepancyId:   disc.ID,
				Sku:             disc.Sku,
				LocationCode:    disc.LocationCode,
				EstimatedImpact: candidate.EstimatedImpact,
				Status:          models.ActionStatusPending,
			}
			if err := g.store.CreateAction(ctx, action); err != nil {
				if errors.Is(err, models.ErrDuplicateAction) {
					result.SkippedDuplicates++
					continue
				}
				result.FailedCount++
				if g.logger != nil {
					config.LogError(g.logger, "engine", "Generate", "CreateAction "+string(candidate.Type), disc.ID, err)
				}
				continue
			}
			result.Actions = append(result.Actions, action)
		}
	}
	return result, nil
}
