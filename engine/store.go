package engine

import (
	"context"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
)

// DatabaseStore backs the generator with the models package (GORM/MySQL).
type DatabaseStore struct{}

func (DatabaseStore) OpenDiscrepancies(ctx context.Context, scope Scope) ([]*models.Discrepancy, error) {
	return models.GetOpenDiscrepancies(ctx, scope.Zone)
}

func (DatabaseStore) CreateAction(ctx context.Context, action *models.ActionRecommendation) error {
	return models.CreateActionRecommendation(ctx, action)
}
