package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/shopspring/decimal"
)

// memoryStore backs the generator with a map keyed like the database's
// unique index, so duplicate semantics match production.
type memoryStore struct {
	discrepancies []*models.Discrepancy
	created       map[string]*models.ActionRecommendation
	failTypes     map[models.ActionType]error
	nextId        int
}

func newMemoryStore(discrepancies ...*models.Discrepancy) *memoryStore {
	return &memoryStore{
		discrepancies: discrepancies,
		created:       map[string]*models.ActionRecommendation{},
	}
}

func (m *memoryStore) OpenDiscrepancies(ctx context.Context, scope Scope) ([]*models.Discrepancy, error) {
	return m.discrepancies, nil
}

func (m *memoryStore) CreateAction(ctx context.Context, action *models.ActionRecommendation) error {
	if err, ok := m.failTypes[action.Type]; ok {
		return err
	}
	key := action.DiscrepancyId + "/" + string(action.Type)
	if _, exists := m.created[key]; exists {
		return models.ErrDuplicateAction
	}
	m.nextId++
	action.ID = fmt.Sprintf("a-%d", m.nextId)
	m.created[key] = action
	return nil
}

func criticalNegative(id string) *models.Discrepancy {
	value := decimal.NewFromInt(-500)
	return &models.Discrepancy{
		ID:            id,
		Sku:           "WIDGET-100",
		LocationCode:  "A-01-01",
		Type:          models.DiscrepancyTypeNegativeOnHand,
		Severity:      models.SeverityCritical,
		Variance:      -12,
		VarianceValue: &value,
		Status:        models.DiscrepancyStatusOpen,
	}
}

func TestGenerate_CreatesActionsOnce(t *testing.T) {
	store := newMemoryStore(criticalNegative("d-1"))
	gen := NewGenerator(store, store, nil)

	first, err := gen.Generate(context.Background(), Scope{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first.Actions) != 3 || first.SkippedDuplicates != 0 || first.FailedCount != 0 {
		t.Fatalf("first run: got %d actions, %d skipped, %d failed",
			len(first.Actions), first.SkippedDuplicates, first.FailedCount)
	}
	for _, a := range first.Actions {
		if a.DiscrepancyId != "d-1" {
			t.Fatalf("action not linked to discrepancy: %+v", a)
		}
		if a.Status != models.ActionStatusPending {
			t.Fatalf("new action should be PENDING, got %s", a.Status)
		}
	}

	// Unchanged discrepancy set: the rerun creates nothing new.
	second, err := gen.Generate(context.Background(), Scope{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Actions) != 0 {
		t.Fatalf("second run created %d actions, expected 0", len(second.Actions))
	}
	if second.SkippedDuplicates != 3 {
		t.Fatalf("second run skipped %d, expected 3", second.SkippedDuplicates)
	}
	if len(store.created) != 3 {
		t.Fatalf("store holds %d actions, expected 3", len(store.created))
	}
}

func TestGenerate_BestEffortOnPartialFailure(t *testing.T) {
	store := newMemoryStore(criticalNegative("d-1"), criticalNegative("d-2"))
	store.failTypes = map[models.ActionType]error{
		models.ActionTypeSupervisorAlert: errors.New("insert failed"),
	}
	gen := NewGenerator(store, store, nil)

	result, err := gen.Generate(context.Background(), Scope{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Each discrepancy loses its supervisor alert but keeps the other two.
	if len(result.Actions) != 4 {
		t.Fatalf("expected 4 surviving actions, got %d", len(result.Actions))
	}
	if result.FailedCount != 2 {
		t.Fatalf("expected 2 failures, got %d", result.FailedCount)
	}
	if result.SkippedDuplicates != 0 {
		t.Fatalf("expected no duplicate skips, got %d", result.SkippedDuplicates)
	}
}

type failingSource struct{}

func (failingSource) OpenDiscrepancies(ctx context.Context, scope Scope) ([]*models.Discrepancy, error) {
	return nil, errors.New("db unavailable")
}

func TestGenerate_SourceFailureAbortsRun(t *testing.T) {
	store := newMemoryStore()
	gen := NewGenerator(failingSource{}, store, nil)

	result, err := gen.Generate(context.Background(), Scope{})
	if err == nil {
		t.Fatal("expected error from failing source")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
	if len(store.created) != 0 {
		t.Fatalf("nothing should be created, got %d", len(store.created))
	}
}
