package models_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/engine"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Regression: generation must be idempotent against the real unique index
// (a rerun maps MySQL 1062 onto duplicate skips, never an error), and the
// status lifecycle must enforce COMPLETED as terminal.
func TestActionGenerationLifecycle(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "flowlogic_test")

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		t.Fatalf("db is nil after ConnectDatabaseWithRetry")
	}
	models.MigrateTable()

	// Seed one critical negative-on-hand discrepancy.
	value := decimal.NewFromInt(-510)
	actual := -12
	disc := models.Discrepancy{
		ID:            uuid.NewString(),
		Sku:           "WIDGET-100",
		LocationCode:  "A-01-01",
		Type:          models.DiscrepancyTypeNegativeOnHand,
		Severity:      models.SeverityCritical,
		Variance:      -12,
		VarianceValue: &value,
		ActualQty:     &actual,
		Status:        models.DiscrepancyStatusOpen,
	}
	if err := db.WithContext(ctx).Create(&disc).Error; err != nil {
		t.Fatalf("seed discrepancy: %v", err)
	}

	gen := engine.NewGenerator(engine.DatabaseStore{}, engine.DatabaseStore{}, config.GetLogger())

	first, err := gen.Generate(ctx, engine.Scope{})
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	if len(first.Actions) != 3 || first.FailedCount != 0 {
		t.Fatalf("first generation: %d actions, %d failed", len(first.Actions), first.FailedCount)
	}

	second, err := gen.Generate(ctx, engine.Scope{})
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}
	if len(second.Actions) != 0 || second.SkippedDuplicates != 3 {
		t.Fatalf("rerun should skip all duplicates: %d created, %d skipped",
			len(second.Actions), second.SkippedDuplicates)
	}

	// Direct duplicate insert observes the sentinel.
	dup := &models.ActionRecommendation{
		Type:          models.ActionTypeCycleCount,
		Priority:      models.PriorityUrgent,
		DiscrepancyId: disc.ID,
		Sku:           disc.Sku,
		LocationCode:  disc.LocationCode,
	}
	if err := models.CreateActionRecommendation(ctx, dup); !errors.Is(err, models.ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}

	// Status lifecycle.
	target := first.Actions[0]
	updated, err := models.UpdateActionStatus(ctx, target.ID, models.ActionStatusCompleted, "verified on floor", "jdoe")
	if err != nil {
		t.Fatalf("complete action: %v", err)
	}
	if updated.Status != models.ActionStatusCompleted || updated.CompletedAt == nil {
		t.Fatalf("completion not stamped: %+v", updated)
	}
	if _, err := models.UpdateActionStatus(ctx, target.ID, models.ActionStatusPending, "", ""); err == nil {
		t.Fatal("completed action must not change status")
	}

	// Batch export skips the completed action and stamps the rest.
	ids := make([]string, 0, len(first.Actions))
	for _, a := range first.Actions {
		ids = append(ids, a.ID)
	}
	exported, err := models.BatchExportActions(ctx, ids)
	if err != nil {
		t.Fatalf("batch export: %v", err)
	}
	if exported != 2 {
		t.Fatalf("expected 2 exported, got %d", exported)
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("flowlogic-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=flowlogic_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
