// seed-demo-data loads a small warehouse fixture set (locations, products,
// operators, open discrepancies, adjustment history) for local development.
// Safe to rerun: rows are keyed on natural identifiers and upserted-ish via
// FirstOrCreate.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/seed-demo-data
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	models.MigrateTable()

	seedLocations(ctx, db)
	seedProducts(ctx, db)
	operatorIds := seedOperators(ctx, db)
	discrepancyIds := seedDiscrepancies(ctx, db)
	seedAdjustments(ctx, db, operatorIds)
	seedInvestigations(ctx, db, operatorIds, discrepancyIds)

	fmt.Println("demo data seeded")
}

func seedLocations(ctx context.Context, db *gorm.DB) {
	active := true
	locations := []models.Location{
		{Code: "A-01-01", Zone: "A", Aisle: "01", IsActive: &active},
		{Code: "A-01-02", Zone: "A", Aisle: "01", IsActive: &active},
		{Code: "A-02-01", Zone: "A", Aisle: "02", IsActive: &active},
		{Code: "B-01-01", Zone: "B", Aisle: "01", IsActive: &active},
		{Code: "B-03-02", Zone: "B", Aisle: "03", IsActive: &active},
		{Code: "C-05-04", Zone: "C", Aisle: "05", IsActive: &active},
	}
	for i := range locations {
		mustSeed(db.WithContext(ctx).Where("code = ?", locations[i].Code).FirstOrCreate(&locations[i]).Error, "location "+locations[i].Code)
	}
}

func seedProducts(ctx context.Context, db *gorm.DB) {
	products := []models.Product{
		{Sku: "WIDGET-100", Name: "Standard Widget", Category: "Widgets", Cost: decimal.NewFromFloat(4.25)},
		{Sku: "WIDGET-200", Name: "Heavy Widget", Category: "Widgets", Cost: decimal.NewFromFloat(18.90)},
		{Sku: "GADGET-010", Name: "Pocket Gadget", Category: "Gadgets", Cost: decimal.NewFromFloat(62.00)},
		{Sku: "CABLE-USB-2M", Name: "USB Cable 2m", Category: "Accessories", Cost: decimal.NewFromFloat(2.10)},
	}
	for i := range products {
		mustSeed(db.WithContext(ctx).Where("sku = ?", products[i].Sku).FirstOrCreate(&products[i]).Error, "product "+products[i].Sku)
	}
}

func seedOperators(ctx context.Context, db *gorm.DB) []int {
	hashed, err := utils.HashPassword("operator123")
	mustSeed(err, "hash operator password")
	active := true

	usernames := []struct {
		Username string
		FullName string
	}{
		{"jdoe", "Jane Doe"},
		{"mlee", "Marcus Lee"},
		{"spatel", "Sita Patel"},
	}
	ids := make([]int, 0, len(usernames))
	for _, u := range usernames {
		user := models.User{
			Username: u.Username,
			FullName: u.FullName,
			Password: string(hashed),
			Role:     models.UserRoleOperator,
			IsActive: &active,
		}
		mustSeed(db.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(&user).Error, "user "+u.Username)
		ids = append(ids, user.ID)
	}
	return ids
}

func seedDiscrepancies(ctx context.Context, db *gorm.DB) []string {
	negValue := decimal.NewFromInt(-510)
	spikeValue := decimal.NewFromInt(1890)
	actual := -12

	fixtures := []models.Discrepancy{
		{
			Sku: "WIDGET-100", LocationCode: "A-01-01",
			Type: models.DiscrepancyTypeNegativeOnHand, Severity: models.SeverityCritical,
			Variance: -12, VarianceValue: &negValue, ActualQty: &actual,
			Description: "System shows -12 on hand after wave pick",
		},
		{
			Sku: "WIDGET-200", LocationCode: "B-01-01",
			Type: models.DiscrepancyTypeAdjustmentSpike, Severity: models.SeverityHigh,
			Variance: 100, VarianceValue: &spikeValue,
			Description: "Large single-shift adjustment",
		},
		{
			Sku: "GADGET-010", LocationCode: "A-02-01",
			Type: models.DiscrepancyTypeDriftDetected, Severity: models.SeverityMedium,
			Variance:    3,
			Description: "Count drifting from book quantity across cycles",
		},
		{
			Sku: "CABLE-USB-2M", LocationCode: "C-05-04",
			Type: models.DiscrepancyTypeOther, Severity: models.SeverityLow,
			Variance:    -1,
			Description: "Single-unit mismatch on putaway confirm",
		},
	}
	ids := make([]string, 0, len(fixtures))
	for i := range fixtures {
		d := &fixtures[i]
		d.ID = uuid.NewString()
		d.Status = models.DiscrepancyStatusOpen
		err := db.WithContext(ctx).
			Where("sku = ? AND location_code = ? AND type = ? AND status = ?", d.Sku, d.LocationCode, d.Type, models.DiscrepancyStatusOpen).
			FirstOrCreate(d).Error
		mustSeed(err, "discrepancy "+d.Sku)
		ids = append(ids, d.ID)
	}
	return ids
}

func seedAdjustments(ctx context.Context, db *gorm.DB, operatorIds []int) {
	if len(operatorIds) == 0 {
		return
	}
	var count int64
	db.WithContext(ctx).Model(&models.AdjustmentSnapshot{}).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now().UTC()
	skus := []string{"WIDGET-100", "WIDGET-200", "GADGET-010", "CABLE-USB-2M"}
	locations := []string{"A-01-01", "A-01-02", "B-01-01", "B-03-02", "C-05-04"}

	// First operator gets enough volume to trip the training report.
	rows := make([]models.AdjustmentSnapshot, 0, 64)
	for i := 0; i < 26; i++ {
		uid := operatorIds[0]
		qty := decimal.NewFromInt(int64(2 + i%7))
		if i%3 == 0 {
			qty = qty.Neg()
		}
		rows = append(rows, models.AdjustmentSnapshot{
			UserId:         &uid,
			Sku:            skus[i%len(skus)],
			LocationCode:   locations[i%len(locations)],
			AdjustmentQty:  qty,
			Reason:         "cycle count correction",
			AdjustmentDate: now.AddDate(0, 0, -(i % 20)),
		})
	}
	for i := 0; i < 6; i++ {
		uid := operatorIds[1%len(operatorIds)]
		rows = append(rows, models.AdjustmentSnapshot{
			UserId:         &uid,
			Sku:            skus[i%len(skus)],
			LocationCode:   locations[i%len(locations)],
			AdjustmentQty:  decimal.NewFromInt(1),
			Reason:         "damage writedown",
			AdjustmentDate: now.AddDate(0, 0, -(i % 10)),
		})
	}
	mustSeed(db.WithContext(ctx).Create(&rows).Error, "adjustment snapshots")
}

func seedInvestigations(ctx context.Context, db *gorm.DB, operatorIds []int, discrepancyIds []string) {
	if len(operatorIds) == 0 || len(discrepancyIds) == 0 {
		return
	}
	var count int64
	db.WithContext(ctx).Model(&models.Investigation{}).Count(&count)
	if count > 0 {
		return
	}
	rows := []models.Investigation{
		{UserId: operatorIds[0], DiscrepancyId: discrepancyIds[0], Findings: "operator adjusted without recount"},
		{UserId: operatorIds[0], DiscrepancyId: discrepancyIds[1], Findings: "scan skipped during putaway"},
	}
	mustSeed(db.WithContext(ctx).Create(&rows).Error, "investigations")
}

func mustSeed(err error, what string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed %s: %v\n", what, err)
		os.Exit(1)
	}
}
