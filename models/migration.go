package models

import (
	"log"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Discrepancy{}, &ActionRecommendation{},
		&AdjustmentSnapshot{}, &Investigation{},
		&Location{}, &Product{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
