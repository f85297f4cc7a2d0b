package database

import (
	"log"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// Tables and orders reference each other; the linkage is kept by the
	// handlers, not by database constraints.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate error: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}

// Migrate runs AutoMigrate for every entity. Shared with the test setup,
// which runs it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.KOT{},
		&models.InventoryItem{},
		&models.MenuItem{},
		&models.MenuItemVariant{},
		&models.WasteRecord{},
	)
}
