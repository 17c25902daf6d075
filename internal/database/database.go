package database

import (
	"log"
	"strings"

	"ecowaste/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWithConfig(dsn, &gorm.Config{})
}

func ConnectWithConfig(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Worker{},
		&domain.Vehicle{},
		&domain.Pickup{},
		&domain.LedgerEntry{},
		&domain.Complaint{},
	)
}

// OpenTest opens a private in-memory SQLite database with the schema applied.
// name must be unique per test.
func OpenTest(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
