package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"ecowaste/internal/config"
	"ecowaste/internal/database"
	"ecowaste/internal/domain"
	"ecowaste/internal/modules/auth"
	"ecowaste/internal/repository"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	accounts := repository.NewAccountRepository(db)

	// ================== ACCOUNTS ==================
	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@ecowaste.local")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	seedAccount(ctx, accounts, &domain.Account{
		Name:  "Admin",
		Email: adminEmail,
		Role:  domain.RoleAdmin,
		Kind:  domain.KindHome,
	}, adminPassword)

	seedAccount(ctx, accounts, &domain.Account{
		Name:     "Test User",
		Email:    "user@ecowaste.local",
		Role:     domain.RoleUser,
		Kind:     domain.KindHome,
		Phone:    "9876543210",
		Location: "Sector 5",
	}, "user123")

	seedAccount(ctx, accounts, &domain.Account{
		Name:     "Green Cafe",
		Email:    "business@ecowaste.local",
		Role:     domain.RoleUser,
		Kind:     domain.KindBusiness,
		Phone:    "9123456780",
		Address:  "12 Market Road",
		Location: "Market Road",
	}, "business123")

	// ================== FLEET ==================
	log.Println("Creating workers and vehicles...")
	vehicles := []domain.Vehicle{
		{Name: "Compactor 1", Type: domain.VehicleTruck, LicensePlate: "TN01AB1001", Capacity: 8, Status: domain.VehicleActive},
		{Name: "Compactor 2", Type: domain.VehicleTruck, LicensePlate: "TN01AB1002", Capacity: 8, Status: domain.VehicleMaintenance},
		{Name: "City Van", Type: domain.VehicleVan, LicensePlate: "TN01CD2001", Capacity: 2.5, Status: domain.VehicleActive},
	}
	workers := []domain.Worker{
		{Name: "Ramesh", Role: domain.WorkerDriver, Phone: "9000000001", AssignedVehicle: "TN01AB1001", Status: domain.WorkerActive},
		{Name: "Lakshmi", Role: domain.WorkerDriver, Phone: "9000000002", AssignedVehicle: "TN01CD2001", Status: domain.WorkerActive},
		{Name: "Arjun", Role: domain.WorkerCollector, Phone: "9000000003", Status: domain.WorkerOnLeave},
		{Name: "Priya", Role: domain.WorkerSupervisor, Phone: "9000000004", Status: domain.WorkerActive},
	}
	now := time.Now()
	for i := range workers {
		workers[i].JoinDate = now.AddDate(0, -(i + 1), 0)
	}
	if err := insertMissing(db, &vehicles); err != nil {
		log.Fatal("seed vehicles failed:", err)
	}
	if err := insertMissing(db, &workers); err != nil {
		log.Fatal("seed workers failed:", err)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Printf("Admin: %s / (SEED_ADMIN_PASSWORD)", adminEmail)
	log.Println("User: user@ecowaste.local / user123")
	log.Println("Business: business@ecowaste.local / business123")
}

// seedAccount creates a unless an account with its email already exists.
func seedAccount(ctx context.Context, accounts *repository.AccountRepository, a *domain.Account, password string) {
	if _, err := accounts.GetByEmail(ctx, a.Email); err == nil {
		log.Printf("Account already exists: %s", a.Email)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("lookup failed:", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("hash failed:", err)
	}
	a.PasswordHash = hash
	a.Status = domain.AccountActive
	if err := accounts.Create(ctx, a); err != nil {
		log.Fatal("create account failed:", err)
	}
	log.Printf("Account created: %s (%s)", a.Email, a.Role)
}

// insertMissing skips rows whose unique key (phone, license plate) already exists.
func insertMissing(db *gorm.DB, rows interface{}) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
