package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finmov/internal/config"
	"finmov/internal/db"
	"finmov/internal/model"
	"finmov/internal/repository"
)

func main() {
	adminEmail := flag.String("admin-email", "admin@example.com", "email for the seeded admin account")
	adminName := flag.String("admin-name", "Administrator", "name for the seeded admin account")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin account (required)")
	withDemoData := flag.Bool("demo-data", false, "also seed a demo movement set")
	flag.Parse()

	if *adminPassword == "" {
		log.Fatal("-admin-password is required")
	}

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Movement{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	movementRepo := repository.NewMovementRepository(gormDB)

	admin, err := seedAdmin(ctx, userRepo, *adminEmail, *adminName, *adminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Printf("Admin account ready: %s", admin.Email)

	if *withDemoData {
		created, err := seedMovements(ctx, movementRepo, admin)
		if err != nil {
			log.Fatalf("Failed to seed movements: %v", err)
		}
		log.Printf("Seeded %d demo movements", created)
	}

	log.Println("Seed complete")
}

// seedAdmin creates the admin account, or promotes an existing account with
// the same email. Running the seed twice is safe.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, name, password string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != model.RoleAdmin {
			existing.Role = model.RoleAdmin
			if err := repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			log.Printf("Promoted existing account %s to ADMIN", email)
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func seedMovements(ctx context.Context, repo repository.MovementRepository, owner *model.User) (int, error) {
	now := time.Now().UTC()
	demo := []model.Movement{
		{Concept: "Monthly salary", Amount: decimal.NewFromFloat(2400.00), Type: model.MovementIncome, Date: now.AddDate(0, -1, 0)},
		{Concept: "Office rent", Amount: decimal.NewFromFloat(850.00), Type: model.MovementExpense, Date: now.AddDate(0, -1, 2)},
		{Concept: "Consulting invoice", Amount: decimal.NewFromFloat(1200.50), Type: model.MovementIncome, Date: now.AddDate(0, 0, -10)},
		{Concept: "Software licenses", Amount: decimal.NewFromFloat(199.99), Type: model.MovementExpense, Date: now.AddDate(0, 0, -5)},
	}

	created := 0
	for i := range demo {
		demo[i].UserID = owner.ID
		if err := repo.Create(ctx, &demo[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
