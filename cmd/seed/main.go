package main

import (
	"context"
	"log"
	"os"

	"homecare/internal/database"
	"homecare/internal/domain"
	"homecare/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "homecare.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	settings := repository.NewSettingsRepository(db)
	services := repository.NewServiceRepository(db)
	helpers := repository.NewHelperRepository(db)
	admins := repository.NewAdminRepository(db)

	log.Println("Seeding general settings...")
	if err := settings.Save(ctx, &domain.GeneralSetting{
		ID:              1,
		BaseSalary:      30000,
		OfficeStartTime: 8 * 60,
		OfficeEndTime:   18 * 60,
		OpenHour:        6 * 60,
		CloseHour:       22 * 60,
	}); err != nil {
		log.Fatal("seed settings:", err)
	}

	log.Println("Seeding services...")
	catalog := []domain.Service{
		{Title: "House cleaning", BasicPrice: 100000, CoefficientService: 1.0, CoefficientOther: 1.0, CoefficientOT: 1.5, Status: domain.ServiceActive},
		{Title: "Elder care", BasicPrice: 150000, CoefficientService: 1.2, CoefficientOther: 1.0, CoefficientOT: 1.6, Status: domain.ServiceActive},
		{Title: "Cooking", BasicPrice: 120000, CoefficientService: 1.1, CoefficientOther: 1.0, CoefficientOT: 1.5, Status: domain.ServiceActive},
	}
	for i := range catalog {
		if err := services.Create(ctx, &catalog[i]); err != nil {
			log.Fatal("seed service:", err)
		}
	}

	log.Println("Seeding helpers...")
	crew := []domain.Helper{
		{FullName: "Nguyen Thi Hoa", Phone: "0901000001", BaseFactor: 1.0, Status: domain.HelperActive, WorkingStatus: domain.WorkingOnline},
		{FullName: "Tran Van Binh", Phone: "0901000002", BaseFactor: 1.2, Status: domain.HelperActive, WorkingStatus: domain.WorkingOnline},
		{FullName: "Le Thi Mai", Phone: "0901000003", BaseFactor: 1.1, Status: domain.HelperActive, WorkingStatus: domain.WorkingOffline},
	}
	for i := range crew {
		if err := helpers.Create(ctx, &crew[i]); err != nil {
			log.Fatal("seed helper:", err)
		}
	}

	log.Println("Seeding admin account...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err := admins.Create(ctx, &domain.Admin{
		Email:        "admin@homecare.vn",
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         domain.RoleAdmin,
	}); err != nil {
		log.Fatal("seed admin:", err)
	}

	log.Println("Seed completed.")
}
