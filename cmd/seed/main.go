package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/aiautoreview/aiautoreview-backend/config"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/internal/db"
	"github.com/aiautoreview/aiautoreview-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	demoBusinessName = "Demo Coffee"
	demoAdminName    = "Demo Admin"
	demoEmail        = "demo@aiautoreview.dev"
	demoPassword     = "Password123!"
)

// Seeds a demo business with an admin user for local testing.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())

	if _, err := userRepo.FindByEmail(demoEmail); err == nil {
		fmt.Println("Demo user already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to check for demo user:", err)
	}

	hashedPassword, err := util.HashPassword(demoPassword)
	if err != nil {
		log.Fatal("Failed to hash demo password:", err)
	}

	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		business := &model.Business{Name: demoBusinessName}
		if err := tx.Create(business).Error; err != nil {
			return err
		}

		user := &model.User{
			BusinessID:   business.ID,
			Name:         demoAdminName,
			Email:        demoEmail,
			PasswordHash: hashedPassword,
			Role:         model.RoleAdmin,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		log.Fatal("Failed to seed demo data:", err)
	}

	fmt.Printf("Seeded demo user: %s / %s\n", demoEmail, demoPassword)
}
