package db

import (
	"context"
	"errors"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.TeamMember{},
		&models.Task{},
		&models.Attachment{},
		&models.Comment{},
		&models.Subtask{},
		&models.Activity{},
	}

	migrator := db.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := db.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDemoUser creates the demo identity on first boot and returns it.
// Every request runs as this user; there is no real authentication.
func SeedDemoUser(store storage.Store) (*models.User, error) {
	ctx := context.Background()

	user, err := store.Users().GetByEmail(ctx, types.DemoUserEmail)

	if err == nil {
		return user, nil
	}

	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	demo := &models.User{
		FirstName: types.DemoUserFirstName,
		LastName:  types.DemoUserLastName,
		Email:     types.DemoUserEmail,
		Role:      "admin",
		Avatar:    "DM",
		Bio:       "Experienced project manager with expertise in web development projects.",
		Company:   "TaskHub Inc.",
		Position:  "Project Manager",
		Phone:     "+1-234-567-8900",
	}

	if err := store.Users().Create(ctx, demo); err != nil {
		return nil, err
	}

	return demo, nil
}
