package db

import (
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	migrations := []interface{}{
		&models.Admin{},
		&models.User{},
		&models.Session{},
		&models.Project{},
		&models.Skill{},
		&models.Experience{},
		&models.Content{},
		&models.SocialLink{},
		&models.Contact{},
		&models.Resume{},
		&models.Subscriber{},
	}

	migrator := DB.Migrator()

	for _, model := range migrations {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
