package repository

import (
	"gorm.io/gorm"

	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/interfaces"
	"github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/models"
)

type Repositories struct {
	EmailLogRepository interfaces.EmailLogRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EmailLogRepository: NewEmailLogRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.EmailLog{},
	)
}
