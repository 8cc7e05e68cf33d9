package migrations

import (
	"github.com/ekusasirakwe/portfolio-api/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_contacts",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.ContactModel{}); err != nil {
					return err
				}
				indexes := []string{
					// Dashboard reads newest-first.
					`CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts (created_at DESC)`,
					`CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts (status)`,
				}
				for _, sql := range indexes {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.ContactModel{})
			},
		},
	})

	return m.Migrate()
}
