package repository

import (
	"time"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
)

// ContactModel is the persistence model for the contacts table.
type ContactModel struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	Email     string  `gorm:"type:varchar(255);not null"`
	Message   string  `gorm:"type:text;not null"`
	Phone     *string `gorm:"type:varchar(20)"`
	Company   *string `gorm:"type:varchar(100)"`
	Purpose   *string `gorm:"type:varchar(100)"`
	Status    string  `gorm:"type:varchar(20);not null;default:'new'"`
	CreatedAt time.Time
}

func (ContactModel) TableName() string {
	return "contacts"
}

func contactModelFromDomain(c *domain.ContactSubmission) *ContactModel {
	if c == nil {
		return nil
	}

	return &ContactModel{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Phone:     optionalColumn(c.Phone),
		Company:   optionalColumn(c.Company),
		Purpose:   optionalColumn(c.Purpose),
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

func contactModelToDomain(m *ContactModel) *domain.ContactSubmission {
	if m == nil {
		return nil
	}

	return &domain.ContactSubmission{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Phone:     optionalValue(m.Phone),
		Company:   optionalValue(m.Company),
		Purpose:   optionalValue(m.Purpose),
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

// Absent optional fields are stored as NULL, not empty strings.
func optionalColumn(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
