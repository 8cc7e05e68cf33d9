package repository

import (
	"context"
	"errors"

	"github.com/ekusasirakwe/portfolio-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParams carries filter and pagination parameters for the
// dashboard read path. Results are always ordered created_at DESC.
type ListParams struct {
	Status   *string
	Page     int
	PageSize int
}

// ContactRepository is the persistence port for contact submissions.
// The pipeline only ever inserts; reads serve the dashboard.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
	List(ctx context.Context, params ListParams) ([]domain.ContactSubmission, int64, error)
}

type GormContactRepo struct {
	db *gorm.DB
}

func NewGormContactRepo(db *gorm.DB) *GormContactRepo {
	return &GormContactRepo{db: db}
}

var _ ContactRepository = (*GormContactRepo)(nil)

// Create inserts one contacts row. The store assigns the identifier
// and creation timestamp; both are copied back into c on success.
func (r *GormContactRepo) Create(ctx context.Context, c *domain.ContactSubmission) error {
	if c == nil {
		return errors.New("contact submission is required")
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.StatusNew
	}

	model := contactModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}

	*c = *contactModelToDomain(model)
	return nil
}

func (r *GormContactRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	var model ContactModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return contactModelToDomain(&model), nil
}

func (r *GormContactRepo) List(ctx context.Context, params ListParams) ([]domain.ContactSubmission, int64, error) {
	query := r.db.WithContext(ctx).Model(&ContactModel{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := max(params.Page, 1)
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	pageSize = min(pageSize, 100)

	var models []ContactModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	submissions := make([]domain.ContactSubmission, 0, len(models))
	for i := range models {
		submissions = append(submissions, *contactModelToDomain(&models[i]))
	}

	return submissions, total, nil
}
