package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type consultantRepository struct {
	db *gorm.DB
}

// NewConsultantRepository creates a new consultant repository
func NewConsultantRepository(db *gorm.DB) domainRepo.ConsultantRepository {
	return &consultantRepository{db: db}
}

func (r *consultantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Consultant, error) {
	var consultant entity.Consultant
	err := r.db.WithContext(ctx).First(&consultant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &consultant, err
}

func (r *consultantRepository) List(ctx context.Context) ([]entity.Consultant, error) {
	var consultants []entity.Consultant
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&consultants).Error
	return consultants, err
}
