package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/internal/domain/enum"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type kickoffRequestRepository struct {
	db *gorm.DB
}

// NewKickoffRequestRepository creates a new kickoff request repository
func NewKickoffRequestRepository(db *gorm.DB) domainRepo.KickoffRequestRepository {
	return &kickoffRequestRepository{db: db}
}

func (r *kickoffRequestRepository) Create(ctx context.Context, request *entity.KickoffRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *kickoffRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.KickoffRequest, error) {
	var request entity.KickoffRequest
	err := r.db.WithContext(ctx).
		Preload("AssignedPM").
		First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *kickoffRequestRepository) ListByAgreement(ctx context.Context, agreementID uuid.UUID) ([]entity.KickoffRequest, error) {
	var requests []entity.KickoffRequest
	err := r.db.WithContext(ctx).
		Preload("AssignedPM").
		Where("agreement_id = ?", agreementID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *kickoffRequestRepository) HasLiveRequest(ctx context.Context, agreementID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.KickoffRequest{}).
		Where("agreement_id = ? AND status IN ?", agreementID,
			[]enum.KickoffStatus{enum.KickoffStatusPending, enum.KickoffStatusReturned}).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatusIf performs the status transition as a conditional update.
// Losing the race leaves the row untouched and returns false.
func (r *kickoffRequestRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, target enum.KickoffStatus, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = target

	result := r.db.WithContext(ctx).Model(&entity.KickoffRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Convert creates the project and flips the request pending -> converted in
// one transaction. If the conditional flip loses to a concurrent writer the
// project insert rolls back, so at most one project can ever exist per
// request regardless of how many accepts race.
func (r *kickoffRequestRepository) Convert(ctx context.Context, requestID uuid.UUID, project *entity.Project) (bool, error) {
	won := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		result := tx.Model(&entity.KickoffRequest{}).
			Where("id = ? AND status = ?", requestID, enum.KickoffStatusPending).
			Updates(map[string]interface{}{
				"status":     enum.KickoffStatusConverted,
				"project_id": project.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		won = true
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return won, err
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("PM").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Preload("PM").
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Project{}).Count(&count).Error
	return int(count) + 1, err
}
