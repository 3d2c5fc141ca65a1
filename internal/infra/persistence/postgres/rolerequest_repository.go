package postgres

import (
	"context"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRequestRepository implements the repository.RoleRequestRepository interface using GORM.
type roleRequestRepository struct {
	db *gorm.DB
}

// NewRoleRequestRepository is the constructor for roleRequestRepository.
func NewRoleRequestRepository(db *gorm.DB) repository.RoleRequestRepository {
	return &roleRequestRepository{
		db: db,
	}
}

// Create persists a new role request.
func (repo *roleRequestRepository) Create(ctx context.Context, request *entity.RoleRequest) error {
	requestM := fromRoleRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// FindByID retrieves a single role request by its unique ID.
func (repo *roleRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoleRequest, error) {
	var requestM model.RoleRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find role request by id")
	}

	return toRoleRequestDomain(&requestM), nil
}

// FindAll retrieves every role request, newest first.
func (repo *roleRequestRepository) FindAll(ctx context.Context) ([]*entity.RoleRequest, error) {
	var requestModels []*model.RoleRequestModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all role requests")
	}

	return toRoleRequestDomainSlice(requestModels), nil
}

// FindByStatus retrieves all role requests in the given status.
func (repo *roleRequestRepository) FindByStatus(ctx context.Context, status entity.RoleRequestStatus) ([]*entity.RoleRequest, error) {
	var requestModels []*model.RoleRequestModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find role requests by status")
	}

	return toRoleRequestDomainSlice(requestModels), nil
}

// FindPendingByUser retrieves the user's pending request, if any.
func (repo *roleRequestRepository) FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.RoleRequest, error) {
	var requestM model.RoleRequestModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.RoleRequestPending)).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending role request by user")
	}

	return toRoleRequestDomain(&requestM), nil
}

// Update modifies an existing role request.
func (repo *roleRequestRepository) Update(ctx context.Context, request *entity.RoleRequest) error {
	requestM := fromRoleRequestDomain(request)

	result := repo.db.WithContext(ctx).
		Model(&model.RoleRequestModel{}).
		Where("id = ?", request.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(requestM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update role request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleRequestNotFound
	}

	return nil
}

// Delete removes a role request.
func (repo *roleRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RoleRequestModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete role request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleRequestNotFound
	}

	return nil
}

// toRoleRequestDomain maps a persistence model to a pure domain entity.
func toRoleRequestDomain(data *model.RoleRequestModel) *entity.RoleRequest {
	return &entity.RoleRequest{
		ID:        data.ID,
		UserID:    data.UserID,
		Message:   data.Message,
		Status:    entity.RoleRequestStatus(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toRoleRequestDomainSlice(models []*model.RoleRequestModel) []*entity.RoleRequest {
	requests := make([]*entity.RoleRequest, 0, len(models))
	for _, requestM := range models {
		requests = append(requests, toRoleRequestDomain(requestM))
	}

	return requests
}

// fromRoleRequestDomain maps a pure domain entity to a GORM persistence model.
func fromRoleRequestDomain(data *entity.RoleRequest) *model.RoleRequestModel {
	return &model.RoleRequestModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Message:   data.Message,
		Status:    string(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
