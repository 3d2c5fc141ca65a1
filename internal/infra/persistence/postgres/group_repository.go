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

// groupRepository implements the repository.GroupRepository interface using GORM.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository is the constructor for groupRepository.
func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

// Create persists a new group.
func (repo *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	groupM := fromGroupDomain(group)

	if err := repo.db.WithContext(ctx).Create(groupM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid coordinator or admin reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create group")
	}

	group.ID = groupM.ID
	group.CreatedAt = groupM.CreatedAt
	group.UpdatedAt = groupM.UpdatedAt

	return nil
}

// FindByID retrieves a single group by its unique ID.
func (repo *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var groupM model.GroupModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&groupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find group by id")
	}

	return toGroupDomain(&groupM), nil
}

// FindAll retrieves every group.
func (repo *groupRepository) FindAll(ctx context.Context) ([]*entity.Group, error) {
	var groupModels []*model.GroupModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&groupModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all groups")
	}

	groups := make([]*entity.Group, 0, len(groupModels))
	for _, groupM := range groupModels {
		groups = append(groups, toGroupDomain(groupM))
	}

	return groups, nil
}

// Update modifies an existing group.
func (repo *groupRepository) Update(ctx context.Context, group *entity.Group) error {
	groupM := fromGroupDomain(group)

	result := repo.db.WithContext(ctx).
		Model(&model.GroupModel{}).
		Where("id = ?", group.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(groupM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGroupNotFound
	}

	return nil
}

// Delete removes a group from the database.
func (repo *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.GroupModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGroupNotFound
	}

	return nil
}

// toGroupDomain maps a persistence model to a pure domain entity.
func toGroupDomain(data *model.GroupModel) *entity.Group {
	return &entity.Group{
		ID:            data.ID,
		AdminID:       data.AdminID,
		CoordinatorID: data.CoordinatorID,
		AmbassadorIDs: data.AmbassadorIDs,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromGroupDomain maps a pure domain entity to a GORM persistence model.
func fromGroupDomain(data *entity.Group) *model.GroupModel {
	return &model.GroupModel{
		ID:            data.ID,
		AdminID:       data.AdminID,
		CoordinatorID: data.CoordinatorID,
		AmbassadorIDs: data.AmbassadorIDs,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
