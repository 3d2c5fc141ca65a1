package postgres

import (
	"context"
	"time"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindAll retrieves every user account.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all users")
	}

	return toUserDomainSlice(userModels), nil
}

// FindByRole retrieves all users holding the given role.
func (repo *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by role")
	}

	return toUserDomainSlice(userModels), nil
}

// FindUnassignedByRole retrieves users of the role that belong to no group.
func (repo *userRepository) FindUnassignedByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("role = ? AND group_id IS NULL", string(role)).
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find unassigned users by role")
	}

	return toUserDomainSlice(userModels), nil
}

// FindByBirthMonth retrieves users whose birthday falls in the month.
func (repo *userRepository) FindByBirthMonth(ctx context.Context, month time.Month) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("EXTRACT(MONTH FROM date_of_birth) = ?", int(month)).
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users by birth month")
	}

	return toUserDomainSlice(userModels), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(userM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user from the database.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AddCoins adjusts the user's coin balance by delta in a single write.
func (repo *userRepository) AddCoins(ctx context.Context, id uuid.UUID, delta float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("coins_earned", gorm.Expr("coins_earned + ?", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to adjust user coins")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DebitCoins subtracts amount from the balance behind a coins_earned >= amount
// guard. Zero rows affected means the balance was short (existence is the
// caller's concern inside the same transaction).
func (repo *userRepository) DebitCoins(ctx context.Context, id uuid.UUID, amount float64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND coins_earned >= ?", id, amount).
		UpdateColumn("coins_earned", gorm.Expr("coins_earned - ?", amount))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to debit user coins")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientCoins
	}

	return nil
}

// SetGroup points each user's group back-reference at groupID (nil clears it).
func (repo *userRepository) SetGroup(ctx context.Context, userIDs []uuid.UUID, groupID *uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ?", userIDs).
		UpdateColumn("group_id", groupID).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to set user group")
	}

	return nil
}

// CreditGroupDiscount grants each user the given percentage balance.
func (repo *userRepository) CreditGroupDiscount(ctx context.Context, userIDs []uuid.UUID, percent float64) error {
	if len(userIDs) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ?", userIDs).
		UpdateColumn("group_discount_percent", percent).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to credit group discount")
	}

	return nil
}

// toUserDomain maps a persistence model to a pure domain entity.
func toUserDomain(data *model.UserModel) *entity.User {
	return &entity.User{
		ID:                   data.ID,
		Name:                 data.Name,
		Email:                data.Email,
		Phone:                data.Phone,
		Gender:               data.Gender,
		Role:                 entity.Role(data.Role),
		Addresses:            data.Addresses,
		Avatar:               data.Avatar,
		DateOfBirth:          data.DateOfBirth,
		CoinsEarned:          data.CoinsEarned,
		GroupDiscountPercent: data.GroupDiscountPercent,
		GroupID:              data.GroupID,
		Validated:            data.Validated,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func toUserDomainSlice(models []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(models))
	for _, userM := range models {
		users = append(users, toUserDomain(userM))
	}

	return users
}

// fromUserDomain maps a pure domain entity to a GORM persistence model.
func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                   data.ID,
		Email:                data.Email,
		Name:                 data.Name,
		Phone:                data.Phone,
		Gender:               data.Gender,
		Role:                 string(data.Role),
		Addresses:            data.Addresses,
		Avatar:               data.Avatar,
		DateOfBirth:          data.DateOfBirth,
		CoinsEarned:          data.CoinsEarned,
		GroupDiscountPercent: data.GroupDiscountPercent,
		GroupID:              data.GroupID,
		Validated:            data.Validated,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}
