package impl

import (
	"context"
	"log/slog"
	"time"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetUser retrieves a single account.
func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies the caller's profile changes. Role, coins and group
// membership are not reachable from here.
func (srv *userService) UpdateProfile(ctx context.Context, id uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating user profile", "userID", id)

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Phone != nil {
			found.Phone = *input.Phone
		}
		if input.Gender != nil {
			found.Gender = *input.Gender
		}
		if input.Addresses != nil {
			found.Addresses = input.Addresses
		}
		if input.Avatar != nil {
			found.Avatar = *input.Avatar
		}
		if input.DateOfBirth != nil {
			found.DateOfBirth = *input.DateOfBirth
		}

		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers retrieves every account.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListByRole retrieves all users holding the given role.
func (srv *userService) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByRole(ctx, role)
		if err != nil {
			return errors.Wrap(err, "failed to list users by role")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListUnassignedByRole retrieves users of the role that belong to no group.
func (srv *userService) ListUnassignedByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown role")
	}

	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindUnassignedByRole(ctx, role)
		if err != nil {
			return errors.Wrap(err, "failed to list unassigned users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListByBirthMonth retrieves users whose birthday falls in the month.
func (srv *userService) ListByBirthMonth(ctx context.Context, month time.Month) ([]*entity.User, error) {
	if month < time.January || month > time.December {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid month")
	}

	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByBirthMonth(ctx, month)
		if err != nil {
			return errors.Wrap(err, "failed to list users by birth month")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// DeleteUser removes an account.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting user", "userID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
}

// AdjustCoins changes a user's coin balance by delta. The balance may not go
// negative.
func (srv *userService) AdjustCoins(ctx context.Context, id uuid.UUID, delta float64) (*entity.User, error) {
	srv.logger.Info("Adjusting user coins", "userID", id, "delta", delta)

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		found, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		if delta < 0 {
			if err := userRepo.DebitCoins(ctx, id, -delta); err != nil {
				if errors.Is(err, repository.ErrInsufficientCoins) {
					return errors.Wrap(domainerrors.ErrInsufficientCoins, "coin balance cannot go negative")
				}

				return errors.Wrap(err, "failed to adjust coins")
			}
		} else if err := userRepo.AddCoins(ctx, id, delta); err != nil {
			return errors.Wrap(err, "failed to adjust coins")
		}
		found.CoinsEarned += delta
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
