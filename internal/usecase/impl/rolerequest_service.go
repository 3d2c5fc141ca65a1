package impl

import (
	"context"
	"log/slog"
	"time"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/pricing"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	requestApprovedMessage = "Your request has been approved"
	requestRejectedMessage = "Your request has been rejected"
)

// roleRequestService implements the RoleRequestUsecase interface.
type roleRequestService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewRoleRequestService is the constructor for roleRequestService.
func NewRoleRequestService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.RoleRequestUsecase {
	return &roleRequestService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Submit files a role escalation request. Only users and ambassadors may
// apply, one pending request each; an ambassador applying for coordinator
// must have spent at least the threshold over done orders.
func (srv *roleRequestService) Submit(ctx context.Context, userID uuid.UUID, message string) (*entity.RoleRequest, error) {
	srv.logger.Info("Submitting role request", "userID", userID)

	if message == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "request message is required")
	}

	request := &entity.RoleRequest{
		UserID:  userID,
		Message: message,
		Status:  entity.RoleRequestPending,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		requestRepo := repoFactory.NewRoleRequestRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Role != entity.RoleUser && user.Role != entity.RoleAmbassador {
			return errors.Wrap(domainerrors.ErrRoleNotEligible, "only users and ambassadors may request an escalation")
		}

		if _, err := requestRepo.FindPendingByUser(ctx, userID); err == nil {
			return errors.Wrap(domainerrors.ErrPendingRequestExists, "a pending request already exists")
		} else if !errors.Is(err, repository.ErrRoleRequestNotFound) {
			return errors.Wrap(err, "failed to check pending requests")
		}

		// An ambassador is applying for coordinator and must have the spend
		// history to back it.
		if user.Role == entity.RoleAmbassador {
			spent, err := repoFactory.NewOrderRepository().SumPaymentsByUserAndStatus(ctx, userID, entity.OrderDone)
			if err != nil {
				return errors.Wrap(err, "failed to sum completed orders")
			}
			if spent < pricing.CoordinatorSpendThreshold {
				return domainerrors.ErrSpendThresholdNotMet.WithMessagef(
					"a completed order total of at least %d is required", pricing.CoordinatorSpendThreshold)
			}
		}

		if err := requestRepo.Create(ctx, request); err != nil {
			return errors.Wrap(err, "failed to create role request")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// GetRequest retrieves a single role request.
func (srv *roleRequestService) GetRequest(ctx context.Context, id uuid.UUID) (*entity.RoleRequest, error) {
	var request *entity.RoleRequest

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewRoleRequestRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRoleRequestNotFound) {
				return errors.Wrap(domainerrors.ErrRoleRequestNotFound, "role request not found")
			}

			return errors.Wrap(err, "failed to find role request")
		}
		request = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ListRequests retrieves every role request, newest first.
func (srv *roleRequestService) ListRequests(ctx context.Context) ([]*entity.RoleRequest, error) {
	var requests []*entity.RoleRequest

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewRoleRequestRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list role requests")
		}
		requests = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// ListByStatus retrieves the role requests in the given status.
func (srv *roleRequestService) ListByStatus(ctx context.Context, status entity.RoleRequestStatus) ([]*entity.RoleRequest, error) {
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown request status")
	}

	var requests []*entity.RoleRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewRoleRequestRepository().FindByStatus(ctx, status)
		if err != nil {
			return errors.Wrap(err, "failed to list role requests")
		}
		requests = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// Resolve approves or rejects a pending request. Approval promotes the user
// to the requested role; a freshly promoted coordinator is detached from any
// group they belonged to as an ambassador. The outcome notification fires
// after the commit.
func (srv *roleRequestService) Resolve(ctx context.Context, id uuid.UUID, status entity.RoleRequestStatus) (*entity.RoleRequest, error) {
	srv.logger.Info("Resolving role request", "requestID", id, "status", status)

	if !status.Resolved() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "resolution must be approved or rejected")
	}

	var request *entity.RoleRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		requestRepo := repoFactory.NewRoleRequestRepository()

		found, err := requestRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRoleRequestNotFound) {
				return errors.Wrap(domainerrors.ErrRoleRequestNotFound, "role request not found")
			}

			return errors.Wrap(err, "failed to find role request")
		}
		if found.Status != entity.RoleRequestPending {
			return errors.Wrap(domainerrors.ErrValidationFailed, "request is already resolved")
		}

		found.Status = status
		if err := requestRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update role request")
		}

		if status == entity.RoleRequestApproved {
			user, err := userRepo.FindByID(ctx, found.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrUserNotFound, "requesting user not found")
				}

				return errors.Wrap(err, "failed to find requesting user")
			}

			target := found.TargetRole()
			user.Role = target
			if err := userRepo.Update(ctx, user); err != nil {
				return errors.Wrap(err, "failed to promote user")
			}

			if target == entity.RoleCoordinator && user.GroupID != nil {
				if err := userRepo.SetGroup(ctx, []uuid.UUID{user.ID}, nil); err != nil {
					return errors.Wrap(err, "failed to detach new coordinator from group")
				}
			}
		}

		request = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	message := requestRejectedMessage
	if status == entity.RoleRequestApproved {
		message = requestApprovedMessage
	}
	if err := srv.notificationRepo.Create(ctx, &entity.Notification{
		UserID:    request.UserID,
		Message:   message,
		CreatedAt: time.Now(),
	}); err != nil {
		srv.logger.Warn("Failed to create resolution notification", "userID", request.UserID, "error", err)
	}

	return request, nil
}

// DeleteRequest removes a resolved request. Pending requests stay until an
// admin resolves them.
func (srv *roleRequestService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting role request", "requestID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requestRepo := repoFactory.NewRoleRequestRepository()

		found, err := requestRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRoleRequestNotFound) {
				return errors.Wrap(domainerrors.ErrRoleRequestNotFound, "role request not found")
			}

			return errors.Wrap(err, "failed to find role request")
		}
		if !found.Status.Resolved() {
			return errors.Wrap(domainerrors.ErrRequestStillPending, "pending requests cannot be deleted")
		}

		if err := requestRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete role request")
		}

		return nil
	})
}
