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
	ambassadorEligibilityMessage  = "You are eligible to become an ambassador! Please send us your email to get started."
	coordinatorEligibilityMessage = "Congratulations! You are eligible to become a coordinator based on your order history."
	firstOrderDiscountMessage     = "Congratulations! You are eligible for a 20% discount on your first order."
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListUserNotifications retrieves the user's live notifications, newest first.
func (srv *notificationService) ListUserNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flags one of the user's notifications as read.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := srv.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return errors.Wrap(domainerrors.ErrNotificationNotFound, "notification not found or expired")
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// NotifyAmbassadorEligibility invites every plain user to apply for the
// ambassador role.
func (srv *notificationService) NotifyAmbassadorEligibility(ctx context.Context) (int, error) {
	srv.logger.Info("Running ambassador eligibility campaign")

	var recipients []uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users, err := repoFactory.NewUserRepository().FindByRole(ctx, entity.RoleUser)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		for _, user := range users {
			recipients = append(recipients, user.ID)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return srv.blast(ctx, recipients, ambassadorEligibilityMessage), nil
}

// NotifyCoordinatorEligibility congratulates every ambassador whose completed
// order spend crossed the coordinator threshold.
func (srv *notificationService) NotifyCoordinatorEligibility(ctx context.Context) (int, error) {
	srv.logger.Info("Running coordinator eligibility campaign")

	var recipients []uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		orderRepo := repoFactory.NewOrderRepository()

		ambassadors, err := userRepo.FindByRole(ctx, entity.RoleAmbassador)
		if err != nil {
			return errors.Wrap(err, "failed to list ambassadors")
		}

		for _, ambassador := range ambassadors {
			spent, err := orderRepo.SumPaymentsByUserAndStatus(ctx, ambassador.ID, entity.OrderDone)
			if err != nil {
				return errors.Wrap(err, "failed to sum completed orders")
			}
			if spent >= pricing.CoordinatorSpendThreshold {
				recipients = append(recipients, ambassador.ID)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return srv.blast(ctx, recipients, coordinatorEligibilityMessage), nil
}

// NotifyFirstOrderDiscount reminds users with no orders of the first order
// discount.
func (srv *notificationService) NotifyFirstOrderDiscount(ctx context.Context) (int, error) {
	srv.logger.Info("Running first order discount campaign")

	var recipients []uuid.UUID
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		orderRepo := repoFactory.NewOrderRepository()

		users, err := userRepo.FindByRole(ctx, entity.RoleUser)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		for _, user := range users {
			count, err := orderRepo.CountByUser(ctx, user.ID)
			if err != nil {
				return errors.Wrap(err, "failed to count orders")
			}
			if count == 0 {
				recipients = append(recipients, user.ID)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return srv.blast(ctx, recipients, firstOrderDiscountMessage), nil
}

// blast delivers the message to each recipient, skipping anyone who already
// holds a live notification with the same message. Per-recipient failures are
// logged and do not stop the campaign.
func (srv *notificationService) blast(ctx context.Context, recipients []uuid.UUID, message string) int {
	sent := 0
	for _, recipient := range recipients {
		exists, err := srv.notificationRepo.ExistsByMessage(ctx, recipient, message)
		if err != nil {
			srv.logger.Warn("Failed to check existing notification", "userID", recipient, "error", err)
			continue
		}
		if exists {
			continue
		}

		if err := srv.notificationRepo.Create(ctx, &entity.Notification{
			UserID:    recipient,
			Message:   message,
			CreatedAt: time.Now(),
		}); err != nil {
			srv.logger.Warn("Failed to create campaign notification", "userID", recipient, "error", err)
			continue
		}
		sent++
	}

	return sent
}
