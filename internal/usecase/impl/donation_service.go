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

const donationSuccessMessage = "Your donation was successful."

// helpAndHopeService implements the HelpAndHopeUsecase interface.
type helpAndHopeService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewHelpAndHopeService is the constructor for helpAndHopeService.
func NewHelpAndHopeService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.HelpAndHopeUsecase {
	return &helpAndHopeService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateItem persists a new catalog item, deriving the theme image when none
// is given.
func (srv *helpAndHopeService) CreateItem(ctx context.Context, input *usecase.HelpAndHopeInput) (*entity.HelpAndHopeItem, error) {
	srv.logger.Info("Creating help and hope item", "title", input.Title, "theme", input.Theme)

	if !input.Theme.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown theme")
	}

	item := &entity.HelpAndHopeItem{
		Title: input.Title,
		Coins: input.Coins,
		Theme: input.Theme,
		Image: input.Image,
	}
	if item.Image == "" {
		item.Image = input.Theme.Image()
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewHelpAndHopeRepository().Create(ctx, item)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create help and hope item")
	}

	return item, nil
}

// UpdateItem modifies an existing catalog item.
func (srv *helpAndHopeService) UpdateItem(ctx context.Context, id uuid.UUID, input *usecase.HelpAndHopeInput) (*entity.HelpAndHopeItem, error) {
	srv.logger.Info("Updating help and hope item", "itemID", id)

	if !input.Theme.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown theme")
	}

	var item *entity.HelpAndHopeItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		itemRepo := repoFactory.NewHelpAndHopeRepository()

		found, err := itemRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrHelpAndHopeNotFound) {
				return errors.Wrap(domainerrors.ErrHelpAndHopeNotFound, "item not found")
			}

			return errors.Wrap(err, "failed to find item")
		}

		found.Title = input.Title
		found.Coins = input.Coins
		found.Theme = input.Theme
		found.Image = input.Image
		if found.Image == "" {
			found.Image = input.Theme.Image()
		}

		if err := itemRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update item")
		}
		item = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes a catalog item.
func (srv *helpAndHopeService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting help and hope item", "itemID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewHelpAndHopeRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrHelpAndHopeNotFound) {
				return errors.Wrap(domainerrors.ErrHelpAndHopeNotFound, "item not found")
			}

			return errors.Wrap(err, "failed to delete item")
		}

		return nil
	})
}

// GetItem retrieves a single catalog item.
func (srv *helpAndHopeService) GetItem(ctx context.Context, id uuid.UUID) (*entity.HelpAndHopeItem, error) {
	var item *entity.HelpAndHopeItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewHelpAndHopeRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrHelpAndHopeNotFound) {
				return errors.Wrap(domainerrors.ErrHelpAndHopeNotFound, "item not found")
			}

			return errors.Wrap(err, "failed to find item")
		}
		item = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems retrieves the whole catalog.
func (srv *helpAndHopeService) ListItems(ctx context.Context) ([]*entity.HelpAndHopeItem, error) {
	var items []*entity.HelpAndHopeItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewHelpAndHopeRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list items")
		}
		items = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// donationService implements the DonationUsecase interface.
type donationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewDonationService is the constructor for donationService.
func NewDonationService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.DonationUsecase {
	return &donationService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Donate debits the user's coin balance and records the donation history in
// one transaction: a balance short of the total fails with no debit. The
// confirmation notification fires after the commit.
func (srv *donationService) Donate(ctx context.Context, userID uuid.UUID, input *usecase.DonateInput) (*entity.DonationHistory, error) {
	srv.logger.Info("Processing donation", "userID", userID, "lines", len(input.Lines))

	if len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "donation items are required")
	}

	var history *entity.DonationHistory
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		itemRepo := repoFactory.NewHelpAndHopeRepository()
		donationRepo := repoFactory.NewDonationRepository()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// Price every line before touching the balance.
		var total float64
		lines := make([]entity.DonationLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			item, err := itemRepo.FindByID(ctx, line.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrHelpAndHopeNotFound) {
					return domainerrors.ErrHelpAndHopeNotFound.WithMessagef("item with ID %s not found", line.ItemID)
				}

				return errors.Wrap(err, "failed to find item")
			}

			lineTotal := item.Coins * float64(line.Quantity)
			total += lineTotal
			lines = append(lines, entity.DonationLine{
				ItemID:     line.ItemID,
				Quantity:   line.Quantity,
				TotalCoins: lineTotal,
			})
		}

		// The conditional debit is the real balance check; concurrent
		// donations that pass a read could otherwise overdraw together.
		if err := userRepo.DebitCoins(ctx, userID, total); err != nil {
			if errors.Is(err, repository.ErrInsufficientCoins) {
				return errors.Wrap(domainerrors.ErrInsufficientCoins, "not enough coins for this donation")
			}

			return errors.Wrap(err, "failed to debit coins")
		}

		history = &entity.DonationHistory{
			UserID:       userID,
			Lines:        lines,
			CoinsDonated: total,
		}
		if err := donationRepo.Create(ctx, history); err != nil {
			return errors.Wrap(err, "failed to record donation")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := srv.notificationRepo.Create(ctx, &entity.Notification{
		UserID:    userID,
		Message:   donationSuccessMessage,
		CreatedAt: time.Now(),
	}); err != nil {
		srv.logger.Warn("Failed to create donation notification", "userID", userID, "error", err)
	}

	return history, nil
}

// GetDonation retrieves a single donation history.
func (srv *donationService) GetDonation(ctx context.Context, id uuid.UUID) (*entity.DonationHistory, error) {
	var history *entity.DonationHistory

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrDonationNotFound) {
				return errors.Wrap(domainerrors.ErrDonationNotFound, "donation not found")
			}

			return errors.Wrap(err, "failed to find donation")
		}
		history = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return history, nil
}

// ListUserDonations retrieves the user's donation histories, newest first.
func (srv *donationService) ListUserDonations(ctx context.Context, userID uuid.UUID) ([]*entity.DonationHistory, error) {
	var histories []*entity.DonationHistory

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list user donations")
		}
		histories = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return histories, nil
}

// ListAllDonations retrieves every donation history, newest first.
func (srv *donationService) ListAllDonations(ctx context.Context) ([]*entity.DonationHistory, error) {
	var histories []*entity.DonationHistory

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list donations")
		}
		histories = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return histories, nil
}

// MonthlyDonations retrieves the donation histories of one calendar month.
func (srv *donationService) MonthlyDonations(ctx context.Context, year int, month time.Month) ([]*entity.DonationHistory, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var histories []*entity.DonationHistory
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().FindBetween(ctx, from, to)
		if err != nil {
			return errors.Wrap(err, "failed to list monthly donations")
		}
		histories = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return histories, nil
}

// DeleteDonation removes a donation history.
func (srv *donationService) DeleteDonation(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting donation", "donationID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewDonationRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrDonationNotFound) {
				return errors.Wrap(domainerrors.ErrDonationNotFound, "donation not found")
			}

			return errors.Wrap(err, "failed to delete donation")
		}

		return nil
	})
}

// TopDonorsByCount ranks users by number of donations.
func (srv *donationService) TopDonorsByCount(ctx context.Context) ([]repository.UserDonationTotals, error) {
	var totals []repository.UserDonationTotals

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().TopUsersByDonationCount(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to rank donors by count")
		}
		totals = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// TopDonorsByCoins ranks users by summed coins donated.
func (srv *donationService) TopDonorsByCoins(ctx context.Context) ([]repository.UserDonationTotals, error) {
	var totals []repository.UserDonationTotals

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewDonationRepository().TopUsersByCoinsDonated(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to rank donors by coins")
		}
		totals = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}
