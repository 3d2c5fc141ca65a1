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

// helpAndHopeRepository implements the repository.HelpAndHopeRepository interface using GORM.
type helpAndHopeRepository struct {
	db *gorm.DB
}

// NewHelpAndHopeRepository is the constructor for helpAndHopeRepository.
func NewHelpAndHopeRepository(db *gorm.DB) repository.HelpAndHopeRepository {
	return &helpAndHopeRepository{
		db: db,
	}
}

// Create persists a new catalog item.
func (repo *helpAndHopeRepository) Create(ctx context.Context, item *entity.HelpAndHopeItem) error {
	itemM := fromHelpAndHopeDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create help and hope item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindByID retrieves a single catalog item by its unique ID.
func (repo *helpAndHopeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HelpAndHopeItem, error) {
	var itemM model.HelpAndHopeModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrHelpAndHopeNotFound
		}

		return nil, errors.Wrap(err, "failed to find help and hope item by id")
	}

	return toHelpAndHopeDomain(&itemM), nil
}

// FindMany retrieves the catalog items with the given IDs.
func (repo *helpAndHopeRepository) FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.HelpAndHopeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var itemModels []*model.HelpAndHopeModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find help and hope items by ids")
	}

	items := make([]*entity.HelpAndHopeItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toHelpAndHopeDomain(itemM))
	}

	return items, nil
}

// FindAll retrieves the whole catalog.
func (repo *helpAndHopeRepository) FindAll(ctx context.Context) ([]*entity.HelpAndHopeItem, error) {
	var itemModels []*model.HelpAndHopeModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all help and hope items")
	}

	items := make([]*entity.HelpAndHopeItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toHelpAndHopeDomain(itemM))
	}

	return items, nil
}

// Update modifies an existing catalog item.
func (repo *helpAndHopeRepository) Update(ctx context.Context, item *entity.HelpAndHopeItem) error {
	itemM := fromHelpAndHopeDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.HelpAndHopeModel{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(itemM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update help and hope item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrHelpAndHopeNotFound
	}

	return nil
}

// Delete removes a catalog item.
func (repo *helpAndHopeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.HelpAndHopeModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete help and hope item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrHelpAndHopeNotFound
	}

	return nil
}

// donationRepository implements the repository.DonationRepository interface using GORM.
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository is the constructor for donationRepository.
func NewDonationRepository(db *gorm.DB) repository.DonationRepository {
	return &donationRepository{
		db: db,
	}
}

// Create persists a new donation history with its lines.
func (repo *donationRepository) Create(ctx context.Context, history *entity.DonationHistory) error {
	historyM := fromDonationDomain(history)

	if err := repo.db.WithContext(ctx).Create(historyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or item reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create donation history")
	}

	history.ID = historyM.ID
	history.CreatedAt = historyM.CreatedAt

	return nil
}

// FindByID retrieves a single donation history by its unique ID.
func (repo *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DonationHistory, error) {
	var historyM model.DonationHistoryModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&historyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDonationNotFound
		}

		return nil, errors.Wrap(err, "failed to find donation history by id")
	}

	return toDonationDomain(&historyM), nil
}

// FindByUser retrieves all donation histories of the user, newest first.
func (repo *donationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DonationHistory, error) {
	var historyModels []*model.DonationHistoryModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find donation histories by user")
	}

	return toDonationDomainSlice(historyModels), nil
}

// FindAll retrieves every donation history, newest first.
func (repo *donationRepository) FindAll(ctx context.Context) ([]*entity.DonationHistory, error) {
	var historyModels []*model.DonationHistoryModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at DESC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all donation histories")
	}

	return toDonationDomainSlice(historyModels), nil
}

// FindBetween retrieves donation histories created in [from, to).
func (repo *donationRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.DonationHistory, error) {
	var historyModels []*model.DonationHistoryModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find donation histories in range")
	}

	return toDonationDomainSlice(historyModels), nil
}

// Delete removes a donation history and its lines.
func (repo *donationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Select("Lines").
		Delete(&model.DonationHistoryModel{ID: id})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete donation history")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDonationNotFound
	}

	return nil
}

// TopUsersByDonationCount ranks users by number of donations, descending.
func (repo *donationRepository) TopUsersByDonationCount(ctx context.Context) ([]repository.UserDonationTotals, error) {
	var totals []repository.UserDonationTotals

	if err := repo.db.WithContext(ctx).
		Model(&model.DonationHistoryModel{}).
		Select("user_id, COUNT(*) AS donation_count, COALESCE(SUM(coins_donated), 0) AS coins_donated").
		Group("user_id").
		Order("donation_count DESC").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank users by donation count")
	}

	return totals, nil
}

// TopUsersByCoinsDonated ranks users by summed coins donated, descending.
func (repo *donationRepository) TopUsersByCoinsDonated(ctx context.Context) ([]repository.UserDonationTotals, error) {
	var totals []repository.UserDonationTotals

	if err := repo.db.WithContext(ctx).
		Model(&model.DonationHistoryModel{}).
		Select("user_id, COUNT(*) AS donation_count, COALESCE(SUM(coins_donated), 0) AS coins_donated").
		Group("user_id").
		Order("coins_donated DESC").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank users by coins donated")
	}

	return totals, nil
}

// toHelpAndHopeDomain maps a persistence model to a pure domain entity.
func toHelpAndHopeDomain(data *model.HelpAndHopeModel) *entity.HelpAndHopeItem {
	return &entity.HelpAndHopeItem{
		ID:        data.ID,
		Title:     data.Title,
		Coins:     data.Coins,
		Theme:     entity.HelpAndHopeTheme(data.Theme),
		Image:     data.Image,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromHelpAndHopeDomain maps a pure domain entity to a GORM persistence model.
func fromHelpAndHopeDomain(data *entity.HelpAndHopeItem) *model.HelpAndHopeModel {
	return &model.HelpAndHopeModel{
		ID:        data.ID,
		Title:     data.Title,
		Coins:     data.Coins,
		Theme:     string(data.Theme),
		Image:     data.Image,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toDonationDomain maps a persistence model to a pure domain entity.
func toDonationDomain(data *model.DonationHistoryModel) *entity.DonationHistory {
	lines := make([]entity.DonationLine, 0, len(data.Lines))
	for _, lineM := range data.Lines {
		lines = append(lines, entity.DonationLine{
			ItemID:     lineM.ItemID,
			Quantity:   lineM.Quantity,
			TotalCoins: lineM.TotalCoins,
		})
	}

	return &entity.DonationHistory{
		ID:           data.ID,
		UserID:       data.UserID,
		Lines:        lines,
		CoinsDonated: data.CoinsDonated,
		CreatedAt:    data.CreatedAt,
	}
}

func toDonationDomainSlice(models []*model.DonationHistoryModel) []*entity.DonationHistory {
	histories := make([]*entity.DonationHistory, 0, len(models))
	for _, historyM := range models {
		histories = append(histories, toDonationDomain(historyM))
	}

	return histories
}

// fromDonationDomain maps a pure domain entity to a GORM persistence model.
func fromDonationDomain(data *entity.DonationHistory) *model.DonationHistoryModel {
	lines := make([]model.DonationLineModel, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, model.DonationLineModel{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			TotalCoins: line.TotalCoins,
		})
	}

	return &model.DonationHistoryModel{
		ID:           data.ID,
		UserID:       data.UserID,
		CoinsDonated: data.CoinsDonated,
		CreatedAt:    data.CreatedAt,
		Lines:        lines,
	}
}
