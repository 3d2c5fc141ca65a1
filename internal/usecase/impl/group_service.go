package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/pricing"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const topGroupMessage = "Congratulations! Your group is the top selling group this month."

// groupService implements the GroupUsecase interface.
type groupService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NewGroupService is the constructor for groupService.
func NewGroupService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	logger *slog.Logger,
) usecase.GroupUsecase {
	return &groupService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateGroup assembles a new group and mirrors membership onto every
// member's GroupID in the same transaction.
func (srv *groupService) CreateGroup(ctx context.Context, adminID uuid.UUID, input *usecase.CreateGroupInput) (*entity.Group, error) {
	srv.logger.Info("Creating group", "coordinatorID", input.CoordinatorID, "ambassadors", len(input.AmbassadorIDs))

	var group *entity.Group
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		groupRepo := repoFactory.NewGroupRepository()

		coordinator, err := userRepo.FindByID(ctx, input.CoordinatorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "coordinator not found")
			}

			return errors.Wrap(err, "failed to find coordinator")
		}
		if coordinator.Role != entity.RoleCoordinator {
			return errors.Wrap(domainerrors.ErrRoleNotEligible, "user is not a coordinator")
		}
		if coordinator.GroupID != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "coordinator already belongs to a group")
		}

		for _, ambassadorID := range input.AmbassadorIDs {
			ambassador, err := userRepo.FindByID(ctx, ambassadorID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrUserNotFound, "ambassador not found")
				}

				return errors.Wrap(err, "failed to find ambassador")
			}
			if ambassador.Role != entity.RoleAmbassador {
				return errors.Wrap(domainerrors.ErrRoleNotEligible, "user is not an ambassador")
			}
			if ambassador.GroupID != nil {
				return errors.Wrap(domainerrors.ErrValidationFailed, "ambassador already belongs to a group")
			}
		}

		group = &entity.Group{
			AdminID:       adminID,
			CoordinatorID: input.CoordinatorID,
			AmbassadorIDs: input.AmbassadorIDs,
		}
		if err := groupRepo.Create(ctx, group); err != nil {
			return errors.Wrap(err, "failed to create group")
		}

		if err := userRepo.SetGroup(ctx, group.Members(), &group.ID); err != nil {
			return errors.Wrap(err, "failed to sync group membership")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroup retrieves a single group.
func (srv *groupService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var group *entity.Group

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewGroupRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "group not found")
			}

			return errors.Wrap(err, "failed to find group")
		}
		group = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroups retrieves every group.
func (srv *groupService) ListGroups(ctx context.Context) ([]*entity.Group, error) {
	var groups []*entity.Group

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewGroupRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list groups")
		}
		groups = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// DeleteGroup removes a group and clears every member's back-reference.
func (srv *groupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting group", "groupID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		userRepo := repoFactory.NewUserRepository()

		group, err := groupRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "group not found")
			}

			return errors.Wrap(err, "failed to find group")
		}

		if err := userRepo.SetGroup(ctx, group.Members(), nil); err != nil {
			return errors.Wrap(err, "failed to clear group membership")
		}
		if err := groupRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete group")
		}

		return nil
	})
}

// ListMembers returns the member users of a group. Only members of the group
// may see the listing.
func (srv *groupService) ListMembers(ctx context.Context, callerID, groupID uuid.UUID) ([]*entity.User, error) {
	var members []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		userRepo := repoFactory.NewUserRepository()

		group, err := groupRepo.FindByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "group not found")
			}

			return errors.Wrap(err, "failed to find group")
		}
		if group.CoordinatorID != callerID && !group.HasAmbassador(callerID) {
			return errors.Wrap(domainerrors.ErrNotGroupMember, "you are not a member of this group")
		}

		for _, memberID := range group.Members() {
			member, err := userRepo.FindByID(ctx, memberID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// Membership mirror drifted; skip the dangling reference.
					srv.logger.Warn("Group member missing", "groupID", groupID, "userID", memberID)

					continue
				}

				return errors.Wrap(err, "failed to find group member")
			}
			members = append(members, member)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

// MoveAmbassador transfers an ambassador between groups, keeping both
// ambassador sets and the user's back-reference in sync.
func (srv *groupService) MoveAmbassador(ctx context.Context, ambassadorID, fromGroupID, toGroupID uuid.UUID) error {
	srv.logger.Info("Moving ambassador", "ambassadorID", ambassadorID, "from", fromGroupID, "to", toGroupID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		userRepo := repoFactory.NewUserRepository()

		fromGroup, err := groupRepo.FindByID(ctx, fromGroupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "source group not found")
			}

			return errors.Wrap(err, "failed to find source group")
		}
		toGroup, err := groupRepo.FindByID(ctx, toGroupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "target group not found")
			}

			return errors.Wrap(err, "failed to find target group")
		}
		if !fromGroup.HasAmbassador(ambassadorID) {
			return errors.Wrap(domainerrors.ErrNotGroupMember, "ambassador is not in the source group")
		}

		fromGroup.RemoveAmbassador(ambassadorID)
		toGroup.AddAmbassador(ambassadorID)

		if err := groupRepo.Update(ctx, fromGroup); err != nil {
			return errors.Wrap(err, "failed to update source group")
		}
		if err := groupRepo.Update(ctx, toGroup); err != nil {
			return errors.Wrap(err, "failed to update target group")
		}
		if err := userRepo.SetGroup(ctx, []uuid.UUID{ambassadorID}, &toGroup.ID); err != nil {
			return errors.Wrap(err, "failed to sync ambassador membership")
		}

		return nil
	})
}

// ReplaceCoordinator swaps the group's coordinator for another one.
func (srv *groupService) ReplaceCoordinator(ctx context.Context, groupID, newCoordinatorID uuid.UUID) (*entity.Group, error) {
	srv.logger.Info("Replacing coordinator", "groupID", groupID, "newCoordinatorID", newCoordinatorID)

	var group *entity.Group
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		userRepo := repoFactory.NewUserRepository()

		found, err := groupRepo.FindByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "group not found")
			}

			return errors.Wrap(err, "failed to find group")
		}

		replacement, err := userRepo.FindByID(ctx, newCoordinatorID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "replacement coordinator not found")
			}

			return errors.Wrap(err, "failed to find replacement coordinator")
		}
		if replacement.Role != entity.RoleCoordinator {
			return errors.Wrap(domainerrors.ErrRoleNotEligible, "user is not a coordinator")
		}
		if replacement.GroupID != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "coordinator already belongs to a group")
		}

		outgoingID := found.CoordinatorID
		found.CoordinatorID = newCoordinatorID
		if err := groupRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update group")
		}

		if err := userRepo.SetGroup(ctx, []uuid.UUID{outgoingID}, nil); err != nil {
			return errors.Wrap(err, "failed to clear outgoing coordinator")
		}
		if err := userRepo.SetGroup(ctx, []uuid.UUID{newCoordinatorID}, &found.ID); err != nil {
			return errors.Wrap(err, "failed to assign new coordinator")
		}
		group = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// RemoveAmbassador drops an ambassador from the group.
func (srv *groupService) RemoveAmbassador(ctx context.Context, groupID, ambassadorID uuid.UUID) (*entity.Group, error) {
	srv.logger.Info("Removing ambassador", "groupID", groupID, "ambassadorID", ambassadorID)

	var group *entity.Group
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		userRepo := repoFactory.NewUserRepository()

		found, err := groupRepo.FindByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repository.ErrGroupNotFound) {
				return errors.Wrap(domainerrors.ErrGroupNotFound, "group not found")
			}

			return errors.Wrap(err, "failed to find group")
		}
		if !found.HasAmbassador(ambassadorID) {
			return errors.Wrap(domainerrors.ErrNotGroupMember, "ambassador is not in this group")
		}

		found.RemoveAmbassador(ambassadorID)
		if err := groupRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update group")
		}
		if err := userRepo.SetGroup(ctx, []uuid.UUID{ambassadorID}, nil); err != nil {
			return errors.Wrap(err, "failed to clear ambassador membership")
		}
		group = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// ComputeMonthlyTopSales ranks every group by its members' order value over
// one calendar month and rewards the top group: all members get the winner
// notification (deduped per recipient) and each ambassador gets a fixed
// discount balance credit.
func (srv *groupService) ComputeMonthlyTopSales(ctx context.Context, year int, month time.Month) ([]entity.GroupSales, error) {
	srv.logger.Info("Computing monthly top sales", "year", year, "month", month)

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var ranked []entity.GroupSales
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		groupRepo := repoFactory.NewGroupRepository()
		orderRepo := repoFactory.NewOrderRepository()
		userRepo := repoFactory.NewUserRepository()

		groups, err := groupRepo.FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list groups")
		}
		if len(groups) == 0 {
			return errors.Wrap(domainerrors.ErrNotFound, "no sales data found for the given month")
		}

		ranked = make([]entity.GroupSales, 0, len(groups))
		for _, group := range groups {
			total, err := orderRepo.SumPaymentsByUsersBetween(ctx, group.Members(), from, to)
			if err != nil {
				return errors.Wrap(err, "failed to sum group sales")
			}
			ranked = append(ranked, entity.GroupSales{
				GroupID:       group.ID,
				CoordinatorID: group.CoordinatorID,
				AmbassadorIDs: group.AmbassadorIDs,
				TotalSales:    total,
			})
		}

		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalSales > ranked[j].TotalSales
		})

		top := ranked[0]
		if len(top.AmbassadorIDs) > 0 {
			if err := userRepo.CreditGroupDiscount(ctx, top.AmbassadorIDs, pricing.GroupRewardDiscountPercent); err != nil {
				return errors.Wrap(err, "failed to credit group reward")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.notifyTopGroup(ctx, ranked[0])

	return ranked, nil
}

// notifyTopGroup sends the winner notification to every member of the top
// group, skipping recipients that already hold the identical message.
func (srv *groupService) notifyTopGroup(ctx context.Context, top entity.GroupSales) {
	recipients := append([]uuid.UUID{top.CoordinatorID}, top.AmbassadorIDs...)
	for _, recipientID := range recipients {
		exists, err := srv.notificationRepo.ExistsByMessage(ctx, recipientID, topGroupMessage)
		if err != nil {
			srv.logger.Warn("Failed to check reward notification dedup", "userID", recipientID, "error", err)

			continue
		}
		if exists {
			continue
		}

		if err := srv.notificationRepo.Create(ctx, &entity.Notification{
			UserID:    recipientID,
			Message:   topGroupMessage,
			CreatedAt: time.Now(),
		}); err != nil {
			srv.logger.Warn("Failed to create reward notification", "userID", recipientID, "error", err)
		}
	}
}
