package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"smarket/internal/domain/entity"
	"smarket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the closure against a fixed factory without any real
// transaction. Rollback is simulated by the caller asserting that no further
// repository calls happened after the failing one. A non-nil commitErr makes
// the commit fail after the closure ran cleanly.
type stubTxManager struct {
	factory   repository.RepositoryFactory
	commitErr error
}

func (m *stubTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := fn(m.factory); err != nil {
		return err
	}

	return m.commitErr
}

// stubRepositoryFactory hands out the test's mock repositories.
type stubRepositoryFactory struct {
	products  *mockProductRepository
	comments  *mockCommentRepository
	users     *mockUserRepository
	orders    *mockOrderRepository
	groups    *mockGroupRepository
	items     *mockHelpAndHopeRepository
	donations *mockDonationRepository
	requests  *mockRoleRequestRepository
}

func newStubFactory() *stubRepositoryFactory {
	return &stubRepositoryFactory{
		products:  &mockProductRepository{},
		comments:  &mockCommentRepository{},
		users:     &mockUserRepository{},
		orders:    &mockOrderRepository{},
		groups:    &mockGroupRepository{},
		items:     &mockHelpAndHopeRepository{},
		donations: &mockDonationRepository{},
		requests:  &mockRoleRequestRepository{},
	}
}

func (f *stubRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return f.products
}

func (f *stubRepositoryFactory) NewCommentRepository() repository.CommentRepository {
	return f.comments
}

func (f *stubRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.users
}

func (f *stubRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return f.orders
}

func (f *stubRepositoryFactory) NewGroupRepository() repository.GroupRepository {
	return f.groups
}

func (f *stubRepositoryFactory) NewHelpAndHopeRepository() repository.HelpAndHopeRepository {
	return f.items
}

func (f *stubRepositoryFactory) NewDonationRepository() repository.DonationRepository {
	return f.donations
}

func (f *stubRepositoryFactory) NewRoleRequestRepository() repository.RoleRequestRepository {
	return f.requests
}

// --- repository mocks ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepository) FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) SearchByTitle(ctx context.Context, query string) ([]*entity.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, unit string, qty int) (*entity.Product, error) {
	args := m.Called(ctx, id, unit, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepository) IncrementSaleCount(ctx context.Context, id uuid.UUID, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *mockProductRepository) TopSellers(ctx context.Context, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *mockCommentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindUnassignedByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByBirthMonth(ctx context.Context, month time.Month) ([]*entity.User, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) AddCoins(ctx context.Context, id uuid.UUID, delta float64) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *mockUserRepository) DebitCoins(ctx context.Context, id uuid.UUID, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *mockUserRepository) SetGroup(ctx context.Context, userIDs []uuid.UUID, groupID *uuid.UUID) error {
	return m.Called(ctx, userIDs, groupID).Error(0)
}

func (m *mockUserRepository) CreditGroupDiscount(ctx context.Context, userIDs []uuid.UUID, percent float64) error {
	return m.Called(ctx, userIDs, percent).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) FindDoneBetween(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) SumPaymentsByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.OrderStatus) (float64, error) {
	args := m.Called(ctx, userID, status)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockOrderRepository) SumPaymentsByUsersBetween(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (float64, error) {
	args := m.Called(ctx, userIDs, from, to)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderRepository) TopUsersByOrderCount(ctx context.Context) ([]repository.UserOrderTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.UserOrderTotals), args.Error(1)
}

func (m *mockOrderRepository) TopUsersByPaymentTotal(ctx context.Context) ([]repository.UserOrderTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.UserOrderTotals), args.Error(1)
}

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Group), args.Error(1)
}

func (m *mockGroupRepository) FindAll(ctx context.Context) ([]*entity.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Group), args.Error(1)
}

func (m *mockGroupRepository) Update(ctx context.Context, group *entity.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockHelpAndHopeRepository struct {
	mock.Mock
}

func (m *mockHelpAndHopeRepository) Create(ctx context.Context, item *entity.HelpAndHopeItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockHelpAndHopeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HelpAndHopeItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.HelpAndHopeItem), args.Error(1)
}

func (m *mockHelpAndHopeRepository) FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.HelpAndHopeItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.HelpAndHopeItem), args.Error(1)
}

func (m *mockHelpAndHopeRepository) FindAll(ctx context.Context) ([]*entity.HelpAndHopeItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.HelpAndHopeItem), args.Error(1)
}

func (m *mockHelpAndHopeRepository) Update(ctx context.Context, item *entity.HelpAndHopeItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockHelpAndHopeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockDonationRepository struct {
	mock.Mock
}

func (m *mockDonationRepository) Create(ctx context.Context, history *entity.DonationHistory) error {
	return m.Called(ctx, history).Error(0)
}

func (m *mockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DonationHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.DonationHistory), args.Error(1)
}

func (m *mockDonationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DonationHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DonationHistory), args.Error(1)
}

func (m *mockDonationRepository) FindAll(ctx context.Context) ([]*entity.DonationHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DonationHistory), args.Error(1)
}

func (m *mockDonationRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.DonationHistory, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DonationHistory), args.Error(1)
}

func (m *mockDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDonationRepository) TopUsersByDonationCount(ctx context.Context) ([]repository.UserDonationTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.UserDonationTotals), args.Error(1)
}

func (m *mockDonationRepository) TopUsersByCoinsDonated(ctx context.Context) ([]repository.UserDonationTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.UserDonationTotals), args.Error(1)
}

type mockRoleRequestRepository struct {
	mock.Mock
}

func (m *mockRoleRequestRepository) Create(ctx context.Context, request *entity.RoleRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockRoleRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoleRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RoleRequest), args.Error(1)
}

func (m *mockRoleRequestRepository) FindAll(ctx context.Context) ([]*entity.RoleRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RoleRequest), args.Error(1)
}

func (m *mockRoleRequestRepository) FindByStatus(ctx context.Context, status entity.RoleRequestStatus) ([]*entity.RoleRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RoleRequest), args.Error(1)
}

func (m *mockRoleRequestRepository) FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.RoleRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RoleRequest), args.Error(1)
}

func (m *mockRoleRequestRepository) Update(ctx context.Context, request *entity.RoleRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockRoleRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *mockNotificationRepository) ExistsByMessage(ctx context.Context, userID uuid.UUID, message string) (bool, error) {
	args := m.Called(ctx, userID, message)

	return args.Bool(0), args.Error(1)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, eventType string, key uuid.UUID, payload any) error {
	return m.Called(ctx, eventType, key, payload).Error(0)
}
