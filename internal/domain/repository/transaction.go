package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
// The order and donation engines run their whole multi-document mutation set
// (stock decrements, coin updates, record creation) inside one Execute scope
// so all side effects materialize together or not at all.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewProductRepository returns a ProductRepository bound to the current transaction.
	NewProductRepository() ProductRepository

	// NewCommentRepository returns a CommentRepository bound to the current transaction.
	NewCommentRepository() CommentRepository

	// NewUserRepository returns a UserRepository bound to the current transaction.
	NewUserRepository() UserRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository

	// NewGroupRepository returns a GroupRepository bound to the current transaction.
	NewGroupRepository() GroupRepository

	// NewHelpAndHopeRepository returns a HelpAndHopeRepository bound to the current transaction.
	NewHelpAndHopeRepository() HelpAndHopeRepository

	// NewDonationRepository returns a DonationRepository bound to the current transaction.
	NewDonationRepository() DonationRepository

	// NewRoleRequestRepository returns a RoleRequestRepository bound to the current transaction.
	NewRoleRequestRepository() RoleRequestRepository
}
