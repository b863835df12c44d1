// Package repositories defines the persistence interfaces for the user and
// role stores. The auth core treats these as external collaborators: tokens
// never re-consult them after issuance.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/auth-gateway/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction
	// Automatically commits if function succeeds, rolls back on error
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles identity record operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves changes to an existing user record
	Update(ctx context.Context, user *models.User) error

	// List retrieves users with pagination
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// RoleRepository handles role definitions and role assignments
type RoleRepository interface {
	// EnsureRole creates the role if it does not already exist
	EnsureRole(ctx context.Context, role models.Role) error

	// RoleExists reports whether the named role is defined
	RoleExists(ctx context.Context, role models.Role) (bool, error)

	// ListRoles retrieves all defined role names
	ListRoles(ctx context.Context) ([]models.Role, error)

	// GetUserRoles retrieves the current role set for a user
	GetUserRoles(ctx context.Context, userID uuid.UUID) (models.RoleSet, error)

	// IsInRole reports whether the user currently holds the role
	IsInRole(ctx context.Context, userID uuid.UUID, role models.Role) (bool, error)

	// AssignRole adds a role assignment for the user
	AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error

	// RemoveRole removes a role assignment from the user
	RemoveRole(ctx context.Context, userID uuid.UUID, role models.Role) error
}

// Repositories holds all repository instances
type Repositories struct {
	Users UserRepository
	Roles RoleRepository
}

// ErrNotFound is returned by repositories when a record does not exist
type ErrNotFound struct {
	Entity string
	Key    string
}

// Error implements the error interface
func (e *ErrNotFound) Error() string {
	return e.Entity + " not found: " + e.Key
}

// NewErrNotFound creates a not-found error for the given entity and lookup key
func NewErrNotFound(entity, key string) *ErrNotFound {
	return &ErrNotFound{Entity: entity, Key: key}
}

// IsNotFound reports whether err is a repository not-found error
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	return errors.As(err, &notFound)
}
