package services

import (
	"context"

	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

// RoleService manages role definitions and role assignments. Changes here
// only affect tokens issued afterwards; outstanding tokens keep the role
// claims they were minted with until expiry.
type RoleService struct {
	users    repositories.UserRepository
	roles    repositories.RoleRepository
	registry *models.RoleRegistry
	txMgr    repositories.TransactionManager
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	users repositories.UserRepository,
	roles repositories.RoleRepository,
	registry *models.RoleRegistry,
	txMgr repositories.TransactionManager,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		users:    users,
		roles:    roles,
		registry: registry,
		txMgr:    txMgr,
		logger:   logger,
	}
}

// SeedDefaultRoles ensures every registered role name exists in the store.
// Called once at startup.
func (s *RoleService) SeedDefaultRoles(ctx context.Context) error {
	for _, role := range s.registry.Roles() {
		if err := s.roles.EnsureRole(ctx, role); err != nil {
			return WrapInternal("failed to seed role", err)
		}
	}
	s.logger.Info("default roles seeded", zap.Int("count", len(s.registry.Roles())))
	return nil
}

// CreateRole defines a new role name. Existing names are accepted silently;
// empty names are rejected.
func (s *RoleService) CreateRole(ctx context.Context, role models.Role) error {
	if role == "" {
		return ErrInvalidInput
	}
	if err := s.roles.EnsureRole(ctx, role); err != nil {
		return WrapInternal("failed to create role", err)
	}
	s.registry.Register(role)
	s.logger.Info("role created", zap.String("role", string(role)))
	return nil
}

// ListRoles returns all defined role names
func (s *RoleService) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list roles", err)
	}
	return roles, nil
}

// UserRoles returns the current role set for the user with the given email
func (s *RoleService) UserRoles(ctx context.Context, email string) (models.RoleSet, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to look up user", err)
	}

	roles, err := s.roles.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, WrapInternal("failed to fetch user roles", err)
	}
	return roles, nil
}

// AssignRole adds the named role to the user. Assigning a role the user
// already holds is rejected with ErrAlreadyInRole, not silently accepted.
func (s *RoleService) AssignRole(ctx context.Context, email string, role models.Role) error {
	user, exists, err := s.resolveAssignment(ctx, email, role)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRoleNotFound
	}

	return s.txMgr.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		inRole, err := s.roles.IsInRole(txCtx, user.ID, role)
		if err != nil {
			return WrapInternal("failed to check role membership", err)
		}
		if inRole {
			return ErrAlreadyInRole
		}

		if err := s.roles.AssignRole(txCtx, user.ID, role); err != nil {
			return WrapInternal("failed to assign role", err)
		}

		s.logger.Info("role assigned",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(role)))
		return nil
	})
}

// RemoveRole removes the named role from the user. Removing a role the
// user does not hold is rejected with ErrNotInRole.
func (s *RoleService) RemoveRole(ctx context.Context, email string, role models.Role) error {
	user, exists, err := s.resolveAssignment(ctx, email, role)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRoleNotFound
	}

	return s.txMgr.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		inRole, err := s.roles.IsInRole(txCtx, user.ID, role)
		if err != nil {
			return WrapInternal("failed to check role membership", err)
		}
		if !inRole {
			return ErrNotInRole
		}

		if err := s.roles.RemoveRole(txCtx, user.ID, role); err != nil {
			return WrapInternal("failed to remove role", err)
		}

		s.logger.Info("role removed",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(role)))
		return nil
	})
}

// resolveAssignment looks up the target user and whether the role exists
func (s *RoleService) resolveAssignment(ctx context.Context, email string, role models.Role) (*models.User, bool, error) {
	if email == "" || role == "" {
		return nil, false, ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, WrapInternal("failed to look up user", err)
	}

	exists, err := s.roles.RoleExists(ctx, role)
	if err != nil {
		return nil, false, WrapInternal("failed to check role", err)
	}

	return user, exists, nil
}
