package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

// RoleRepository implements the repositories.RoleRepository interface
type RoleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *DB, logger *zap.Logger) repositories.RoleRepository {
	return &RoleRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureRole creates the role if it does not already exist
func (r *RoleRepository) EnsureRole(ctx context.Context, role models.Role) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, string(role)); err != nil {
		return fmt.Errorf("failed to ensure role: %w", err)
	}

	r.logger.Debug("role ensured", zap.String("role", string(role)))
	return nil
}

// RoleExists reports whether the named role is defined
func (r *RoleRepository) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM roles WHERE name = $1)`

	executor := GetExecutor(ctx, r.db)
	var exists bool
	if err := executor.QueryRowContext(ctx, query, string(role)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}

	return exists, nil
}

// ListRoles retrieves all defined role names
func (r *RoleRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	query := `SELECT name FROM roles ORDER BY name`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, models.Role(name))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}

	return roles, nil
}

// GetUserRoles retrieves the current role set for a user
func (r *RoleRepository) GetUserRoles(ctx context.Context, userID uuid.UUID) (models.RoleSet, error) {
	query := `
		SELECT role_name
		FROM user_roles
		WHERE user_id = $1
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user roles: %w", err)
	}

	return models.NewRoleSet(names...), nil
}

// IsInRole reports whether the user currently holds the role
func (r *RoleRepository) IsInRole(ctx context.Context, userID uuid.UUID, role models.Role) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role_name = $2)`

	executor := GetExecutor(ctx, r.db)
	var inRole bool
	if err := executor.QueryRowContext(ctx, query, userID, string(role)).Scan(&inRole); err != nil {
		return false, fmt.Errorf("failed to check role membership: %w", err)
	}

	return inRole, nil
}

// AssignRole adds a role assignment for the user
func (r *RoleRepository) AssignRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role_name)
		VALUES ($1, $2)
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	r.logger.Debug("role assigned",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))
	return nil
}

// RemoveRole removes a role assignment from the user
func (r *RoleRepository) RemoveRole(ctx context.Context, userID uuid.UUID, role models.Role) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_name = $2
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}

	r.logger.Debug("role removed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))
	return nil
}
