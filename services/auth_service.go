package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/auth-gateway/credentials"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

// TokenIssuer mints signed bearer tokens for a verified identity
type TokenIssuer interface {
	Issue(identity models.Identity, roles models.RoleSet) (string, error)
}

// AuthService verifies credentials and issues tokens
type AuthService struct {
	users  repositories.UserRepository
	roles  repositories.RoleRepository
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, roles repositories.RoleRepository, issuer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		issuer: issuer,
		logger: logger,
	}
}

// LoginResult is returned on successful credential verification
type LoginResult struct {
	Token string
	Roles []string
}

// Login verifies the email/password pair and issues a token embedding the
// user's current role set. Unknown email and wrong password both collapse
// to ErrInvalidCredentials; the distinction is logged, never returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			s.logger.Debug("login failed: unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, WrapInternal("failed to look up user", err)
	}

	if err := credentials.VerifyPassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("login failed: password mismatch", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	roles, err := s.roles.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, WrapInternal("failed to fetch user roles", err)
	}

	token, err := s.issuer.Issue(user.Identity(), roles)
	if err != nil {
		return nil, WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.Strings("roles", roles.Names()))

	return &LoginResult{
		Token: token,
		Roles: roles.Names(),
	}, nil
}

// Register creates a new user record with a hashed password
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !repositories.IsNotFound(err) {
		return nil, WrapInternal("failed to check existing user", err)
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, NewDomainError(ErrorTypeValidation, err.Error(), nil)
	}

	user := models.NewUser(email, name, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, WrapInternal("failed to create user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Profile is the authenticated user's view of their own record
type Profile struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// GetProfile returns the current record and role set for the given user ID
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
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

	return &Profile{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Roles: roles.Names(),
	}, nil
}

// UpdateProfile changes the user's own name and/or email. Empty fields
// keep their current value. Changing the email to one held by another
// user is a conflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to look up user", err)
	}

	if email != "" && email != user.Email {
		existing, err := s.users.GetByEmail(ctx, email)
		if err != nil && !repositories.IsNotFound(err) {
			return nil, WrapInternal("failed to check existing user", err)
		}
		if existing != nil {
			return nil, ErrDuplicateEmail
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, WrapInternal("failed to update user", err)
	}

	s.logger.Info("profile updated", zap.String("user_id", user.ID.String()))
	return s.GetProfile(ctx, user.ID)
}

// ListUsers returns profiles for all users, paginated. Admin surface only.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]*Profile, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, WrapInternal("failed to list users", err)
	}

	profiles := make([]*Profile, 0, len(users))
	for _, user := range users {
		roles, err := s.roles.GetUserRoles(ctx, user.ID)
		if err != nil {
			return nil, WrapInternal("failed to fetch user roles", err)
		}
		profiles = append(profiles, &Profile{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
			Roles: roles.Names(),
		})
	}

	return profiles, nil
}
