package app

import (
	"context"
	"fmt"

	"github.com/upb/auth-gateway/config"
	"github.com/upb/auth-gateway/handlers"
	"github.com/upb/auth-gateway/middleware"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/policy"
	"github.com/upb/auth-gateway/repositories"
	"github.com/upb/auth-gateway/repositories/postgres"
	"github.com/upb/auth-gateway/services"
	"github.com/upb/auth-gateway/token"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users     repositories.UserRepository
	Roles     repositories.RoleRepository
	TxManager repositories.TransactionManager

	// Token handling
	Issuer    *token.Issuer
	Validator *token.Validator

	// Registries
	RoleRegistry   *models.RoleRegistry
	PolicyRegistry *policy.Registry

	// Services
	AuthService *services.AuthService
	RoleService *services.RoleService

	// Middleware
	AuthMiddleware   *middleware.AuthMiddleware
	PolicyMiddleware *middleware.PolicyMiddleware

	// Handlers
	AuthHandler   *handlers.AuthHandler
	UserHandler   *handlers.UserHandler
	RoleHandler   *handlers.RoleHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initTokens(cfg)
	deps.initServices()
	deps.initHTTP()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Roles = repos.Roles
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initTokens initializes the token issuer and validator from the shared
// JWT configuration, so every token minted here validates here.
func (d *Dependencies) initTokens(cfg *config.Config) {
	d.Issuer = token.NewIssuer(cfg.JWT)
	d.Validator = token.NewValidator(cfg.JWT)

	d.Logger.Info("token issuer and validator initialized",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.String("audience", cfg.JWT.Audience),
		zap.Duration("expiry", cfg.JWT.Expiry()))
}

// initServices initializes the service layer and registries
func (d *Dependencies) initServices() {
	d.RoleRegistry = models.NewRoleRegistry()
	d.PolicyRegistry = policy.NewRegistry()

	d.AuthService = services.NewAuthService(d.Users, d.Roles, d.Issuer, d.Logger)
	d.RoleService = services.NewRoleService(d.Users, d.Roles, d.RoleRegistry, d.TxManager, d.Logger)

	d.Logger.Info("services initialized")
}

// initHTTP initializes middleware and handlers
func (d *Dependencies) initHTTP() {
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Validator, d.Logger)
	d.PolicyMiddleware = middleware.NewPolicyMiddleware(d.PolicyRegistry, d.Logger)

	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.AuthService, d.Logger)
	d.RoleHandler = handlers.NewRoleHandler(d.RoleService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)
}

// SeedRoles ensures the default role names exist before serving traffic
func (d *Dependencies) SeedRoles(ctx context.Context) error {
	return d.RoleService.SeedDefaultRoles(ctx)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
