package migrations

import (
	"context"
	"errors"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Bootstrap creates the initial admin account from explicit configuration.
// No account is created when the credentials are unset; there is no baked-in
// default login.
func Bootstrap(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("admin bootstrap skipped, no credentials configured")
		return nil
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	if _, err := userRepo.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Info("admin account already exists", zap.String("email", cfg.AdminEmail))
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := userService.CreateUser(ctx, cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin); err != nil {
		return err
	}
	log.Info("admin account created", zap.String("email", cfg.AdminEmail))
	return nil
}
