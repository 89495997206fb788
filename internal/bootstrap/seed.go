package bootstrap

import (
	"context"
	"errors"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

// ErrSeedCredentials faltan SEED_ADMIN_EMAIL o SEED_ADMIN_PASSWORD.
var ErrSeedCredentials = errors.New("seed: SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son obligatorios")

// SeedSuperAdmin crea el primer super-admin si su email no existe todavía.
// Devuelve false si ya estaba registrado.
func SeedSuperAdmin(ctx context.Context, users repository.UserRepository, authUC *auth.AuthUseCase, cfg config.SeedConfig) (bool, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return false, ErrSeedCredentials
	}
	existing, err := users.GetByEmail(ctx, cfg.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:       cfg.Email,
		Password:    cfg.Password,
		DisplayName: cfg.DisplayName,
		Role:        entity.RoleSuperAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
