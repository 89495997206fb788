package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

func newUseCase() (*auth.AuthUseCase, *memory.UserRepo) {
	users := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "almacen-test"}), users
}

func TestRegister_RolPorDefectoYEmailUnico(t *testing.T) {
	ctx := context.Background()
	uc, users := newUseCase()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "w@test.ru", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStockWorker, u.Role)
	assert.Equal(t, "w@test.ru", u.DisplayName)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash, "la contraseña se guarda hasheada")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "w@test.ru", Password: "otra"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "Пользователь с эл. почтой w@test.ru уже зарегистрирован", domain.Message(err, ""))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@test.ru", Password: "p", Role: "jefe"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_SesionYLogout(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "m@test.ru", Password: "secret", Role: entity.RoleManager})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "m@test.ru", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	u, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)

	// un login nuevo reemplaza la sesión anterior
	again, err := uc.Login(ctx, dto.LoginRequest{Email: "m@test.ru", Password: "secret"})
	require.NoError(t, err)
	if again.Token != out.Token {
		_, err = uc.Authenticate(ctx, out.Token)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	}

	msg, err := uc.Logout(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Вы вышли из системы.", msg.Message)

	_, err = uc.Authenticate(ctx, again.Token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc, users := newUseCase()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@test.ru", Password: "secret"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@test.ru", Password: "secret"})
	assert.Equal(t, "Неверный email", domain.Message(err, ""))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@test.ru", Password: "mal"})
	assert.Equal(t, "Неверный пароль", domain.Message(err, ""))

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.IsArchived = true
	require.NoError(t, users.Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@test.ru", Password: "secret"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "Ваш аккаунт был деактивирован", domain.Message(err, ""))
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Authenticate(context.Background(), "no.es.jwt")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
