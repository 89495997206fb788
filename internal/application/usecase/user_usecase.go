package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var userMessages = Messages{
	NotFound:        "Пользователь не найден",
	InArchive:       "Пользователь в архиве.",
	NotInArchive:    "Этот пользователь не в архиве",
	AlreadyArchived: "Пользователь уже в архиве",
	Archived:        "Пользователь перемещен в архив",
	Unarchived:      "Пользователь восстановлен из архива",
	Deleted:         "Пользователь успешно удалён",
}

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	Lifecycle[entity.User, *entity.User]
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		Lifecycle: NewLifecycle[entity.User](repo, userMessages),
		repo:      repo,
	}
}

// ListUsers lista usuarios sin password ni token.
func (uc *UserUseCase) ListUsers(ctx context.Context, archived bool) ([]*dto.UserResponse, error) {
	list, err := uc.List(ctx, archived)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// GetUser obtiene un usuario activo o, con archived, uno archivado.
func (uc *UserUseCase) GetUser(ctx context.Context, id string, archived bool) (*dto.UserResponse, error) {
	get := uc.Get
	if archived {
		get = uc.GetArchived
	}
	u, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// Update aplica una actualización parcial. El email sigue siendo único.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, domain.Invalid("Укажите эл. почту.")
		}
		existing, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != u.ID {
			return nil, domain.Conflict(fmt.Sprintf("Пользователь с эл. почтой %s уже зарегистрирован", email))
		}
		u.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.Invalid("Пароль не может быть пустым.")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.DisplayName != nil {
		u.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.Invalidf("Недопустимая роль: %q.", *in.Role)
		}
		u.Role = *in.Role
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// ListView adapta ListUsers a la interfaz común de los handlers.
func (uc *UserUseCase) ListView(ctx context.Context, archived bool, _ dto.ListQuery) (any, error) {
	return uc.ListUsers(ctx, archived)
}

// GetView adapta GetUser a la interfaz común de los handlers.
func (uc *UserUseCase) GetView(ctx context.Context, id string, archived bool, _ dto.ListQuery) (any, error) {
	return uc.GetUser(ctx, id, archived)
}
