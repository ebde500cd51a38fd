package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// UserUseCase administración de usuarios y roles (solo ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// List usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage(50, 200)
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get obtiene un usuario por ID. ErrUserNotFound si no existe.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create crea un usuario con los roles indicados (EMPLEADO si no se indican).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := auth.NewUser(in.Username, in.Password, in.Email, in.Name, in.Roles, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Update modifica email, nombre y estado. Los campos nil no cambian.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Enabled != nil {
		if !*in.Enabled {
			if err := uc.keepOneAdmin(ctx, user); err != nil {
				return nil, err
			}
		}
		user.Enabled = *in.Enabled
	}
	return uc.save(ctx, user)
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.keepOneAdmin(ctx, user); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// ResetPassword reemplaza la contraseña del usuario.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) error {
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	_, err = uc.save(ctx, user)
	return err
}

// ListRoles roles disponibles.
func (uc *UserUseCase) ListRoles() dto.RolesResponse {
	roles := make([]string, len(entity.KnownRoles))
	copy(roles, entity.KnownRoles)
	return dto.RolesResponse{Roles: roles}
}

// AssignRoles reemplaza los roles del usuario.
func (uc *UserUseCase) AssignRoles(ctx context.Context, id string, in dto.AssignRolesRequest) (*dto.UserResponse, error) {
	roles, err := auth.NormalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un rol", domain.ErrInvalidInput)
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(roles, entity.RoleAdmin) {
		if err := uc.keepOneAdmin(ctx, user); err != nil {
			return nil, err
		}
	}
	user.Roles = roles
	return uc.save(ctx, user)
}

// keepOneAdmin devuelve ErrForbidden si user es el único ADMIN habilitado y va a dejar de serlo.
func (uc *UserUseCase) keepOneAdmin(ctx context.Context, user *entity.User) error {
	if !user.Enabled || !user.HasRole(entity.RoleAdmin) {
		return nil
	}
	n, err := uc.repo.CountEnabledWithRole(ctx, entity.RoleAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return fmt.Errorf("%w: debe quedar al menos un administrador habilitado", domain.ErrForbidden)
	}
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	// los ids son UUID; otro formato no existe (y PostgreSQL lo rechazaría con error de sintaxis)
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) save(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
