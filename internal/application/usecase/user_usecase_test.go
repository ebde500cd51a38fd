package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserUseCase_CicloCompleto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "root", Password: "clave-segura", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	created, err := uc.Create(ctx, dto.CreateUserRequest{
		Username: "luis", Password: "clave-segura", Email: "luis@test.com", Roles: []string{"ADMIN", "EMPLEADO"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleEmpleado}, created.Roles)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "luis@test.com", got.Email)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{Name: strPtr("Luis P."), Enabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Luis P.", updated.Name)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "luis@test.com", updated.Email)

	withRoles, err := uc.AssignRoles(ctx, created.ID, dto.AssignRolesRequest{Roles: []string{"empleado"}})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleEmpleado}, withRoles.Roles)

	before, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, uc.ResetPassword(ctx, created.ID, dto.ResetPasswordRequest{Password: "nueva-clave"}))
	after, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
	assert.Equal(t, 50, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_Errores(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "clave-segura", Roles: []string{"ROOT"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AssignRoles(ctx, "nope", dto.AssignRolesRequest{Roles: []string{"ADMIN"}})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.AssignRoles(ctx, "nope", dto.AssignRolesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.ResetPassword(ctx, "nope", dto.ResetPasswordRequest{Password: "corta"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrUserNotFound)
}

func TestUserUseCase_ListRoles(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewStore().Users())
	assert.Equal(t, []string{"ADMIN", "EMPLEADO"}, uc.ListRoles().Roles)
}

func TestUserUseCase_NoDejaSinAdministrador(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	admin, err := uc.Create(ctx, dto.CreateUserRequest{Username: "root", Password: "clave-segura", Roles: []string{"ADMIN"}})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID), domain.ErrForbidden)
	_, err = uc.AssignRoles(ctx, admin.ID, dto.AssignRolesRequest{Roles: []string{"EMPLEADO"}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, admin.ID, dto.UpdateUserRequest{Enabled: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Get(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, []string{entity.RoleAdmin}, got.Roles)

	// con un segundo ADMIN habilitado el primero sí puede salir
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "clave-segura", Roles: []string{"ADMIN"}})
	require.NoError(t, err)
	_, err = uc.AssignRoles(ctx, admin.ID, dto.AssignRolesRequest{Roles: []string{"EMPLEADO"}})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, admin.ID))
}
