package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}), store
}

func TestRegister_RolEmpleadoPorDefecto(t *testing.T) {
	uc, _ := newAuth()
	user, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleEmpleado}, user.Roles)
	assert.True(t, user.Enabled)
	assert.Equal(t, "ana", user.Name)
	assert.NotEmpty(t, user.ID)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestLogin_TokenConRoles(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)

	id, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", id.Username)
	assert.Equal(t, []string{entity.RoleEmpleado}, id.Roles)
}

func TestLogin_Errores(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	created, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	u.Enabled = false
	require.NoError(t, store.Users().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe_LocalYKeycloak(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	created, err := uc.Register(ctx, dto.RegisterRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, &jwt.Identity{UserID: created.ID, Username: "ana", Source: jwt.SourceLocal})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleEmpleado}, me.Roles)

	_, err = uc.Me(ctx, &jwt.Identity{UserID: "borrado", Source: jwt.SourceLocal})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	me, err = uc.Me(ctx, &jwt.Identity{UserID: "kc-1", Username: "maria", Roles: []string{"ADMIN"}, Source: jwt.SourceKeycloak})
	require.NoError(t, err)
	assert.Equal(t, "maria", me.Username)
	assert.Equal(t, jwt.SourceKeycloak, me.Source)

	_, err = uc.Me(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBootstrapAdmin_Idempotente(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()

	created, err := uc.BootstrapAdmin(ctx, "admin", "admin1234")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.BootstrapAdmin(ctx, "admin", "admin1234")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, u.HasRole(entity.RoleAdmin))

	created, err = uc.BootstrapAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestNormalizeRoles(t *testing.T) {
	roles, err := auth.NormalizeRoles([]string{"admin", " ADMIN ", "empleado"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN", "EMPLEADO"}, roles)

	_, err = auth.NormalizeRoles([]string{"SUPERUSER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
