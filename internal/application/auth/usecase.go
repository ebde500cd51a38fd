package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación local: registro, login e identidad.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// NewUser arma un usuario habilitado con id nuevo y password hasheado.
// Sin roles se asigna EMPLEADO.
func NewUser(username, password, email, name string, roles []string, now time.Time) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: el username es obligatorio", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: la contraseña es obligatoria", domain.ErrInvalidInput)
	}
	roles, err := NormalizeRoles(roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = []string{entity.RoleEmpleado}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = username
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		Name:         name,
		PasswordHash: hash,
		Roles:        roles,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeRoles pasa a mayúsculas, quita duplicados y rechaza roles desconocidos.
func NormalizeRoles(roles []string) ([]string, error) {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if !entity.IsKnownRole(r) {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, r)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out, nil
}

// Register crea un usuario con rol EMPLEADO. Devuelve ErrUsernameExists si el username ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := NewUser(in.Username, in.Password, in.Email, in.Name, nil, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Enabled {
		return nil, fmt.Errorf("%w: usuario deshabilitado", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		User:      dto.NewUserResponse(user),
	}, nil
}

// Me describe la identidad del token. Para usuarios locales se leen los roles vigentes desde la DB.
func (uc *AuthUseCase) Me(ctx context.Context, id *jwt.Identity) (*dto.MeResponse, error) {
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	resp := &dto.MeResponse{UserID: id.UserID, Username: id.Username, Roles: id.Roles, Source: id.Source}
	if id.Source == jwt.SourceLocal {
		user, err := uc.userRepo.GetByID(ctx, id.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		resp.Username = user.Username
		resp.Roles = user.Roles
	}
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	return resp, nil
}

// BootstrapAdmin crea el administrador inicial si no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) BootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, nil
	}
	existing, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	user, err := NewUser(username, password, "", "Administrador", []string{entity.RoleAdmin}, uc.now().UTC())
	if err != nil {
		return false, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}
