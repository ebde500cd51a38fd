package dto

import "time"

// RegisterRequest entrada para registro público (rol EMPLEADO por defecto).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// CreateUserRequest entrada de administración para crear un usuario con roles.
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=100"`
	Password string   `json:"password" validate:"required,min=8"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Name     string   `json:"name" validate:"omitempty,max=200"`
	Roles    []string `json:"roles" validate:"dive,oneof=ADMIN EMPLEADO"`
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	Email   *string `json:"email" validate:"omitempty,email"`
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Enabled *bool   `json:"enabled"`
}

// ResetPasswordRequest nueva contraseña para un usuario.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// AssignRolesRequest roles a asignar (reemplaza los actuales).
type AssignRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=ADMIN EMPLEADO"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RolesResponse roles disponibles.
type RolesResponse struct {
	Roles []string `json:"roles"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      UserResponse `json:"user"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	UserID   string   `json:"user_id,omitempty"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Source   string   `json:"source"` // local | keycloak
}
