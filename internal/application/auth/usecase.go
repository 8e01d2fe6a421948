// Package auth implementa registro y login de usuarios. El hash de contraseña
// es un paso explícito del caso de uso, no un hook de persistencia.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	sessions ports.SessionRunner
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(sessions ports.SessionRunner, jwtCfg JWTConfig) *UseCase {
	return &UseCase{sessions: sessions, jwtCfg: jwtCfg}
}

// RegisterInput datos para crear un usuario.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput credenciales de acceso.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult token firmado más el usuario autenticado.
type LoginResult struct {
	Token string
	User  *entity.User
}

// Register crea un usuario en el tenant: hashea la contraseña con bcrypt y
// persiste. ErrEmailAlreadyExists si el email ya está tomado en ese tenant.
func (uc *UseCase) Register(ctx context.Context, tenant string, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleBodeguero
	}
	if role != entity.RoleAdmin && role != entity.RoleBodeguero {
		return nil, domain.ErrInvalidInput
	}

	// Hash explícito antes de tocar la persistencia.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	var user *entity.User
	err = uc.sessions.WithTx(ctx, tenant, func(r ports.Repos) error {
		existing, err := r.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		u := &entity.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Active:       true,
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica email/password contra el tenant, genera el JWT (con la clave
// de tenant como claim bodega_id) y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, tenant string, in LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var user *entity.User
	err := uc.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		u, err := r.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrUserNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenant, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
