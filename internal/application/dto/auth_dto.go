package dto

import (
	"time"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// RegisterRequest cuerpo para crear un usuario.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // admin | bodeguero
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Bodega   string `json:"bodega"` // clave de tenant opcional
}

// UserResponse un usuario sin credenciales.
type UserResponse struct {
	ID       int64     `json:"id"`
	Nombre   string    `json:"nombre"`
	Email    string    `json:"email"`
	Rol      string    `json:"rol"`
	Activo   bool      `json:"activo"`
	CreadoEn time.Time `json:"creadoEn"`
}

// LoginResponse token firmado más el usuario autenticado.
type LoginResponse struct {
	Token  string       `json:"token"`
	Bodega string       `json:"bodega"`
	User   UserResponse `json:"usuario"`
}

// ToUserResponse convierte la entidad a respuesta (sin el hash).
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Nombre:   u.Name,
		Email:    u.Email,
		Rol:      u.Role,
		Activo:   u.Active,
		CreadoEn: u.CreatedAt,
	}
}
