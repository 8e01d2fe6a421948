package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema dentro de un tenant. El hash de la
// contraseña lo calcula el caso de uso de auth antes de persistir; la entidad
// no sabe de bcrypt.
type User struct {
	ID           int64
	Name         string
	Email        string // único por tenant
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
}
