package entity

import "time"

// Roles válidos para User. No hay jerarquía: cada ruta enumera los roles que admite.
const (
	RoleStockWorker = "stock-worker"
	RoleManager     = "manager"
	RoleAdmin       = "admin"
	RoleSuperAdmin  = "super-admin"
)

// Roles devuelve el conjunto cerrado de roles.
func Roles() []string {
	return []string{RoleStockWorker, RoleManager, RoleAdmin, RoleSuperAdmin}
}

// IsValidRole indica si r pertenece al conjunto de roles.
func IsValidRole(r string) bool {
	for _, role := range Roles() {
		if role == r {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema.
// PasswordHash y Token se persisten en el documento pero nunca se devuelven tal cual
// (ver dto.UserResponse).
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	DisplayName  string    `json:"displayName"`
	Role         string    `json:"role"`
	Token        *string   `json:"token"`
	IsArchived   bool      `json:"isArchived"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) DocumentID() string               { return u.ID }
func (u *User) Archived() bool                   { return u.IsArchived }
func (u *User) SetArchived(v bool, at time.Time) { u.IsArchived = v; u.UpdatedAt = at }

// SetToken guarda el token de sesión vigente.
func (u *User) SetToken(token string) { u.Token = &token }

// ClearToken invalida la sesión (logout).
func (u *User) ClearToken() { u.Token = nil }
