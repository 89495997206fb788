// Package access decide si un rol puede usar una operación.
// No hay jerarquía: cada operación enumera los roles que admite.
package access

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Allowed indica si role está en allowed. Un conjunto vacío no admite a nadie.
func Allowed(role string, allowed ...string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// Conjuntos de roles usados por el router.
var (
	All         = []string{entity.RoleStockWorker, entity.RoleManager, entity.RoleAdmin, entity.RoleSuperAdmin}
	Staff       = []string{entity.RoleManager, entity.RoleAdmin, entity.RoleSuperAdmin}
	Admins      = []string{entity.RoleAdmin, entity.RoleSuperAdmin}
	SuperAdmins = []string{entity.RoleSuperAdmin}
)
