package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestAllowed(t *testing.T) {
	assert.True(t, access.Allowed(entity.RoleAdmin, access.Admins...))
	assert.True(t, access.Allowed(entity.RoleStockWorker, access.All...))
	assert.False(t, access.Allowed(entity.RoleManager, access.Admins...))
	// sin jerarquía: super-admin no hereda un conjunto que no lo nombra
	assert.False(t, access.Allowed(entity.RoleSuperAdmin, entity.RoleStockWorker))
	assert.False(t, access.Allowed(entity.RoleAdmin))
	assert.False(t, access.Allowed("", access.All...))
}
