package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/audit"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestDiff_SinCambiosDevuelveNil(t *testing.T) {
	c := entity.Client{ID: "c1", Name: "ООО Ромашка", Email: "a@b.ru"}
	changed := c
	changed.UpdatedAt = now
	changed.Logs = []entity.LogEntry{audit.Created("u1", now)}

	e, err := audit.Diff(&c, &changed, "u1", now)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestDiff_NombraCamposCambiados(t *testing.T) {
	before := entity.Arrival{ArrivalStatus: entity.ArrivalAwaiting}
	after := entity.Arrival{
		ArrivalStatus:  entity.ArrivalReceived,
		ReceivedAmount: []entity.ProductLine{{Product: "p1", Amount: 5}},
	}

	e, err := audit.Diff(&before, &after, "u1", now)
	require.NoError(t, err)
	require.NotNil(t, e)

	assert.Equal(t, "u1", e.User)
	assert.Equal(t, now, e.Date)
	assert.Contains(t, e.Change, "Статус: «ожидается доставка» → «получена»")
	assert.Contains(t, e.Change, "Полученные товары")
}

func TestDiff_IgnoraPasswordYToken(t *testing.T) {
	tok := "abc"
	before := entity.User{Email: "a@b.ru", PasswordHash: "x"}
	after := entity.User{Email: "a@b.ru", PasswordHash: "y", Token: &tok}

	e, err := audit.Diff(&before, &after, "u1", now)
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestArchiveToggled(t *testing.T) {
	assert.Equal(t, audit.ChangeArchived, audit.ArchiveToggled("u1", true, now).Change)
	assert.Equal(t, audit.ChangeUnarchived, audit.ArchiveToggled("u1", false, now).Change)
	assert.Equal(t, audit.ChangeCreated, audit.Created("u1", now).Change)
}

func TestLabel_SinEtiquetaUsaClave(t *testing.T) {
	assert.Equal(t, "Склад", audit.Label("stock"))
	assert.Equal(t, "foo", audit.Label("foo"))
}
