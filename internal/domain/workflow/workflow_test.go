package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/workflow"
)

// --- Máquina de estados ---

func TestArrivalMachine_Transiciones(t *testing.T) {
	m := workflow.ArrivalMachine()

	assert.True(t, m.Allowed(entity.ArrivalAwaiting, entity.ArrivalAwaiting))
	assert.True(t, m.Allowed(entity.ArrivalAwaiting, entity.ArrivalReceived))
	assert.True(t, m.Allowed(entity.ArrivalAwaiting, entity.ArrivalSorted))
	assert.True(t, m.Allowed(entity.ArrivalReceived, entity.ArrivalSorted))
	assert.False(t, m.Allowed(entity.ArrivalSorted, entity.ArrivalReceived))
	assert.False(t, m.Allowed(entity.ArrivalReceived, entity.ArrivalAwaiting))
	assert.False(t, m.Allowed(entity.ArrivalAwaiting, "perdida"))
	assert.Equal(t, entity.ArrivalAwaiting, m.Initial())
}

func TestMachine_RetrocesoConRollback(t *testing.T) {
	m := workflow.OrderMachine().WithRollback(true)

	assert.True(t, m.Allowed(entity.OrderDelivered, entity.OrderAssembling))
	assert.True(t, m.Allowed(entity.OrderInTransit, entity.OrderAssembling))
	assert.NoError(t, m.Check(entity.OrderDelivered, entity.OrderInTransit))
}

func TestMachine_CheckEstadoDesconocido(t *testing.T) {
	err := workflow.OrderMachine().Check(entity.OrderAssembling, "extraviado")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// --- Efectos ---

func arrival(status string) *entity.Arrival {
	return &entity.Arrival{
		Stock:          "s1",
		ArrivalStatus:  status,
		Products:       []entity.ProductLine{{Product: "p1", Amount: 10}},
		ReceivedAmount: []entity.ProductLine{{Product: "p1", Amount: 8}},
		Defects:        []entity.DefectLine{{Product: "p1", Amount: 2}},
	}
}

func applyTo(stock *entity.Stock, eff ledger.Effect) *ledger.Ledger {
	l := ledger.New(stock)
	l.Apply(eff)
	return l
}

func TestArrivalEffect_EnEsperaNoMueveStock(t *testing.T) {
	assert.Empty(t, workflow.ArrivalEffect(arrival(entity.ArrivalAwaiting)))
}

func TestArrivalEffect_RecibidaSumaRecibidos(t *testing.T) {
	l := applyTo(&entity.Stock{ID: "s1"}, workflow.ArrivalEffect(arrival(entity.ArrivalReceived)))
	assert.Equal(t, 8, l.OnHand("p1"))
	assert.Equal(t, 0, l.DefectQty("p1"))
}

func TestArrivalEffect_OrdenadaMueveDefectos(t *testing.T) {
	l := applyTo(&entity.Stock{ID: "s1"}, workflow.ArrivalEffect(arrival(entity.ArrivalSorted)))
	assert.Equal(t, 6, l.OnHand("p1"))
	assert.Equal(t, 2, l.DefectQty("p1"))
	// el total físico se conserva
	assert.Equal(t, 8, l.OnHand("p1")+l.DefectQty("p1"))
}

func TestArrivalEffect_RecibidaAOrdenadaConservaTotal(t *testing.T) {
	stock := &entity.Stock{ID: "s1"}
	prev := workflow.ArrivalEffect(arrival(entity.ArrivalReceived))
	l := applyTo(stock, prev)

	l.Revert(prev)
	l.Apply(workflow.ArrivalEffect(arrival(entity.ArrivalSorted)))
	require.NoError(t, l.Validate())

	assert.Equal(t, 6, l.OnHand("p1"))
	assert.Equal(t, 2, l.DefectQty("p1"))
}

func TestOrderEffect(t *testing.T) {
	o := &entity.Order{
		Status:   entity.OrderAssembling,
		Products: []entity.ProductLine{{Product: "p1", Amount: 3}},
	}
	l := applyTo(&entity.Stock{ID: "s1", Products: []entity.StockItem{{Product: "p1", Amount: 5}}}, workflow.OrderEffect(o))
	assert.Equal(t, 2, l.OnHand("p1"))

	o.Status = entity.OrderDelivered
	o.Defects = []entity.DefectLine{{Product: "p1", Amount: 1}}
	eff := workflow.OrderEffect(o)
	assert.Contains(t, eff, ledger.Delta{Bucket: ledger.Defect, Product: "p1", Amount: 1})
}

// --- Validaciones ---

func TestValidateArrivalCreate_RecibidaSinRecibidos(t *testing.T) {
	a := arrival(entity.ArrivalReceived)
	a.ReceivedAmount = nil

	err := workflow.ValidateArrivalCreate(workflow.ArrivalMachine(), a)
	require.Error(t, err)
	assert.Equal(t, "Заполните список полученных товаров.", err.Error())
}

func TestValidateArrivalUpdate_Mensajes(t *testing.T) {
	m := workflow.ArrivalMachine()
	a := arrival(entity.ArrivalReceived)
	a.ReceivedAmount = nil

	err := workflow.ValidateArrivalUpdate(m, entity.ArrivalAwaiting, a)
	require.Error(t, err)
	assert.Equal(t, "Заполните список полученных товаров для смены статуса поставки.", err.Error())

	err = workflow.ValidateArrivalUpdate(m, entity.ArrivalReceived, a)
	require.Error(t, err)
	assert.Equal(t, `Для статуса "получена" укажите полученные товары`, err.Error())
}

func TestValidateArrivalUpdate_RetrocesoRechazado(t *testing.T) {
	err := workflow.ValidateArrivalUpdate(workflow.ArrivalMachine(), entity.ArrivalSorted, arrival(entity.ArrivalAwaiting))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateOrder_SinProductos(t *testing.T) {
	err := workflow.ValidateOrderCreate(workflow.OrderMachine(), &entity.Order{Status: entity.OrderAssembling})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateOrder_DefectosSoloEntregado(t *testing.T) {
	o := &entity.Order{
		Status:   entity.OrderInTransit,
		Products: []entity.ProductLine{{Product: "p1", Amount: 1}},
		Defects:  []entity.DefectLine{{Product: "p1", Amount: 1}},
	}
	assert.Error(t, workflow.ValidateOrderUpdate(workflow.OrderMachine(), entity.OrderAssembling, o))

	o.Status = entity.OrderDelivered
	assert.NoError(t, workflow.ValidateOrderUpdate(workflow.OrderMachine(), entity.OrderInTransit, o))
}
