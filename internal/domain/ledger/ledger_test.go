package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

func newStock() *entity.Stock {
	return &entity.Stock{
		ID:       "stock-1",
		Products: []entity.StockItem{{Product: "p1", Amount: 10}, {Product: "p2", Amount: 3}},
		Defects:  []entity.StockItem{{Product: "p1", Amount: 1}},
	}
}

func TestIncrease_SumaExistencias(t *testing.T) {
	l := ledger.New(newStock())
	l.Increase([]ledger.Line{{Product: "p1", Amount: 5}, {Product: "p3", Amount: 2}})

	assert.Equal(t, 15, l.OnHand("p1"))
	assert.Equal(t, 2, l.OnHand("p3"))
	assert.True(t, l.Dirty())
}

func TestDecrease_NoPermiteNegativos(t *testing.T) {
	l := ledger.New(newStock())

	err := l.Decrease([]ledger.Line{{Product: "p1", Amount: 4}, {Product: "p2", Amount: 4}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// atómico: ni p1 ni p2 cambiaron
	assert.Equal(t, 10, l.OnHand("p1"))
	assert.Equal(t, 3, l.OnHand("p2"))
	assert.False(t, l.Dirty())
}

func TestDecrease_LineasRepetidasSeAcumulan(t *testing.T) {
	l := ledger.New(newStock())

	err := l.Decrease([]ledger.Line{{Product: "p2", Amount: 2}, {Product: "p2", Amount: 2}})
	assert.Error(t, err, "2+2 > 3 debe fallar aunque cada línea por separado quepa")
	assert.Equal(t, 3, l.OnHand("p2"))
}

func TestApplyRevert_SonInversos(t *testing.T) {
	stock := newStock()
	l := ledger.New(stock)
	eff := ledger.Effect{}.
		Add(ledger.OnHand, 1, []ledger.Line{{Product: "p1", Amount: 7}}).
		Add(ledger.OnHand, -1, []ledger.Line{{Product: "p1", Amount: 2}}).
		Add(ledger.Defect, 1, []ledger.Line{{Product: "p1", Amount: 2}})

	l.Apply(eff)
	assert.Equal(t, 15, l.OnHand("p1"))
	assert.Equal(t, 3, l.DefectQty("p1"))

	l.Revert(eff)
	assert.Equal(t, 10, l.OnHand("p1"))
	assert.Equal(t, 1, l.DefectQty("p1"))
	require.NoError(t, l.Validate())
}

func TestValidate_DetectaNegativoIntermedio(t *testing.T) {
	l := ledger.New(newStock())
	l.Apply(ledger.Effect{{Bucket: ledger.OnHand, Product: "p2", Amount: -5}})

	err := l.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// un apply posterior que compensa deja el libro válido otra vez
	l.Apply(ledger.Effect{{Bucket: ledger.OnHand, Product: "p2", Amount: 5}})
	assert.NoError(t, l.Validate())
}

func TestDecreaseDefect(t *testing.T) {
	l := ledger.New(newStock())
	require.NoError(t, l.DecreaseDefect([]ledger.Line{{Product: "p1", Amount: 1}}))
	assert.Equal(t, 0, l.DefectQty("p1"))
	assert.Error(t, l.DecreaseDefect([]ledger.Line{{Product: "p1", Amount: 1}}))
}

func TestWriteTo_ConservaOrdenYEliminaCeros(t *testing.T) {
	stock := newStock()
	l := ledger.New(stock)
	require.NoError(t, l.Decrease([]ledger.Line{{Product: "p2", Amount: 3}}))
	l.Increase([]ledger.Line{{Product: "p9", Amount: 1}})
	l.WriteTo(stock)

	assert.Equal(t, []entity.StockItem{{Product: "p1", Amount: 10}, {Product: "p9", Amount: 1}}, stock.Products)
	assert.Equal(t, 1, stock.DefectQuantity("p1"))
}

func TestEffectInverse(t *testing.T) {
	eff := ledger.Effect{{Bucket: ledger.Defect, Product: "x", Amount: 3}}
	assert.Equal(t, ledger.Effect{{Bucket: ledger.Defect, Product: "x", Amount: -3}}, eff.Inverse())
}
