package workflow

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

// OrderMachine: в сборке → в пути → доставлен.
func OrderMachine() Machine {
	return NewMachine("order",
		[]string{entity.OrderAssembling, entity.OrderInTransit, entity.OrderDelivered},
		map[string][]string{
			entity.OrderAssembling: {entity.OrderInTransit, entity.OrderDelivered},
			entity.OrderInTransit:  {entity.OrderDelivered},
		},
	)
}

// OrderEffect es el espejo de ArrivalEffect para salidas:
//   - cualquier estado: existencias -= productos del pedido
//   - доставлен: defectuosos += defectos devueltos por el destinatario
func OrderEffect(o *entity.Order) ledger.Effect {
	var eff ledger.Effect
	if len(o.Products) > 0 {
		eff = eff.Add(ledger.OnHand, -1, ledger.FromProducts(o.Products))
	}
	if o.Status == entity.OrderDelivered && len(o.Defects) > 0 {
		eff = eff.Add(ledger.Defect, 1, ledger.FromDefects(o.Defects))
	}
	return eff
}

// ValidateOrderCreate valida un pedido nuevo.
func ValidateOrderCreate(m Machine, o *entity.Order) error {
	if !m.IsState(o.Status) {
		return domain.Invalidf("Недопустимый статус: %q.", o.Status)
	}
	return validateOrderLines(o)
}

// ValidateOrderUpdate valida la transición prev → next de un pedido.
func ValidateOrderUpdate(m Machine, prev string, next *entity.Order) error {
	if err := m.Check(prev, next.Status); err != nil {
		return err
	}
	return validateOrderLines(next)
}

func validateOrderLines(o *entity.Order) error {
	if len(o.Products) == 0 {
		return domain.Invalid("Заполните список товаров заказа.")
	}
	if err := positiveProducts(o.Products); err != nil {
		return err
	}
	if len(o.Defects) > 0 && o.Status != entity.OrderDelivered {
		return domain.Invalid("Брак можно указать только для доставленного заказа.")
	}
	return positiveDefects(o.Defects)
}
