package workflow

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/ledger"
)

// ArrivalMachine: ожидается доставка → получена → отсортирована.
// Se puede pasar directamente de "ожидается доставка" a "отсортирована".
func ArrivalMachine() Machine {
	return NewMachine("arrival",
		[]string{entity.ArrivalAwaiting, entity.ArrivalReceived, entity.ArrivalSorted},
		map[string][]string{
			entity.ArrivalAwaiting: {entity.ArrivalReceived, entity.ArrivalSorted},
			entity.ArrivalReceived: {entity.ArrivalSorted},
		},
	)
}

// ArrivalEffect calcula el efecto de la entrega sobre su bodega:
//   - получена / отсортирована: existencias += recibidos
//   - отсортирована: existencias -= defectos, defectuosos += defectos
func ArrivalEffect(a *entity.Arrival) ledger.Effect {
	var eff ledger.Effect
	stocked := a.ArrivalStatus == entity.ArrivalReceived || a.ArrivalStatus == entity.ArrivalSorted
	if stocked && len(a.ReceivedAmount) > 0 {
		eff = eff.Add(ledger.OnHand, 1, ledger.FromProducts(a.ReceivedAmount))
	}
	if a.ArrivalStatus == entity.ArrivalSorted && len(a.Defects) > 0 {
		defects := ledger.FromDefects(a.Defects)
		eff = eff.Add(ledger.OnHand, -1, defects)
		eff = eff.Add(ledger.Defect, 1, defects)
	}
	return eff
}

// ValidateArrivalCreate valida una entrega nueva.
func ValidateArrivalCreate(m Machine, a *entity.Arrival) error {
	if !m.IsState(a.ArrivalStatus) {
		return domain.Invalidf("Недопустимый статус: %q.", a.ArrivalStatus)
	}
	if err := validateArrivalLines(a); err != nil {
		return err
	}
	if needsReceived(a.ArrivalStatus) && len(a.ReceivedAmount) == 0 {
		return domain.Invalid("Заполните список полученных товаров.")
	}
	return nil
}

// ValidateArrivalUpdate valida la transición prev → next de una entrega existente.
func ValidateArrivalUpdate(m Machine, prev string, next *entity.Arrival) error {
	if err := m.Check(prev, next.ArrivalStatus); err != nil {
		return err
	}
	if err := validateArrivalLines(next); err != nil {
		return err
	}
	if !needsReceived(next.ArrivalStatus) || len(next.ReceivedAmount) > 0 {
		return nil
	}
	if prev == entity.ArrivalReceived && next.ArrivalStatus == entity.ArrivalReceived {
		return domain.Invalid(`Для статуса "получена" укажите полученные товары`)
	}
	return domain.Invalid("Заполните список полученных товаров для смены статуса поставки.")
}

func needsReceived(status string) bool {
	return status == entity.ArrivalReceived || status == entity.ArrivalSorted
}

func validateArrivalLines(a *entity.Arrival) error {
	if len(a.Products) == 0 {
		return domain.Invalid("Заполните список отправленных товаров.")
	}
	if err := positiveProducts(a.Products); err != nil {
		return err
	}
	if err := positiveProducts(a.ReceivedAmount); err != nil {
		return err
	}
	return positiveDefects(a.Defects)
}

func positiveProducts(lines []entity.ProductLine) error {
	for _, l := range lines {
		if l.Product == "" {
			return domain.Invalid("Укажите товар.")
		}
		if l.Amount <= 0 {
			return domain.Invalid("Количество товара должно быть больше нуля.")
		}
	}
	return nil
}

func positiveDefects(lines []entity.DefectLine) error {
	for _, l := range lines {
		if l.Product == "" {
			return domain.Invalid("Укажите товар.")
		}
		if l.Amount <= 0 {
			return domain.Invalid("Количество брака должно быть больше нуля.")
		}
	}
	return nil
}
