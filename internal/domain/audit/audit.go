// Package audit genera las entradas del historial de cambios embebido en cada
// entidad. El historial solo crece: nada aquí edita ni reordena entradas.
package audit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

const (
	ChangeCreated    = "Создано"
	ChangeArchived   = "Перемещено в архив"
	ChangeUnarchived = "Восстановлено из архива"
)

// Campos que nunca aparecen en un diff.
var ignored = map[string]bool{
	"_id":       true,
	"logs":      true,
	"createdAt": true,
	"updatedAt": true,
	"password":  true,
	"token":     true,
}

// Etiquetas legibles por campo (nombre JSON). Un campo sin etiqueta se
// nombra con su clave.
var labels = map[string]string{
	"name":               "Название",
	"title":              "Название",
	"email":              "Эл. почта",
	"displayName":        "Имя",
	"role":               "Роль",
	"phone_number":       "Телефон",
	"inn":                "ИНН",
	"address":            "Адрес",
	"banking_data":       "Банковские реквизиты",
	"ogrn":               "ОГРН",
	"client":             "Клиент",
	"stock":              "Склад",
	"barcode":            "Баркод",
	"article":            "Артикул",
	"dynamic_fields":     "Дополнительные поля",
	"products":           "Товары",
	"defects":            "Брак",
	"write_offs":         "Списания",
	"shipping_agent":     "Перевозчик",
	"pickup_location":    "Адрес доставки",
	"arrival_date":       "Дата прибытия",
	"arrival_price":      "Стоимость доставки",
	"sent_amount":        "Количество отправленного товара",
	"arrival_status":     "Статус",
	"received_amount":    "Полученные товары",
	"services":           "Услуги",
	"documents":          "Документы",
	"price":              "Цена",
	"sent_at":            "Дата отправки",
	"delivered_at":       "Дата доставки",
	"comment":            "Комментарий",
	"status":             "Статус",
	"user":               "Исполнитель",
	"description":        "Описание",
	"type":               "Тип",
	"associated_order":   "Связанный заказ",
	"associated_arrival": "Связанная поставка",
	"serviceCategory":    "Категория услуги",
	"discount":           "Скидка",
	"paid_amount":        "Оплачено",
	"totalAmount":        "Сумма",
	"isArchived":         "Архив",
}

// Label devuelve la etiqueta de un campo.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// Entry construye una entrada del historial.
func Entry(user, change string, at time.Time) entity.LogEntry {
	return entity.LogEntry{User: user, Change: change, Date: at}
}

// Created es la entrada inicial de toda entidad.
func Created(user string, at time.Time) entity.LogEntry {
	return Entry(user, ChangeCreated, at)
}

// ArchiveToggled registra el paso a (o desde) el archivo.
func ArchiveToggled(user string, archived bool, at time.Time) entity.LogEntry {
	if archived {
		return Entry(user, ChangeArchived, at)
	}
	return Entry(user, ChangeUnarchived, at)
}

// Diff compara dos estados de una entidad y describe los campos que cambiaron.
// Devuelve nil si no hay cambios relevantes.
func Diff(before, after any, user string, at time.Time) (*entity.LogEntry, error) {
	a, err := toMap(before)
	if err != nil {
		return nil, err
	}
	b, err := toMap(after)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, m := range []map[string]any{a, b} {
		for k := range m {
			if !seen[k] && !ignored[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		prev, next := normalize(a[k]), normalize(b[k])
		if reflect.DeepEqual(prev, next) {
			continue
		}
		parts = append(parts, describe(k, prev, next))
	}
	if len(parts) == 0 {
		return nil, nil
	}

	e := Entry(user, "Изменено: "+strings.Join(parts, "; "), at)
	return &e, nil
}

func describe(field string, prev, next any) string {
	ps, pok := scalar(prev)
	ns, nok := scalar(next)
	if pok && nok {
		return fmt.Sprintf("%s: «%s» → «%s»", Label(field), ps, ns)
	}
	return Label(field)
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool, float64:
		return fmt.Sprint(x), true
	}
	return "", false
}

// normalize trata como iguales ausente, null y colección vacía.
func normalize(v any) any {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			return nil
		}
	case map[string]any:
		if len(x) == 0 {
			return nil
		}
	case string:
		if x == "" {
			return nil
		}
	}
	return v
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("audit: marshal: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("audit: unmarshal: %w", err)
	}
	return out, nil
}
