package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// document restringe T a las entidades persistidas como documento.
type document[T any] interface {
	*T
	entity.Document
}

// collection es el adaptador genérico de una tabla de documentos JSONB:
// (id, is_archived, doc, created_at, updated_at). Usable con pool o tx.
type collection[T any, P document[T]] struct {
	q     Querier
	table string
}

func (c collection[T, P]) Create(ctx context.Context, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.table, err)
	}
	p := P(doc)
	_, err = c.q.Exec(ctx,
		`INSERT INTO `+c.table+` (id, is_archived, doc) VALUES ($1, $2, $3)`,
		p.DocumentID(), p.Archived(), raw,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Запись с такими данными уже существует.")
		}
		return fmt.Errorf("insert %s: %w", c.table, err)
	}
	return nil
}

func (c collection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, "id = $1", id)
}

// getForUpdate bloquea la fila hasta el fin de la transacción en curso.
func (c collection[T, P]) getForUpdate(ctx context.Context, id string) (*T, error) {
	row := c.q.QueryRow(ctx, `SELECT doc FROM `+c.table+` WHERE id = $1 FOR UPDATE`, id)
	return c.scanOne(row)
}

func (c collection[T, P]) Update(ctx context.Context, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.table, err)
	}
	p := P(doc)
	cmd, err := c.q.Exec(ctx,
		`UPDATE `+c.table+` SET is_archived = $2, doc = $3, updated_at = now() WHERE id = $1`,
		p.DocumentID(), p.Archived(), raw,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Запись с такими данными уже существует.")
		}
		return fmt.Errorf("update %s: %w", c.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Запись не найдена.")
	}
	return nil
}

func (c collection[T, P]) Delete(ctx context.Context, id string) error {
	cmd, err := c.q.Exec(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Запись не найдена.")
	}
	return nil
}

func (c collection[T, P]) List(ctx context.Context, archived bool) ([]*T, error) {
	return c.find(ctx, "is_archived = $1", archived)
}

// listBy filtra por un campo de primer nivel del documento. field es siempre
// una constante del código, nunca entrada del usuario.
func (c collection[T, P]) listBy(ctx context.Context, field, value string, archived bool) ([]*T, error) {
	return c.find(ctx, "is_archived = $1 AND doc->>'"+field+"' = $2", archived, value)
}

func (c collection[T, P]) find(ctx context.Context, where string, args ...any) ([]*T, error) {
	rows, err := c.q.Query(ctx,
		`SELECT doc FROM `+c.table+` WHERE `+where+` ORDER BY created_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	defer rows.Close()

	var list []*T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.table, err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.table, err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (c collection[T, P]) findOne(ctx context.Context, where string, args ...any) (*T, error) {
	row := c.q.QueryRow(ctx, `SELECT doc FROM `+c.table+` WHERE `+where+` LIMIT 1`, args...)
	return c.scanOne(row)
}

func (c collection[T, P]) scanOne(row pgx.Row) (*T, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", c.table, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.table, err)
	}
	return &v, nil
}
