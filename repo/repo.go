// Package repo gives entity records save/find/delete behaviour by
// composing them with an injected orm.Querier.
package repo

import (
	"context"
	"fmt"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

// Persistable is the persistence capability every record type gets.
type Persistable[T any] interface {
	Find(ctx context.Context, id int64) (T, error)
	First(ctx context.Context) (T, error)
	All(ctx context.Context) ([]T, error)
	Save(ctx context.Context, t *T) error
	Delete(ctx context.Context, t *T) error
	DeleteAll(ctx context.Context) error
}

// Repository implements Persistable on top of a query factory.
type Repository[T any] struct {
	db    orm.Querier
	query func(orm.Querier) *orm.Query[T]
	id    func(*T) int64
}

var _ Persistable[struct{}] = (*Repository[struct{}])(nil)

// New returns a Repository that builds its queries with query and reads
// primary keys with id.
func New[T any](db orm.Querier, query func(orm.Querier) *orm.Query[T], id func(*T) int64) *Repository[T] {
	return &Repository[T]{db: db, query: query, id: id}
}

func (r *Repository[T]) Find(ctx context.Context, id int64) (T, error) {
	return r.query(r.db).Find(ctx, id)
}

func (r *Repository[T]) First(ctx context.Context) (T, error) {
	return r.query(r.db).First(ctx)
}

func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	q := r.query(r.db)
	return q.OrderBy(q.QuoteIdent(q.PrimaryKey())).All(ctx)
}

// Save inserts t when it has no primary key yet, otherwise updates it.
func (r *Repository[T]) Save(ctx context.Context, t *T) error {
	q := r.query(r.db)
	if r.id(t) == 0 {
		if err := q.Create(ctx, t); err != nil {
			return fmt.Errorf("create %s: %w", q.Table(), err)
		}
		return nil
	}
	if err := q.Update(ctx, t); err != nil {
		return fmt.Errorf("update %s %d: %w", q.Table(), r.id(t), err)
	}
	return nil
}

// Delete removes the row backing t. Deleting an unsaved record is an error.
func (r *Repository[T]) Delete(ctx context.Context, t *T) error {
	q := r.query(r.db)
	id := r.id(t)
	if id == 0 {
		return fmt.Errorf("delete %s: %w", q.Table(), orm.ErrUnsavedReference)
	}
	if err := q.Where(q.QuoteIdent(q.PrimaryKey())+" = ?", id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s %d: %w", q.Table(), id, err)
	}
	return nil
}

func (r *Repository[T]) DeleteAll(ctx context.Context) error {
	return r.query(r.db).DeleteAll(ctx)
}
