package orm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/scope"
)

// Finder looks up a single record by primary key. *Query[T] satisfies it.
type Finder[T any] interface {
	Find(ctx context.Context, id int64) (T, error)
}

var _ Finder[struct{}] = (*Query[struct{}])(nil)

// BelongsTo maps a foreign-key column on the owning record to the table
// holding the referenced record.
type BelongsTo[T any] struct {
	ForeignKey string
	Target     Finder[T]
}

// Get resolves the reference held in fk.
// A null fk yields (nil, nil) and performs no lookup. A non-null fk with no
// matching row yields an error matching ErrNotFound.
func (b BelongsTo[T]) Get(ctx context.Context, fk sql.Null[int64]) (*T, error) {
	if !fk.Valid {
		return nil, nil
	}
	v, err := b.Target.Find(ctx, fk.V)
	if err != nil {
		return nil, fmt.Errorf("orm: resolve %s: %w", b.ForeignKey, err)
	}
	return &v, nil
}

// Assign writes id into fk. It does not persist anything.
// A zero id means the referenced record was never saved; fk is then left
// unchanged and ErrUnsavedReference is returned.
func Assign(fk *sql.Null[int64], id int64) error {
	if id == 0 {
		return ErrUnsavedReference
	}
	*fk = sql.Null[int64]{V: id, Valid: true}
	return nil
}

// HasMany maps a primary key to the rows of another table whose foreign
// key column points back at it.
type HasMany[T any] struct {
	ForeignKey string
	Target     *Query[T]
}

// Load returns the related rows ordered by their primary key.
func (h HasMany[T]) Load(ctx context.Context, pk int64) ([]T, error) {
	items, err := h.Target.Scopes(scope.Eq(h.Target.qi(h.ForeignKey), pk)).byPK().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("orm: load %s.%s: %w", h.Target.table, h.ForeignKey, err)
	}
	return items, nil
}

// LoadBelongsTo batch-resolves a belongs-to relation for many owners with a
// single IN query. The result is keyed by primary key of the referenced
// record; owners with a null fk contribute nothing.
func LoadBelongsTo[P, T any](
	ctx context.Context,
	target *Query[T],
	owners []P,
	fk func(*P) sql.Null[int64],
	pk func(*T) int64,
) (map[int64]T, error) {
	seen := make(map[int64]struct{}, len(owners))
	ids := make([]int64, 0, len(owners))
	for i := range owners {
		k := fk(&owners[i])
		if !k.Valid {
			continue
		}
		if _, ok := seen[k.V]; !ok {
			seen[k.V] = struct{}{}
			ids = append(ids, k.V)
		}
	}
	if len(ids) == 0 {
		return map[int64]T{}, nil
	}

	related, err := target.Scopes(scope.In(target.qi(target.pk), ids)).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("orm: preload %s: %w", target.table, err)
	}
	byPK := make(map[int64]T, len(related))
	for i := range related {
		byPK[pk(&related[i])] = related[i]
	}
	return byPK, nil
}

// LoadHasMany batch-loads a has-many relation for many owners with a single
// IN query. The result is keyed by owner primary key; rows keep primary key
// order within each group.
func LoadHasMany[P, T any](
	ctx context.Context,
	target *Query[T],
	foreignKey string,
	owners []P,
	pk func(*P) int64,
	fk func(*T) sql.Null[int64],
) (map[int64][]T, error) {
	if len(owners) == 0 {
		return map[int64][]T{}, nil
	}
	ids := make([]int64, len(owners))
	for i := range owners {
		ids[i] = pk(&owners[i])
	}

	related, err := target.Scopes(scope.In(target.qi(foreignKey), ids)).byPK().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("orm: preload %s.%s: %w", target.table, foreignKey, err)
	}
	byFK := make(map[int64][]T)
	for _, r := range related {
		if k := fk(&r); k.Valid {
			byFK[k.V] = append(byFK[k.V], r)
		}
	}
	return byFK, nil
}
