package repo

import (
	"context"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/model"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

// Kennel bundles the repositories of all three record types around one
// connection.
type Kennel struct {
	People  *Repository[model.Person]
	Dogs    *Repository[model.Dog]
	Ratings *Repository[model.Rating]
}

// NewKennel wires repositories for people, dogs and ratings to db.
func NewKennel(db orm.Querier) *Kennel {
	return &Kennel{
		People:  New(db, model.People, func(p *model.Person) int64 { return p.ID }),
		Dogs:    New(db, model.Dogs, func(d *model.Dog) int64 { return d.ID }),
		Ratings: New(db, model.Ratings, func(r *model.Rating) int64 { return r.ID }),
	}
}

// Reset empties all three tables, children first, inside one transaction.
func Reset(ctx context.Context, db *orm.DB) error {
	return db.Transaction(ctx, func(tx *orm.Tx) error {
		k := NewKennel(tx)
		if err := k.Ratings.DeleteAll(ctx); err != nil {
			return err
		}
		if err := k.Dogs.DeleteAll(ctx); err != nil {
			return err
		}
		return k.People.DeleteAll(ctx)
	})
}
