package model

import (
	"context"
	"database/sql"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/internal/naming"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

const dogOwnerFK = "owner_id"

// Dog belongs to an owner and has many ratings.
type Dog struct {
	ID      int64
	Name    string
	License string
	Age     int
	Breed   string
	OwnerID sql.Null[int64]
}

// Owner resolves owner_id against the people table.
// It returns nil without querying when owner_id is null.
func (d Dog) Owner(ctx context.Context, db orm.Querier) (*Person, error) {
	return orm.BelongsTo[Person]{ForeignKey: dogOwnerFK, Target: People(db)}.Get(ctx, d.OwnerID)
}

// SetOwner points owner_id at p. Nothing is written to the database.
func (d *Dog) SetOwner(p Person) error {
	return orm.Assign(&d.OwnerID, p.ID)
}

// Ratings returns every rating given to d.
func (d Dog) Ratings(ctx context.Context, db orm.Querier) ([]Rating, error) {
	return orm.HasMany[Rating]{ForeignKey: ratingDogFK, Target: Ratings(db)}.Load(ctx, d.ID)
}

// DogOwners batch-resolves the owners of dogs, keyed by person ID.
func DogOwners(ctx context.Context, db orm.Querier, dogs []Dog) (map[int64]Person, error) {
	return orm.LoadBelongsTo(ctx, People(db), dogs, dogOwnerID, personPK)
}

// DogRatings batch-loads the ratings of dogs, keyed by dog ID.
func DogRatings(ctx context.Context, db orm.Querier, dogs []Dog) (map[int64][]Rating, error) {
	return orm.LoadHasMany(ctx, Ratings(db), ratingDogFK, dogs, dogPK, ratingDogID)
}

// Dogs returns a new Query for the dogs table.
func Dogs(db orm.Querier) *orm.Query[Dog] {
	return orm.NewQuery[Dog](
		db, orm.ResolveTableName[Dog](naming.TableName("Dog")), dogsColumns, "id",
		scanDog, dogColumnValuePairs, setDogPK,
	)
}

var dogsColumns = []string{"id", "name", "license", "age", "breed", "owner_id"}

func scanDog(rows *sql.Rows) (Dog, error) {
	cols, _ := rows.Columns()
	var v Dog
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "name":
			dest[i] = &v.Name
		case "license":
			dest[i] = &v.License
		case "age":
			dest[i] = &v.Age
		case "breed":
			dest[i] = &v.Breed
		case "owner_id":
			dest[i] = &v.OwnerID
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func dogColumnValuePairs(v *Dog, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "name", "license", "age", "breed", "owner_id"},
			[]any{v.ID, v.Name, v.License, v.Age, v.Breed, v.OwnerID}
	}
	return []string{"name", "license", "age", "breed", "owner_id"},
		[]any{v.Name, v.License, v.Age, v.Breed, v.OwnerID}
}

func setDogPK(v *Dog, id int64) {
	v.ID = id
}

func dogPK(v *Dog) int64                { return v.ID }
func dogOwnerID(v *Dog) sql.Null[int64] { return v.OwnerID }
