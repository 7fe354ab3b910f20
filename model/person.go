// Package model declares the kennel's entity records and their associations.
package model

import (
	"context"
	"database/sql"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/internal/naming"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

// Person is a dog owner or a judge.
type Person struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName joins first and last name.
func (p Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// OwnedDogs returns the dogs whose owner_id points at p.
func (p Person) OwnedDogs(ctx context.Context, db orm.Querier) ([]Dog, error) {
	return orm.HasMany[Dog]{ForeignKey: dogOwnerFK, Target: Dogs(db)}.Load(ctx, p.ID)
}

// JudgedRatings returns the ratings p handed out as a judge.
func (p Person) JudgedRatings(ctx context.Context, db orm.Querier) ([]Rating, error) {
	return orm.HasMany[Rating]{ForeignKey: ratingJudgeFK, Target: Ratings(db)}.Load(ctx, p.ID)
}

// People returns a new Query for the people table.
func People(db orm.Querier) *orm.Query[Person] {
	return orm.NewQuery[Person](
		db, orm.ResolveTableName[Person](naming.TableName("Person")), peopleColumns, "id",
		scanPerson, personColumnValuePairs, setPersonPK,
	)
}

var peopleColumns = []string{"id", "first_name", "last_name"}

func scanPerson(rows *sql.Rows) (Person, error) {
	cols, _ := rows.Columns()
	var v Person
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "first_name":
			dest[i] = &v.FirstName
		case "last_name":
			dest[i] = &v.LastName
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func personColumnValuePairs(v *Person, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "first_name", "last_name"},
			[]any{v.ID, v.FirstName, v.LastName}
	}
	return []string{"first_name", "last_name"},
		[]any{v.FirstName, v.LastName}
}

func setPersonPK(v *Person, id int64) {
	v.ID = id
}

func personPK(v *Person) int64 { return v.ID }
