package model

import (
	"context"
	"database/sql"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/internal/naming"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

const (
	ratingDogFK   = "dog_id"
	ratingJudgeFK = "judge_id"
)

// Rating is one judge's verdict on one dog.
type Rating struct {
	ID       int64
	Coolness int
	Cuteness int
	JudgeID  sql.Null[int64]
	DogID    sql.Null[int64]
}

// Dog resolves dog_id against the dogs table.
// It returns nil without querying when dog_id is null.
func (r Rating) Dog(ctx context.Context, db orm.Querier) (*Dog, error) {
	return orm.BelongsTo[Dog]{ForeignKey: ratingDogFK, Target: Dogs(db)}.Get(ctx, r.DogID)
}

// SetDog points dog_id at d. Nothing is written to the database.
func (r *Rating) SetDog(d Dog) error {
	return orm.Assign(&r.DogID, d.ID)
}

// Judge resolves judge_id against the people table.
// It returns nil without querying when judge_id is null.
func (r Rating) Judge(ctx context.Context, db orm.Querier) (*Person, error) {
	return orm.BelongsTo[Person]{ForeignKey: ratingJudgeFK, Target: People(db)}.Get(ctx, r.JudgeID)
}

// SetJudge points judge_id at p. Nothing is written to the database.
func (r *Rating) SetJudge(p Person) error {
	return orm.Assign(&r.JudgeID, p.ID)
}

// RatingDogs batch-resolves the dogs of ratings, keyed by dog ID.
func RatingDogs(ctx context.Context, db orm.Querier, ratings []Rating) (map[int64]Dog, error) {
	return orm.LoadBelongsTo(ctx, Dogs(db), ratings, ratingDogID, dogPK)
}

// RatingJudges batch-resolves the judges of ratings, keyed by person ID.
func RatingJudges(ctx context.Context, db orm.Querier, ratings []Rating) (map[int64]Person, error) {
	return orm.LoadBelongsTo(ctx, People(db), ratings, ratingJudgeID, personPK)
}

// Ratings returns a new Query for the ratings table.
func Ratings(db orm.Querier) *orm.Query[Rating] {
	return orm.NewQuery[Rating](
		db, orm.ResolveTableName[Rating](naming.TableName("Rating")), ratingsColumns, "id",
		scanRating, ratingColumnValuePairs, setRatingPK,
	)
}

var ratingsColumns = []string{"id", "coolness", "cuteness", "judge_id", "dog_id"}

func scanRating(rows *sql.Rows) (Rating, error) {
	cols, _ := rows.Columns()
	var v Rating
	dest := make([]any, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			dest[i] = &v.ID
		case "coolness":
			dest[i] = &v.Coolness
		case "cuteness":
			dest[i] = &v.Cuteness
		case "judge_id":
			dest[i] = &v.JudgeID
		case "dog_id":
			dest[i] = &v.DogID
		default:
			dest[i] = new(any)
		}
	}
	err := rows.Scan(dest...)
	return v, err
}

func ratingColumnValuePairs(v *Rating, includesPK bool) ([]string, []any) {
	if includesPK {
		return []string{"id", "coolness", "cuteness", "judge_id", "dog_id"},
			[]any{v.ID, v.Coolness, v.Cuteness, v.JudgeID, v.DogID}
	}
	return []string{"coolness", "cuteness", "judge_id", "dog_id"},
		[]any{v.Coolness, v.Cuteness, v.JudgeID, v.DogID}
}

func setRatingPK(v *Rating, id int64) {
	v.ID = id
}

func ratingDogID(v *Rating) sql.Null[int64]   { return v.DogID }
func ratingJudgeID(v *Rating) sql.Null[int64] { return v.JudgeID }
