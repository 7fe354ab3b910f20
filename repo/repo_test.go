package repo_test

import (
	"errors"
	"testing"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/model"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm/ormtest"
	"github.com/programming-notes/active-record-intro-has-many-association-challenge/repo"
)

func TestSaveCreatesUnsavedRecord(t *testing.T) {
	t.Parallel()

	rec := ormtest.NewRecorder(orm.MySQL)
	k := repo.NewKennel(rec)

	p := &model.Person{FirstName: "Teagan", LastName: "Hickman"}
	if err := k.People.Save(t.Context(), p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
	want := "INSERT INTO `people` (`first_name`, `last_name`) VALUES (?, ?)"
	if got := rec.Last(); got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestSaveUpdatesPersistedRecord(t *testing.T) {
	t.Parallel()

	rec := ormtest.NewRecorder(orm.PostgreSQL)
	k := repo.NewKennel(rec)

	d := &model.Dog{ID: 1, Name: "Tenley", License: "OH-9384764", Age: 2, Breed: "Golden Doodle"}
	if err := k.Dogs.Save(t.Context(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := `UPDATE "dogs" SET "name" = $1, "license" = $2, "age" = $3, "breed" = $4, "owner_id" = $5 WHERE "id" = $6`
	if got := rec.Last(); got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	rec := ormtest.NewRecorder(orm.MySQL)
	k := repo.NewKennel(rec)

	if err := k.Ratings.Delete(t.Context(), &model.Rating{}); !errors.Is(err, orm.ErrUnsavedReference) {
		t.Fatalf("Delete unsaved: err = %v, want ErrUnsavedReference", err)
	}
	if len(rec.Statements) != 0 {
		t.Fatalf("statements = %v, want none", rec.Statements)
	}

	if err := k.Ratings.Delete(t.Context(), &model.Rating{ID: 4}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := rec.Last()
	if want := "DELETE FROM `ratings` WHERE `id` = ?"; got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
	if len(got.Args) != 1 || got.Args[0] != int64(4) {
		t.Errorf("Args = %v, want [4]", got.Args)
	}
}

func TestDeleteAll(t *testing.T) {
	t.Parallel()

	rec := ormtest.NewRecorder(orm.PostgreSQL)
	k := repo.NewKennel(rec)

	for _, deleteAll := range []func() error{
		func() error { return k.Ratings.DeleteAll(t.Context()) },
		func() error { return k.Dogs.DeleteAll(t.Context()) },
		func() error { return k.People.DeleteAll(t.Context()) },
	} {
		if err := deleteAll(); err != nil {
			t.Fatalf("DeleteAll: %v", err)
		}
	}

	want := []string{`DELETE FROM "ratings"`, `DELETE FROM "dogs"`, `DELETE FROM "people"`}
	if len(rec.Statements) != len(want) {
		t.Fatalf("statements = %d, want %d", len(rec.Statements), len(want))
	}
	for i, w := range want {
		if rec.Statements[i].SQL != w {
			t.Errorf("statement %d = %q, want %q", i, rec.Statements[i].SQL, w)
		}
	}
}

func TestAllOrdersByPrimaryKey(t *testing.T) {
	t.Parallel()

	rec := ormtest.NewRecorder(orm.MySQL)
	_, _ = repo.NewKennel(rec).People.All(t.Context())

	want := "SELECT `id`, `first_name`, `last_name` FROM `people` ORDER BY `id`"
	if got := rec.Last(); got.SQL != want {
		t.Errorf("SQL = %q, want %q", got.SQL, want)
	}
}
