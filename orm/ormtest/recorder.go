// Package ormtest provides a recording orm.Querier for tests that check
// generated SQL without a database.
package ormtest

import (
	"context"
	"database/sql"
	"errors"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"
)

// ErrNoRows is returned by every read, since a Recorder has no data.
var ErrNoRows = errors.New("ormtest: recorder returns no rows")

// Statement is one captured query and its bind arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Recorder captures every statement sent to it. Writes succeed and report
// sequential insert IDs starting at 1; reads fail with ErrNoRows.
type Recorder struct {
	D          orm.Dialect
	Statements []Statement

	lastID int64
}

var _ orm.Querier = (*Recorder)(nil)

// NewRecorder creates a Recorder speaking the given Dialect.
func NewRecorder(d orm.Dialect) *Recorder {
	return &Recorder{D: d}
}

func (r *Recorder) QueryContext(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	r.Statements = append(r.Statements, Statement{query, args})
	return nil, ErrNoRows
}

func (r *Recorder) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	r.Statements = append(r.Statements, Statement{query, args})
	r.lastID++
	return result{id: r.lastID}, nil
}

func (r *Recorder) Dialect() orm.Dialect { return r.D }

// Last returns the most recently captured statement, or panics if none.
func (r *Recorder) Last() Statement {
	return r.Statements[len(r.Statements)-1]
}

type result struct{ id int64 }

func (r result) LastInsertId() (int64, error) { return r.id, nil }
func (result) RowsAffected() (int64, error)   { return 1, nil }
