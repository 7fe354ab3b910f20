package scope_test

import (
	"testing"

	"github.com/programming-notes/active-record-intro-has-many-association-challenge/scope"
)

type recorder struct {
	wheres   []applied
	orderBys []string
	limit    *int
	offset   *int
}

type applied struct {
	clause string
	args   []any
}

func (r *recorder) ApplyWhere(clause string, args []any) {
	r.wheres = append(r.wheres, applied{clause, args})
}
func (r *recorder) ApplyOrderBy(clause string) { r.orderBys = append(r.orderBys, clause) }
func (r *recorder) ApplyLimit(n int)           { r.limit = &n }
func (r *recorder) ApplyOffset(n int)          { r.offset = &n }

func TestWhere(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	scope.Where("age > ?", 1).Apply(r)

	if len(r.wheres) != 1 {
		t.Fatalf("expected 1 where, got %d", len(r.wheres))
	}
	if r.wheres[0].clause != "age > ?" {
		t.Errorf("clause = %q, want %q", r.wheres[0].clause, "age > ?")
	}
	if len(r.wheres[0].args) != 1 || r.wheres[0].args[0] != 1 {
		t.Errorf("args = %v, want [1]", r.wheres[0].args)
	}
}

func TestEq(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	scope.Eq("dog_id", int64(7)).Apply(r)

	if len(r.wheres) != 1 || r.wheres[0].clause != "dog_id = ?" {
		t.Fatalf("wheres = %v", r.wheres)
	}
	if r.wheres[0].args[0] != int64(7) {
		t.Errorf("args = %v, want [7]", r.wheres[0].args)
	}
}

func TestIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		values     []int64
		wantClause string
		wantArgs   int
	}{
		{"one", []int64{1}, "id IN (?)", 1},
		{"three", []int64{1, 2, 3}, "id IN (?, ?, ?)", 3},
		{"empty", nil, "1 = 0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &recorder{}
			scope.In("id", tt.values).Apply(r)

			if r.wheres[0].clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", r.wheres[0].clause, tt.wantClause)
			}
			if len(r.wheres[0].args) != tt.wantArgs {
				t.Errorf("args = %v, want %d args", r.wheres[0].args, tt.wantArgs)
			}
		})
	}
}

func TestOrderBy(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	scope.OrderBy("coolness DESC").Apply(r)

	if len(r.orderBys) != 1 || r.orderBys[0] != "coolness DESC" {
		t.Errorf("orderBys = %v, want [coolness DESC]", r.orderBys)
	}
}

func TestLimitOffset(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	for _, s := range scope.Combine(scope.Limit(10), scope.Offset(20)) {
		s.Apply(r)
	}

	if r.limit == nil || *r.limit != 10 {
		t.Errorf("limit = %v, want 10", r.limit)
	}
	if r.offset == nil || *r.offset != 20 {
		t.Errorf("offset = %v, want 20", r.offset)
	}
}

func TestAppendDoesNotModifyReceiver(t *testing.T) {
	t.Parallel()

	base := scope.Combine(scope.Limit(10))
	extended := base.Append(scope.Offset(5))

	if len(base) != 1 {
		t.Errorf("base len = %d, want 1", len(base))
	}
	if len(extended) != 2 {
		t.Errorf("extended len = %d, want 2", len(extended))
	}
}
