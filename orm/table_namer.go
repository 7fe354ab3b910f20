package orm

// TableNamer can be implemented by entity structs to override the
// table name inferred from the type name.
type TableNamer interface {
	TableName() string
}

// ResolveTableName returns the table name for type T.
// If T implements TableNamer (value or pointer receiver), that name is used;
// otherwise inferred is returned.
func ResolveTableName[T any](inferred string) string {
	var zero T
	if tn, ok := any(&zero).(TableNamer); ok {
		return tn.TableName()
	}
	return inferred
}
