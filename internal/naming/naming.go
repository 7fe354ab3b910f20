// Package naming derives table and column names from Go identifiers.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CamelToSnake converts a CamelCase string to snake_case.
// Consecutive uppercase letters (acronyms) are kept together:
// "ID" → "id", "OwnerID" → "owner_id", "FirstName" → "first_name".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			next := rune(0)
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// TableName converts a type name to its plural snake_case table name:
// "Dog" → "dogs", "Person" → "people".
func TableName(typeName string) string {
	return inflection.Plural(CamelToSnake(typeName))
}

// ForeignKey returns the column referencing the primary key of the named
// association: "Owner" → "owner_id".
func ForeignKey(association string) string {
	return CamelToSnake(association) + "_id"
}
