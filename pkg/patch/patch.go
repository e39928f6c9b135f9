package patch

import (
	"bytes"
	"encoding/json"
)

// Field carries one column of a partial update. A key absent from the
// request body leaves Set false and the column unchanged; an explicit
// JSON null sets Set with Valid false, which clears a nullable column.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(b, []byte("null")) {
		var zero T
		f.Value = zero
		f.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Apply adds the field to a column→value update map. Unset fields are
// skipped, null fields map to a NULL assignment.
func (f Field[T]) Apply(updates map[string]any, column string) {
	if !f.Set {
		return
	}
	if !f.Valid {
		updates[column] = nil
		return
	}
	updates[column] = f.Value
}
