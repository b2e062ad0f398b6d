package models

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value of a JSON field so that an absent
// field ("keep"), an explicit null ("clear") and a value can be told apart.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called when the field is present in the document.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON writes the value, or null when absent or cleared.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// SetString marks the field present with value s.
func SetString(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// OptionalID is the identifier counterpart of [OptionalString].
type OptionalID struct {
	Present bool
	Value   *int64
}

// UnmarshalJSON is only called when the field is present in the document.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// MarshalJSON writes the id, or null when absent or cleared.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// SetID marks the field present with value id.
func SetID(id int64) OptionalID {
	return OptionalID{Present: true, Value: &id}
}
