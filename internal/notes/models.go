package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultName replaces a missing or blank author name.
const DefaultName = "Anonym"

type Note struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNoteRequest is the POST body. Both fields are optional on the wire;
// validation decides what is acceptable.
type CreateNoteRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// UpdateNoteRequest is the PATCH/PUT body. A nil field is left untouched.
type UpdateNoteRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// NewNote is a validated create input.
type NewNote struct {
	Name    string
	Content string
}

// Patch is a validated update input with at least one field set.
type Patch struct {
	Name    *string
	Content *string
}

// UnmarshalJSON accepts scalar field values and reads them as text: numbers
// keep their literal form, true becomes "true", and zero or false become
// empty. Objects and arrays are rejected.
func (r *CreateNoteRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name    json.RawMessage `json:"name"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	name, err := textOf("name", raw.Name)
	if err != nil {
		return err
	}
	content, err := textOf("content", raw.Content)
	if err != nil {
		return err
	}
	*r = CreateNoteRequest{Name: name, Content: content}
	return nil
}

func (r *UpdateNoteRequest) UnmarshalJSON(b []byte) error {
	var c CreateNoteRequest
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	*r = UpdateNoteRequest(c)
	return nil
}

// textOf returns nil for an absent or null field.
func textOf(field string, raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		if f, err := t.Float64(); err != nil || f != 0 {
			s = t.String()
		}
	case bool:
		if t {
			s = "true"
		}
	default:
		return nil, fmt.Errorf("%s: expected text, got %s", field, raw)
	}
	return &s, nil
}
