package notes

import (
	"strconv"

	"example.com/notes-api/internal/stringsx"
)

// Client-facing validation messages.
const (
	MsgContentRequired = "Content required"
	MsgNothingToUpdate = "Nothing to update"
	MsgInvalidID       = "Invalid id"
)

// ValidateCreate trims both fields, requires content and substitutes
// DefaultName for a blank name.
func ValidateCreate(req CreateNoteRequest) (NewNote, error) {
	content := stringsx.Trim(req.Content)
	if content == "" {
		return NewNote{}, invalid(MsgContentRequired)
	}
	return NewNote{
		Name:    stringsx.OrDefault(stringsx.Trim(req.Name), DefaultName),
		Content: content,
	}, nil
}

// ValidateUpdate requires at least one field. A supplied content must be
// non-empty after trimming; a supplied blank name becomes DefaultName.
func ValidateUpdate(req UpdateNoteRequest) (Patch, error) {
	if req.Name == nil && req.Content == nil {
		return Patch{}, invalid(MsgNothingToUpdate)
	}

	var p Patch
	if req.Name != nil {
		name := stringsx.OrDefault(stringsx.Trim(req.Name), DefaultName)
		p.Name = &name
	}
	if req.Content != nil {
		content := stringsx.Trim(req.Content)
		if content == "" {
			return Patch{}, invalid(MsgContentRequired)
		}
		p.Content = &content
	}
	return p, nil
}

// ParseID accepts only positive base-10 integers.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(MsgInvalidID)
	}
	return id, nil
}
