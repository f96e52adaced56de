package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gravitrone/khabri/internal/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EditBuffer is the form's working copy of a record.
type EditBuffer struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// IsEmpty reports whether both fields are blank.
func (b EditBuffer) IsEmpty() bool {
	return b.Title == "" && b.Content == ""
}

// Input converts the buffer into a request body.
func (b EditBuffer) Input() api.RecordInput {
	return api.RecordInput{Title: b.Title, Content: b.Content}
}

// Validate checks that both fields are non-empty once trimmed. The input
// surface calls it before Submit; Submit itself does not.
func (b EditBuffer) Validate() error {
	trimmed := EditBuffer{
		Title:   strings.TrimSpace(b.Title),
		Content: strings.TrimSpace(b.Content),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%s is required", fieldLabel(fieldErrs[0].Field()))
	}
	return err
}

func fieldLabel(field string) string {
	switch field {
	case "Title":
		return "Name"
	case "Content":
		return "Details"
	}
	return field
}

// EditTarget selects create or update mode for the next submission.
type EditTarget struct {
	id      api.RecordID
	editing bool
}

// Creating is the target for a new record.
func Creating() EditTarget {
	return EditTarget{}
}

// Editing targets the existing record id.
func Editing(id api.RecordID) EditTarget {
	return EditTarget{id: id, editing: true}
}

// ID returns the record being edited, if any.
func (t EditTarget) ID() (api.RecordID, bool) {
	return t.id, t.editing
}

// IsEditing reports whether a submission will update an existing record.
func (t EditTarget) IsEditing() bool {
	return t.editing
}
