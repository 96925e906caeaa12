// Package forms is the shared form engine: one schema model, one renderer,
// one validator and one aggregator reused by course registrations, surveys
// and report templates.
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldType is the closed set of input types a form field can have.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypePhone    FieldType = "phone"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
	TypeRadio    FieldType = "radio"
	TypeCheckbox FieldType = "checkbox"
	TypeRating   FieldType = "rating"
	TypeYesNo    FieldType = "yes_no"
)

var fieldTypes = map[FieldType]bool{
	TypeText:     true,
	TypeEmail:    true,
	TypePhone:    true,
	TypeNumber:   true,
	TypeDate:     true,
	TypeTextarea: true,
	TypeSelect:   true,
	TypeRadio:    true,
	TypeCheckbox: true,
	TypeRating:   true,
	TypeYesNo:    true,
}

// YesNoOptions are the literal answer values of a yes_no field.
var YesNoOptions = []string{"نعم", "لا"}

func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(s)
	if !fieldTypes[ft] {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return ft, nil
}

// HasOptions reports whether the type carries an admin-defined option list.
func (ft FieldType) HasOptions() bool {
	return ft == TypeSelect || ft == TypeRadio || ft == TypeCheckbox
}

// Multi reports whether the submitted value is a list rather than a scalar.
func (ft FieldType) Multi() bool {
	return ft == TypeCheckbox
}

func (ft FieldType) Numeric() bool {
	return ft == TypeNumber || ft == TypeRating
}

// FieldDefinition is one input slot of a form.
type FieldDefinition struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name,omitempty"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	Options      []string  `json:"options,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty"`
	DisplayOrder int       `json:"display_order"`
}

// Key is the identifier submissions use for this field in their answer map:
// the generated name when present, the numeric id otherwise.
func (f FieldDefinition) Key() string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.FormatInt(f.ID, 10)
}

// Normalize checks the field invariants and strips meaningless state:
// a label is mandatory, option-bearing types need at least one non-empty
// option, and no other type may carry options.
func (f *FieldDefinition) Normalize() error {
	f.Label = strings.TrimSpace(f.Label)
	if f.Label == "" {
		return fmt.Errorf("field %q: missing label", f.Name)
	}
	if _, err := ParseFieldType(string(f.Type)); err != nil {
		return fmt.Errorf("field %q: %w", f.Label, err)
	}

	if !f.Type.HasOptions() {
		f.Options = nil
		return nil
	}

	opts := f.Options[:0]
	for _, o := range f.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	f.Options = opts
	if len(f.Options) == 0 {
		return fmt.Errorf("field %q: type %s needs at least one option", f.Label, f.Type)
	}
	return nil
}

// Definition is an admin-authored form: a title plus an ordered field list.
type Definition struct {
	ID          int64             `json:"id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	IsActive    bool              `json:"is_active"`
	CourseID    *int64            `json:"course_id,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
}

// Field returns the field answering to the given key, or nil.
func (d *Definition) Field(key string) *FieldDefinition {
	for i := range d.Fields {
		if d.Fields[i].Key() == key {
			return &d.Fields[i]
		}
	}
	return nil
}

var reNoIdent = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// FieldNames derives a stable answer-map key per field from its label,
// disambiguating duplicate labels by position.
func FieldNames(fields []FieldDefinition) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		name := strings.ToLower(f.Label)
		name = reNoIdent.ReplaceAllLiteralString(name, " ")
		name = strings.Join(strings.Fields(name), "_")
		if name == "" {
			name = "field"
		}

		n := 0
		for _, prev := range names[:i] {
			if prev == name || strings.HasPrefix(prev, name+"__") {
				n++
			}
		}
		if n > 0 {
			name = fmt.Sprintf("%s__%d", name, n)
		}
		names[i] = name
	}
	return names
}
