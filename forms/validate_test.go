package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition() *Definition {
	return &Definition{
		ID:    1,
		Title: "تسجيل الدورة",
		Fields: []FieldDefinition{
			{Name: "full_name", Label: "الاسم الكامل", Type: TypeText, Required: true},
			{Name: "email", Label: "البريد الإلكتروني", Type: TypeEmail, Required: true},
			{Name: "phone", Label: "رقم الجوال", Type: TypePhone, Required: false},
			{Name: "level", Label: "المستوى", Type: TypeSelect, Required: true, Options: []string{"مبتدئ", "متقدم"}},
			{Name: "interests", Label: "الاهتمامات", Type: TypeCheckbox, Required: false, Options: []string{"A", "B"}},
			{Name: "rating", Label: "التقييم", Type: TypeRating, Required: false},
		},
	}
}

func TestValidate(t *testing.T) {
	def := testDefinition()

	tests := []struct {
		name        string
		answers     map[string]any
		wantMissing []string
	}{
		{
			name: "all required answered",
			answers: map[string]any{
				"full_name": "أحمد",
				"email":     "ahmed@example.com",
				"level":     "مبتدئ",
			},
		},
		{
			name:        "empty answer map",
			answers:     map[string]any{},
			wantMissing: []string{"الاسم الكامل", "البريد الإلكتروني", "المستوى"},
		},
		{
			name:        "nil answer map",
			answers:     nil,
			wantMissing: []string{"الاسم الكامل", "البريد الإلكتروني", "المستوى"},
		},
		{
			name: "one required missing names its label",
			answers: map[string]any{
				"full_name": "أحمد",
				"level":     "متقدم",
			},
			wantMissing: []string{"البريد الإلكتروني"},
		},
		{
			name: "whitespace-only string counts as missing",
			answers: map[string]any{
				"full_name": "   ",
				"email":     "ahmed@example.com",
				"level":     "مبتدئ",
			},
			wantMissing: []string{"الاسم الكامل"},
		},
		{
			name: "empty list counts as missing",
			answers: map[string]any{
				"full_name": "أحمد",
				"email":     "ahmed@example.com",
				"level":     []any{},
			},
			wantMissing: []string{"المستوى"},
		},
		{
			name: "numbers and booleans always count as present",
			answers: map[string]any{
				"full_name": "أحمد",
				"email":     "a@b.c",
				"level":     "مبتدئ",
				"rating":    float64(0),
			},
		},
		{
			name: "optional fields never reported",
			answers: map[string]any{
				"full_name": "أحمد",
				"email":     "a@b.c",
				"level":     "مبتدئ",
				"phone":     "",
				"interests": []any{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(def, tt.answers)
			if tt.wantMissing == nil {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMissing, vErr.Missing)
			for _, label := range tt.wantMissing {
				assert.Contains(t, vErr.Error(), label)
			}
		})
	}
}

// Validate returns Invalid if and only if some required field lacks a
// non-empty answer: exercised over every single-field definition.
func TestValidateIffRequiredMissing(t *testing.T) {
	values := map[string]any{
		"empty string": "",
		"blank string": " \t ",
		"nil":          nil,
		"empty list":   []any{},
		"string":       "x",
		"number":       float64(3),
		"zero":         float64(0),
		"bool":         false,
		"list":         []any{"A"},
	}
	empty := map[string]bool{
		"empty string": true,
		"blank string": true,
		"nil":          true,
		"empty list":   true,
	}

	for name, value := range values {
		for _, required := range []bool{true, false} {
			def := &Definition{Fields: []FieldDefinition{
				{Name: "f", Label: "F", Type: TypeText, Required: required},
			}}
			err := Validate(def, map[string]any{"f": value})
			if required && empty[name] {
				assert.Error(t, err, "required + %s", name)
			} else {
				assert.NoError(t, err, "required=%v + %s", required, name)
			}
		}
	}
}
