package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingDef() *Definition {
	return &Definition{Fields: []FieldDefinition{
		{Name: "q1", Label: "كيف تقيم الدورة؟", Type: TypeRating},
	}}
}

func TestSummarizeRatingMean(t *testing.T) {
	subs := []map[string]any{
		{"q1": float64(5)},
		{"q1": float64(4)},
		{"q1": float64(3)},
	}

	summaries := Summarize(ratingDef(), subs)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Count)
	assert.Equal(t, 4.0, summaries[0].Average)
}

func TestSummarizeRatingNoAnswers(t *testing.T) {
	summaries := Summarize(ratingDef(), nil)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Count)
	assert.Equal(t, 0.0, summaries[0].Average)
}

func TestSummarizeRatingStringValues(t *testing.T) {
	// form controls may post numbers as strings
	subs := []map[string]any{
		{"q1": "5"},
		{"q1": float64(2)},
	}

	summaries := Summarize(ratingDef(), subs)
	assert.Equal(t, 3.5, summaries[0].Average)
}

func TestSummarizeYesNoCounts(t *testing.T) {
	def := &Definition{Fields: []FieldDefinition{
		{Name: "q1", Label: "هل استفدت؟", Type: TypeYesNo},
	}}
	subs := []map[string]any{
		{"q1": "نعم"},
		{"q1": "نعم"},
		{"q1": "لا"},
	}

	summaries := Summarize(def, subs)
	require.Len(t, summaries, 1)
	assert.Equal(t, map[string]int{"نعم": 2, "لا": 1}, summaries[0].Counts)
	assert.Equal(t, 3, summaries[0].Count)
}

func TestSummarizeCheckboxHistogram(t *testing.T) {
	def := &Definition{Fields: []FieldDefinition{
		{Name: "q1", Label: "Pick", Type: TypeCheckbox, Options: []string{"A", "B", "C"}},
	}}
	subs := []map[string]any{
		{"q1": []any{"A", "C"}},
	}

	summaries := Summarize(def, subs)
	require.Len(t, summaries, 1)
	assert.Equal(t, map[string]int{"A": 1, "B": 0, "C": 1}, summaries[0].Counts)
	assert.Equal(t, 1, summaries[0].Count)
}

func TestSummarizeRadioHistogram(t *testing.T) {
	def := &Definition{Fields: []FieldDefinition{
		{Name: "q1", Label: "Level", Type: TypeRadio, Options: []string{"beginner", "advanced"}},
	}}
	subs := []map[string]any{
		{"q1": "beginner"},
		{"q1": "beginner"},
		{"q1": "advanced"},
		{"q1": ""},
	}

	summaries := Summarize(def, subs)
	assert.Equal(t, map[string]int{"beginner": 2, "advanced": 1}, summaries[0].Counts)
	assert.Equal(t, 3, summaries[0].Count)
}

func TestSummarizeTextCountsOnly(t *testing.T) {
	def := &Definition{Fields: []FieldDefinition{
		{Name: "q1", Label: "Comment", Type: TypeTextarea},
	}}
	subs := []map[string]any{
		{"q1": "great"},
		{"q1": ""},
		{},
		{"q1": "thanks"},
	}

	summaries := Summarize(def, subs)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Nil(t, summaries[0].Counts)
}

// Answers keyed by a field that was later removed from the definition are
// ignored by aggregation.
func TestSummarizeIgnoresOrphanedKeys(t *testing.T) {
	def := &Definition{Fields: []FieldDefinition{
		{Name: "kept", Label: "Kept", Type: TypeText},
	}}
	subs := []map[string]any{
		{"kept": "a", "removed": "b"},
		{"removed": "c"},
	}

	summaries := Summarize(def, subs)
	require.Len(t, summaries, 1)
	assert.Equal(t, "kept", summaries[0].Name)
	assert.Equal(t, 1, summaries[0].Count)
}
