package forms

import (
	"fmt"
	"math"
	"strconv"
)

// FieldSummary is the per-field statistic computed over all submissions of
// one definition.
type FieldSummary struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
	// Count is the number of submissions that answered this field.
	Count int `json:"count"`
	// Average is the mean of numeric answers, one decimal (rating only).
	Average float64 `json:"average,omitempty"`
	// Counts is the per-value histogram (yes_no and option-bearing types).
	Counts map[string]int `json:"counts,omitempty"`
}

// Summarize recomputes per-field statistics from scratch: no cached
// aggregate state exists anywhere. Answer keys that no longer match a field
// of the definition are ignored, never deleted from stored submissions.
func Summarize(def *Definition, submissions []map[string]any) []FieldSummary {
	summaries := make([]FieldSummary, 0, len(def.Fields))
	for _, f := range def.Fields {
		s := FieldSummary{Name: f.Key(), Label: f.Label, Type: f.Type}

		switch {
		case f.Type == TypeRating:
			var sum float64
			for _, sub := range submissions {
				if n, ok := Number(sub[f.Key()]); ok {
					sum += n
					s.Count++
				}
			}
			if s.Count > 0 {
				s.Average = round1(sum / float64(s.Count))
			}

		case f.Type == TypeYesNo:
			s.Counts = map[string]int{}
			for _, o := range YesNoOptions {
				s.Counts[o] = 0
			}
			for _, sub := range submissions {
				v := sub[f.Key()]
				if isEmpty(v) {
					continue
				}
				s.Counts[fmt.Sprint(v)]++
				s.Count++
			}

		case f.Type.HasOptions():
			s.Counts = map[string]int{}
			for _, o := range f.Options {
				s.Counts[o] = 0
			}
			for _, sub := range submissions {
				v := sub[f.Key()]
				if isEmpty(v) {
					continue
				}
				// checkbox answers contribute once per selected option
				for _, val := range Strings(v) {
					s.Counts[val]++
				}
				s.Count++
			}

		default:
			for _, sub := range submissions {
				if !isEmpty(sub[f.Key()]) {
					s.Count++
				}
			}
		}

		summaries = append(summaries, s)
	}
	return summaries
}

// Strings coerces a submitted value to its list form: lists item by item,
// scalars as a single element.
func Strings(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Number coerces a submitted value to a float. JSON decoding hands numbers
// over as float64, but form controls may post them as strings.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func round1(n float64) float64 {
	return math.Round(n*10) / 10
}
