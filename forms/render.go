package forms

// ControlKind names the input widget the public page renders for a field.
type ControlKind string

const (
	ControlInput      ControlKind = "input"
	ControlNumber     ControlKind = "number"
	ControlDate       ControlKind = "date"
	ControlTextarea   ControlKind = "textarea"
	ControlSelect     ControlKind = "select"
	ControlRadioGroup ControlKind = "radio_group"
	ControlCheckGroup ControlKind = "check_group"
	ControlRating     ControlKind = "rating"
)

// Control is one rendered input, ready for the frontend to display.
type Control struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Kind        ControlKind `json:"kind"`
	InputType   string      `json:"input_type,omitempty"`
	Required    bool        `json:"required"`
	Options     []string    `json:"options,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Min         int         `json:"min,omitempty"`
	Max         int         `json:"max,omitempty"`
	Value       any         `json:"value"`
}

// Render produces one control per field in display order, pre-filled from
// prior answers when editing. It is a pure function of its inputs and safe
// to re-invoke on every keystroke.
func Render(def *Definition, prior map[string]any) []Control {
	controls := make([]Control, 0, len(def.Fields))
	for _, f := range def.Fields {
		c := Control{
			Name:        f.Key(),
			Label:       f.Label,
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}

		switch f.Type {
		case TypeText, TypeEmail, TypePhone:
			c.Kind = ControlInput
			c.InputType = string(f.Type)
			if f.Type == TypePhone {
				c.InputType = "tel"
			}
			c.Value = ""
		case TypeNumber:
			c.Kind = ControlNumber
			c.Value = nil
		case TypeDate:
			c.Kind = ControlDate
			c.Value = ""
		case TypeTextarea:
			c.Kind = ControlTextarea
			c.Value = ""
		case TypeSelect:
			c.Kind = ControlSelect
			c.Options = f.Options
			c.Value = ""
		case TypeRadio:
			c.Kind = ControlRadioGroup
			c.Options = f.Options
			c.Value = ""
		case TypeCheckbox:
			// a multi-select group backed by a list value, not a boolean
			c.Kind = ControlCheckGroup
			c.Options = f.Options
			c.Value = []string{}
		case TypeRating:
			c.Kind = ControlRating
			c.Min, c.Max = 1, 5
			c.Value = nil
		case TypeYesNo:
			c.Kind = ControlRadioGroup
			c.Options = YesNoOptions
			c.Value = ""
		}

		if v, ok := prior[f.Key()]; ok && !isEmpty(v) {
			if f.Type.Multi() {
				c.Value = Strings(v)
			} else {
				c.Value = v
			}
		}

		controls = append(controls, c)
	}
	return controls
}
