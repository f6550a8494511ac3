package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"grove/internal/adapters/tui/styles"
)

var formKeys = struct {
	Next key.Binding
	Prev key.Binding
}{
	Next: key.NewBinding(key.WithKeys("tab", "down")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "up")),
}

// InputField is one labelled text input. Check, when set, flags bad input
// inline while the user is still typing; the command still has the final word.
type InputField struct {
	Label string
	Input textinput.Model
	Check func(value string) error
}

// NewInputField creates a text field with a placeholder hint
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// WithCheck attaches an inline validator to the field
func (f InputField) WithCheck(check func(string) error) InputField {
	f.Check = check
	return f
}

// InputForm is a vertical stack of fields with one focused at a time
type InputForm struct {
	Fields  []InputField
	focused int
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields}
	f.focus(0)
	return f
}

// Init returns the cursor blink command
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the index of the focused field
func (f *InputForm) Focused() int {
	return f.focused
}

// Update moves focus on tab/shift+tab and feeds everything else to the
// focused input.
func (f *InputForm) Update(msg tea.Msg) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, formKeys.Next):
			f.focus((f.focused + 1) % len(f.Fields))
			return nil
		case key.Matches(msg, formKeys.Prev):
			f.focus((f.focused + len(f.Fields) - 1) % len(f.Fields))
			return nil
		}
	}

	var cmd tea.Cmd
	f.Fields[f.focused].Input, cmd = f.Fields[f.focused].Input.Update(msg)
	return cmd
}

func (f *InputForm) focus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[f.focused].Input.Blur()
	f.focused = index
	f.Fields[index].Input.Focus()
}

// Value returns the trimmed value of a field
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue replaces the value of a field
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
}

// Problem returns the inline check failure for a field, if any.
// Empty values are never flagged.
func (f *InputForm) Problem(index int) string {
	if index < 0 || index >= len(f.Fields) || f.Fields[index].Check == nil {
		return ""
	}
	v := f.Value(index)
	if v == "" {
		return ""
	}
	if err := f.Fields[index].Check(v); err != nil {
		return err.Error()
	}
	return ""
}

// Reset clears every field and focuses the first
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
	}
	f.focus(0)
}

// RenderField renders a field's label, input and any inline problem
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	field := f.Fields[index]

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(field.Label))
	b.WriteString("\n")
	if index == f.focused {
		b.WriteString(styles.InputFocused.Render(field.Input.View()))
	} else {
		b.WriteString(styles.InputField.Render(field.Input.View()))
	}
	if p := f.Problem(index); p != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(p))
	}
	return b.String()
}
