// Package form models the statement form: one tab per language, each with
// labeled fields, a list of transaction rows and its trigger buttons.
package form

import (
	"errors"
	"sync"
)

// ErrControlDisabled is returned when a disabled button is pressed.
var ErrControlDisabled = errors.New("control is disabled")

// Label is text tagged with a translation key.
type Label struct {
	key  string
	text string
}

// NewLabel returns a label showing text.
func NewLabel(key, text string) *Label {
	return &Label{key: key, text: text}
}

func (l *Label) TranslationKey() string { return l.key }
func (l *Label) Text() string           { return l.text }
func (l *Label) SetText(text string)    { l.text = text }

// Field is a labeled text input.
type Field struct {
	Name  string
	Label *Label

	value          string
	placeholderKey string
	placeholder    string
}

// NewField returns an empty field whose label text is labelText.
func NewField(name, labelText string) *Field {
	return &Field{Name: name, Label: NewLabel(name, labelText)}
}

func (f *Field) Value() string          { return f.value }
func (f *Field) SetValue(v string)      { f.value = v }
func (f *Field) Placeholder() string    { return f.placeholder }
func (f *Field) PlaceholderKey() string { return f.placeholderKey }

func (f *Field) SetPlaceholder(text string) { f.placeholder = text }

// Button is a trigger control. While a request it started is in flight it
// is disabled and shows a busy label.
type Button struct {
	mu       sync.Mutex
	key      string
	label    string
	disabled bool
}

// NewButton returns an enabled button.
func NewButton(key, label string) *Button {
	return &Button{key: key, label: label}
}

func (b *Button) TranslationKey() string { return b.key }

// SetText replaces the label.
func (b *Button) SetText(text string) {
	b.mu.Lock()
	b.label = text
	b.mu.Unlock()
}

// Label returns the current label.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Disabled reports whether the button refuses presses.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// Begin disables the button and shows busyLabel. The returned function
// restores the previous label and enables the button again; calling it
// more than once is harmless. Pressing a disabled button returns
// ErrControlDisabled.
func (b *Button) Begin(busyLabel string) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disabled {
		return nil, ErrControlDisabled
	}

	original := b.label
	b.label = busyLabel
	b.disabled = true

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.label = original
			b.disabled = false
			b.mu.Unlock()
		})
	}, nil
}
