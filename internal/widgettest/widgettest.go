// Package widgettest provides a scripted in-memory implementation of the
// native widget boundary. It records every native call and lets tests drive
// the widget's callbacks the way the toolkit would: typed runes, return
// presses, and focus changes.
package widgettest

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

// Widget is a fake nativetext.Widget. The zero value is usable.
type Widget struct {
	content richtext.Text
	cb      nativetext.Callbacks
	cfg     nativetext.Config
	focused bool
	sel     nativetext.Range

	// RefuseFocus makes RequestFocus fail, simulating toolkit refusal.
	RefuseFocus bool
	// FailMeasure makes MeasureHeight report no valid measurement.
	FailMeasure bool
	// FixedRows, when non-zero, overrides the line-count measurement.
	FixedRows int

	// Calls records every native call by name, in order.
	Calls []string
}

var _ nativetext.Widget = (*Widget)(nil)

func (w *Widget) record(name string) { w.Calls = append(w.Calls, name) }

// CallCount returns how many times the named call was recorded.
func (w *Widget) CallCount(name string) int {
	n := 0
	for _, c := range w.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (w *Widget) SetContent(t richtext.Text) {
	w.record("setContent")
	w.content = t
}

func (w *Widget) Content() richtext.Text { return w.content }

func (w *Widget) MeasureHeight(width int) (int, bool) {
	if w.FailMeasure || width <= 0 {
		return 0, false
	}
	if w.FixedRows > 0 {
		return w.FixedRows, true
	}
	return strings.Count(w.content.Content, "\n") + 1, true
}

func (w *Widget) RequestFocus() bool {
	w.record("requestFocus")
	if w.RefuseFocus {
		return false
	}
	if !w.focused {
		w.focused = true
		if w.cb.OnBeginEditing != nil {
			w.cb.OnBeginEditing()
		}
	}
	return true
}

func (w *Widget) ResignFocus() bool {
	w.record("resignFocus")
	if w.focused {
		w.focused = false
		if w.cb.OnEndEditing != nil {
			w.cb.OnEndEditing()
		}
	}
	return true
}

func (w *Widget) Focused() bool { return w.focused }

func (w *Widget) SetSelection(r nativetext.Range) {
	w.record("setSelection")
	w.sel = r
}

func (w *Widget) Selection() nativetext.Range { return w.sel }

func (w *Widget) Configure(cfg nativetext.Config) {
	w.record("configure")
	w.cfg = cfg
}

// Config returns the most recently applied configuration.
func (w *Widget) Config() nativetext.Config { return w.cfg }

func (w *Widget) SetCallbacks(cb nativetext.Callbacks) { w.cb = cb }

func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && w.focused {
		switch key.Type {
		case tea.KeyRunes:
			w.Type(string(key.Runes))
		case tea.KeyEnter:
			w.PressReturn()
		}
	}
	return nil
}

func (w *Widget) View() string { return w.content.Content }

// Type simulates the user typing s at the end of the content, one rune per
// edit, consulting the pre-change callback just as the toolkit would.
func (w *Widget) Type(s string) {
	for _, r := range s {
		w.applyEdit(string(r))
	}
}

// PressReturn simulates pressing return: a single-newline replacement.
func (w *Widget) PressReturn() {
	w.applyEdit("\n")
}

// SimulateSelection sets a selection without recording a native call, as if
// the user dragged one out.
func (w *Widget) SimulateSelection(r nativetext.Range) { w.sel = r }

func (w *Widget) applyEdit(replacement string) {
	end := len([]rune(w.content.Content))
	r := nativetext.Range{Start: end, End: end}
	if w.cb.OnShouldChangeText != nil && !w.cb.OnShouldChangeText(r, replacement) {
		return
	}
	w.content = w.content.WithContent(w.content.Content + replacement)
	w.sel = nativetext.Range{Start: end + len([]rune(replacement)), End: end + len([]rune(replacement))}
	if w.cb.OnContentChanged != nil {
		w.cb.OnContentChanged()
	}
}
