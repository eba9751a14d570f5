// Package nativetext defines the boundary to the toolkit-owned editable text
// widget. Everything above this boundary (coordination, bindings, policy)
// treats the widget as an external collaborator reached only through the
// Widget interface; everything below it (text layout, soft wrap, cursor and
// key handling) belongs to the toolkit.
package nativetext

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/editarea/editarea/richtext"
)

// Range is a half-open rune-offset range [Start, End) into the widget's
// plain content. A collapsed range (Start == End) is a caret position.
type Range struct {
	Start int
	End   int
}

// IsCollapsed reports whether the range selects no text.
func (r Range) IsCollapsed() bool { return r.Start == r.End }

// Callbacks are the widget's outbound notifications. All callbacks fire on
// the single UI goroutine, serialized by the host's event delivery; a nil
// callback is simply skipped.
type Callbacks struct {
	// OnBeginEditing fires when the widget gains input focus.
	OnBeginEditing func()
	// OnContentChanged fires after the widget's content changed through an
	// accepted edit.
	OnContentChanged func()
	// OnEndEditing fires when the widget loses input focus.
	OnEndEditing func()
	// OnShouldChangeText fires before an edit is applied, with the range
	// being replaced and the replacement text. Returning false makes the
	// widget refuse the edit. Nil means every edit is accepted.
	OnShouldChangeText func(r Range, replacement string) bool
}

// Alignment is a resolved horizontal text alignment. Unlike the component
// level leading/trailing values, this is already direction-resolved.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Insets are padding around the widget's content, in cells. Leading and
// Trailing are already direction-resolved by the time they reach the widget.
type Insets struct {
	Top      int
	Leading  int
	Bottom   int
	Trailing int
}

// Config carries the styling and behavior knobs the coordinator pushes onto
// the widget on every relevant state change.
type Config struct {
	TextAttrs        richtext.Attributes
	Placeholder      string
	PlaceholderAttrs richtext.Attributes
	Alignment        Alignment
	Editable         bool
	Selectable       bool
	ScrollEnabled    bool
	AllowRichText    bool
	DetectLinks      bool
	Insets           Insets
	Width            int
	Height           int
}

// Widget is the toolkit-owned editable multi-line text surface. A Widget is
// a retained, mutable, identity-based object: it is created once, owned
// exclusively by its coordinator, and mutated in place.
//
// All methods must be called from the single UI goroutine.
type Widget interface {
	// SetContent replaces the widget's content.
	SetContent(t richtext.Text)
	// Content returns the widget's current content.
	Content() richtext.Text

	// MeasureHeight returns the number of rows needed to display the
	// current content at the given width. ok is false when no valid
	// measurement is available (for example, the widget has no width yet).
	MeasureHeight(width int) (rows int, ok bool)

	// RequestFocus asks the widget to take input focus. The returned
	// boolean is the toolkit's own success signal; callers do not
	// distinguish refusal from success beyond it.
	RequestFocus() bool
	// ResignFocus asks the widget to give up input focus.
	ResignFocus() bool
	// Focused reports whether the widget currently holds input focus.
	Focused() bool

	// SetSelection moves the selection/caret.
	SetSelection(r Range)
	// Selection returns the current selection/caret.
	Selection() Range

	// Configure pushes styling and behavior options onto the widget.
	Configure(cfg Config)
	// SetCallbacks installs the widget's outbound notifications.
	SetCallbacks(cb Callbacks)

	// Update delivers a host event (keystrokes and such) to the widget.
	// This is the toolkit's own event delivery path; edits made through it
	// are subject to the OnShouldChangeText callback.
	Update(msg tea.Msg) tea.Cmd
	// View renders the widget.
	View() string
}
