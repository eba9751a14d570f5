package editarea

import (
	"log/slog"

	"github.com/editarea/editarea/binding"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/nativetext/textview"
	"github.com/editarea/editarea/richtext"
)

// Option configures a component at construction time.
type Option func(*Model)

func newDefaultWidget() nativetext.Widget { return textview.New() }

// WithText binds attributed text owned by the host.
func WithText(cell binding.Cell[richtext.Text]) Option {
	return func(m *Model) { m.text = cell }
}

// WithPlainText binds a plain string owned by the host; it is wrapped into
// the attributed form internally.
func WithPlainText(cell binding.Cell[string]) Option {
	return func(m *Model) { m.text = &plainTextCell{inner: cell} }
}

// WithHeight binds externally owned height storage. Without it the
// component owns the height privately; either way writes go through the
// same clamping indirection.
func WithHeight(cell binding.Cell[int]) Option {
	return func(m *Model) { m.height = cell }
}

// WithFocus binds an externally owned focus flag.
func WithFocus(cell binding.Cell[bool]) Option {
	return func(m *Model) { m.focused = cell }
}

// WithPlaceholder sets a fixed placeholder shown while the text is empty.
func WithPlaceholder(s string) Option {
	return func(m *Model) { m.placeholderFn = func() string { return s } }
}

// WithPlaceholderFunc sets a placeholder builder evaluated every render.
func WithPlaceholderFunc(fn func() string) Option {
	return func(m *Model) { m.placeholderFn = fn }
}

// WithShouldChange installs a veto hook consulted before each edit.
func WithShouldChange(fn func(r nativetext.Range, replacement string) bool) Option {
	return func(m *Model) { m.hooks.ShouldChange = fn }
}

// WithOnChanged installs a callback invoked after every accepted change.
func WithOnChanged(fn func()) Option {
	return func(m *Model) { m.hooks.OnChanged = fn }
}

// WithOnCommit installs a commit action: pressing return ends the editing
// session instead of inserting a newline.
func WithOnCommit(fn func()) Option {
	return func(m *Model) { m.hooks.OnCommit = fn }
}

// WithWidget substitutes a custom widget implementation for the default
// toolkit-backed one.
func WithWidget(w nativetext.Widget) Option {
	return func(m *Model) { m.widget = w }
}

// WithLogger sets the structured logger; nil means slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithTextAttributes styles the content text.
func WithTextAttributes(a richtext.Attributes) Option {
	return func(m *Model) { m.cfg.TextAttrs = a }
}

// WithPlaceholderAttributes styles the placeholder.
func WithPlaceholderAttributes(a richtext.Attributes) Option {
	return func(m *Model) { m.cfg.PlaceholderAttrs = a }
}

// WithAlignment sets the direction-relative text alignment.
func WithAlignment(a TextAlignment) Option {
	return func(m *Model) { m.cfg.Alignment = a }
}

// WithDirection fixes the layout direction instead of deriving it from the
// content.
func WithDirection(d LayoutDirection) Option {
	return func(m *Model) { m.cfg.Direction = d }
}

// WithCapitalization sets the autocapitalization policy.
func WithCapitalization(p CapitalizationPolicy) Option {
	return func(m *Model) { m.cfg.Capitalization = p }
}

// WithAutocorrect toggles the autocorrection pass-through flag.
func WithAutocorrect(on bool) Option {
	return func(m *Model) { m.cfg.Autocorrect = on }
}

// WithEditable toggles editability (default true).
func WithEditable(on bool) Option {
	return func(m *Model) { m.cfg.Editable = on }
}

// WithSelectable toggles selectability (default true).
func WithSelectable(on bool) Option {
	return func(m *Model) { m.cfg.Selectable = on }
}

// WithScrolling toggles explicit scrolling; independent of this flag,
// scrolling is forced once the height reaches the configured cap.
func WithScrolling(on bool) Option {
	return func(m *Model) { m.cfg.Scrollable = on }
}

// WithDetectLinks underlines detected links in rendered content.
func WithDetectLinks(on bool) Option {
	return func(m *Model) { m.cfg.DetectLinks = on }
}

// WithAllowRichText permits attributed-span rendering in the widget.
func WithAllowRichText(on bool) Option {
	return func(m *Model) { m.cfg.AllowRichText = on }
}

// WithInsets pads the content. Leading/trailing resolve against the layout
// direction.
func WithInsets(in nativetext.Insets) Option {
	return func(m *Model) { m.cfg.Insets = in }
}

// WithReturnKey overrides the automatic return-key behavior.
func WithReturnKey(t ReturnKeyType) Option {
	return func(m *Model) { m.cfg.ReturnKey = t }
}

// WithMaxHeight caps the calculated height; 0 means uncapped.
func WithMaxHeight(h int) Option {
	return func(m *Model) { m.cfg.MaxHeight = h }
}

// WithUnselect collapses any selection left in the widget after updates.
func WithUnselect(on bool) Option {
	return func(m *Model) { m.cfg.Unselect = on }
}

// WithRevertOnBlur controls whether ending an editing session without an
// explicit commit restores the pre-session text (default true; only
// meaningful when a commit callback is configured).
func WithRevertOnBlur(on bool) Option {
	return func(m *Model) { m.cfg.RevertOnBlur = on }
}

// WithDeferContentWrites defers writes into the bound text to the next
// event-loop turn, for hosts whose binding observation re-enters the update
// path synchronously.
func WithDeferContentWrites(on bool) Option {
	return func(m *Model) { m.cfg.DeferContentWrites = on }
}

// WithWidth sets the component width.
func WithWidth(w int) Option {
	return func(m *Model) { m.cfg.Width = w }
}

// plainTextCell adapts a plain string cell to the attributed form used
// internally.
type plainTextCell struct {
	inner binding.Cell[string]
}

func (p *plainTextCell) Get() richtext.Text  { return richtext.Plain(p.inner.Get()) }
func (p *plainTextCell) Set(t richtext.Text) { p.inner.Set(t.Content) }
