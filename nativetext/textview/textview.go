// Package textview implements the nativetext.Widget boundary on top of the
// toolkit's textarea model. The textarea owns text layout, soft wrap, cursor
// movement and key handling; this package adds the boundary contract around
// it: content as rich text, pre-change interception, focus notifications,
// measurement, and blurred-state decoration (attributed spans and link
// detection).
package textview

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/editarea/editarea/internal/textmetrics"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

var _ nativetext.Widget = (*View)(nil)

// View is the default toolkit-backed widget. Create one with New; the zero
// value is not usable.
type View struct {
	ta      textarea.Model
	differ  *dmp.DiffMatchPatch
	cb      nativetext.Callbacks
	cfg     nativetext.Config
	spans   []richtext.Span
	sel     nativetext.Range
	pending tea.Cmd // focus-related cmd from the textarea, delivered on next Update
}

// New creates a widget with the textarea configured as a bare editing
// surface: no prompt, no line numbers, transparent chrome.
func New() *View {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return &View{
		ta:     ta,
		differ: dmp.New(),
	}
}

// SetContent implements nativetext.Widget. The cursor is kept close to its
// previous position rather than jumping to the end of the new content.
func (v *View) SetContent(t richtext.Text) {
	row := v.ta.Line()
	li := v.ta.LineInfo()
	col := li.StartColumn + li.ColumnOffset

	v.ta.SetValue(t.Content)
	v.spans = append(v.spans[:0], t.Spans...)

	// SetValue leaves the cursor at the end; walk back to the old line.
	for v.ta.Line() > row {
		v.ta.CursorUp()
	}
	v.ta.SetCursor(col)
	v.sel = nativetext.Range{Start: v.caretOffset(), End: v.caretOffset()}
}

// Content implements nativetext.Widget.
func (v *View) Content() richtext.Text {
	return richtext.Text{Content: v.ta.Value(), Spans: v.spans}.WithContent(v.ta.Value())
}

// MeasureHeight implements nativetext.Widget. The measurement includes the
// vertical insets, since they are part of the rendered box.
func (v *View) MeasureHeight(width int) (int, bool) {
	inner := width - v.cfg.Insets.Leading - v.cfg.Insets.Trailing
	if inner <= 0 {
		return 0, false
	}
	return textmetrics.Height(v.ta.Value(), inner) + v.cfg.Insets.Top + v.cfg.Insets.Bottom, true
}

// RequestFocus implements nativetext.Widget. A non-editable widget refuses
// focus.
func (v *View) RequestFocus() bool {
	if !v.cfg.Editable {
		return false
	}
	if v.ta.Focused() {
		return true
	}
	v.pending = v.ta.Focus()
	if v.cb.OnBeginEditing != nil {
		v.cb.OnBeginEditing()
	}
	return true
}

// ResignFocus implements nativetext.Widget.
func (v *View) ResignFocus() bool {
	if !v.ta.Focused() {
		return true
	}
	v.ta.Blur()
	if v.cb.OnEndEditing != nil {
		v.cb.OnEndEditing()
	}
	return true
}

// Focused implements nativetext.Widget.
func (v *View) Focused() bool { return v.ta.Focused() }

// SetSelection implements nativetext.Widget. The textarea has a caret, not a
// range selection, so the caret is moved to the range start and the range is
// retained for Selection readers.
func (v *View) SetSelection(r nativetext.Range) {
	if !v.cfg.Selectable {
		r = nativetext.Range{Start: r.Start, End: r.Start}
	}
	v.moveCaret(r.Start)
	v.sel = r
}

// Selection implements nativetext.Widget.
func (v *View) Selection() nativetext.Range { return v.sel }

// Configure implements nativetext.Widget.
func (v *View) Configure(cfg nativetext.Config) {
	v.cfg = cfg

	innerW := cfg.Width - cfg.Insets.Leading - cfg.Insets.Trailing
	innerH := cfg.Height - cfg.Insets.Top - cfg.Insets.Bottom
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	// Resizing the textarea resets its viewport scroll; only do it on change.
	if innerW != v.ta.Width() {
		v.ta.SetWidth(innerW)
	}
	if innerH != v.ta.Height() {
		v.ta.SetHeight(innerH)
	}

	v.ta.Placeholder = cfg.Placeholder
	style := cfg.TextAttrs.Style()
	v.ta.FocusedStyle.Text = style
	v.ta.BlurredStyle.Text = style
	phStyle := cfg.PlaceholderAttrs.Style()
	v.ta.FocusedStyle.Placeholder = phStyle
	v.ta.BlurredStyle.Placeholder = phStyle
	// The editing surface carries no chrome of its own; the placeholder
	// overlay and any border belong to the layers above.
	v.ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	v.ta.FocusedStyle.Base = lipgloss.NewStyle()
	v.ta.BlurredStyle.Base = lipgloss.NewStyle()

	if !cfg.Editable && v.ta.Focused() {
		v.ResignFocus()
	}
}

// SetCallbacks implements nativetext.Widget.
func (v *View) SetCallbacks(cb nativetext.Callbacks) { v.cb = cb }

// Update implements nativetext.Widget. Edits produced by the event are
// derived by diffing content before and after the textarea processed it,
// then run through the OnShouldChangeText callback; a refused edit is rolled
// back wholesale, so the event appears to have been swallowed.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if v.pending != nil {
		cmds = append(cmds, v.pending)
		v.pending = nil
	}

	if _, isKey := msg.(tea.KeyMsg); isKey && !v.cfg.Editable {
		return batch(cmds)
	}

	before := v.ta.Value()
	beforeCaret := v.caretOffset()
	next, cmd := v.ta.Update(msg)
	v.ta = next
	cmds = append(cmds, cmd)

	after := v.ta.Value()
	if after == before {
		return batch(cmds)
	}

	r, replacement := v.editRegion(before, after)
	if v.cb.OnShouldChangeText != nil && !v.cb.OnShouldChangeText(r, replacement) {
		// Refuse the edit. Restoring must go through SetValue: a copy of the
		// textarea model shares row storage with the mutated one, so
		// reassigning the struct would leak in-place edits through.
		v.ta.SetValue(before)
		v.moveCaret(beforeCaret)
		return batch(cmds)
	}

	v.spans = richtext.Text{Content: before, Spans: v.spans}.WithContent(after).Spans
	caret := r.Start + len([]rune(replacement))
	v.sel = nativetext.Range{Start: caret, End: caret}
	if v.cb.OnContentChanged != nil {
		v.cb.OnContentChanged()
	}
	return batch(cmds)
}

// View implements nativetext.Widget. While focused, the textarea renders
// itself (cursor and all); while blurred, content is rendered statically so
// attributed spans and detected links can be decorated.
func (v *View) View() string {
	var body string
	if v.ta.Focused() || (!v.cfg.AllowRichText && !v.cfg.DetectLinks) {
		body = v.ta.View()
	} else {
		body = v.renderStatic()
	}

	in := v.cfg.Insets
	box := lipgloss.NewStyle().Padding(in.Top, in.Trailing, in.Bottom, in.Leading)
	return box.Render(body)
}

// editRegion derives the replaced range (in before) and the replacement text
// from a before/after content pair.
func (v *View) editRegion(before, after string) (nativetext.Range, string) {
	diffs := v.differ.DiffMain(before, after, false)

	// Rune offset of the first difference, and the extents of the changed
	// window in both strings.
	oldPos, newPos := 0, 0
	start := -1
	oldEnd, newEnd := 0, 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case dmp.DiffEqual:
			oldPos += n
			newPos += n
		case dmp.DiffDelete:
			if start < 0 {
				start = oldPos
			}
			oldPos += n
			oldEnd = oldPos
			newEnd = newPos
		case dmp.DiffInsert:
			if start < 0 {
				start = oldPos
			}
			newPos += n
			oldEnd = oldPos
			newEnd = newPos
		}
	}
	if start < 0 {
		return nativetext.Range{}, ""
	}
	if oldEnd < start {
		oldEnd = start
	}
	newRunes := []rune(after)
	return nativetext.Range{Start: start, End: oldEnd}, string(newRunes[start:newEnd])
}

// caretOffset returns the caret position as a rune offset into the content.
func (v *View) caretOffset() int {
	row := v.ta.Line()
	li := v.ta.LineInfo()
	col := li.StartColumn + li.ColumnOffset

	offset := 0
	for i, line := range strings.Split(v.ta.Value(), "\n") {
		if i == row {
			runes := len([]rune(line))
			if col > runes {
				col = runes
			}
			return offset + col
		}
		offset += len([]rune(line)) + 1
	}
	return offset
}

// moveCaret positions the caret at the given rune offset, clamped to the
// content.
func (v *View) moveCaret(offset int) {
	if offset < 0 {
		offset = 0
	}
	lines := strings.Split(v.ta.Value(), "\n")
	row, col := 0, 0
	remaining := offset
	for i, line := range lines {
		runes := len([]rune(line))
		if remaining <= runes || i == len(lines)-1 {
			row = i
			col = remaining
			if col > runes {
				col = runes
			}
			break
		}
		remaining -= runes + 1
	}

	for v.ta.Line() > row {
		v.ta.CursorUp()
	}
	for v.ta.Line() < row {
		v.ta.CursorDown()
	}
	v.ta.SetCursor(col)
}

// renderStatic renders the blurred widget: per-rune styling from attributed
// spans (when rich text is allowed) and underlined links (when detection is
// on), aligned line by line.
func (v *View) renderStatic() string {
	value := v.ta.Value()
	if value == "" {
		return v.cfg.PlaceholderAttrs.Style().Render(v.cfg.Placeholder)
	}

	runes := []rune(value)
	attrs := make([]richtext.Attributes, len(runes))
	base := v.cfg.TextAttrs
	for i := range attrs {
		attrs[i] = base
	}
	if v.cfg.AllowRichText {
		for _, sp := range v.spans {
			for i := sp.Start; i < sp.End && i < len(attrs); i++ {
				attrs[i] = merge(attrs[i], sp.Attrs)
			}
		}
	}
	if v.cfg.DetectLinks {
		for _, loc := range linkPattern.FindAllStringIndex(value, -1) {
			start := len([]rune(value[:loc[0]]))
			end := len([]rune(value[:loc[1]]))
			for i := start; i < end && i < len(attrs); i++ {
				a := attrs[i]
				a.Underline = true
				attrs[i] = a
			}
		}
	}

	width := v.ta.Width()
	pos := lipgloss.Left
	switch v.cfg.Alignment {
	case nativetext.AlignCenter:
		pos = lipgloss.Center
	case nativetext.AlignRight:
		pos = lipgloss.Right
	}

	var out []string
	offset := 0
	for _, line := range strings.Split(value, "\n") {
		n := len([]rune(line))
		styled := styleRuns([]rune(line), attrs[offset:offset+n])
		out = append(out, lipgloss.PlaceHorizontal(width, pos, styled))
		offset += n + 1
	}
	return strings.Join(out, "\n")
}

// styleRuns renders runes grouped into runs of identical attributes.
func styleRuns(runes []rune, attrs []richtext.Attributes) string {
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	runStart := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || attrs[i] != attrs[runStart] {
			seg := string(runes[runStart:i])
			if attrs[runStart].IsZero() {
				b.WriteString(seg)
			} else {
				b.WriteString(attrs[runStart].Style().Render(seg))
			}
			runStart = i
		}
	}
	return b.String()
}

func merge(base, over richtext.Attributes) richtext.Attributes {
	out := base
	if over.Foreground != "" {
		out.Foreground = over.Foreground
	}
	if over.Background != "" {
		out.Background = over.Background
	}
	out.Bold = out.Bold || over.Bold
	out.Italic = out.Italic || over.Italic
	out.Underline = out.Underline || over.Underline
	out.Strike = out.Strike || over.Strike
	return out
}

func batch(cmds []tea.Cmd) tea.Cmd {
	var live []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return tea.Batch(live...)
	}
}
