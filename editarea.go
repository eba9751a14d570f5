// Package editarea exposes a toolkit-owned multi-line text widget as a
// declarative component. The host binds text (plain or attributed), an
// optionally external height, and a focus flag; the component keeps those
// bindings and the retained widget consistent without feedback loops,
// recomputing the intrinsic content height after every change.
//
// The component follows the two-object pattern: an immutable Descriptor
// value is rebuilt and compared field-by-field each render, while a single
// long-lived Coordinator owns the widget and absorbs its callbacks. Focus
// changes and height writes are deferred to the next turn of the host event
// loop rather than performed mid-update.
package editarea

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/editarea/editarea/binding"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

// flushMsg asks a specific component to run its deferred operations. It is
// produced by the component's own commands and ignored by everyone else.
type flushMsg struct {
	id string
}

// Model is the component facade. It is a value (copy and return it from
// Update, Bubble Tea style); the coordinator and widget behind it are shared
// identity that survives every copy.
type Model struct {
	co     *Coordinator
	widget nativetext.Widget

	cfg           Config
	placeholderFn func() string
	hooks         Hooks
	log           *slog.Logger

	text    binding.Cell[richtext.Text]
	height  binding.Cell[int]
	focused binding.Cell[bool]
	isEmpty binding.Cell[bool]

	prev    Descriptor
	applied bool
}

// New builds a component. Unsupplied bindings are owned internally: text and
// focus default to private storage, and the height cell defaults to private
// storage behind the same clamping indirection used for external ones.
func New(opts ...Option) Model {
	m := Model{
		cfg: Config{
			Editable:     true,
			Selectable:   true,
			RevertOnBlur: true,
			Width:        defaultWidth,
		},
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.text == nil {
		m.text = binding.NewVar(richtext.Text{})
	}
	if m.focused == nil {
		m.focused = binding.NewVar(false)
	}
	if m.height == nil {
		m.height = binding.NewVar(0)
	}
	// One indirection point for all height traffic: clamp to the cap and
	// drop idempotent writes, regardless of who owns the storage.
	m.height = &heightCell{inner: m.height, max: m.cfg.MaxHeight}

	m.isEmpty = binding.Derived(m.text, func(t richtext.Text) bool { return t.IsEmpty() })

	if m.widget == nil {
		m.widget = newDefaultWidget()
	}
	if m.co == nil {
		m.co = NewCoordinator(m.widget, m.log)
	}
	m.co.SetHooks(m.hooks)
	return m
}

const defaultWidth = 40

// Init implements tea.Model-style initialization.
func (m Model) Init() tea.Cmd { return nil }

// Update drives the component for one host event. Input events are handed
// to the widget; afterwards the freshly built descriptor is compared against
// the previously applied one and pushed down only when it differs, focus is
// reconciled, and any deferred operations are scheduled for the next turn.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case flushMsg:
		if msg.id != m.co.id.String() {
			return m, nil
		}
		m.co.Flush()
	default:
		if cmd := m.widget.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if cmd := m.sync(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// View renders the widget (which displays the placeholder while the content
// is empty; placeholder visibility never animates, so there is no flicker on
// keystrokes that toggle emptiness).
func (m Model) View() string {
	return m.widget.View()
}

// sync applies the current descriptor if it changed, reconciles focus, and
// enforces selection suppression. It returns a command that flushes the
// deferred queue on the next event-loop turn, if anything is pending.
func (m *Model) sync() tea.Cmd {
	d := m.descriptor()
	if !m.applied || !d.Equal(m.prev) {
		m.co.Apply(d)
		m.prev = d
		m.applied = true
	} else {
		// Unchanged descriptor, but the bound cell may have been written to
		// from outside: reconcile content by value.
		m.co.SyncContent()
	}

	m.co.ReconcileFocus(m.focused.Get())

	if m.cfg.Unselect {
		if sel := m.widget.Selection(); !sel.IsCollapsed() {
			m.widget.SetSelection(nativetext.Range{Start: sel.End, End: sel.End})
		}
	}

	if m.co.HasPending() {
		id := m.co.id.String()
		return func() tea.Msg { return flushMsg{id: id} }
	}
	return nil
}

// descriptor builds the immutable per-render snapshot.
func (m Model) descriptor() Descriptor {
	placeholder := ""
	if m.placeholderFn != nil {
		placeholder = m.placeholderFn()
	}
	return Descriptor{
		Config:      m.cfg,
		Placeholder: placeholder,
		HasCommit:   m.hooks.OnCommit != nil,
		Text:        m.text,
		Height:      m.height,
		Focused:     m.focused,
	}
}

// Focus asks the component to take input focus on the next turn.
func (m Model) Focus() { m.focused.Set(true) }

// Blur asks the component to give up input focus on the next turn.
func (m Model) Blur() { m.focused.Set(false) }

// Focused reports the bound focus flag.
func (m Model) Focused() bool { return m.focused.Get() }

// Text returns the bound text.
func (m Model) Text() richtext.Text { return m.text.Get() }

// SetText writes the bound text. The next update pass pushes it into the
// widget.
func (m Model) SetText(t richtext.Text) { m.text.Set(t) }

// Height returns the authoritative calculated height.
func (m Model) Height() int { return m.height.Get() }

// IsEmpty reports whether the bound text is empty; the placeholder is shown
// exactly while this is true.
func (m Model) IsEmpty() bool { return m.isEmpty.Get() }

// EmptyCell exposes the read-only emptiness derivation; its write side is a
// no-op.
func (m Model) EmptyCell() binding.Cell[bool] { return m.isEmpty }

// ScrollingEnabled reports the effective scrolling policy: forced on once
// the height reaches the configured cap, otherwise the configured flag.
func (m Model) ScrollingEnabled() bool {
	return scrollForced(m.cfg, m.height.Get())
}

// SetWidth changes the component width (usually from the parent layout) and
// returns the updated model.
func (m Model) SetWidth(w int) Model {
	m.cfg.Width = w
	return m
}

// heightCell is the single indirection point for height storage: writes are
// clamped to the configured maximum and dropped when idempotent, so callers
// stay agnostic to whether the host or the component owns the storage.
type heightCell struct {
	inner binding.Cell[int]
	max   int
}

func (h *heightCell) Get() int { return h.inner.Get() }

func (h *heightCell) Set(v int) {
	if v < 0 {
		v = 0
	}
	if h.max > 0 && v > h.max {
		v = h.max
	}
	if v == h.inner.Get() {
		return
	}
	h.inner.Set(v)
}
