package editarea

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/editarea/editarea/binding"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

// Hooks are the host-supplied behavior callbacks. They are fixed for the
// lifetime of the component.
type Hooks struct {
	// ShouldChange may veto any pending edit before the widget applies it.
	ShouldChange func(r nativetext.Range, replacement string) bool
	// OnChanged runs after every accepted content change.
	OnChanged func()
	// OnCommit, when present, turns a typed return into "commit and resign"
	// instead of a literal newline.
	OnCommit func()
}

// Coordinator is the sole owner of the native widget. It is created once per
// component identity and persists across renders, translating widget
// callbacks into bound-state writes and descriptor applications into widget
// mutations.
//
// Everything here runs on the single UI goroutine. Operations that must not
// happen inside the current update pass (focus changes, height writes) are
// enqueued and run on the next turn of the host's event loop via Flush.
type Coordinator struct {
	id     uuid.UUID
	logger *slog.Logger
	widget nativetext.Widget

	// Current binding destinations; rebound on every Apply since cells can
	// change identity across renders while the coordinator does not.
	text    binding.Cell[richtext.Text]
	height  binding.Cell[int]
	focused binding.Cell[bool]

	hooks       Hooks
	cfg         Config
	placeholder string

	// Editing-session state machine.
	editing   bool
	committed bool
	rollback  richtext.Text

	queue          []func()
	focusPending   bool
	contentPending bool

	// lastCfg is the configuration most recently pushed to the widget, kept
	// so a deferred height write can flip the forced-scrolling flag without
	// waiting for the next descriptor change.
	lastCfg nativetext.Config
}

// NewCoordinator creates a coordinator owning the given widget. A nil logger
// falls back to slog.Default.
func NewCoordinator(widget nativetext.Widget, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		id:      uuid.New(),
		logger:  logger,
		widget:  widget,
		text:    binding.NewVar(richtext.Text{}),
		height:  binding.NewVar(0),
		focused: binding.NewVar(false),
	}
	widget.SetCallbacks(nativetext.Callbacks{
		OnBeginEditing:     c.beginEditing,
		OnContentChanged:   c.contentChanged,
		OnEndEditing:       c.endEditing,
		OnShouldChangeText: c.shouldChangeText,
	})
	return c
}

// Widget returns the owned widget.
func (c *Coordinator) Widget() nativetext.Widget { return c.widget }

// Apply pushes a descriptor onto the widget: content, configuration, binding
// destinations, then height. Configuration is always applied before height
// is recomputed.
func (c *Coordinator) Apply(d Descriptor) {
	c.cfg = d.Config
	c.placeholder = d.Placeholder
	c.text = d.Text
	c.height = d.Height
	c.focused = d.Focused

	bound := c.SyncContent()

	height := c.height.Get()
	if height <= 0 {
		if h, ok := c.widget.MeasureHeight(d.Config.Width); ok {
			height = h
		} else {
			height = 1
		}
	}
	if d.Config.MaxHeight > 0 && height > d.Config.MaxHeight {
		height = d.Config.MaxHeight
	}

	c.lastCfg = nativetext.Config{
		TextAttrs:        d.Config.TextAttrs,
		Placeholder:      d.Placeholder,
		PlaceholderAttrs: d.Config.PlaceholderAttrs,
		Alignment:        ResolveAlignment(d.Config.Alignment, d.Config.Direction, bound.Content),
		Editable:         d.Config.Editable,
		Selectable:       d.Config.Selectable,
		ScrollEnabled:    scrollForced(d.Config, height),
		AllowRichText:    d.Config.AllowRichText,
		DetectLinks:      d.Config.DetectLinks,
		Insets:           resolveInsets(d.Config.Insets, d.Config.Direction, bound.Content),
		Width:            d.Config.Width,
		Height:           height,
	}
	c.widget.Configure(c.lastCfg)

	c.recomputeHeight()
}

// SyncContent pushes the bound text into the widget when they differ, so
// programmatic writes to the bound cell land even though nothing about the
// descriptor changed. Bindings have no change notification of their own;
// this runs every update pass and the value comparison keeps it cheap. It
// returns the effective content.
func (c *Coordinator) SyncContent() richtext.Text {
	if c.contentPending {
		// A deferred write is in flight; the bound cell is stale by
		// construction and must not be pushed back down.
		return c.widget.Content()
	}
	bound := c.text.Get()
	if err := bound.Validate(); err != nil {
		// The widget must never be left without a definite content value.
		c.logger.Error("malformed attributed text, substituting empty content",
			"coordinator", c.id, "error", err)
		bound = richtext.Text{}
	}
	if !c.widget.Content().Equal(bound) {
		c.widget.SetContent(bound)
		c.recomputeHeight()
	}
	return bound
}

// ReconcileFocus requests or resigns widget focus to match the bound flag.
// The actual native call is deferred to the next event-loop turn so focus
// never mutates mid-update; the deferred closure re-checks state, so a
// reconcile that became moot does nothing.
func (c *Coordinator) ReconcileFocus(want bool) {
	if c.focusPending || want == c.widget.Focused() {
		return
	}
	c.focusPending = true
	c.enqueue(func() {
		c.focusPending = false
		switch {
		case want && !c.widget.Focused():
			c.widget.RequestFocus()
		case !want && c.widget.Focused():
			c.widget.ResignFocus()
		}
	})
}

// SetHooks installs the host callbacks.
func (c *Coordinator) SetHooks(h Hooks) { c.hooks = h }

// HasPending reports whether deferred operations are waiting for Flush.
func (c *Coordinator) HasPending() bool { return len(c.queue) > 0 }

// Flush runs the operations deferred during the previous pass. Operations
// enqueued while flushing run on the next flush, not this one.
func (c *Coordinator) Flush() {
	q := c.queue
	c.queue = nil
	for _, fn := range q {
		fn()
	}
}

func (c *Coordinator) enqueue(fn func()) {
	c.queue = append(c.queue, fn)
}

// --- widget callbacks (the editing-session state machine) ---

func (c *Coordinator) beginEditing() {
	c.editing = true
	c.committed = false
	c.rollback = c.widget.Content()
	c.focused.Set(true)
	c.logger.Debug("editing session began", "coordinator", c.id)
}

func (c *Coordinator) contentChanged() {
	content := c.widget.Content()
	if c.cfg.Capitalization != CapitalizeNone {
		if fixed := applyCapitalization(content.Content, c.cfg.Capitalization); fixed != content.Content {
			content = content.WithContent(fixed)
			c.widget.SetContent(content)
		}
	}
	if c.cfg.DeferContentWrites {
		value := content
		c.contentPending = true
		c.enqueue(func() {
			c.contentPending = false
			if !c.text.Get().Equal(value) {
				c.text.Set(value)
			}
		})
	} else if !c.text.Get().Equal(content) {
		c.text.Set(content)
	}
	if c.hooks.OnChanged != nil {
		c.hooks.OnChanged()
	}
	c.recomputeHeight()
}

func (c *Coordinator) endEditing() {
	if c.editing && !c.committed && c.commitOnReturn() && c.cfg.RevertOnBlur {
		// The session ended without an explicit commit; discard in-progress
		// changes while commit semantics are active.
		c.widget.SetContent(c.rollback)
		c.text.Set(c.rollback)
		c.recomputeHeight()
		c.logger.Debug("uncommitted session reverted", "coordinator", c.id)
	}
	c.editing = false
	c.focused.Set(false)
}

func (c *Coordinator) shouldChangeText(r nativetext.Range, replacement string) bool {
	if c.hooks.ShouldChange != nil && !c.hooks.ShouldChange(r, replacement) {
		return false
	}
	if replacement == "\n" && c.commitOnReturn() {
		// Return means commit: reject the literal newline and finish the
		// session on the next event-loop turn. Further returns arriving
		// before the flush are swallowed without enqueueing again.
		if !c.committed {
			c.enqueue(c.commit)
			c.committed = true
		}
		return false
	}
	return true
}

func (c *Coordinator) commit() {
	c.logger.Debug("committing editing session", "coordinator", c.id)
	if c.hooks.OnCommit != nil {
		c.hooks.OnCommit()
	}
	c.widget.SetContent(c.rollback)
	c.text.Set(c.rollback)
	c.widget.ResignFocus()
	c.recomputeHeight()
}

// recomputeHeight measures the widget and, when the clamped result differs
// from the bound height, defers a write to the next event-loop turn. Writing
// synchronously from inside an update pass can feed a layout cycle.
func (c *Coordinator) recomputeHeight() {
	h, ok := c.widget.MeasureHeight(c.cfg.Width)
	if !ok {
		return
	}
	if h < 0 {
		h = 0
	}
	if c.cfg.MaxHeight > 0 && h > c.cfg.MaxHeight {
		h = c.cfg.MaxHeight
	}
	if h == c.height.Get() {
		return
	}
	c.enqueue(func() {
		if h != c.height.Get() {
			c.height.Set(h)
		}
		// Crossing the height cap flips the effective scrolling policy;
		// push that to the widget without waiting for a descriptor change.
		if forced := scrollForced(c.cfg, c.height.Get()); forced != c.lastCfg.ScrollEnabled {
			c.lastCfg.ScrollEnabled = forced
			c.lastCfg.Height = c.height.Get()
			c.widget.Configure(c.lastCfg)
		}
	})
}

// commitOnReturn reports whether a typed return triggers the commit path.
// The explicit return-key setting wins; otherwise the presence of a commit
// callback decides.
func (c *Coordinator) commitOnReturn() bool {
	switch c.cfg.ReturnKey {
	case ReturnKeyDefault:
		return false
	case ReturnKeyDone:
		return true
	}
	return c.hooks.OnCommit != nil
}

// scrollForced derives the effective scrolling policy: scrolling is forced
// on once the authoritative height has reached the configured cap, otherwise
// the explicit flag is honored.
func scrollForced(cfg Config, height int) bool {
	if cfg.MaxHeight > 0 && height >= cfg.MaxHeight {
		return true
	}
	return cfg.Scrollable
}
