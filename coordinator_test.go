package editarea

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editarea/editarea/binding"
	"github.com/editarea/editarea/internal/widgettest"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type coordFixture struct {
	co      *Coordinator
	widget  *widgettest.Widget
	text    *binding.Var[richtext.Text]
	height  *binding.Var[int]
	focused *binding.Var[bool]
	cfg     Config
}

func newCoordFixture(t *testing.T, cfg Config, hooks Hooks) *coordFixture {
	t.Helper()
	w := &widgettest.Widget{}
	co := NewCoordinator(w, quietLogger())
	co.SetHooks(hooks)
	f := &coordFixture{
		co:      co,
		widget:  w,
		text:    binding.NewVar(richtext.Text{}),
		height:  binding.NewVar(0),
		focused: binding.NewVar(false),
		cfg:     cfg,
	}
	return f
}

func (f *coordFixture) apply() {
	f.co.Apply(Descriptor{
		Config:  f.cfg,
		Text:    f.text,
		Height:  f.height,
		Focused: f.focused,
	})
}

func defaultCfg() Config {
	return Config{Editable: true, Selectable: true, RevertOnBlur: true, Width: 40}
}

func TestNewlineAsCommit(t *testing.T) {
	commits := 0
	f := newCoordFixture(t, defaultCfg(), Hooks{OnCommit: func() { commits++ }})
	f.text.Set(richtext.Plain("Hello"))
	f.apply()

	f.widget.RequestFocus()
	f.widget.Type("!")
	require.Equal(t, "Hello!", f.text.Get().Content)

	f.widget.PressReturn()
	// The literal newline is rejected outright.
	assert.Equal(t, "Hello!", f.widget.Content().Content)
	// Commit itself runs on the next event-loop turn.
	assert.Zero(t, commits)
	require.True(t, f.co.HasPending())

	f.co.Flush()
	assert.Equal(t, 1, commits, "commit callback invoked exactly once")
	assert.Equal(t, "Hello", f.text.Get().Content, "bound text restored to the pre-session snapshot")
	assert.Equal(t, "Hello", f.widget.Content().Content)
	assert.False(t, f.widget.Focused(), "widget resigned focus on commit")
	assert.False(t, f.focused.Get())
}

func TestRepeatedReturnsCommitOnce(t *testing.T) {
	commits := 0
	f := newCoordFixture(t, defaultCfg(), Hooks{OnCommit: func() { commits++ }})
	f.text.Set(richtext.Plain("Hello"))
	f.apply()

	f.widget.RequestFocus()
	f.widget.Type("!")
	f.widget.PressReturn()
	f.widget.PressReturn()

	f.co.Flush()
	assert.Equal(t, 1, commits, "one session commits at most once")
	assert.Equal(t, "Hello", f.text.Get().Content)
	assert.Equal(t, 1, f.widget.CallCount("resignFocus"))
}

func TestNewlineWithoutCommitInsertsLiteral(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.text.Set(richtext.Plain("ab"))
	f.apply()

	f.widget.RequestFocus()
	f.widget.PressReturn()
	assert.Equal(t, "ab\n", f.widget.Content().Content)
	assert.Equal(t, "ab\n", f.text.Get().Content)
	assert.True(t, f.widget.Focused(), "no resign without commit semantics")
}

func TestReturnKeyDefaultDisablesCommit(t *testing.T) {
	cfg := defaultCfg()
	cfg.ReturnKey = ReturnKeyDefault
	commits := 0
	f := newCoordFixture(t, cfg, Hooks{OnCommit: func() { commits++ }})
	f.apply()

	f.widget.RequestFocus()
	f.widget.PressReturn()
	assert.Equal(t, "\n", f.widget.Content().Content)
	assert.Zero(t, commits)
}

func TestEndSessionWithoutCommitReverts(t *testing.T) {
	tests := []struct {
		name         string
		hooks        Hooks
		revertOnBlur bool
		want         string
	}{
		{"commit configured, revert on", Hooks{OnCommit: func() {}}, true, "Hello"},
		{"commit configured, revert off", Hooks{OnCommit: func() {}}, false, "Hello world"},
		{"no commit configured", Hooks{}, true, "Hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg()
			cfg.RevertOnBlur = tt.revertOnBlur
			f := newCoordFixture(t, cfg, tt.hooks)
			f.text.Set(richtext.Plain("Hello"))
			f.apply()

			f.widget.RequestFocus()
			f.widget.Type(" world")
			require.Equal(t, "Hello world", f.text.Get().Content)

			f.widget.ResignFocus()
			assert.Equal(t, tt.want, f.text.Get().Content)
			assert.False(t, f.focused.Get())
		})
	}
}

func TestHeightWriteDeferredIdempotentAndClamped(t *testing.T) {
	cfg := defaultCfg()
	cfg.MaxHeight = 6
	f := newCoordFixture(t, cfg, Hooks{})
	f.widget.FixedRows = 4

	var writes []int
	f.height.Subscribe(func(h int) { writes = append(writes, h) })

	f.apply()
	assert.Empty(t, writes, "height write must not happen inside the update pass")
	f.co.Flush()
	require.Equal(t, []int{4}, writes)

	// Same measurement again: no second write event.
	f.apply()
	f.co.Flush()
	assert.Equal(t, []int{4}, writes)

	// Above the cap: the clamped maximum is stored, never the raw value.
	f.widget.FixedRows = 40
	f.apply()
	f.co.Flush()
	assert.Equal(t, []int{4, 6}, writes)
}

func TestMeasurementUnavailableSkipsHeight(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.widget.FailMeasure = true
	f.apply()
	f.co.Flush()
	assert.Zero(t, f.height.Get())
}

func TestFocusReconciliation(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.apply()

	// Flag true, widget unfocused: exactly one focus request.
	f.co.ReconcileFocus(true)
	f.co.ReconcileFocus(true) // redundant request before the flush coalesces
	f.co.Flush()
	assert.Equal(t, 1, f.widget.CallCount("requestFocus"))

	// Flag matches widget state: zero native calls.
	f.co.ReconcileFocus(true)
	f.co.Flush()
	assert.Equal(t, 1, f.widget.CallCount("requestFocus"))
	assert.Zero(t, f.widget.CallCount("resignFocus"))

	// Flag false, widget focused: exactly one resignation.
	f.co.ReconcileFocus(false)
	f.co.Flush()
	assert.Equal(t, 1, f.widget.CallCount("resignFocus"))
}

func TestFocusRefusalIsSilentlyAccepted(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.widget.RefuseFocus = true
	f.apply()

	f.co.ReconcileFocus(true)
	f.co.Flush()
	assert.False(t, f.widget.Focused())
	// Out of sync until the next native callback corrects it; no error, no
	// retry.
	assert.False(t, f.co.HasPending())
}

func TestVetoHookBlocksEdit(t *testing.T) {
	changed := 0
	f := newCoordFixture(t, defaultCfg(), Hooks{
		ShouldChange: func(r nativetext.Range, repl string) bool { return repl != "x" },
		OnChanged:    func() { changed++ },
	})
	f.apply()

	f.widget.RequestFocus()
	f.widget.Type("axb")
	assert.Equal(t, "ab", f.text.Get().Content)
	assert.Equal(t, 2, changed, "vetoed edit produced no change notification")
}

func TestMalformedTextSubstitutesEmpty(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.text.Set(richtext.Plain("fine"))
	f.apply()
	require.Equal(t, "fine", f.widget.Content().Content)

	f.text.Set(richtext.Text{
		Content: "hi",
		Spans:   []richtext.Span{{Start: 0, End: 99}},
	})
	f.apply()
	assert.Equal(t, "", f.widget.Content().Content, "widget falls back to a definite empty value")
}

func TestCapitalizationAppliedOnChange(t *testing.T) {
	cfg := defaultCfg()
	cfg.Capitalization = CapitalizeSentences
	f := newCoordFixture(t, cfg, Hooks{})
	f.apply()

	f.widget.RequestFocus()
	f.widget.Type("hi. there")
	assert.Equal(t, "Hi. There", f.text.Get().Content)
	assert.Equal(t, "Hi. There", f.widget.Content().Content)
}

func TestDeferredContentWrites(t *testing.T) {
	cfg := defaultCfg()
	cfg.DeferContentWrites = true
	f := newCoordFixture(t, cfg, Hooks{})
	f.apply()

	f.widget.RequestFocus()
	f.widget.Type("a")
	assert.Equal(t, "", f.text.Get().Content, "content write deferred to the next turn")
	f.co.Flush()
	assert.Equal(t, "a", f.text.Get().Content)
}

func TestScrollForcedAtCap(t *testing.T) {
	cfg := Config{MaxHeight: 5}
	assert.False(t, scrollForced(cfg, 4))
	assert.True(t, scrollForced(cfg, 5))
	assert.True(t, scrollForced(cfg, 9))
	cfg.Scrollable = true
	assert.True(t, scrollForced(cfg, 1))
	assert.False(t, scrollForced(Config{}, 100), "no cap, no explicit flag")
}

func TestRebindingTakesEffect(t *testing.T) {
	f := newCoordFixture(t, defaultCfg(), Hooks{})
	f.apply()

	other := binding.NewVar(richtext.Plain("elsewhere"))
	f.co.Apply(Descriptor{
		Config:  f.cfg,
		Text:    other,
		Height:  f.height,
		Focused: f.focused,
	})
	f.widget.RequestFocus()
	f.widget.Type("!")
	assert.Equal(t, "elsewhere!", other.Get().Content, "callbacks write to the rebound cell")
	assert.Equal(t, "", f.text.Get().Content)
}
