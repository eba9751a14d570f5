package editarea

import (
	"github.com/editarea/editarea/binding"
	"github.com/editarea/editarea/nativetext"
	"github.com/editarea/editarea/richtext"
)

// TextAlignment is a direction-relative horizontal alignment. Leading and
// trailing resolve against the layout direction; center is
// direction-independent.
type TextAlignment int

const (
	AlignLeading TextAlignment = iota
	AlignCenter
	AlignTrailing
)

// LayoutDirection selects how leading/trailing alignments resolve.
// DirectionAuto derives the direction from the bound text itself.
type LayoutDirection int

const (
	DirectionAuto LayoutDirection = iota
	DirectionLeftToRight
	DirectionRightToLeft
)

// CapitalizationPolicy mirrors the platform keyboard's autocapitalization
// modes, applied here as a transform over accepted edits.
type CapitalizationPolicy int

const (
	CapitalizeNone CapitalizationPolicy = iota
	CapitalizeSentences
	CapitalizeWords
	CapitalizeCharacters
)

// ReturnKeyType selects what pressing return does. ReturnKeyAuto enables
// commit behavior exactly when a commit callback is configured;
// ReturnKeyDefault always inserts a literal newline; ReturnKeyDone always
// attempts the commit path.
type ReturnKeyType int

const (
	ReturnKeyAuto ReturnKeyType = iota
	ReturnKeyDefault
	ReturnKeyDone
)

// Config is the declarative configuration bundle. It is a plain comparable
// value: reconstructed on every render pass, never mutated in place, and
// compared field-by-field to decide whether native work is needed.
type Config struct {
	TextAttrs          richtext.Attributes
	PlaceholderAttrs   richtext.Attributes
	Alignment          TextAlignment
	Direction          LayoutDirection
	Capitalization     CapitalizationPolicy
	Autocorrect        bool
	Editable           bool
	Selectable         bool
	Scrollable         bool
	DetectLinks        bool
	AllowRichText      bool
	Insets             nativetext.Insets
	ReturnKey          ReturnKeyType
	MaxHeight          int
	Unselect           bool
	RevertOnBlur       bool
	DeferContentWrites bool
	Width              int
}

// Descriptor is the immutable snapshot the component produces each render:
// the full configuration plus the identity of every binding. The coordinator
// re-applies native state only when the descriptor changed.
//
// Cells carry identity (every binding constructor returns a pointer), so the
// == comparisons below detect rebinding even when the bound values are equal.
type Descriptor struct {
	Config      Config
	Placeholder string
	HasCommit   bool
	Text        binding.Cell[richtext.Text]
	Height      binding.Cell[int]
	Focused     binding.Cell[bool]
}

// Equal reports whether two descriptors are field-wise identical. It must
// cover every field: a field missing here silently disables change detection
// for that field.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.Config == o.Config &&
		d.Placeholder == o.Placeholder &&
		d.HasCommit == o.HasCommit &&
		d.Text == o.Text &&
		d.Height == o.Height &&
		d.Focused == o.Focused
}
