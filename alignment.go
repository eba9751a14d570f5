package editarea

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/editarea/editarea/nativetext"
)

// ResolveAlignment maps a direction-relative alignment to an absolute one.
// Leading is left in a left-to-right context and right in a right-to-left
// context; trailing is the opposite; center is direction-independent. With
// DirectionAuto the direction is derived from the sample text (the bound
// content), defaulting to left-to-right when the text gives no signal.
func ResolveAlignment(a TextAlignment, dir LayoutDirection, sample string) nativetext.Alignment {
	rtl := isRightToLeft(dir, sample)
	switch a {
	case AlignCenter:
		return nativetext.AlignCenter
	case AlignTrailing:
		if rtl {
			return nativetext.AlignLeft
		}
		return nativetext.AlignRight
	default: // AlignLeading
		if rtl {
			return nativetext.AlignRight
		}
		return nativetext.AlignLeft
	}
}

// resolveInsets maps direction-relative insets onto the widget, swapping the
// horizontal components in a right-to-left context.
func resolveInsets(in nativetext.Insets, dir LayoutDirection, sample string) nativetext.Insets {
	if isRightToLeft(dir, sample) {
		in.Leading, in.Trailing = in.Trailing, in.Leading
	}
	return in
}

func isRightToLeft(dir LayoutDirection, sample string) bool {
	switch dir {
	case DirectionRightToLeft:
		return true
	case DirectionLeftToRight:
		return false
	}
	if sample == "" {
		return false
	}
	var p bidi.Paragraph
	if _, err := p.SetString(sample); err != nil {
		return false
	}
	o, err := p.Order()
	if err != nil {
		return false
	}
	return o.Direction() == bidi.RightToLeft
}
