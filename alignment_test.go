package editarea

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/editarea/editarea/nativetext"
)

func TestResolveAlignment(t *testing.T) {
	const hebrew = "שלום עולם"
	tests := []struct {
		name   string
		align  TextAlignment
		dir    LayoutDirection
		sample string
		want   nativetext.Alignment
	}{
		{"leading ltr", AlignLeading, DirectionLeftToRight, "hello", nativetext.AlignLeft},
		{"trailing ltr", AlignTrailing, DirectionLeftToRight, "hello", nativetext.AlignRight},
		{"leading rtl", AlignLeading, DirectionRightToLeft, "hello", nativetext.AlignRight},
		{"trailing rtl", AlignTrailing, DirectionRightToLeft, "hello", nativetext.AlignLeft},
		{"center ignores direction", AlignCenter, DirectionRightToLeft, "hello", nativetext.AlignCenter},
		{"auto latin", AlignLeading, DirectionAuto, "hello", nativetext.AlignLeft},
		{"auto hebrew", AlignLeading, DirectionAuto, hebrew, nativetext.AlignRight},
		{"auto hebrew trailing", AlignTrailing, DirectionAuto, hebrew, nativetext.AlignLeft},
		{"auto empty defaults ltr", AlignLeading, DirectionAuto, "", nativetext.AlignLeft},
		{"explicit direction beats sample", AlignLeading, DirectionLeftToRight, hebrew, nativetext.AlignLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAlignment(tt.align, tt.dir, tt.sample))
		})
	}
}

func TestResolveInsets(t *testing.T) {
	in := nativetext.Insets{Top: 1, Leading: 2, Bottom: 3, Trailing: 4}

	assert.Equal(t, in, resolveInsets(in, DirectionLeftToRight, ""))
	assert.Equal(t,
		nativetext.Insets{Top: 1, Leading: 4, Bottom: 3, Trailing: 2},
		resolveInsets(in, DirectionRightToLeft, ""))
	assert.Equal(t,
		nativetext.Insets{Top: 1, Leading: 4, Bottom: 3, Trailing: 2},
		resolveInsets(in, DirectionAuto, "עברית"))
}
