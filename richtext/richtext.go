// Package richtext defines the attributed text value passed between a host
// application and an editable text surface. A Text is a plain string plus
// zero or more styled spans; the spans are pass-through metadata whose
// rendering semantics belong to the toolkit, not to this package.
package richtext

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// ErrSpanOutOfRange indicates a span that extends past the text.
	ErrSpanOutOfRange = errors.New("richtext: span out of range")
	// ErrSpanInverted indicates a span whose end precedes its start.
	ErrSpanInverted = errors.New("richtext: span end precedes start")
)

// Attributes is a comparable set of styling attributes for a span of text.
// The zero value means "no styling".
type Attributes struct {
	Foreground string // color, in any form lipgloss accepts ("212", "#ff00ff", ...)
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
	Strike     bool
}

// Style converts the attributes to a lipgloss style.
func (a Attributes) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if a.Foreground != "" {
		s = s.Foreground(lipgloss.Color(a.Foreground))
	}
	if a.Background != "" {
		s = s.Background(lipgloss.Color(a.Background))
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Strike {
		s = s.Strikethrough(true)
	}
	return s
}

// IsZero reports whether the attributes carry no styling at all.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Span applies Attributes to a half-open rune range [Start, End) of the text.
type Span struct {
	Start int
	End   int
	Attrs Attributes
}

// Text is a string with optional attributed spans. Offsets are rune offsets
// into Content. Hosts may construct a Text directly; Validate (or New) checks
// that the span data is well formed against the content.
type Text struct {
	Content string
	Spans   []Span
}

// Plain wraps a plain string as a Text with no spans.
func Plain(s string) Text {
	return Text{Content: s}
}

// New builds a Text and validates its spans.
func New(content string, spans ...Span) (Text, error) {
	t := Text{Content: content, Spans: spans}
	if err := t.Validate(); err != nil {
		return Text{}, err
	}
	return t, nil
}

// Validate checks every span against the content. It returns the first
// problem found.
func (t Text) Validate() error {
	n := len([]rune(t.Content))
	for i, sp := range t.Spans {
		if sp.End < sp.Start {
			return fmt.Errorf("span %d [%d,%d): %w", i, sp.Start, sp.End, ErrSpanInverted)
		}
		if sp.Start < 0 || sp.End > n {
			return fmt.Errorf("span %d [%d,%d) over %d runes: %w", i, sp.Start, sp.End, n, ErrSpanOutOfRange)
		}
	}
	return nil
}

// String returns the underlying plain string.
func (t Text) String() string {
	return t.Content
}

// IsEmpty reports whether the underlying string is empty.
func (t Text) IsEmpty() bool {
	return t.Content == ""
}

// Equal reports whether two texts have identical content and spans.
func (t Text) Equal(o Text) bool {
	if t.Content != o.Content || len(t.Spans) != len(o.Spans) {
		return false
	}
	for i := range t.Spans {
		if t.Spans[i] != o.Spans[i] {
			return false
		}
	}
	return true
}

// WithContent returns a copy of t with the content replaced and any spans
// that no longer fit dropped. Spans that still fit are kept as-is; this is
// deliberately simple, since span maintenance across edits is the host's
// concern.
func (t Text) WithContent(content string) Text {
	n := len([]rune(content))
	out := Text{Content: content}
	for _, sp := range t.Spans {
		if sp.Start >= 0 && sp.End <= n && sp.Start <= sp.End {
			out.Spans = append(out.Spans, sp)
		}
	}
	return out
}
