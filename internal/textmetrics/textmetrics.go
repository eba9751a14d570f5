// Package textmetrics measures how many terminal rows a piece of text
// occupies at a given width, replicating the greedy soft-wrap behavior of
// the toolkit's textarea so height calculations agree with what is rendered.
package textmetrics

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// clusterWidth returns the cell width of a single grapheme cluster. Control
// and zero-width clusters are counted as one cell for measurement purposes,
// matching the textarea's cursor arithmetic.
func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		return 1
	}
	return w
}

// WrappedLines returns the number of visual rows a single logical line
// occupies when greedily wrapped at width cells. An empty line still
// occupies one row. Width <= 0 means no wrapping is possible and the line
// counts as one row.
func WrappedLines(line string, width int) int {
	if width <= 0 || line == "" {
		return 1
	}

	count := 1
	current := 0

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		w := clusterWidth(g.Str())

		// A cluster wider than the whole row occupies the row by itself.
		if w > width {
			if current > 0 {
				count++
			}
			current = width
			continue
		}

		if current+w > width {
			count++
			current = w
		} else {
			current += w
		}
	}
	return count
}

// Height returns the total number of visual rows needed to display content
// at the given width, summing greedy-wrap rows over every logical line.
// Empty content measures as a single row.
func Height(content string, width int) int {
	if content == "" {
		return 1
	}
	total := 0
	for _, line := range strings.Split(content, "\n") {
		total += WrappedLines(line, width)
	}
	return total
}
