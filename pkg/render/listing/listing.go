// Package listing writes the plain-text views of a resolution: the flat
// closure list and the load order.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/apkgraph/pkg/dag"
)

// ClosureLines returns a header naming root followed by every package of
// the closure, sorted.
func ClosureLines(root string, closure dag.Set) []string {
	return append([]string{fmt.Sprintf("Dependencies of %s:", root)}, closure.Sorted()...)
}

// Closure writes [ClosureLines] to w, one per line.
func Closure(w io.Writer, root string, closure dag.Set) error {
	return WriteLines(w, ClosureLines(root, closure))
}

// LoadOrderLines returns a header and the order one package per line. When
// the order is incomplete, a final notice names the packages caught in or
// behind a cycle.
func LoadOrderLines(root string, order []string, complete bool, unordered []string) []string {
	lines := make([]string, 0, len(order)+2)
	lines = append(lines, fmt.Sprintf("Load order for %s:", root))
	lines = append(lines, order...)
	if !complete {
		lines = append(lines, CycleNotice(unordered))
	}
	return lines
}

// LoadOrder writes [LoadOrderLines] to w, one per line.
func LoadOrder(w io.Writer, root string, order []string, complete bool, unordered []string) error {
	return WriteLines(w, LoadOrderLines(root, order, complete, unordered))
}

// WriteLines writes each line to w followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Text joins lines into newline-terminated text.
func Text(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// CycleNotice describes packages that could not be ordered.
func CycleNotice(unordered []string) string {
	if len(unordered) == 0 {
		return "Cycle detected: load order is incomplete"
	}
	return fmt.Sprintf("Cycle detected: %d packages could not be ordered: %s",
		len(unordered), strings.Join(unordered, ", "))
}
