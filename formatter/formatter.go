// Package formatter renders parse errors as human-readable reports with
// a highlighted snippet of the offending source.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/q12we34rt5/tabularpcn/internal/types"
)

// DefaultContextLines is the number of source lines shown above and
// below the offending line.
const DefaultContextLines = 2

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// Spanner is implemented by errors that carry a byte-offset span into
// the source they were raised from.
type Spanner interface {
	error
	Offsets() (start, end int)
}

// Format renders err against the source text it was produced from. For
// errors without a span the bare message is returned.
func Format(err error, src string, contextLines int) string {
	var sp Spanner
	if !errors.As(err, &sp) {
		return err.Error()
	}
	kind, msg := describe(err)
	start, end := clamp(sp, len(src))

	startLine, startCol := position(src, start)
	endLine, endCol := position(src, end)

	lines := strings.Split(src, "\n")
	first := startLine - contextLines
	if first < 1 {
		first = 1
	}
	last := endLine + contextLines
	if last > len(lines) {
		last = len(lines)
	}

	width := len(fmt.Sprintf("%d", last))
	padding := strings.Repeat(" ", width+1)

	var b strings.Builder
	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(kindStyle.Sprintf("%s: ", kind))
	b.WriteString(messageStyle.Sprintf("%s\n", msg))
	b.WriteString(lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)))
	b.WriteString(lineStyle.Sprintf("offset %d:%d (line %d, column %d)\n", start, end, startLine, startCol))
	b.WriteString(lineStyle.Sprintf("%s|\n", padding))
	for i := first; i <= last; i++ {
		b.WriteString(lineStyle.Sprintf("%*d | ", width, i))
		b.WriteString(lines[i-1])
		b.WriteByte('\n')
		if i == startLine {
			underline := endCol - startCol
			if endLine != startLine || underline < 1 {
				underline = 1
			}
			b.WriteString(lineStyle.Sprintf("%s| ", padding))
			b.WriteString(strings.Repeat(" ", startCol-1))
			b.WriteString(messageStyle.Sprintf("%s\n", strings.Repeat("~", underline)))
		}
	}
	b.WriteString(lineStyle.Sprintf("%s|\n", padding))
	return b.String()
}

func describe(err error) (kind, msg string) {
	var lexErr *types.LexicalError
	if errors.As(err, &lexErr) {
		return "lexical error", lexErr.Msg
	}
	var gramErr *types.GrammarError
	if errors.As(err, &gramErr) {
		return "grammar error", gramErr.Msg
	}
	return "error", err.Error()
}

func clamp(sp Spanner, n int) (int, int) {
	start, end := sp.Offsets()
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}

// position converts a byte offset into 1-based line and column numbers.
func position(src string, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
