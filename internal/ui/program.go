package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uitable"
)

// Printer writes styled one-shot output for the non-interactive commands
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the width used for boxes and table wrapping
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintTable prints rows under a bold header row.
// An empty rows slice prints the empty message instead.
func (p *Printer) PrintTable(headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		p.Println(EmptyStyle.Render(empty))
		return
	}
	p.Println(RenderTable(headers, rows, p.width))
}

// RenderTable lays out rows in aligned columns, wrapping cells wider than half of width.
// Only the finished header line is styled so escape codes do not skew the alignment.
func RenderTable(headers []string, rows [][]string, width int) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(width / 2)

	tbl.AddRow(toCells(headers)...)
	for _, row := range rows {
		tbl.AddRow(toCells(row)...)
	}

	lines := strings.Split(tbl.String(), "\n")
	lines[0] = TableHeaderStyle.Render(lines[0])
	return strings.Join(lines, "\n")
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, c := range row {
		cells[i] = c
	}
	return cells
}

// TipsFromHint turns a multi-line troubleshooting hint into bullet items,
// dropping its "Troubleshooting:" heading and bullet prefixes.
func TipsFromHint(hint string) []string {
	var tips []string
	for _, line := range strings.Split(hint, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}
