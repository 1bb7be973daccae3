package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/docxtext/internal/document"
)

// CellSeparator joins the kept cells of a table row.
const CellSeparator = " | "

// Lines drains a ContentNodeScanner into content lines.
//
// Non-blank paragraphs come first, in document order, followed by one line
// per table row that has at least one non-blank cell. Paragraph lines keep
// their original text; cell texts are trimmed.
func Lines(scanner document.ContentNodeScanner) ([]string, error) {
	paragraphs := make([]string, 0)
	rows := make([]string, 0)

	for {
		node, err := scanner.Next()
		if err != nil {
			if err == io.EOF {
				return append(paragraphs, rows...), nil
			}
			return nil, fmt.Errorf("error reading content: %w", err)
		}

		switch n := node.(type) {
		case *document.Paragraph:
			if line, ok := paragraphLine(n); ok {
				paragraphs = append(paragraphs, line)
			}
		case *document.Table:
			rows = append(rows, tableLines(n)...)
		}
	}
}

// Join joins content lines with newlines, without a trailing newline.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

func paragraphLine(para *document.Paragraph) (string, bool) {
	if strings.TrimSpace(para.Text) == "" {
		return "", false
	}
	return para.Text, true
}

func tableLines(table *document.Table) []string {
	var lines []string
	for row := 0; row < table.Rows; row++ {
		if line, ok := rowLine(table.RowCells(row)); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func rowLine(cells []*document.Cell) (string, bool) {
	kept := make([]string, 0, len(cells))
	for _, cell := range cells {
		if text := strings.TrimSpace(cell.Text); text != "" {
			kept = append(kept, text)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, CellSeparator), true
}
