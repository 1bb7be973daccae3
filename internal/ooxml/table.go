package ooxml

import "github.com/hanpama/docxtext/internal/document"

// tableBuilder places <w:tc> elements on the table grid as rows are read
type tableBuilder struct {
	gridCols int
	rows     int
	col      int // next free grid column in the current row
	cells    []document.Cell

	prevRow map[int]int // grid column -> index into cells, for the row above
	curRow  map[int]int
}

func (b *tableBuilder) startRow() {
	b.prevRow = b.curRow
	b.curRow = make(map[int]int)
	b.rows++
	b.col = 0
}

func (b *tableBuilder) skipColumns(n int) {
	if n > 0 {
		b.col += n
	}
}

// addCell adds the next cell of the current row. A cell continuing a
// vertical merge extends the cell above it instead of adding a new one.
func (b *tableBuilder) addCell(text string, colSpan int, continuesMerge bool) {
	row := b.rows - 1

	if continuesMerge {
		if idx, ok := b.prevRow[b.col]; ok {
			owner := &b.cells[idx]
			owner.RowSpan = row - owner.Row + 1
			for c := 0; c < owner.ColSpan; c++ {
				b.curRow[owner.Col+c] = idx
			}
			b.col += colSpan
			return
		}
	}

	b.cells = append(b.cells, document.Cell{
		Row:     row,
		Col:     b.col,
		RowSpan: 1,
		ColSpan: colSpan,
		Text:    text,
	})
	idx := len(b.cells) - 1
	for c := 0; c < colSpan; c++ {
		b.curRow[b.col+c] = idx
	}
	b.col += colSpan
}

func (b *tableBuilder) finish() *document.Table {
	cols := b.gridCols
	for _, cell := range b.cells {
		cols = max(cols, cell.Col+cell.ColSpan)
	}

	cells := b.cells
	if cells == nil {
		cells = make([]document.Cell, 0)
	}

	return &document.Table{
		Rows:  b.rows,
		Cols:  cols,
		Cells: cells,
	}
}
