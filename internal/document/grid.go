package document

// RowCells returns the cells of a table row, one entry per grid column.
//
// A cell spanning several grid columns is returned once for each column it
// covers, and a vertically merged cell is returned in every row it covers.
// Grid columns not covered by any cell are skipped.
func (t *Table) RowCells(row int) []*Cell {
	if row < 0 || row >= t.Rows {
		return nil
	}

	owners := t.cellOwner()[row]
	cells := make([]*Cell, 0, len(owners))
	for _, owner := range owners {
		if owner != nil {
			cells = append(cells, owner)
		}
	}
	return cells
}

// cellOwner maps every grid position to the cell that owns it:
// cellOwner[row][col] is nil where no cell covers the position.
func (t *Table) cellOwner() [][]*Cell {
	grid := make([][]*Cell, t.Rows)
	for i := range grid {
		grid[i] = make([]*Cell, t.Cols)
	}

	for i := range t.Cells {
		cell := &t.Cells[i]
		rowSpan := max(cell.RowSpan, 1)
		colSpan := max(cell.ColSpan, 1)
		for r := 0; r < rowSpan && cell.Row+r < t.Rows; r++ {
			for c := 0; c < colSpan && cell.Col+c < t.Cols; c++ {
				if cell.Row+r < 0 || cell.Col+c < 0 {
					continue
				}
				grid[cell.Row+r][cell.Col+c] = cell
			}
		}
	}

	return grid
}
