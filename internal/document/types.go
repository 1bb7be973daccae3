package document

// ContentNode is the interface for document content items
type ContentNode interface {
	IsContent()
}

// Paragraph represents a body-level paragraph with text
type Paragraph struct {
	Text string
}

func (p *Paragraph) IsContent() {}

// Table represents a table with cells placed on its grid
type Table struct {
	Rows  int
	Cols  int
	Cells []Cell
}

func (t *Table) IsContent() {}

// Cell represents a table cell. Col is the grid column the cell starts at.
type Cell struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
	Text    string
}

type ContentNodeScanner interface {
	Next() (ContentNode, error)
}
