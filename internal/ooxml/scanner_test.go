package ooxml

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/docxtext/internal/document"
	"github.com/hanpama/docxtext/internal/docxtest"
)

func scanAll(t *testing.T, documentXML string) []document.ContentNode {
	t.Helper()

	scanner := NewContentScanner(io.NopCloser(strings.NewReader(documentXML)))
	defer scanner.Close()

	var nodes []document.ContentNode
	for {
		node, err := scanner.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		nodes = append(nodes, node)
	}
	return nodes
}

func rowTexts(table *document.Table, row int) []string {
	var texts []string
	for _, cell := range table.RowCells(row) {
		texts = append(texts, cell.Text)
	}
	return texts
}

func TestScannerDocumentOrder(t *testing.T) {
	body := docxtest.Para("Title") +
		docxtest.Table([]string{"A", "B"}) +
		docxtest.Para("End")

	nodes := scanAll(t, docxtest.Document(body))
	require.Len(t, nodes, 3)

	assert.Equal(t, &document.Paragraph{Text: "Title"}, nodes[0])
	table, ok := nodes[1].(*document.Table)
	require.True(t, ok, "expected table, got %T", nodes[1])
	assert.Equal(t, 1, table.Rows)
	assert.Equal(t, 2, table.Cols)
	assert.Equal(t, []string{"A", "B"}, rowTexts(table, 0))
	assert.Equal(t, &document.Paragraph{Text: "End"}, nodes[2])
}

func TestScannerKeepsBlankParagraphs(t *testing.T) {
	body := docxtest.Para("Title") + `<w:p/>` + docxtest.Para("   ")

	nodes := scanAll(t, docxtest.Document(body))
	assert.Equal(t, []document.ContentNode{
		&document.Paragraph{Text: "Title"},
		&document.Paragraph{Text: ""},
		&document.Paragraph{Text: "   "},
	}, nodes)
}

func TestScannerRunText(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t>` +
		`<w:br w:type="page"/><w:br w:type="textWrapping"/><w:cr/><w:noBreakHyphen/><w:ptab w:alignment="left"/></w:r>` +
		`<w:hyperlink w:anchor="top"><w:r><w:t>link</w:t></w:r></w:hyperlink>` +
		`<w:ins w:id="1"><w:r><w:t>inserted</w:t></w:r></w:ins>` +
		`<w:r><w:t xml:space="preserve"> tail </w:t></w:r></w:p>`

	nodes := scanAll(t, docxtest.Document(body))
	require.Len(t, nodes, 1)
	assert.Equal(t, "a\tb\nc\n\n-\tlink tail ", nodes[0].(*document.Paragraph).Text)
}

func TestScannerSkipsNonBodyLevelParagraphs(t *testing.T) {
	body := `<w:sdt><w:sdtContent>` + docxtest.Para("in control") + `</w:sdtContent></w:sdt>` +
		docxtest.Table([]string{"cell"}) +
		docxtest.Para("body")

	nodes := scanAll(t, docxtest.Document(body))
	require.Len(t, nodes, 2)
	assert.IsType(t, &document.Table{}, nodes[0])
	assert.Equal(t, &document.Paragraph{Text: "body"}, nodes[1])
}

func TestScannerCellText(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc>` +
		docxtest.Para("first") + docxtest.Para("second") +
		docxtest.Table([]string{"nested"}) +
		`</w:tc></w:tr></w:tbl>`

	nodes := scanAll(t, docxtest.Document(body))
	require.Len(t, nodes, 1)
	table := nodes[0].(*document.Table)
	assert.Equal(t, []string{"first\nsecond"}, rowTexts(table, 0))
}

func TestScannerMergedCells(t *testing.T) {
	body := `<w:tbl><w:tblGrid><w:gridCol/><w:gridCol/><w:gridCol/></w:tblGrid>` +
		`<w:tr>` +
		`<w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr>` + docxtest.Para("wide") + `</w:tc>` +
		`<w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr>` + docxtest.Para("tall") + `</w:tc>` +
		`</w:tr>` +
		`<w:tr>` +
		`<w:tc>` + docxtest.Para("x") + `</w:tc>` +
		`<w:tc>` + docxtest.Para("y") + `</w:tc>` +
		`<w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc>` +
		`</w:tr>` +
		`</w:tbl>`

	nodes := scanAll(t, docxtest.Document(body))
	require.Len(t, nodes, 1)
	table := nodes[0].(*document.Table)

	assert.Equal(t, 2, table.Rows)
	assert.Equal(t, 3, table.Cols)
	assert.Equal(t, []string{"wide", "wide", "tall"}, rowTexts(table, 0))
	assert.Equal(t, []string{"x", "y", "tall"}, rowTexts(table, 1))
}

func TestScannerGridBefore(t *testing.T) {
	body := `<w:tbl>` +
		`<w:tr><w:tc>` + docxtest.Para("a") + `</w:tc><w:tc>` + docxtest.Para("b") + `</w:tc></w:tr>` +
		`<w:tr><w:trPr><w:gridBefore w:val="1"/></w:trPr><w:tc>` + docxtest.Para("c") + `</w:tc></w:tr>` +
		`</w:tbl>`

	nodes := scanAll(t, docxtest.Document(body))
	table := nodes[0].(*document.Table)

	assert.Equal(t, []string{"a", "b"}, rowTexts(table, 0))
	assert.Equal(t, []string{"c"}, rowTexts(table, 1))
	assert.Equal(t, 1, table.RowCells(1)[0].Col)
}

func TestScannerEmptyBody(t *testing.T) {
	nodes := scanAll(t, docxtest.Document(""))
	assert.Empty(t, nodes)
}

func TestScannerEOFIsSticky(t *testing.T) {
	scanner := NewContentScanner(io.NopCloser(strings.NewReader(docxtest.Document(docxtest.Para("x")))))

	_, err := scanner.Next()
	require.NoError(t, err)
	_, err = scanner.Next()
	assert.Equal(t, io.EOF, err)
	_, err = scanner.Next()
	assert.Equal(t, io.EOF, err)
}

func TestScannerMissingBody(t *testing.T) {
	scanner := NewContentScanner(io.NopCloser(strings.NewReader(
		`<w:document xmlns:w="` + docxtest.NamespaceW + `"></w:document>`)))

	_, err := scanner.Next()
	assert.ErrorIs(t, err, ErrMainPartMissing)
}

func TestScannerWrongRoot(t *testing.T) {
	scanner := NewContentScanner(io.NopCloser(strings.NewReader(`<worksheet><sheetData/></worksheet>`)))

	_, err := scanner.Next()
	assert.ErrorIs(t, err, ErrNotWordDocument)
}

func TestScannerMalformedXML(t *testing.T) {
	scanner := NewContentScanner(io.NopCloser(strings.NewReader(
		`<w:document xmlns:w="` + docxtest.NamespaceW + `"><w:body><w:p><w:r>`)))

	_, err := scanner.Next()
	assert.Error(t, err)
}
