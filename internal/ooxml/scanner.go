package ooxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/docxtext/internal/document"
)

// ContentScanner streams the main document part and emits the body's
// top-level paragraphs and tables in document order
type ContentScanner struct {
	decoder *xml.Decoder
	closer  io.Closer

	inDocument bool
	inBody     bool
	done       bool
}

// NewContentScanner creates a new ContentScanner from a main document part reader
func NewContentScanner(r io.ReadCloser) *ContentScanner {
	return &ContentScanner{
		decoder: newDecoder(r),
		closer:  r,
	}
}

// Next returns the next content node from the document body
func (s *ContentScanner) Next() (document.ContentNode, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		token, err := s.decoder.Token()
		if err == io.EOF {
			s.done = true
			if !s.inBody {
				return nil, fmt.Errorf("document body: %w", ErrMainPartMissing)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			node, err := s.handleStartElement(elem)
			if err != nil {
				return nil, err
			}
			if node != nil {
				return node, nil
			}
		case xml.EndElement:
			if s.inBody && elem.Name.Local == "body" {
				s.done = true
				return nil, io.EOF
			}
		}
	}
}

func (s *ContentScanner) handleStartElement(elem xml.StartElement) (document.ContentNode, error) {
	localName := elem.Name.Local

	if !s.inDocument {
		if localName != "document" {
			return nil, fmt.Errorf("%w: unexpected root element <%s>", ErrNotWordDocument, localName)
		}
		s.inDocument = true
		return nil, nil
	}

	if !s.inBody {
		if localName == "body" {
			s.inBody = true
			return nil, nil
		}
		return nil, s.skip()
	}

	switch localName {
	case "p":
		return s.parseParagraph()
	case "tbl":
		return s.parseTable()
	}

	return nil, s.skip()
}

// parseParagraph parses a body-level <w:p> element into a Paragraph node
func (s *ContentScanner) parseParagraph() (document.ContentNode, error) {
	text, err := s.readParagraphText()
	if err != nil {
		return nil, fmt.Errorf("failed to decode paragraph: %w", err)
	}

	return &document.Paragraph{
		Text: text,
	}, nil
}

// readParagraphText consumes a <w:p> element whose start tag has been read.
// Only direct runs and hyperlinks contribute text.
func (s *ContentScanner) readParagraphText() (string, error) {
	var sb strings.Builder
	for {
		token, err := s.decoder.Token()
		if err != nil {
			return "", err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "r":
				err = s.readRunText(&sb)
			case "hyperlink":
				err = s.readHyperlinkText(&sb)
			default:
				err = s.skip()
			}
			if err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

func (s *ContentScanner) readHyperlinkText(sb *strings.Builder) error {
	for {
		token, err := s.decoder.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			if elem.Name.Local == "r" {
				err = s.readRunText(sb)
			} else {
				err = s.skip()
			}
			if err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *ContentScanner) readRunText(sb *strings.Builder) error {
	for {
		token, err := s.decoder.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "t":
				var t TextNode
				if err := s.decoder.DecodeElement(&t, &elem); err != nil {
					return err
				}
				sb.WriteString(t.Text)
				continue
			case "tab", "ptab":
				sb.WriteString("\t")
			case "br":
				// Page and column breaks carry no text
				if breakType := attr(elem, "type"); breakType == "" || breakType == "textWrapping" {
					sb.WriteString("\n")
				}
			case "cr":
				sb.WriteString("\n")
			case "noBreakHyphen":
				sb.WriteString("-")
			}
			if err := s.skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// parseTable parses a body-level <w:tbl> element into a Table node
func (s *ContentScanner) parseTable() (document.ContentNode, error) {
	b := &tableBuilder{}
	if err := s.readTable(b); err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}
	return b.finish(), nil
}

func (s *ContentScanner) readTable(b *tableBuilder) error {
	for {
		token, err := s.decoder.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "tblGrid":
				var grid TableGrid
				if err := s.decoder.DecodeElement(&grid, &elem); err != nil {
					return err
				}
				b.gridCols = len(grid.Cols)
			case "tr":
				b.startRow()
				if err := s.readRow(b); err != nil {
					return err
				}
			default:
				if err := s.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *ContentScanner) readRow(b *tableBuilder) error {
	for {
		token, err := s.decoder.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "trPr":
				var props RowProperties
				if err := s.decoder.DecodeElement(&props, &elem); err != nil {
					return err
				}
				if props.GridBefore != nil {
					b.skipColumns(props.GridBefore.Val)
				}
			case "tc":
				if err := s.readCell(b); err != nil {
					return err
				}
			default:
				if err := s.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *ContentScanner) readCell(b *tableBuilder) error {
	var (
		props      CellProperties
		paragraphs []string
	)

	for {
		token, err := s.decoder.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "tcPr":
				if err := s.decoder.DecodeElement(&props, &elem); err != nil {
					return err
				}
			case "p":
				text, err := s.readParagraphText()
				if err != nil {
					return err
				}
				paragraphs = append(paragraphs, text)
			default:
				// Nested tables and content controls are not part of the cell text
				if err := s.skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			b.addCell(strings.Join(paragraphs, "\n"), props.gridSpan(), props.continuesMerge())
			return nil
		}
	}
}

func (s *ContentScanner) skip() error {
	return s.decoder.Skip()
}

// Close closes the underlying reader
func (s *ContentScanner) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func attr(elem xml.StartElement, local string) string {
	for _, a := range elem.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// XML element structures, matched by local name

type TextNode struct {
	XMLName xml.Name `xml:"t"`
	Text    string   `xml:",chardata"`
}

type TableGrid struct {
	XMLName xml.Name  `xml:"tblGrid"`
	Cols    []GridCol `xml:"gridCol"`
}

type GridCol struct {
	W string `xml:"w,attr"`
}

type RowProperties struct {
	XMLName    xml.Name      `xml:"trPr"`
	GridBefore *DecimalValue `xml:"gridBefore"`
}

type CellProperties struct {
	XMLName  xml.Name      `xml:"tcPr"`
	GridSpan *DecimalValue `xml:"gridSpan"`
	VMerge   *VMerge       `xml:"vMerge"`
}

func (p CellProperties) gridSpan() int {
	if p.GridSpan == nil || p.GridSpan.Val < 1 {
		return 1
	}
	return p.GridSpan.Val
}

// continuesMerge reports whether the cell continues a vertical merge.
// A bare <w:vMerge/> means "continue".
func (p CellProperties) continuesMerge() bool {
	return p.VMerge != nil && p.VMerge.Val != "restart"
}

type DecimalValue struct {
	Val int `xml:"val,attr"`
}

type VMerge struct {
	Val string `xml:"val,attr"`
}
