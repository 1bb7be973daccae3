// Package docxtest assembles small .docx packages in memory for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"sort"
	"strings"
)

const (
	NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	ContentTypeDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

	ContentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="` + ContentTypeDocument + `"/>` +
		`</Types>`

	PackageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`
)

// Document wraps body content in a w:document element.
func Document(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="` + NamespaceW + `"><w:body>` + body + `<w:sectPr/></w:body></w:document>`
}

// Para returns a paragraph with a single run holding text.
func Para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + escape(text) + `</w:t></w:r></w:p>`
}

// Table returns a table with one cell per string; each cell holds one paragraph.
func Table(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblPr/><w:tblGrid>")
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	for i := 0; i < cols; i++ {
		sb.WriteString(`<w:gridCol w:w="1000"/>`)
	}
	sb.WriteString("</w:tblGrid>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, text := range row {
			sb.WriteString("<w:tc><w:tcPr/>")
			sb.WriteString(Para(text))
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

// Build returns a minimal .docx package whose body is body.
func Build(body string) []byte {
	return Package(map[string][]byte{
		"[Content_Types].xml": []byte(ContentTypesXML),
		"_rels/.rels":         []byte(PackageRelsXML),
		"word/document.xml":   []byte(Document(body)),
	})
}

// Package zips the given parts. [Content_Types].xml is written first.
func Package(parts map[string][]byte) []byte {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == "[Content_Types].xml" {
			return true
		}
		if names[j] == "[Content_Types].xml" {
			return false
		}
		return names[i] < names[j]
	})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func escape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		panic(err)
	}
	return buf.String()
}
