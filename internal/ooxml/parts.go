package ooxml

import (
	"bufio"
	"encoding/xml"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newDecoder returns an XML decoder for a package part.
// Parts with a byte order mark are transcoded to UTF-8 first; other
// declared encodings go through the charset reader.
func newDecoder(r io.Reader) *xml.Decoder {
	br := bufio.NewReader(r)

	var src io.Reader = br
	transcoded := false
	if hasBOM(br) {
		src = transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		transcoded = true
	}

	decoder := xml.NewDecoder(src)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if transcoded {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
	return decoder
}

func hasBOM(br *bufio.Reader) bool {
	head, _ := br.Peek(3)
	switch {
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return true
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return true
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		return true
	}
	return false
}

type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// lookup resolves a part's content type: an Override wins over the
// Default registered for the part's extension.
func (t *contentTypesXML) lookup(partName string) string {
	if t == nil {
		return ""
	}

	name := "/" + strings.TrimPrefix(partName, "/")
	for _, o := range t.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType
		}
	}

	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, d := range t.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType
		}
	}
	return ""
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}
