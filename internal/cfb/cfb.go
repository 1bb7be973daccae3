// Package cfb inspects OLE compound files handed in where a .docx was
// expected: password-protected OOXML packages and legacy binary Word files.
package cfb

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Signature is the 8-byte magic at the start of every compound file.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Kind classifies a compound file by the streams it carries.
type Kind int

const (
	KindUnknown Kind = iota
	// KindEncryptedPackage is an OOXML package encrypted with a password.
	KindEncryptedPackage
	// KindWordBinary is a Word 97-2003 binary document.
	KindWordBinary
)

func (k Kind) String() string {
	switch k {
	case KindEncryptedPackage:
		return "encrypted package"
	case KindWordBinary:
		return "Word binary document"
	}
	return "unknown compound file"
}

const (
	streamEncryptedPackage = "EncryptedPackage"
	streamWordDocument     = "WordDocument"
)

// IsCompoundFile reports whether head starts with the compound file signature.
func IsCompoundFile(head []byte) bool {
	return bytes.HasPrefix(head, Signature)
}

// Inspect walks the compound file directory and classifies the file.
// An encrypted package wins over any other stream found.
func Inspect(ra io.ReaderAt) (Kind, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return KindUnknown, fmt.Errorf("failed to open compound file: %w", err)
	}

	kind := KindUnknown
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch streamPath(entry) {
		case streamEncryptedPackage:
			return KindEncryptedPackage, nil
		case streamWordDocument:
			kind = KindWordBinary
		}
	}
	return kind, nil
}

func streamPath(entry *mscfb.File) string {
	if len(entry.Path) == 0 {
		return entry.Name
	}
	return strings.Join(entry.Path, "/") + "/" + entry.Name
}
