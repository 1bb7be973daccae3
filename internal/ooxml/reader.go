package ooxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	// ErrNotWordDocument is returned when the package's main part is not a
	// WordprocessingML document.
	ErrNotWordDocument = errors.New("not a Word document")

	// ErrMainPartMissing is returned when the package has no main document part.
	ErrMainPartMissing = errors.New("main document part not found")
)

const (
	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"
	defaultMainPart  = "word/document.xml"

	relTypeOfficeDocument = "/officeDocument"
)

// Content types accepted for the main document part.
var wordprocessingMainTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml": true,
	"application/vnd.ms-word.document.macroEnabled.main+xml":                          true,
	"application/vnd.ms-word.template.macroEnabledTemplate.main+xml":                  true,
}

// Reader provides access to a WordprocessingML package
type Reader struct {
	zipReader    *zip.Reader
	contentTypes *contentTypesXML
	mainPart     string
}

// Open opens a .docx package and locates its main document part
func Open(r io.ReaderAt, size int64) (*Reader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open package as ZIP: %w", err)
	}

	reader := &Reader{
		zipReader: zipReader,
	}

	if err := reader.parseContentTypes(); err != nil {
		return nil, err
	}

	if err := reader.resolveMainPart(); err != nil {
		return nil, err
	}

	if err := reader.validateMainPart(); err != nil {
		return nil, err
	}

	return reader, nil
}

// MainPart returns the package-relative name of the main document part
func (r *Reader) MainPart() string {
	return r.mainPart
}

// ContentType returns the declared content type of a part, or "" if none applies
func (r *Reader) ContentType(partName string) string {
	return r.contentTypes.lookup(partName)
}

// NewContentScanner creates a ContentScanner over the main document part.
// The caller must close it.
func (r *Reader) NewContentScanner() (*ContentScanner, error) {
	file, err := r.openPart(r.mainPart)
	if err != nil {
		return nil, fmt.Errorf("failed to open main document part: %w", err)
	}

	return NewContentScanner(file), nil
}

func (r *Reader) parseContentTypes() error {
	file, err := r.openPart(contentTypesPart)
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrNotWordDocument, contentTypesPart)
	}
	defer file.Close()

	var types contentTypesXML
	if err := newDecoder(file).Decode(&types); err != nil {
		return fmt.Errorf("failed to parse %s: %w", contentTypesPart, err)
	}

	r.contentTypes = &types
	return nil
}

func (r *Reader) resolveMainPart() error {
	file, err := r.openPart(packageRelsPart)
	if err != nil {
		// Packages without relationships still commonly keep the body here
		if r.findFile(defaultMainPart) == nil {
			return ErrMainPartMissing
		}
		r.mainPart = defaultMainPart
		return nil
	}
	defer file.Close()

	var rels relationshipsXML
	if err := newDecoder(file).Decode(&rels); err != nil {
		return fmt.Errorf("failed to parse %s: %w", packageRelsPart, err)
	}

	for _, rel := range rels.Relationships {
		if !strings.HasSuffix(rel.Type, relTypeOfficeDocument) || strings.EqualFold(rel.TargetMode, "External") {
			continue
		}
		r.mainPart = resolvePartName(rel.Target)
		break
	}

	if r.mainPart == "" {
		return ErrMainPartMissing
	}
	if r.findFile(r.mainPart) == nil {
		return fmt.Errorf("%w: %s", ErrMainPartMissing, r.mainPart)
	}

	return nil
}

func (r *Reader) validateMainPart() error {
	contentType := r.ContentType(r.mainPart)
	if !wordprocessingMainTypes[contentType] {
		return fmt.Errorf("%w: content type is '%s'", ErrNotWordDocument, contentType)
	}
	return nil
}

func (r *Reader) openPart(name string) (io.ReadCloser, error) {
	file := r.findFile(name)
	if file == nil {
		return nil, fmt.Errorf("part %s not found", name)
	}
	return file.Open()
}

// findFile looks a part up by name. Part names are case-insensitive.
func (r *Reader) findFile(name string) *zip.File {
	for _, file := range r.zipReader.File {
		if file.Name == name {
			return file
		}
	}
	for _, file := range r.zipReader.File {
		if strings.EqualFold(file.Name, name) {
			return file
		}
	}
	return nil
}

// resolvePartName turns a package relationship target into a ZIP member name
func resolvePartName(target string) string {
	return strings.TrimPrefix(path.Clean("/"+target), "/")
}
