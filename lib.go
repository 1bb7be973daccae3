// Package docxtext extracts the text of Word (.docx) documents into plain text.
//
// The body's paragraphs are emitted first, in document order, followed by one
// line per table row with the row's non-blank cells joined by " | ".
// Blank paragraphs and rows whose cells are all blank produce no line.
//
// # Example Usage
//
//	lines, err := docxtext.ExtractFile("report.docx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(docxtext.Join(lines))
//
// # Supported Formats
//
// DOCX (.docx, .docm, .dotx, .dotm): Office Open XML package
//   - Main document part located through the package relationships
//   - Body-level paragraphs, including hyperlink text, tabs and line breaks
//   - Tables with horizontally and vertically merged cells
//   - UTF-16 and legacy-charset XML parts
//
// Password-protected packages and Word 97-2003 binary files are recognised
// and rejected with ErrEncrypted and ErrLegacyFormat.
package docxtext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hanpama/docxtext/internal/cfb"
	"github.com/hanpama/docxtext/internal/ooxml"
	"github.com/hanpama/docxtext/internal/render"
)

var (
	// ErrNotWordDocument is returned for input that is not a Word document.
	ErrNotWordDocument = ooxml.ErrNotWordDocument

	// ErrEncrypted is returned for password-protected documents.
	ErrEncrypted = errors.New("password encrypted documents are not supported")

	// ErrLegacyFormat is returned for Word 97-2003 binary documents.
	ErrLegacyFormat = errors.New("legacy Word 97-2003 binary documents are not supported")
)

var zipSignature = []byte("PK\x03\x04")

// Extract reads a document and returns its content lines.
//
// The input must implement io.ReaderAt because the package is a ZIP
// container, and size must be the document size.
//
// Example:
//
//	file, _ := os.Open("document.docx")
//	defer file.Close()
//	info, _ := file.Stat()
//	lines, err := docxtext.Extract(file, info.Size())
func Extract(in io.ReaderAt, size int64) ([]string, error) {
	head := make([]byte, len(cfb.Signature))
	n, err := in.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read document header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, zipSignature):
		return extractPackage(in, size)
	case cfb.IsCompoundFile(head):
		return nil, inspectCompoundFile(in)
	}

	return nil, fmt.Errorf("%w: unrecognized file signature", ErrNotWordDocument)
}

// ExtractFile opens the document at path and returns its content lines.
func ExtractFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return Extract(file, fileInfo.Size())
}

// Convert extracts the document at inputPath, writes the joined content
// lines to outputPath and reports the result to console.
//
// The output file is created or truncated and holds UTF-8 text with one
// content line per line and no trailing newline. Nothing is written when
// extraction fails.
//
// Example:
//
//	lines, err := docxtext.Convert("document.docx", "document.txt", os.Stdout)
func Convert(inputPath, outputPath string, console io.Writer) ([]string, error) {
	lines, err := ExtractFile(inputPath)
	if err != nil {
		return nil, err
	}

	content := Join(lines)
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	if err := render.Report(console, filepath.Base(outputPath), content); err != nil {
		return nil, fmt.Errorf("failed to print content: %w", err)
	}

	return lines, nil
}

// Join joins content lines into the text written to the output file.
func Join(lines []string) string {
	return render.Join(lines)
}

func extractPackage(in io.ReaderAt, size int64) ([]string, error) {
	reader, err := ooxml.Open(in, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOCX file: %w", err)
	}

	scanner, err := reader.NewContentScanner()
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}
	defer scanner.Close()

	lines, err := render.Lines(scanner)
	if err != nil {
		return nil, fmt.Errorf("failed to extract DOCX: %w", err)
	}

	return lines, nil
}

func inspectCompoundFile(in io.ReaderAt) error {
	kind, err := cfb.Inspect(in)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotWordDocument, err)
	}

	switch kind {
	case cfb.KindEncryptedPackage:
		return ErrEncrypted
	case cfb.KindWordBinary:
		return ErrLegacyFormat
	}
	return fmt.Errorf("%w: %s", ErrNotWordDocument, kind)
}
