package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/halcyard/raglet/core"
)

// DOCX loads Word documents. A .docx file is a zip archive; the text
// lives in word/document.xml as runs of <w:t> elements grouped into
// paragraphs.
type DOCX struct{}

var _ Loader = (*DOCX)(nil)

// NewDOCX creates a DOCX loader.
func NewDOCX() *DOCX {
	return &DOCX{}
}

// Extensions returns the extensions the DOCX loader handles.
func (l *DOCX) Extensions() []string {
	return []string{".docx"}
}

// Load extracts paragraph text from the document archive.
func (l *DOCX) Load(_ context.Context, data []byte, filename string) (*core.Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a zip archive: %v", ErrCorruptInput, filename, err)
	}

	content, err := extractDocumentText(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptInput, filename, err)
	}

	return newDocument(content, filename, "docx", len(data)), nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
	} `xml:"body"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text []textXML `xml:"t"`
}

type textXML struct {
	Content string `xml:",chardata"`
}

func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		var doc documentXML
		if err := xml.Unmarshal(raw, &doc); err != nil {
			return "", err
		}

		var sb strings.Builder
		for i, para := range doc.Body.Paragraphs {
			if i > 0 {
				sb.WriteString("\n")
			}
			for _, run := range para.Runs {
				for _, text := range run.Text {
					sb.WriteString(text.Content)
				}
			}
		}
		return strings.TrimSpace(sb.String()), nil
	}
	return "", fmt.Errorf("word/document.xml not found")
}
