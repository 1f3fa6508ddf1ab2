package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DocumentType is the closed set of accepted input formats.
type DocumentType int

const (
	DocumentUnsupported DocumentType = iota
	DocumentPDF
	DocumentDOCX
	DocumentPlainText
)

func (t DocumentType) String() string {
	switch t {
	case DocumentPDF:
		return "pdf"
	case DocumentDOCX:
		return "docx"
	case DocumentPlainText:
		return "txt"
	default:
		return "unsupported"
	}
}

// DetectDocumentType resolves the declared MIME type, falling back to the
// filename extension when the client sent a generic type.
func DetectDocumentType(mimeType, filename string) DocumentType {
	switch mimeType {
	case "application/pdf":
		return DocumentPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return DocumentDOCX
	case "text/plain":
		return DocumentPlainText
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return DocumentPDF
	case ".docx":
		return DocumentDOCX
	case ".txt":
		return DocumentPlainText
	}

	return DocumentUnsupported
}

type FileExtractService struct{}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{}
}

// Extract pulls plain text out of an uploaded document. The unit count is
// pages for PDF, non-blank paragraphs for DOCX, and non-blank lines for
// plain text; it feeds a progress message only, nothing downstream.
func (s *FileExtractService) Extract(data []byte, typ DocumentType) (string, int, error) {
	switch typ {
	case DocumentPDF:
		return s.extractPDF(data)
	case DocumentDOCX:
		return s.extractDOCX(data)
	case DocumentPlainText:
		return s.extractTXT(data)
	default:
		return "", 0, ErrUnsupportedFormat
	}
}

func (s *FileExtractService) extractTXT(data []byte) (string, int, error) {
	if !utf8.Valid(data) {
		return "", 0, &ExtractionError{Format: "txt", Err: fmt.Errorf("file is not valid UTF-8")}
	}

	text := string(data)
	lineCount := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lineCount++
		}
	}

	return text, lineCount, nil
}

func (s *FileExtractService) extractPDF(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &ExtractionError{Format: "pdf", Err: err}
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		// A page with no extractable text still counts toward the total.
		content, err := page.GetPlainText(nil)
		if err != nil || content == "" {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return b.String(), totalPage, nil
}

func (s *FileExtractService) extractDOCX(data []byte) (string, int, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &ExtractionError{Format: "docx", Err: err}
	}

	var documentXML []byte
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", 0, &ExtractionError{Format: "docx", Err: err}
			}

			documentXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", 0, &ExtractionError{Format: "docx", Err: err}
			}
			break
		}
	}

	if len(documentXML) == 0 {
		return "", 0, &ExtractionError{Format: "docx", Err: fmt.Errorf("document.xml not found")}
	}

	var b strings.Builder
	paraCount := 0
	for _, para := range strings.Split(string(documentXML), "</w:p>") {
		text := strings.TrimSpace(stripDOCXML(para))
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
		paraCount++
	}

	return b.String(), paraCount, nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

func stripDOCXML(src string) string {
	s := strings.ReplaceAll(src, "<w:br/>", "\n")
	s = strings.ReplaceAll(s, "<w:br />", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")

	// Remove all xml tags
	s = xmlTagPattern.ReplaceAllString(s, "")

	// Basic XML entities
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
	return replacer.Replace(s)
}
