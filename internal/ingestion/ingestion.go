// Package ingestion turns uploaded resume files into plain text ready
// for analysis. Supports PDF and DOCX uploads plus raw text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Document is the extraction result handed to the analyzer
type Document struct {
	Text             string
	DetectedSections []string
}

// UnsupportedFormatError indicates the uploaded file extension is not
// one we can extract text from
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: only pdf, docx and txt are accepted", e.Extension)
}

// ExtractionError wraps a parser failure for a structurally broken file
type ExtractionError struct {
	Filename string
	Cause    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractText extracts plain text from a resume file, choosing the
// parser by extension
func ExtractText(filename string, data []byte) (Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".txt":
		text = normalizeWhitespace(string(data))
	default:
		return Document{}, &UnsupportedFormatError{Extension: ext}
	}
	if err != nil {
		return Document{}, &ExtractionError{Filename: filename, Cause: err}
	}

	return Document{
		Text:             text,
		DetectedSections: detectSections(text),
	}, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			defer rc.Close()
			docXML, err = io.ReadAll(rc)
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in docx")
	}
	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := tagPattern.ReplaceAllString(xml, " ")
	return normalizeWhitespace(txt), nil
}

var (
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	blankPattern   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlinePattern = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace collapses whitespace runs but preserves single
// newlines, which the section detector relies on
func normalizeWhitespace(s string) string {
	s = blankPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = newlinePattern.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// sectionHeadings maps canonical section names to the heading keywords
// that identify them
var sectionHeadings = map[string][]string{
	"experience": {"experience", "employment", "work history"},
	"education":  {"education", "academic"},
	"skills":     {"skills", "technologies", "competencies"},
	"projects":   {"projects", "portfolio"},
	"summary":    {"summary", "objective", "profile", "about"},
}

// sectionOrder keeps DetectedSections deterministic
var sectionOrder = []string{"summary", "experience", "education", "skills", "projects"}

// detectSections scans line starts for common resume section headings.
// A heading is a short line beginning with a known keyword.
func detectSections(text string) []string {
	found := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || len(line) > 40 {
			continue
		}
		for section, keywords := range sectionHeadings {
			for _, kw := range keywords {
				if strings.HasPrefix(line, kw) {
					found[section] = true
				}
			}
		}
	}

	var sections []string
	for _, section := range sectionOrder {
		if found[section] {
			sections = append(sections, section)
		}
	}
	return sections
}
