package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/tieubaoca/roskai-be/types"
)

// docxDocumentXMLPath is the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// ErrUnsupportedFileType marks files whose extension has no extractor. They
// are omitted from the prompt silently, not reported to the user.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ExtractService converts uploaded files into plain text for the prompt.
type ExtractService struct{}

func NewExtractService() *ExtractService {
	return &ExtractService{}
}

// ExtractAll runs extraction over the uploaded files, preserving their order.
// A failed extraction produces a document carrying the error; it never stops
// the remaining files.
func (s *ExtractService) ExtractAll(files []types.UploadedFile) []types.ExtractedDocument {
	docs := make([]types.ExtractedDocument, 0, len(files))
	for _, f := range files {
		text, err := s.Extract(f)
		if errors.Is(err, ErrUnsupportedFileType) {
			continue
		}
		if err != nil {
			docs = append(docs, types.ExtractedDocument{SourceName: f.Name, Err: err})
			continue
		}
		docs = append(docs, types.ExtractedDocument{SourceName: f.Name, Text: text})
	}
	return docs
}

// Extract dispatches on the lowercase filename extension. The declared MIME
// type is only used for upload filtering, never for dispatch.
func (s *ExtractService) Extract(file types.UploadedFile) (string, error) {
	switch strings.ToLower(filepath.Ext(file.Name)) {
	case ".txt":
		return extractPlain(file.Data), nil
	case ".pdf":
		return extractPDF(file.Data)
	case ".docx":
		return extractDocx(file.Data)
	default:
		return "", ErrUnsupportedFileType
	}
}

// extractPlain returns the content as UTF-8 text. Invalid sequences are
// replaced with the replacement character instead of failing the upload.
func extractPlain(content []byte) string {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(content)
}

// extractPDF concatenates the text layer of every page in document order.
// The pdf reader panics on some malformed files; the recover turns that into
// a per-file error so one bad upload cannot take down the request.
func extractPDF(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("file PDF không hợp lệ: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("file PDF không hợp lệ: %w", err)
	}
	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("không thể đọc trang %d của file PDF: %w", i, err)
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

// extractDocx reads word/document.xml out of the zip container and walks its
// XML tokens, keeping w:t text and turning paragraph ends, w:br and w:tab
// into whitespace.
func extractDocx(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("file DOCX không hợp lệ (không phải định dạng zip): %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxDocumentXMLPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("không thể mở %s: %w", f.Name, err)
		}
		text, err := docxText(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("không thể đọc nội dung XML từ DOCX: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", errors.New("Không tìm thấy nội dung trong file DOCX hoặc file rỗng.")
		}
		return text, nil
	}
	return "", errors.New("Không tìm thấy word/document.xml trong file DOCX.")
}

func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
