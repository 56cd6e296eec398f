package services

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "learnai_go_backend/internal/errors"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFService extracts plain text from uploaded study material. PDFs are
// validated and counted with pdfcpu before extraction; plain-text files pass
// straight through.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) Extract(path string) (string, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return s.extractPDF(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", 0, apperrors.NewValidationError("Could not read the uploaded file")
		}
		return string(data), 1, nil
	default:
		return "", 0, apperrors.NewValidationError("Only PDF and TXT files are supported")
	}
}

func (s *PDFService) extractPDF(path string) (string, int, error) {
	pages, err := pdfapi.PageCountFile(path)
	if err != nil {
		return "", 0, apperrors.NewValidationError("The uploaded file is not a readable PDF")
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, apperrors.NewValidationError("The uploaded file is not a readable PDF")
	}
	defer f.Close()

	var content strings.Builder
	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		content.WriteString(text)
		content.WriteString("\n\n")
	}

	if content.Len() == 0 {
		return "", 0, apperrors.NewValidationError("Could not extract enough text from the document")
	}
	return content.String(), pages, nil
}
