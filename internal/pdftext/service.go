// Package pdftext extracts plain text from PDF documents on disk so the
// extraction pipeline can operate on scanned filings referenced by path.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// maxTextSize caps extracted text at 10MB regardless of document size.
const maxTextSize = 10 * 1024 * 1024

// Service reads and validates PDF files confined to a document directory.
type Service struct {
	documentDirectory string
	maxFileSize       int64
}

// NewService creates a PDF text service rooted at the given directory.
func NewService(documentDirectory string, maxFileSize int64) (*Service, error) {
	if documentDirectory == "" {
		return nil, fmt.Errorf("document directory cannot be empty")
	}
	return &Service{
		documentDirectory: documentDirectory,
		maxFileSize:       maxFileSize,
	}, nil
}

// ExtractText validates the file and returns its plain text content.
// Pages that fail individual extraction are skipped so a single damaged
// page does not sink the whole document.
func (s *Service) ExtractText(path string) (string, error) {
	if err := s.ValidateFile(path); err != nil {
		return "", err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if totalLength+len(content) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n")
		}
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF: %s", path)
	}

	return text, nil
}

// ValidateFile checks that the path names a readable PDF inside the
// configured document directory and that its structure parses.
func (s *Service) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if err := s.checkWithinDirectory(path); err != nil {
		return err
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > s.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), s.maxFileSize)
	}

	return s.validateStructure(path)
}

// validateStructure parses the document with relaxed validation so that
// the common run of slightly out-of-spec filings still passes.
func (s *Service) validateStructure(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	return nil
}

// checkWithinDirectory rejects paths that resolve outside the document
// directory. A configured directory that does not exist yet skips the
// check so deployments can create it lazily.
func (s *Service) checkWithinDirectory(path string) error {
	if _, err := os.Stat(s.documentDirectory); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absDir, err := filepath.Abs(s.documentDirectory)
	if err != nil {
		return fmt.Errorf("failed to resolve document directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		cleanDir = resolved
	}
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			cleanPath = resolved
		}
	}

	if cleanPath != cleanDir && !strings.HasPrefix(cleanPath, cleanDir+string(filepath.Separator)) {
		return fmt.Errorf("path is outside configured document directory: %s", path)
	}

	return nil
}
