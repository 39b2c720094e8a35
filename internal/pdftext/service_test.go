package pdftext

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewServiceRequiresDirectory(t *testing.T) {
	if _, err := NewService("", 1024); err == nil {
		t.Fatal("expected error for empty document directory")
	}
}

func TestValidateFileRejections(t *testing.T) {
	dir := t.TempDir()

	svc, err := NewService(dir, 1024)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	emptyPDF := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(emptyPDF, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("write text file: %v", err)
	}

	fakePDF := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(fakePDF, []byte("this is not a pdf payload"), 0o644); err != nil {
		t.Fatalf("write fake pdf: %v", err)
	}

	bigPDF := filepath.Join(dir, "big.pdf")
	if err := os.WriteFile(bigPDF, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write big pdf: %v", err)
	}

	subDir := filepath.Join(dir, "nested.pdf")
	if err := os.Mkdir(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "outside.pdf")
	if err := os.WriteFile(outside, []byte("outside payload"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty path", "", "path cannot be empty"},
		{"missing file", filepath.Join(dir, "missing.pdf"), "does not exist"},
		{"directory", subDir, "directory, not a file"},
		{"wrong extension", textFile, "not a PDF"},
		{"empty file", emptyPDF, "file is empty"},
		{"too large", bigPDF, "file too large"},
		{"outside directory", outside, "outside configured document directory"},
		{"corrupt content", fakePDF, "invalid PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateFile(tt.path)
			if err == nil {
				t.Fatalf("expected error for %q", tt.path)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExtractTextPropagatesValidation(t *testing.T) {
	dir := t.TempDir()

	svc, err := NewService(dir, 1024*1024)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	text, err := svc.ExtractText(filepath.Join(dir, "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if text != "" {
		t.Errorf("expected empty text on error, got %q", text)
	}
}

func TestCheckWithinDirectorySkipsMissingRoot(t *testing.T) {
	svc, err := NewService(filepath.Join(t.TempDir(), "not-created-yet"), 1024)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	// A root that has not been created yet accepts any path so the
	// extension check fires first.
	err = svc.ValidateFile("/somewhere/else/file.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if strings.Contains(err.Error(), "outside configured") {
		t.Errorf("confinement should be skipped when root is absent: %v", err)
	}
}
