package ingest

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExtractText pulls plain text out of a downloaded menu file. Text files
// pass through, PDFs go to pdftotext, everything else is treated as a
// scan and handed to tesseract.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".txt" && !bytes.HasPrefix(data, []byte("%PDF")) {
		return string(data), nil
	}

	tmp, err := os.CreateTemp("", "menu-*"+ext)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// trust the magic bytes over the extension: upload forms lie
	if ext == ".pdf" || bytes.HasPrefix(data, []byte("%PDF")) {
		return extractPDF(tmp.Name())
	}
	return extractImage(tmp.Name())
}

func extractPDF(path string) (string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func extractImage(path string) (string, error) {
	out, err := exec.Command("tesseract", path, "stdout").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}
