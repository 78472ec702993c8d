package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
type ErrFileTooLarge struct {
	LimitBytes int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("storage: file exceeds limit of %d bytes", e.LimitBytes)
}

// ReceiptStorage keeps uploaded receipt photos on local disk, one
// subdirectory per visitor.
type ReceiptStorage struct {
	rootPath       string
	maxUploadBytes int64
}

func NewReceiptStorage(rootPath string, maxUploadMB int64) (*ReceiptStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", rootPath, err)
	}

	return &ReceiptStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save writes the upload under the visitor's directory and returns the
// relative path. The write goes through a temp file so a failed upload never
// leaves a partial image behind.
func (s *ReceiptStorage) Save(ctx context.Context, visitorID, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(safeName))

	visitorDir := filepath.Join(s.rootPath, sanitizeFilename(visitorID))
	if err := os.MkdirAll(visitorDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: cannot create visitor directory: %w", err)
	}

	targetPath := filepath.Join(visitorDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: cannot create file: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: write failed: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, &ErrFileTooLarge{LimitBytes: s.maxUploadBytes}
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: close failed: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: rename failed: %w", err)
	}

	relative := filepath.Join(sanitizeFilename(visitorID), fileName)
	return relative, written, nil
}

// Delete removes a stored image. Missing files are not an error.
func (s *ReceiptStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: cannot remove file: %w", err)
	}
	return nil
}

// sanitizeFilename strips path traversal characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "receipt"
	}
	return name
}
