package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DocumentKind selects the output folder of a generated artifact
type DocumentKind string

const (
	KindInvoice        DocumentKind = "invoices"
	KindKYCApplication DocumentKind = "kyc_applications"
	KindReceipt        DocumentKind = "receipts"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// FolderManager lays out generated artifacts under one output root,
// one folder per document kind
type FolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewFolderManager creates a new FolderManager
func NewFolderManager(baseDir string, logger *zap.Logger) *FolderManager {
	return &FolderManager{
		baseDir: baseDir,
		logger:  logger,
	}
}

// BaseDir returns the output root
func (m *FolderManager) BaseDir() string {
	return m.baseDir
}

// EnsureFolder creates the folder for kind if missing and returns its path
func (m *FolderManager) EnsureFolder(kind DocumentKind) (string, error) {
	folderPath := filepath.Join(m.baseDir, string(kind))
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create document folder",
			zap.String("kind", string(kind)),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	return folderPath, nil
}

// ArtifactPath returns <base>/<kind>/<sanitized name>.pdf without creating anything
func (m *FolderManager) ArtifactPath(kind DocumentKind, name string) (string, error) {
	safeName := m.SanitizeFileName(name)
	if safeName == "" {
		return "", fmt.Errorf("cannot build artifact path: empty name after sanitizing %q", name)
	}
	return filepath.Join(m.baseDir, string(kind), safeName+".pdf"), nil
}

// SanitizeFileName returns a filesystem-safe version of the name
func (m *FolderManager) SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return unsafeNameChars.ReplaceAllString(name, "")
}
