package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFolderManager_EnsureFolder(t *testing.T) {
	tempDir := t.TempDir()
	mgr := NewFolderManager(tempDir, zap.NewNop())

	for _, kind := range []DocumentKind{KindInvoice, KindKYCApplication, KindReceipt} {
		path, err := mgr.EnsureFolder(kind)
		require.NoError(t, err)
		assert.DirExists(t, path)
		assert.Equal(t, filepath.Join(tempDir, string(kind)), path)
	}

	// idempotent
	_, err := mgr.EnsureFolder(KindInvoice)
	assert.NoError(t, err)
}

func TestFolderManager_ArtifactPath(t *testing.T) {
	tempDir := t.TempDir()
	mgr := NewFolderManager(tempDir, zap.NewNop())

	path, err := mgr.ArtifactPath(KindInvoice, "VREB1234")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "invoices", "VREB1234.pdf"), path)

	path, err = mgr.ArtifactPath(KindKYCApplication, "../kyc_application_CUST2024001")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "kyc_applications", "kyc_application_CUST2024001.pdf"), path)

	_, err = mgr.ArtifactPath(KindReceipt, "../..//")
	assert.Error(t, err)
}

func TestFolderManager_SanitizeFileName(t *testing.T) {
	mgr := NewFolderManager(t.TempDir(), zap.NewNop())

	tests := []struct {
		input    string
		expected string
	}{
		{"VREB1234", "VREB1234"},
		{"receipt_VREB1234", "receipt_VREB1234"},
		{"../../etc/passwd", "etcpasswd"},
		{"name with spaces", "namewithspaces"},
		{"a\\b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mgr.SanitizeFileName(tt.input))
		})
	}
}
