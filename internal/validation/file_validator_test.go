package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateSurveyFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "csv export",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "responses.csv")
				require.NoError(t, os.WriteFile(path, []byte("Timestamp,Student ID\n"), 0644))
				return path
			},
		},
		{
			name: "xlsx export with upper case extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "responses.XLSX")
				require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "responses.json")
				require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "not a CSV or XLSX",
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$responses.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("lock"), 0644))
				return path
			},
			wantErr:       true,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(slog.Default())
			err := v.ValidateSurveyFile(tt.setupFunc(t))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_ValidateOutputDirectories(t *testing.T) {
	base := t.TempDir()
	dirs := []string{
		filepath.Join(base, "cleaned"),
		filepath.Join(base, "reports", "nested"),
	}

	v := NewFileValidator(nil)
	require.NoError(t, v.ValidateOutputDirectories(dirs))

	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "write probe should be removed")
	}
}

func TestFileValidator_ValidateOutputDirectory_FileInTheWay(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "cleaned")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewFileValidator(nil).ValidateOutputDirectory(filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}
