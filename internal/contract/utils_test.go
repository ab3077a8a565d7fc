package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpipe/assetgate/schema"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		status schema.CheckStatus
	}{
		{"pass", schema.CheckPass},
		{"fail", schema.CheckFail},
		{"warning", schema.CheckWarning},
		{"skipped", schema.CheckSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StatusLabel(tt.status)
			// Should contain the plain status text
			assert.Contains(t, result, string(tt.status))
		})
	}
}

func TestOverallLabel(t *testing.T) {
	for _, status := range []schema.OverallStatus{
		schema.OverallPass,
		schema.OverallPassWithFixes,
		schema.OverallNeedsReview,
		schema.OverallFail,
	} {
		assert.Contains(t, OverallLabel(status), string(status))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetStoreDBFilePath(t *testing.T) {
	path := GetStoreDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".assetgate_reports.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name unchanged", "SM_Crate", 20, "SM_Crate"},
		{"long name truncated", "SM_AncientTempleColumn_Broken_LOD0", 20, "SM_AncientTemple..."},
		{"width too small returns original", "SM_Crate_01", 3, "SM_Crate_01"},
		{"exact width unchanged", "SM_Rock", 7, "SM_Rock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
