package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDotEnv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "simple key-value",
			content:  "SHC_TIMEOUT=5000",
			expected: map[string]string{"SHC_TIMEOUT": "5000"},
		},
		{
			name:     "export prefix",
			content:  "export SHC_PROXY=http://proxy:3128",
			expected: map[string]string{"SHC_PROXY": "http://proxy:3128"},
		},
		{
			name:     "double quoted value",
			content:  `GREETING="hello world"`,
			expected: map[string]string{"GREETING": "hello world"},
		},
		{
			name:     "single quoted value",
			content:  `GREETING='hello world'`,
			expected: map[string]string{"GREETING": "hello world"},
		},
		{
			name:     "comments and blank lines skipped",
			content:  "# comment\n\nA=1\n\n# another\nB=2",
			expected: map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "whitespace trimmed",
			content:  "  KEY  =  value  ",
			expected: map[string]string{"KEY": "value"},
		},
		{
			name:     "value with equals sign",
			content:  "URL=http://example.com/?a=1&b=2",
			expected: map[string]string{"URL": "http://example.com/?a=1&b=2"},
		},
		{
			name:     "lines without equals skipped",
			content:  "JUSTAWORD\nA=1",
			expected: map[string]string{"A": "1"},
		},
		{
			name:     "inline comment kept",
			content:  "A=1 # not a comment",
			expected: map[string]string{"A": "1 # not a comment"},
		},
		{
			name:     "empty file",
			content:  "",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LoadDotEnv(writeEnvFile(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoadDotEnvFileNotFound(t *testing.T) {
	_, err := LoadDotEnv("/nonexistent/path/.env")
	assert.Error(t, err)
}

func TestLoadAndExportDotEnv(t *testing.T) {
	t.Setenv("SHC_TEST_ALREADY_SET", "original")
	t.Setenv("SHC_TEST_NEW", "")
	os.Unsetenv("SHC_TEST_NEW")

	path := writeEnvFile(t, "SHC_TEST_ALREADY_SET=overridden\nSHC_TEST_NEW=fresh\n")

	exported, err := LoadAndExportDotEnv(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"SHC_TEST_NEW"}, exported)
	assert.Equal(t, "original", os.Getenv("SHC_TEST_ALREADY_SET"))
	assert.Equal(t, "fresh", os.Getenv("SHC_TEST_NEW"))
}
