package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "exports", "nested")
	require.NoError(t, v.ValidateOutputDirectory(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe is removed")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	err = v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestFileValidator_ValidateFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()
	file := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(file, []byte("id\n"), 0644))

	assert.NoError(t, v.ValidateFile(file))

	err := v.ValidateFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	err = v.ValidateFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFileValidator_ValidateDatasetFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	tests := []struct {
		name          string
		path          string
		maxSize       int64
		errorContains string
	}{
		{name: "valid csv", path: write("tmdb_5000_movies.csv", "id,title\n19995,Avatar\n"), maxSize: 1024},
		{name: "upper case extension", path: write("CREDITS.CSV", "movie_id\n1\n"), maxSize: 1024},
		{name: "no size ceiling", path: write("big.csv", "id\n1\n2\n3\n"), maxSize: 0},
		{name: "wrong extension", path: write("movies.xlsx", "binary"), maxSize: 1024, errorContains: "not a CSV file"},
		{name: "empty file", path: write("empty.csv", ""), maxSize: 1024, errorContains: "is empty"},
		{name: "too large", path: write("large.csv", "id,title\n1,A\n"), maxSize: 4, errorContains: "byte limit"},
		{name: "lock file", path: write("~$movies.csv", "id\n"), maxSize: 1024, errorContains: "lock file"},
		{name: "missing", path: filepath.Join(dir, "absent.csv"), maxSize: 1024, errorContains: "does not exist"},
	}

	v := NewFileValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDatasetFile(tt.path, tt.maxSize)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

