package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filminsight/internal/config"
	"filminsight/internal/errors"
)

// writeFiles creates names under dir, each one minute newer than the last.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("id,title\n"), 0644))
		modTime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}
}

func names(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestFindFilesByPattern(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "tmdb_5000_movies.csv", "tmdb_5000_credits.csv", "tmdb_5000_movies_v2.csv", "other.csv")

	d := NewDiscovery(base)

	found, err := d.FindFilesByPattern(".", config.MoviesFilePattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmdb_5000_movies_v2.csv", "tmdb_5000_movies.csv"}, names(found))

	found, err = d.FindFilesByPattern(base, "*.json")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = d.FindFilesByPattern(".", "[")
	assert.Error(t, err)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old", ModTime: now.Add(-2 * time.Hour)},
		{Name: "new", ModTime: now},
		{Name: "mid", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	assert.True(t, ok)
	assert.Equal(t, "new", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

func TestLocateDataset(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	writeFiles(t, dataDir, "tmdb_5000_credits.csv", "tmdb_5000_movies.csv", "tmdb_5000_movies_2026.csv")

	d := NewDiscovery(base)
	patterns := config.DatasetConfig{
		DataDir:        "data",
		MoviesPattern:  config.MoviesFilePattern,
		CreditsPattern: config.CreditsFilePattern,
	}

	t.Run("newest pattern match wins", func(t *testing.T) {
		files, err := d.LocateDataset(patterns)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataDir, "tmdb_5000_movies_2026.csv"), files.Movies.Path)
		assert.Equal(t, filepath.Join(dataDir, "tmdb_5000_credits.csv"), files.Credits.Path)
	})

	t.Run("explicit file wins over pattern", func(t *testing.T) {
		cfg := patterns
		cfg.MoviesFile = filepath.Join("data", "tmdb_5000_movies.csv")
		files, err := d.LocateDataset(cfg)
		require.NoError(t, err)
		assert.Equal(t, "tmdb_5000_movies.csv", files.Movies.Name)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		cfg := patterns
		cfg.CreditsFile = "/nowhere/credits.csv"
		_, err := d.LocateDataset(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
		assert.Contains(t, err.Error(), "credits dataset not found")
	})

	t.Run("no pattern match", func(t *testing.T) {
		cfg := patterns
		cfg.MoviesPattern = "imdb_*.csv"
		_, err := d.LocateDataset(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
		assert.Contains(t, err.Error(), "movies dataset not found")
	})

	t.Run("bad pattern", func(t *testing.T) {
		cfg := patterns
		cfg.MoviesPattern = "["
		_, err := d.LocateDataset(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	})
}
