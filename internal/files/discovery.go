package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"filminsight/internal/config"
	"filminsight/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// DatasetFiles names the two source files of one dataset load
type DatasetFiles struct {
	Movies  FileInfo
	Credits FileInfo
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindFilesByPattern finds regular files matching a glob pattern, newest first
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(filepath.Join(d.resolve(dir), pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sortNewestFirst(files)
	return files, nil
}

// LocateDataset resolves the movies and credits files. Explicit file paths
// in cfg win; otherwise the newest match of each pattern inside cfg.DataDir
// is used.
func (d *Discovery) LocateDataset(cfg config.DatasetConfig) (DatasetFiles, error) {
	movies, err := d.locate(cfg.DataDir, cfg.MoviesFile, cfg.MoviesPattern, "movies dataset")
	if err != nil {
		return DatasetFiles{}, err
	}
	credits, err := d.locate(cfg.DataDir, cfg.CreditsFile, cfg.CreditsPattern, "credits dataset")
	if err != nil {
		return DatasetFiles{}, err
	}
	return DatasetFiles{Movies: movies, Credits: credits}, nil
}

func (d *Discovery) locate(dataDir, file, pattern, resource string) (FileInfo, error) {
	if file != "" {
		path := d.resolve(file)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return FileInfo{}, errors.NewNotFoundError(resource).WithContext("path", path)
		}
		if err != nil {
			return FileInfo{}, errors.NewStorageError("failed to stat "+resource, err).WithContext("path", path)
		}
		return FileInfo{Path: path, Name: filepath.Base(path), Size: info.Size(), ModTime: info.ModTime()}, nil
	}

	matches, err := d.FindFilesByPattern(dataDir, pattern)
	if err != nil {
		return FileInfo{}, errors.NewAppValidationError(err.Error())
	}
	latest, ok := GetLatestFile(matches)
	if !ok {
		return FileInfo{}, errors.NewNotFoundError(resource).
			WithContext("directory", d.resolve(dataDir)).
			WithContext("pattern", pattern)
	}
	return latest, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

// sortNewestFirst orders by modification time, then name for equal times.
func sortNewestFirst(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
}
