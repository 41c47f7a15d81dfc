package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileInfo represents information about a discovered data file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery locates PDX exports on disk
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDataFiles lists the decodable files in dir, oldest first.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// GetLatestFile returns the most recently modified file
func (d *Discovery) GetLatestFile(files []FileInfo) (*FileInfo, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files provided")
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return &latest, nil
}

// ResolveInput maps a CLI argument to a data file: a file path is returned
// as-is, a directory resolves to its newest export.
func (d *Discovery) ResolveInput(path string) (string, error) {
	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(d.basePath, path)
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}
	if !info.IsDir() {
		return fullPath, nil
	}

	files, err := d.FindDataFiles(fullPath)
	if err != nil {
		return "", err
	}
	latest, err := d.GetLatestFile(files)
	if err != nil {
		return "", fmt.Errorf("no .csv or .xlsx files in %s", fullPath)
	}
	return latest.Path, nil
}
