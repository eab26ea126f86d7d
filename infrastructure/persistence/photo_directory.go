package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageExtensions are the file suffixes recognized as displayable photos
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PhotoDirectory is the flat directory photos are downloaded into, one file per remote filename
type PhotoDirectory struct {
	dir string
}

func NewPhotoDirectory(dir string) *PhotoDirectory {
	return &PhotoDirectory{dir: dir}
}

func (d *PhotoDirectory) Dir() string { return d.dir }

// Path maps a remote filename into the directory. Any directory part of the name is dropped.
func (d *PhotoDirectory) Path(filename string) string {
	return filepath.Join(d.dir, filepath.Base(filepath.Clean("/"+filename)))
}

func (d *PhotoDirectory) Has(filename string) bool {
	info, err := os.Stat(d.Path(filename))
	return err == nil && info.Mode().IsRegular()
}

// Save streams r into the directory. The file only appears under its final
// name once fully written, so an interrupted download is never mistaken for a cached one.
func (d *PhotoDirectory) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}
	path := d.Path(filename)
	tmp, err := os.CreateTemp(d.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to store %s: %w", filename, err)
	}
	return path, nil
}

func (d *PhotoDirectory) Latest() (string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read photo directory: %w", err)
	}
	var (
		latest     string
		latestTime time.Time
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !ImageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(d.dir, entry.Name())
			latestTime = info.ModTime()
		}
	}
	return latest, nil
}
