// Package content stores uploaded digital material on the filesystem,
// routed into fixed areas by content type. File bytes are never inspected
// or transformed.
package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veenadevi/tn-lms-backend/internal/utils"
)

// Area is one of the fixed storage subdirectories.
type Area string

const (
	AreaVideos    Area = "videos"
	AreaPhotos    Area = "photos"
	AreaDocuments Area = "documents"
)

// Areas lists every storage area in listing order.
var Areas = []Area{AreaVideos, AreaPhotos, AreaDocuments}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileNotFound    = errors.New("file not found")
)

var documentExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".txt":  {},
	".rtf":  {},
	".odt":  {},
	".ppt":  {},
	".pptx": {},
	".xls":  {},
	".xlsx": {},
	".csv":  {},
	".epub": {},
}

// FileInfo describes one stored file in a listing.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"` // relative to the storage root
}

// Storage is a filesystem store rooted at a single directory with one
// subdirectory per area.
type Storage struct {
	root string
}

// NewStorage creates the storage root and every area directory.
func NewStorage(root string) (*Storage, error) {
	for _, area := range Areas {
		if err := os.MkdirAll(filepath.Join(root, string(area)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage area %s: %w", area, err)
		}
	}
	return &Storage{root: root}, nil
}

// Root returns the storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// ClassifyFile picks the storage area from the declared MIME type, falling
// back to the file extension for documents.
func ClassifyFile(contentType, filename string) (Area, error) {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return AreaVideos, nil
	case strings.HasPrefix(contentType, "image/"):
		return AreaPhotos, nil
	case contentType == "application/pdf" || strings.HasPrefix(contentType, "text/"):
		return AreaDocuments, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := documentExtensions[ext]; ok {
		return AreaDocuments, nil
	}
	return "", ErrUnsupportedType
}

// StoredName builds the on-disk filename: unix-millisecond timestamp prefix
// plus the sanitized original name.
func StoredName(original string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), utils.SanitizeFilename(original))
}

// Save streams the file into the given area and returns its listing entry.
func (s *Storage) Save(area Area, storedName string, r io.Reader) (*FileInfo, error) {
	dst := filepath.Join(s.root, string(area), storedName)
	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return &FileInfo{
		Name: storedName,
		Size: size,
		Path: filepath.Join(string(area), storedName),
	}, nil
}

// List returns stored files grouped by area with size and relative path.
func (s *Storage) List() (map[Area][]FileInfo, error) {
	listing := make(map[Area][]FileInfo, len(Areas))
	for _, area := range Areas {
		dir := filepath.Join(s.root, string(area))
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read area %s: %w", area, err)
		}

		files := []FileInfo{}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, FileInfo{
				Name: entry.Name(),
				Size: info.Size(),
				Path: filepath.Join(string(area), entry.Name()),
			})
		}
		listing[area] = files
	}
	return listing, nil
}

// Resolve maps a relative listing path back to an absolute file path. Paths
// escaping the storage root or naming a missing file yield ErrFileNotFound.
func (s *Storage) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == "." || !filepath.IsLocal(cleaned) {
		return "", ErrFileNotFound
	}

	abs := filepath.Join(s.root, cleaned)
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return abs, nil
}
