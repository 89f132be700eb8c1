package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFS implements FileSystem over a base directory, resolving
// asset URIs as paths relative to it.
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a LocalFS rooted at basePath.
func NewLocalFS(basePath string) (*LocalFS, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return &LocalFS{basePath: absPath}, nil
}

// fullPath returns the full filesystem path for a URI.
func (fs *LocalFS) fullPath(uri string) string {
	if filepath.IsAbs(uri) {
		return uri
	}
	// Clean the URI to prevent directory traversal
	clean := filepath.Clean(uri)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		clean = ""
	}
	return filepath.Join(fs.basePath, clean)
}

// StatSize returns the asset's size in bytes.
func (fs *LocalFS) StatSize(ctx context.Context, uri string) (int64, error) {
	info, err := os.Stat(fs.fullPath(uri))
	if err != nil {
		return 0, fmt.Errorf("failed to stat asset: %w", err)
	}
	return info.Size(), nil
}

// Open returns the asset's content for upload.
func (fs *LocalFS) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	f, err := os.Open(fs.fullPath(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}
	return f, nil
}

// PathPicker is an ImagePicker that always picks a preselected file,
// which is how the command line stands in for a gallery. An empty path
// behaves as a cancelled selection.
type PathPicker struct {
	Path string
}

// Pick returns the preselected file as an image asset.
func (p PathPicker) Pick(ctx context.Context) (*Asset, error) {
	if p.Path == "" {
		return nil, nil
	}
	return &Asset{URI: p.Path, MediaType: "image"}, nil
}
