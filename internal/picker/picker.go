// Package picker holds the device capabilities the avatar flow
// consumes: picking an image and inspecting the local file behind it.
package picker

import (
	"context"
	"io"
)

// Asset is a picked image: a source URI plus the declared media type
// ("image" for anything the gallery returns).
type Asset struct {
	URI       string
	MediaType string
}

// ImagePicker asks the user to choose an image. A nil asset with a nil
// error means the user cancelled the selection.
type ImagePicker interface {
	Pick(ctx context.Context) (*Asset, error)
}

// FileSystem inspects and opens picked assets by URI.
type FileSystem interface {
	// StatSize returns the asset's size in bytes.
	StatSize(ctx context.Context, uri string) (int64, error)

	// Open returns the asset's content for upload. The caller is
	// responsible for closing the returned ReadCloser.
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}
