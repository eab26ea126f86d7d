package repository

import (
	"context"
	"io"

	"photo-frame/domain/model"
)

// IPhotoLibrary is the remote photo library
type IPhotoLibrary interface {
	// ListMediaItems returns at most n items in the library's own recency order
	ListMediaItems(ctx context.Context, credential *model.Credential, n int) ([]model.MediaItem, error)
	// Download opens the full-resolution content of item
	Download(ctx context.Context, credential *model.Credential, item model.MediaItem) (io.ReadCloser, error)
}

// IPhotoDirectory is the flat local directory of downloaded photos
type IPhotoDirectory interface {
	Path(filename string) string
	Has(filename string) bool
	Save(filename string, r io.Reader) (string, error)
	// Latest returns the most recently modified recognized image, or "" when there is none
	Latest() (string, error)
}
