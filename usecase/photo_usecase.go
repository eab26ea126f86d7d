package usecase

import (
	"context"
	"errors"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
	"photo-frame/infrastructure/logger"
)

// IPhotoUsecase keeps the local photo directory topped up from the remote library
type IPhotoUsecase interface {
	// FetchLatest downloads the n most recent images not yet present locally and
	// returns the local paths of all of them, cached or fresh, in library order.
	FetchLatest(ctx context.Context, n int) []string
	// FetchOne tops up by one and picks the photo to show next
	FetchOne(ctx context.Context) (string, bool)
}

type PhotoUsecase struct {
	credentials repository.ICredentialStore
	library     repository.IPhotoLibrary
	photos      repository.IPhotoDirectory
	fetchCount  int
}

func NewPhotoUsecase(credentials repository.ICredentialStore, library repository.IPhotoLibrary, photos repository.IPhotoDirectory) *PhotoUsecase {
	return &PhotoUsecase{credentials: credentials, library: library, photos: photos, fetchCount: 1}
}

// WithFetchCount makes FetchOne top up n photos per call instead of one
func (u *PhotoUsecase) WithFetchCount(n int) *PhotoUsecase {
	if n > 0 {
		u.fetchCount = n
	}
	return u
}

func (u *PhotoUsecase) FetchLatest(ctx context.Context, n int) []string {
	paths := []string{}
	if n <= 0 {
		return paths
	}
	credential, err := u.credentials.Load()
	if err != nil {
		if !errors.Is(err, repository.ErrNoCredential) {
			logger.GetLogger().WithField("error", err).Error("Failed to load credential")
		}
		return paths
	}

	items, err := u.library.ListMediaItems(ctx, credential, n)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Photo library API error")
	}
	for _, item := range items {
		if len(paths) == n {
			break
		}
		if !item.IsImage() {
			continue
		}
		if u.photos.Has(item.Filename) {
			paths = append(paths, u.photos.Path(item.Filename))
			continue
		}
		path, err := u.download(ctx, credential, item)
		if err != nil {
			logger.GetLogger().WithField("error", err).WithField("filename", item.Filename).Warn("Skipping photo")
			continue
		}
		logger.GetLogger().WithField("path", path).Info("Downloaded photo")
		paths = append(paths, path)
	}
	return paths
}

func (u *PhotoUsecase) download(ctx context.Context, credential *model.Credential, item model.MediaItem) (string, error) {
	body, err := u.library.Download(ctx, credential, item)
	if err != nil {
		return "", err
	}
	defer body.Close()
	return u.photos.Save(item.Filename, body)
}

// FetchOne prefers the newest photo the fetch just produced. When the fetch
// yields nothing it falls back to the most recently modified local photo.
func (u *PhotoUsecase) FetchOne(ctx context.Context) (string, bool) {
	if paths := u.FetchLatest(ctx, u.fetchCount); len(paths) > 0 {
		return paths[0], true
	}
	latest, err := u.photos.Latest()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to scan photo directory")
		return "", false
	}
	return latest, latest != ""
}
