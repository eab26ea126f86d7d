package configuration

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	PhotosLibraryReadonlyScope = "https://www.googleapis.com/auth/photoslibrary.readonly"
	PhotosLibraryEndpoint      = "https://photoslibrary.googleapis.com/v1"
)

// ErrClientSecretMissing means the externally provisioned OAuth client file is not there
var ErrClientSecretMissing = errors.New("client secret file is missing")

// GetGooglePhotosConfig builds the OAuth client config from the configured client secret file
func GetGooglePhotosConfig(redirectURL string) (*oauth2.Config, error) {
	return LoadGooglePhotosConfig(C.Photos.ClientSecretFile, redirectURL, C.Photos.Scopes...)
}

// LoadGooglePhotosConfig reads a Google client secret JSON file (web or installed app)
func LoadGooglePhotosConfig(path, redirectURL string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrClientSecretMissing, path)
		}
		return nil, fmt.Errorf("failed to read client secret file: %w", err)
	}
	if len(scopes) == 0 {
		scopes = []string{PhotosLibraryReadonlyScope}
	}
	config, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	return config, nil
}
