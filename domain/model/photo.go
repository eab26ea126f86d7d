package model

import (
	"strings"
	"time"
)

// MediaItem is one photo or video in the remote library
type MediaItem struct {
	ID            string        `json:"id"`
	BaseURL       string        `json:"baseUrl"`
	MimeType      string        `json:"mimeType"`
	Filename      string        `json:"filename"`
	ProductURL    string        `json:"productUrl,omitempty"`
	MediaMetadata MediaMetadata `json:"mediaMetadata"`
}

type MediaMetadata struct {
	CreationTime time.Time `json:"creationTime"`
	Width        string    `json:"width,omitempty"`
	Height       string    `json:"height,omitempty"`
}

// IsImage reports whether the item is a still image that can be downloaded and shown
func (m MediaItem) IsImage() bool {
	return m.BaseURL != "" && m.Filename != "" && strings.HasPrefix(m.MimeType, "image/")
}

// DownloadURL is the base content URL with the full download modifier
func (m MediaItem) DownloadURL() string {
	return m.BaseURL + "=d"
}
