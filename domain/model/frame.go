package model

import "time"

const (
	FrameEventQRShown        = "qr_shown"
	FrameEventAuthorized     = "authorized"
	FrameEventPhotoDisplayed = "photo_displayed"
	FrameEventPhotoFailed    = "photo_failed"
)

// FrameEvent is broadcast to status subscribers whenever the frame changes what it shows
type FrameEvent struct {
	Type  string    `json:"type"`
	Path  string    `json:"path,omitempty"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

// FrameStatus summarizes the frame for the JSON status endpoint
type FrameStatus struct {
	Configured      bool       `json:"configured"`
	PanelPresent    bool       `json:"panel_present"`
	ConfigURL       string     `json:"config_url,omitempty"`
	LastPhoto       string     `json:"last_photo,omitempty"`
	LastDisplayedAt *time.Time `json:"last_displayed_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
}
