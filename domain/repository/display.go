package repository

import (
	"image"

	"photo-frame/domain/model"
)

// IDisplay commits images to the attached panel or to debug files when no panel is present
type IDisplay interface {
	HasPanel() bool
	Resolution() (width, height int)
	// RenderQR shows a QR code encoding payload
	RenderQR(payload string) error
	// RenderPhoto center-crops img to the panel and shows it. Blocks for the panel refresh.
	RenderPhoto(img image.Image) error
}

// IFrameEvents receives frame events for live subscribers
type IFrameEvents interface {
	Publish(event model.FrameEvent)
}
