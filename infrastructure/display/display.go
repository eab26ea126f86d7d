package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"

	"photo-frame/infrastructure/logger"
)

// DefaultWidth and DefaultHeight size the canvas when no panel is attached
const (
	DefaultWidth  = 600
	DefaultHeight = 448
)

const qrBorderModules = 1

type Options struct {
	QRMargin       int
	QRDebugFile    string
	PhotoDebugFile string
}

// Adapter renders QR codes and photos to the panel, or to fixed debug files
// when the panel was not detected at start-up.
type Adapter struct {
	panel  Panel
	width  int
	height int
	opts   Options
}

// NewAdapter builds an adapter around panel. A nil panel selects file output for
// the lifetime of the adapter.
func NewAdapter(panel Panel, opts Options) *Adapter {
	if opts.QRDebugFile == "" {
		opts.QRDebugFile = "qr.png"
	}
	if opts.PhotoDebugFile == "" {
		opts.PhotoDebugFile = "latest_display.png"
	}
	a := &Adapter{panel: panel, width: DefaultWidth, height: DefaultHeight, opts: opts}
	if panel != nil {
		b := panel.Bounds()
		a.width, a.height = b.Dx(), b.Dy()
	}
	return a
}

func (a *Adapter) HasPanel() bool { return a.panel != nil }

func (a *Adapter) Resolution() (int, int) { return a.width, a.height }

// RenderQR draws a black-on-white QR code of payload centered on a white canvas.
// Every module is the same whole number of pixels wide, with a one module border.
func (a *Adapter) RenderQR(payload string) error {
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	canvas := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	modules := len(bitmap) + 2*qrBorderModules
	px := (min(a.width, a.height) - a.opts.QRMargin) / modules
	if px <= 0 {
		return fmt.Errorf("panel %dx%d too small for QR code of %d modules with margin %d", a.width, a.height, modules, a.opts.QRMargin)
	}
	size := px * modules
	x0 := (a.width-size)/2 + qrBorderModules*px
	y0 := (a.height-size)/2 + qrBorderModules*px
	black := image.NewUniform(color.Black)
	for row, line := range bitmap {
		for col, dark := range line {
			if !dark {
				continue
			}
			cell := image.Rect(x0+col*px, y0+row*px, x0+(col+1)*px, y0+(row+1)*px)
			draw.Draw(canvas, cell, black, image.Point{}, draw.Src)
		}
	}

	return a.commit(canvas, a.opts.QRDebugFile)
}

// RenderPhoto fills the panel with img, center-cropping to keep the aspect ratio
func (a *Adapter) RenderPhoto(img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image to render")
	}
	return a.commit(Fit(img, a.width, a.height), a.opts.PhotoDebugFile)
}

func (a *Adapter) commit(img image.Image, debugFile string) error {
	if a.panel == nil {
		if err := writePNG(debugFile, img); err != nil {
			return fmt.Errorf("failed to write %s: %w", debugFile, err)
		}
		logger.GetLogger().WithField("file", debugFile).Info("No panel attached; wrote frame to file")
		return nil
	}
	if err := a.panel.Draw(a.panel.Bounds(), img, img.Bounds().Min); err != nil {
		return fmt.Errorf("panel refresh failed: %w", err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
