package display

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fit scales img to cover width x height and crops the overflow evenly from
// both sides, so the result is exactly width x height.
func Fit(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := img.Bounds()
	if src.Empty() || width <= 0 || height <= 0 {
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, cropRect(src, width, height), xdraw.Src, nil)
	return dst
}

// cropRect is the largest centered region of src with the target aspect ratio
func cropRect(src image.Rectangle, width, height int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	// Compare sw/sh with width/height without floats.
	if sw*height > sh*width {
		cw := sh * width / height
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * height / width
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}
