package asset

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureData holds tightly packed RGBA8 texels, bottom row first so it can
// be uploaded to OpenGL as is.
type TextureData struct {
	Pix    []uint8
	Width  int
	Height int
}

// LoadImageFile decodes png, jpeg, bmp, tiff or webp. Images larger than
// maxSize on either side are downscaled to fit; maxSize <= 0 disables that.
func LoadImageFile(filename string, maxSize int) (*TextureData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return FromImage(img, maxSize), nil
}

func FromImage(img image.Image, maxSize int) *TextureData {
	bounds := img.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	}

	flipVertical(rgba)
	return &TextureData{
		Pix:    rgba.Pix,
		Width:  w,
		Height: h,
	}
}

// SolidTexture is a 1x1 texture of a single color.
func SolidTexture(c color.RGBA) *TextureData {
	return &TextureData{
		Pix:    []uint8{c.R, c.G, c.B, c.A},
		Width:  1,
		Height: 1,
	}
}

func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	stride := img.Stride
	row := make([]uint8, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
