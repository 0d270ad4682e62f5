// Package surface provides the off-screen raster that the pixel-sampling hit
// tester renders region maps onto, and the reference-counted pool that shares
// one such raster between every label using that strategy.
//
// One pixel stands for one terminal cell. A cell belonging to region i is
// painted Encode(i): the index in the red channel and full intensity in the
// blue guard channel. Every other cell is void.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// MaxRegions is the number of distinct regions an 8-bit index channel can
// name. Regions past this many are not painted.
const MaxRegions = 256

// Guard is the value the guard channel holds on a valid region pixel.
const Guard = 0xff

// Void is the colour of cells outside every region.
var Void = color.RGBA{}

// Encode returns the paint colour for region index i.
func Encode(i int) color.RGBA {
	return color.RGBA{R: uint8(i), B: Guard, A: 0xff}
}

// Decode recovers a region index from a sampled colour. Pixels whose guard
// channel is not at full intensity are rejected.
func Decode(c color.RGBA) (int, bool) {
	if c.B != Guard || c.G != 0 {
		return 0, false
	}
	return int(c.R), true
}

// Surface is a cell raster.
type Surface struct {
	img *image.RGBA
}

// New returns a void surface of w x h cells.
func New(w, h int) *Surface {
	s := &Surface{}
	s.Reset(w, h)
	return s
}

// Reset resizes the surface to w x h and clears it. The backing buffer is
// reused when it is large enough.
func (s *Surface) Reset(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r := image.Rect(0, 0, w, h)
	if s.img != nil && cap(s.img.Pix) >= 4*w*h {
		s.img = &image.RGBA{Pix: s.img.Pix[:4*w*h], Stride: 4 * w, Rect: r}
	} else {
		s.img = image.NewRGBA(r)
	}
	draw.Draw(s.img, r, image.NewUniform(Void), image.Point{}, draw.Src)
}

// Size returns the surface dimensions in cells.
func (s *Surface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill paints the cells in r with c.
func (s *Surface) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// At samples the cell at (x, y). Points outside the surface are void.
func (s *Surface) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(s.img.Bounds()) {
		return Void
	}
	return s.img.RGBAAt(x, y)
}

// Image exposes the raster read-only.
func (s *Surface) Image() image.Image {
	return s.img
}

// Encoder writes an image in one file format.
type Encoder func(io.Writer, image.Image) error

// EncoderFor picks an encoder from the file extension of name: .png, .bmp,
// .tif or .tiff.
func EncoderFor(name string) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", "":
		return png.Encode, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, nil
	}
	return nil, fmt.Errorf("unsupported image format %q", filepath.Ext(name))
}

// Dump writes the surface to w with every cell enlarged to scale x scale
// pixels so that the region map can be inspected.
func (s *Surface) Dump(w io.Writer, enc Encoder, scale int) error {
	scale = max(scale, 1)
	cw, ch := s.Size()
	dst := image.NewRGBA(image.Rect(0, 0, cw*scale, ch*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	if err := enc(w, dst); err != nil {
		return fmt.Errorf("encode surface: %w", err)
	}
	return nil
}
