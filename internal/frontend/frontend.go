// Package frontend contains the shared parts of the hosts that display the
// machine and feed it with input.
package frontend

import (
	"context"
	"image"

	"github.com/retroenv/gbatactics/internal/hardware"
	"golang.org/x/image/draw"
)

// Machine is the hosted machine.
type Machine interface {
	Frame() *image.RGBA
	Frames() uint64
	SetKeys(keys hardware.Keys)
}

// Loop runs the frame loop until the context is canceled.
type Loop interface {
	Run(ctx context.Context) error
}

// Scale returns the image enlarged by an integer factor using nearest
// neighbor sampling, which keeps the pixels sharp.
func Scale(src image.Image, factor int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// Shrink returns the image reduced to the given size, averaging the source
// pixels.
func Shrink(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
